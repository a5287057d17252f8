package models

// MediaObject описывает сохранённый медиафайл (картинку рецепта).
type MediaObject struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Sha256      string `json:"sha256"`
	ContentType string `json:"content_type"`
	// Location публичный адрес файла, сохраняется в recipes.image.
	Location string `json:"location"`
}

// Image содержит декодированную картинку, пришедшую в data URL.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}
