package mediasvc

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/sir_venger/foodgram/internal/models"
)

// allowed типы картинок и расширения файлов для них.
var allowed = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

const imageField = "image"

// Decode разбирает "data:image/<type>;base64,<data>". Ошибки: *models.ValidationError по полю image.
func (m *Media) Decode(dataURL string) (models.Image, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return models.Image{}, models.NewValidationError(imageField, "Upload a valid image as a base64 data URL.")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return models.Image{}, models.NewValidationError(imageField, "Upload a valid image as a base64 data URL.")
	}
	mediaType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return models.Image{}, models.NewValidationError(imageField, "Image must be base64 encoded.")
	}
	mediaType = strings.ToLower(mediaType)
	ext, ok := allowed[mediaType]
	if !ok {
		return models.Image{}, models.NewValidationError(imageField, fmt.Sprintf("Unsupported image type %q.", mediaType))
	}

	if m.MaxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > m.MaxBytes+2 {
		return models.Image{}, models.NewValidationError(imageField, fmt.Sprintf("Image must not exceed %d bytes.", m.MaxBytes))
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return models.Image{}, models.NewValidationError(imageField, "Image is not valid base64.")
	}
	if len(data) == 0 {
		return models.Image{}, models.NewValidationError(imageField, "The submitted image is empty.")
	}
	if m.MaxBytes > 0 && int64(len(data)) > m.MaxBytes {
		return models.Image{}, models.NewValidationError(imageField, fmt.Sprintf("Image must not exceed %d bytes.", m.MaxBytes))
	}
	if sniffed := http.DetectContentType(data); sniffed != mediaType {
		return models.Image{}, models.NewValidationError(imageField, "Image content does not match its declared type.")
	}

	return models.Image{Data: data, ContentType: mediaType, Ext: ext}, nil
}
