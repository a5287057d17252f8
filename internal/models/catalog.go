package models

// Tag тег рецепта.
type Tag struct {
	ID    int64  `json:"id" yaml:"-"`
	Name  string `json:"name" yaml:"name" validate:"required,max=200"`
	Color string `json:"color" yaml:"color" validate:"required,hexcolor6"`
	Slug  string `json:"slug" yaml:"slug" validate:"required,max=200,slug"`
}

// Ingredient справочный ингредиент.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=20"`
}
