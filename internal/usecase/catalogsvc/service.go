// Package catalogsvc справочники тегов и ингредиентов.
package catalogsvc

import (
	"context"
	"io"

	"github.com/sir_venger/foodgram/internal/models"
)

type (
	// Store хранилище справочников.
	Store interface {
		ListTags(ctx context.Context) ([]models.Tag, error)
		GetTag(ctx context.Context, id int64) (models.Tag, error)
		ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
		GetIngredient(ctx context.Context, id int64) (models.Ingredient, error)
		InsertIngredients(ctx context.Context, items []models.Ingredient) (int64, error)
		InsertTags(ctx context.Context, tags []models.Tag) (int64, error)
	}

	Service interface {
		Tags(ctx context.Context) ([]models.Tag, error)
		Tag(ctx context.Context, id int64) (models.Tag, error)
		Ingredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
		Ingredient(ctx context.Context, id int64) (models.Ingredient, error)
		ImportIngredients(ctx context.Context, r io.Reader) (ImportResult, error)
		ImportTags(ctx context.Context, r io.Reader) (ImportResult, error)
	}
)

// ImportResult итог загрузки справочника.
type ImportResult struct {
	Read     int
	Inserted int64
}

type Deps struct {
	Store Store
}

type Catalog struct {
	Deps
}

func New(deps Deps) *Catalog {
	return &Catalog{Deps: deps}
}

var _ Service = (*Catalog)(nil)

func (c *Catalog) Tags(ctx context.Context) ([]models.Tag, error) {
	return c.Store.ListTags(ctx)
}

func (c *Catalog) Tag(ctx context.Context, id int64) (models.Tag, error) {
	return c.Store.GetTag(ctx, id)
}

// Ingredients ингредиенты, чьё имя начинается с namePrefix без учёта регистра.
func (c *Catalog) Ingredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	return c.Store.ListIngredients(ctx, namePrefix)
}

func (c *Catalog) Ingredient(ctx context.Context, id int64) (models.Ingredient, error) {
	return c.Store.GetIngredient(ctx, id)
}
