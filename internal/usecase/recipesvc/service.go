// Package recipesvc рецепты: запись с проверкой состава, выдача с отметками смотрящего,
// избранное, корзина и список покупок.
package recipesvc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/usecase/mediasvc"
)

type (
	// RecipeStore хранилище рецептов и отметок.
	RecipeStore interface {
		Create(ctx context.Context, w models.RecipeWrite, pubDate time.Time) (int64, error)
		Update(ctx context.Context, id int64, w models.RecipeWrite) error
		Delete(ctx context.Context, id int64) error
		Get(ctx context.Context, id int64) (models.RecipeRow, error)
		List(ctx context.Context, f models.RecipeFilter) ([]models.RecipeRow, int, error)
		Ingredients(ctx context.Context, recipeIDs []int64) (map[int64][]models.RecipeIngredient, error)
		Tags(ctx context.Context, recipeIDs []int64) (map[int64][]models.Tag, error)
		AddMark(ctx context.Context, m models.Mark, userID, recipeID int64) error
		RemoveMark(ctx context.Context, m models.Mark, userID, recipeID int64) error
		Marked(ctx context.Context, m models.Mark, userID int64, recipeIDs []int64) (map[int64]bool, error)
		ShoppingList(ctx context.Context, userID int64) ([]models.ShoppingItem, error)
		CartSize(ctx context.Context, userID int64) (int, error)
	}

	// UserStore нужен для авторов и флага подписки.
	UserStore interface {
		ByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error)
		SubscribedTo(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
	}

	// CatalogStore проверка существования тегов и ингредиентов.
	CatalogStore interface {
		TagsByIDs(ctx context.Context, ids []int64) ([]models.Tag, error)
		IngredientsByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error)
	}

	Service interface {
		Create(ctx context.Context, author models.User, in models.RecipeInput) (models.Recipe, error)
		Get(ctx context.Context, viewerID, id int64) (models.Recipe, error)
		List(ctx context.Context, viewerID int64, f models.RecipeFilter) ([]models.Recipe, int, error)
		Update(ctx context.Context, actor models.User, id int64, in models.RecipeInput) (models.Recipe, error)
		Delete(ctx context.Context, actor models.User, id int64) error
		AddMark(ctx context.Context, m models.Mark, userID, recipeID int64) (models.RecipeShort, error)
		RemoveMark(ctx context.Context, m models.Mark, userID, recipeID int64) error
		ShoppingList(ctx context.Context, user models.User) (models.ShoppingFile, error)
	}
)

type Deps struct {
	Recipes RecipeStore
	Users   UserStore
	Catalog CatalogStore
	Media   mediasvc.Service
	Log     *zap.Logger
	Now     func() time.Time
}

type Recipes struct {
	Deps
}

// New конструирует сервис рецептов.
func New(deps Deps) *Recipes {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Recipes{Deps: deps}
}

var _ Service = (*Recipes)(nil)

// canEdit автор или администратор.
func canEdit(actor models.User, row models.RecipeRow) bool {
	return actor.IsAdmin || actor.ID == row.AuthorID
}
