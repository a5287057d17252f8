package recipesvc

import (
	"context"

	"github.com/sir_venger/foodgram/internal/models"
)

// AddMark добавляет рецепт в избранное или корзину.
// Неизвестный рецепт: ErrNotFound, повтор: ErrAlreadyExists.
func (s *Recipes) AddMark(ctx context.Context, m models.Mark, userID, recipeID int64) (models.RecipeShort, error) {
	row, err := s.Recipes.Get(ctx, recipeID)
	if err != nil {
		return models.RecipeShort{}, err
	}
	if err := s.Recipes.AddMark(ctx, m, userID, recipeID); err != nil {
		return models.RecipeShort{}, err
	}
	return row.Short(), nil
}

// RemoveMark снимает отметку. Неизвестный рецепт: ErrNotFound, отметки не было: ErrNotExists.
func (s *Recipes) RemoveMark(ctx context.Context, m models.Mark, userID, recipeID int64) error {
	if _, err := s.Recipes.Get(ctx, recipeID); err != nil {
		return err
	}
	return s.Recipes.RemoveMark(ctx, m, userID, recipeID)
}
