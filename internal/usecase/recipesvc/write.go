package recipesvc

import (
	"context"

	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/models"
)

// Create проверяет ввод, сохраняет картинку и рецепт.
func (s *Recipes) Create(ctx context.Context, author models.User, in models.RecipeInput) (models.Recipe, error) {
	img, err := s.checkInput(ctx, in, true)
	if err != nil {
		return models.Recipe{}, err
	}

	obj, err := s.Media.Save(ctx, *img)
	if err != nil {
		return models.Recipe{}, err
	}

	w := writeOf(author.ID, in)
	w.Image = obj.Location
	id, err := s.Recipes.Create(ctx, w, s.Now().UTC())
	if err != nil {
		s.dropImage(ctx, obj.Location)
		return models.Recipe{}, err
	}

	return s.Get(ctx, author.ID, id)
}

// Update перезаписывает рецепт. Без новой картинки остаётся прежняя.
func (s *Recipes) Update(ctx context.Context, actor models.User, id int64, in models.RecipeInput) (models.Recipe, error) {
	row, err := s.Recipes.Get(ctx, id)
	if err != nil {
		return models.Recipe{}, err
	}
	if !canEdit(actor, row) {
		return models.Recipe{}, models.ErrForbidden
	}

	img, err := s.checkInput(ctx, in, false)
	if err != nil {
		return models.Recipe{}, err
	}

	w := writeOf(row.AuthorID, in)
	if img != nil {
		obj, err := s.Media.Save(ctx, *img)
		if err != nil {
			return models.Recipe{}, err
		}
		w.Image = obj.Location
	}

	if err := s.Recipes.Update(ctx, id, w); err != nil {
		if w.Image != "" {
			s.dropImage(ctx, w.Image)
		}
		return models.Recipe{}, err
	}
	if w.Image != "" && w.Image != row.Image {
		s.dropImage(ctx, row.Image)
	}

	return s.Get(ctx, actor.ID, id)
}

// Delete удаляет рецепт автора; администратор может удалить любой.
func (s *Recipes) Delete(ctx context.Context, actor models.User, id int64) error {
	row, err := s.Recipes.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(actor, row) {
		return models.ErrForbidden
	}

	if err := s.Recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.dropImage(ctx, row.Image)
	return nil
}

// dropImage удаляет картинку; ошибка только логируется.
func (s *Recipes) dropImage(ctx context.Context, location string) {
	if err := s.Media.Remove(ctx, location); err != nil {
		s.Log.Warn("remove recipe image", zap.String("location", location), zap.Error(err))
	}
}
