package recipes

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

// Get возвращает строку рецепта без связей.
func (s *Store) Get(ctx context.Context, id int64) (models.RecipeRow, error) {
	sqlStr, args, err := s.db.SQ().
		Select(recipeColumns...).
		From(recipesTable + " r").
		Where(sq.Eq{"r.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.RecipeRow{}, fmt.Errorf("build select recipe: %w", err)
	}

	r, err := scanRecipe(s.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		return models.RecipeRow{}, repo.NotFound(err)
	}
	return r, nil
}

// Ingredients состав рецептов с развёрнутыми ингредиентами, по рецепту.
func (s *Store) Ingredients(ctx context.Context, recipeIDs []int64) (map[int64][]models.RecipeIngredient, error) {
	out := make(map[int64][]models.RecipeIngredient, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := s.db.SQ().
		Select("ri.recipe_id", "i.id", "i.name", "i.measurement_unit", "ri.amount").
		From(ingredientsTable + " ri").
		Join("ingredients i ON i.id = ri.ingredient_id").
		Where(sq.Eq{"ri.recipe_id": recipeIDs}).
		OrderBy("ri.recipe_id", "ri.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select recipe ingredients: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			in       models.RecipeIngredient
		)
		if err := rows.Scan(&recipeID, &in.ID, &in.Name, &in.MeasurementUnit, &in.Amount); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		out[recipeID] = append(out[recipeID], in)
	}
	return out, rows.Err()
}

// Tags теги рецептов, по рецепту.
func (s *Store) Tags(ctx context.Context, recipeIDs []int64) (map[int64][]models.Tag, error) {
	out := make(map[int64][]models.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := s.db.SQ().
		Select("rt.recipe_id", "t.id", "t.name", "t.color", "t.slug").
		From(tagsTable + " rt").
		Join("tags t ON t.id = rt.tag_id").
		Where(sq.Eq{"rt.recipe_id": recipeIDs}).
		OrderBy("rt.recipe_id", "t.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select recipe tags: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select recipe tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			t        models.Tag
		)
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan recipe tag: %w", err)
		}
		out[recipeID] = append(out[recipeID], t)
	}
	return out, rows.Err()
}
