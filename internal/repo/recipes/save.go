package recipes

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

// Create сохраняет рецепт вместе с составом и тегами в одной транзакции.
func (s *Store) Create(ctx context.Context, w models.RecipeWrite, pubDate time.Time) (int64, error) {
	var id int64
	err := s.db.InTx(ctx, func(q repo.Querier) error {
		sqlStr, args, err := s.db.SQ().
			Insert(recipesTable).
			Columns("author_id", "name", "image", "text", "cooking_time", "pub_date").
			Values(w.AuthorID, w.Name, w.Image, w.Text, w.CookingTime, pubDate.UTC()).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert recipe: %w", err)
		}
		if err := q.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}

		return s.writeRelations(ctx, q, id, w)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update перезаписывает поля рецепта, состав и теги. Пустой Image сохраняет текущую картинку.
func (s *Store) Update(ctx context.Context, id int64, w models.RecipeWrite) error {
	return s.db.InTx(ctx, func(q repo.Querier) error {
		set := map[string]any{
			"name":         w.Name,
			"text":         w.Text,
			"cooking_time": w.CookingTime,
		}
		if w.Image != "" {
			set["image"] = w.Image
		}

		sqlStr, args, err := s.db.SQ().
			Update(recipesTable).
			SetMap(set).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update recipe: %w", err)
		}
		res, err := q.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.ErrNotFound
		}

		for _, table := range []string{ingredientsTable, tagsTable} {
			sqlStr, args, err := s.db.SQ().Delete(table).Where(sq.Eq{"recipe_id": id}).ToSql()
			if err != nil {
				return fmt.Errorf("build clear %s: %w", table, err)
			}
			if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		return s.writeRelations(ctx, q, id, w)
	})
}

func (s *Store) writeRelations(ctx context.Context, q repo.Querier, id int64, w models.RecipeWrite) error {
	if len(w.Ingredients) > 0 {
		b := s.db.SQ().Insert(ingredientsTable).Columns("recipe_id", "ingredient_id", "amount")
		for _, in := range w.Ingredients {
			b = b.Values(id, in.ID, in.Amount)
		}
		sqlStr, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("build insert recipe ingredients: %w", err)
		}
		if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
			return relationErr("insert recipe ingredients", err)
		}
	}

	if len(w.Tags) > 0 {
		b := s.db.SQ().Insert(tagsTable).Columns("recipe_id", "tag_id")
		for _, tagID := range w.Tags {
			b = b.Values(id, tagID)
		}
		sqlStr, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("build insert recipe tags: %w", err)
		}
		if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
			return relationErr("insert recipe tags", err)
		}
	}
	return nil
}

func relationErr(op string, err error) error {
	switch {
	case repo.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, models.ErrNotExists)
	case repo.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Delete удаляет рецепт; состав, теги и отметки удаляются каскадом.
func (s *Store) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := s.db.SQ().Delete(recipesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete recipe: %w", err)
	}

	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
