package recipes

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

// Mark таблица отметок пользователь-рецепт; значение совпадает с именем таблицы.
type Mark = models.Mark

const (
	Favorites    = models.MarkFavorite
	ShoppingCart = models.MarkShoppingCart
)

// AddMark ставит отметку. Повтор: ErrAlreadyExists, нет рецепта: ErrNotFound.
func (s *Store) AddMark(ctx context.Context, m Mark, userID, recipeID int64) error {
	sqlStr, args, err := s.db.SQ().
		Insert(string(m)).
		Columns("user_id", "recipe_id").
		Values(userID, recipeID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", m, err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		switch {
		case repo.IsUniqueViolation(err):
			return models.ErrAlreadyExists
		case repo.IsForeignKeyViolation(err):
			return models.ErrNotFound
		}
		return fmt.Errorf("insert %s: %w", m, err)
	}
	return nil
}

// RemoveMark снимает отметку. Если её не было: ErrNotExists.
func (s *Store) RemoveMark(ctx context.Context, m Mark, userID, recipeID int64) error {
	sqlStr, args, err := s.db.SQ().
		Delete(string(m)).
		Where(sq.Eq{"user_id": userID, "recipe_id": recipeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", m, err)
	}

	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", m, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotExists
	}
	return nil
}

// Marked множество рецептов из recipeIDs, отмеченных пользователем.
func (s *Store) Marked(ctx context.Context, m Mark, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := s.db.SQ().
		Select("recipe_id").
		From(string(m)).
		Where(sq.Eq{"user_id": userID, "recipe_id": recipeIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", m, err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", m, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
