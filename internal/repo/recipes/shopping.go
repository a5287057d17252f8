package recipes

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
)

// ShoppingList суммирует количество каждого ингредиента (name + unit) по всем
// рецептам в корзине пользователя.
func (s *Store) ShoppingList(ctx context.Context, userID int64) ([]models.ShoppingItem, error) {
	sqlStr, args, err := s.db.SQ().
		Select("i.name", "i.measurement_unit", "SUM(ri.amount)").
		From(ingredientsTable + " ri").
		Join("ingredients i ON i.id = ri.ingredient_id").
		Join(string(ShoppingCart) + " c ON c.recipe_id = ri.recipe_id").
		Where(sq.Eq{"c.user_id": userID}).
		GroupBy("i.name", "i.measurement_unit").
		OrderBy("i.name", "i.measurement_unit").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shopping list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("shopping list: %w", err)
	}
	defer rows.Close()

	var out []models.ShoppingItem
	for rows.Next() {
		var it models.ShoppingItem
		if err := rows.Scan(&it.Name, &it.MeasurementUnit, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// CartSize число рецептов в корзине пользователя.
func (s *Store) CartSize(ctx context.Context, userID int64) (int, error) {
	sqlStr, args, err := s.db.SQ().
		Select("COUNT(*)").
		From(string(ShoppingCart)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cart size: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("cart size: %w", err)
	}
	return n, nil
}
