package recipes

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
)

// List выборка рецептов по фильтру, новые первыми. Возвращает страницу и общее число.
func (s *Store) List(ctx context.Context, f models.RecipeFilter) ([]models.RecipeRow, int, error) {
	base := s.db.SQ().Select().From(recipesTable + " r")

	if f.AuthorID != 0 {
		base = base.Where(sq.Eq{"r.author_id": f.AuthorID})
	}
	if len(f.TagSlugs) > 0 {
		sub, args, err := sq.Select("rt.recipe_id").
			From(tagsTable + " rt").
			Join("tags t ON t.id = rt.tag_id").
			Where(sq.Eq{"t.slug": f.TagSlugs}).
			ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build tags filter: %w", err)
		}
		base = base.Where("r.id IN ("+sub+")", args...)
	}
	if f.OnlyFavorited {
		base = base.Where("r.id IN (SELECT recipe_id FROM "+string(Favorites)+" WHERE user_id = ?)", f.ViewerID)
	}
	if f.OnlyInCart {
		base = base.Where("r.id IN (SELECT recipe_id FROM "+string(ShoppingCart)+" WHERE user_id = ?)", f.ViewerID)
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count recipes: %w", err)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	sqlStr, args, err := base.
		Columns(recipeColumns...).
		OrderBy("r.pub_date DESC", "r.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list recipes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	list, err := scanRecipes(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan recipes: %w", err)
	}
	return list, total, nil
}

// ShortByAuthors короткие рецепты авторов, не больше limit на автора (limit <= 0: все),
// и общее число рецептов каждого автора.
func (s *Store) ShortByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]models.RecipeShort, map[int64]int, error) {
	recipes := make(map[int64][]models.RecipeShort, len(authorIDs))
	counts := make(map[int64]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return recipes, counts, nil
	}

	countSQL, countArgs, err := s.db.SQ().
		Select("author_id", "COUNT(*)").
		From(recipesTable).
		Where(sq.Eq{"author_id": authorIDs}).
		GroupBy("author_id").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build count by authors: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, countSQL, countArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("count by authors: %w", err)
	}
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan author count: %w", err)
		}
		counts[id] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	ranked := sq.Select(
		"id", "author_id", "name", "image", "cooking_time",
		"ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY pub_date DESC, id DESC) AS rn",
	).
		From(recipesTable).
		Where(sq.Eq{"author_id": authorIDs})

	b := s.db.SQ().
		Select("id", "author_id", "name", "image", "cooking_time").
		FromSelect(ranked, "ranked").
		OrderBy("author_id", "rn")
	if limit > 0 {
		b = b.Where(sq.LtOrEq{"rn": limit})
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build recipes by authors: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("recipes by authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			authorID int64
			r        models.RecipeShort
		)
		if err := rows.Scan(&r.ID, &authorID, &r.Name, &r.Image, &r.CookingTime); err != nil {
			return nil, nil, fmt.Errorf("scan author recipe: %w", err)
		}
		recipes[authorID] = append(recipes[authorID], r)
	}
	return recipes, counts, rows.Err()
}
