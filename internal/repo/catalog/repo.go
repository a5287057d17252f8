// Package catalog хранит справочники тегов и ингредиентов.
package catalog

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

const (
	tagsTable        = "tags"
	ingredientsTable = "ingredients"
)

type Store struct {
	db *repo.DB
}

func New(db *repo.DB) *Store {
	return &Store{db: db}
}

// ListTags все теги по возрастанию id.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.selectTags(ctx, nil)
}

// GetTag тег по id.
func (s *Store) GetTag(ctx context.Context, id int64) (models.Tag, error) {
	tags, err := s.selectTags(ctx, sq.Eq{"id": id})
	if err != nil {
		return models.Tag{}, err
	}
	if len(tags) == 0 {
		return models.Tag{}, models.ErrNotFound
	}
	return tags[0], nil
}

// TagsByIDs возвращает найденные теги; отсутствующие id просто пропускаются.
func (s *Store) TagsByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.selectTags(ctx, sq.Eq{"id": ids})
}

func (s *Store) selectTags(ctx context.Context, where sq.Sqlizer) ([]models.Tag, error) {
	b := s.db.SQ().Select("id", "name", "color", "slug").From(tagsTable).OrderBy("id")
	if where != nil {
		b = b.Where(where)
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tags: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListIngredients ингредиенты по алфавиту; prefix фильтрует по началу названия.
func (s *Store) ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	var where sq.Sqlizer
	if prefix != "" {
		where = s.db.PrefixMatch("name", prefix)
	}
	return s.selectIngredients(ctx, where)
}

// GetIngredient ингредиент по id.
func (s *Store) GetIngredient(ctx context.Context, id int64) (models.Ingredient, error) {
	list, err := s.selectIngredients(ctx, sq.Eq{"id": id})
	if err != nil {
		return models.Ingredient{}, err
	}
	if len(list) == 0 {
		return models.Ingredient{}, models.ErrNotFound
	}
	return list[0], nil
}

// IngredientsByIDs возвращает найденные ингредиенты.
func (s *Store) IngredientsByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.selectIngredients(ctx, sq.Eq{"id": ids})
}

func (s *Store) selectIngredients(ctx context.Context, where sq.Sqlizer) ([]models.Ingredient, error) {
	b := s.db.SQ().
		Select("id", "name", "measurement_unit").
		From(ingredientsTable).
		OrderBy("name", "id")
	if where != nil {
		b = b.Where(where)
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select ingredients: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select ingredients: %w", err)
	}
	defer rows.Close()

	var out []models.Ingredient
	for rows.Next() {
		var in models.Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
