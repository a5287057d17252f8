package catalog

import (
	"context"
	"fmt"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

const importBatch = 500

// InsertIngredients добавляет ингредиенты пачками в одной транзакции.
// Уже существующие пары (name, measurement_unit) пропускаются.
func (s *Store) InsertIngredients(ctx context.Context, items []models.Ingredient) (int64, error) {
	var inserted int64
	err := s.db.InTx(ctx, func(q repo.Querier) error {
		for start := 0; start < len(items); start += importBatch {
			end := min(start+importBatch, len(items))

			b := s.db.SQ().Insert(ingredientsTable).Columns("name", "measurement_unit")
			for _, in := range items[start:end] {
				b = b.Values(in.Name, in.MeasurementUnit)
			}
			sqlStr, args, err := b.Suffix("ON CONFLICT (name, measurement_unit) DO NOTHING").ToSql()
			if err != nil {
				return fmt.Errorf("build insert ingredients: %w", err)
			}

			res, err := q.ExecContext(ctx, sqlStr, args...)
			if err != nil {
				return fmt.Errorf("insert ingredients: %w", err)
			}
			n, _ := res.RowsAffected()
			inserted += n
		}
		return nil
	})
	return inserted, err
}

// InsertTags добавляет теги; теги с уже занятым slug пропускаются.
func (s *Store) InsertTags(ctx context.Context, tags []models.Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	b := s.db.SQ().Insert(tagsTable).Columns("name", "color", "slug")
	for _, t := range tags {
		b = b.Values(t.Name, t.Color, t.Slug)
	}
	sqlStr, args, err := b.Suffix("ON CONFLICT (slug) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert tags: %w", err)
	}

	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("insert tags: %w", err)
	}
	return res.RowsAffected()
}
