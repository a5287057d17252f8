package catalogsvc

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/usecase/validate"
)

// ImportIngredients загружает ингредиенты из CSV "name,measurement_unit".
// Заголовок необязателен, уже существующие пары пропускаются.
func (c *Catalog) ImportIngredients(ctx context.Context, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var items []models.Ingredient
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("read csv: %w", err)
		}

		item := models.Ingredient{
			Name:            strings.TrimSpace(rec[0]),
			MeasurementUnit: strings.TrimSpace(rec[1]),
		}
		if line == 1 && item.Name == "name" && item.MeasurementUnit == "measurement_unit" {
			continue
		}
		if err := validate.Struct(item); err != nil {
			return ImportResult{}, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}

	n, err := c.Store.InsertIngredients(ctx, items)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Read: len(items), Inserted: n}, nil
}

// ImportTags загружает теги из YAML (или JSON) списка {name, color, slug}.
func (c *Catalog) ImportTags(ctx context.Context, r io.Reader) (ImportResult, error) {
	var tags []models.Tag
	if err := yaml.NewDecoder(r).Decode(&tags); err != nil && !errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("decode tags: %w", err)
	}

	for i := range tags {
		tags[i].Slug = strings.TrimSpace(tags[i].Slug)
		tags[i].Color = strings.ToUpper(strings.TrimSpace(tags[i].Color))
		if err := validate.Struct(tags[i]); err != nil {
			return ImportResult{}, fmt.Errorf("tag #%d: %w", i+1, err)
		}
	}

	n, err := c.Store.InsertTags(ctx, tags)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Read: len(tags), Inserted: n}, nil
}
