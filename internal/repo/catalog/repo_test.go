package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo/repotest"
)

func names(list []models.Ingredient) []string {
	out := make([]string, 0, len(list))
	for _, in := range list {
		out = append(out, in.Name)
	}
	return out
}

func TestIngredients_ImportAndPrefixSearch(t *testing.T) {
	ctx := context.Background()
	s := New(repotest.Open(t))

	n, err := s.InsertIngredients(ctx, []models.Ingredient{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "Sour cream", MeasurementUnit: "ml"},
		{Name: "100%_juice", MeasurementUnit: "ml"},
		{Name: "1000 islands", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	n, err = s.InsertIngredients(ctx, []models.Ingredient{{Name: "salt", MeasurementUnit: "g"}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	all, err := s.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	got, err := s.ListIngredients(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sour cream", "salt", "sugar"}, names(got))

	got, err = s.ListIngredients(ctx, "SU")
	require.NoError(t, err)
	assert.Equal(t, []string{"sugar"}, names(got))

	got, err = s.ListIngredients(ctx, "100%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"100%_juice"}, names(got))

	one, err := s.GetIngredient(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "ml", one.MeasurementUnit)

	_, err = s.GetIngredient(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestIngredients_PrefixSearchCyrillic(t *testing.T) {
	ctx := context.Background()
	s := New(repotest.Open(t))

	_, err := s.InsertIngredients(ctx, []models.Ingredient{
		{Name: "Мука пшеничная", MeasurementUnit: "г"},
		{Name: "мускатный орех", MeasurementUnit: "г"},
		{Name: "Молоко", MeasurementUnit: "мл"},
	})
	require.NoError(t, err)

	for _, prefix := range []string{"мук", "Мук", "МУК"} {
		got, err := s.ListIngredients(ctx, prefix)
		require.NoError(t, err)
		assert.Equal(t, []string{"Мука пшеничная"}, names(got), prefix)
	}

	got, err := s.ListIngredients(ctx, "МУ")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Мука пшеничная", "мускатный орех"}, names(got))
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	s := New(repotest.Open(t))

	n, err := s.InsertTags(ctx, []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.InsertTags(ctx, []models.Tag{{Name: "Again", Color: "#000000", Slug: "lunch"}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Slug)

	byIDs, err := s.TagsByIDs(ctx, []int64{tags[1].ID, 404})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, "Lunch", byIDs[0].Name)

	_, err = s.GetTag(ctx, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
