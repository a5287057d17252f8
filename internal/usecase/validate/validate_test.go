package validate

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/foodgram/internal/models"
)

func TestStruct_Register(t *testing.T) {
	ok := models.RegisterInput{
		Email: "a@b.io", Username: "chef.bob+1", FirstName: "Bob", LastName: "B", Password: "password1",
	}
	require.NoError(t, Struct(ok))

	bad := ok
	bad.Username = "Me"
	bad.Email = "nope"
	bad.Password = "short"

	err := Struct(bad)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.NotContains(t, verr.Fields, "first_name")
}

func TestStruct_RecipeInputDiveKeysByTopLevelField(t *testing.T) {
	in := models.RecipeInput{
		Ingredients: []models.IngredientAmount{{ID: 1, Amount: 0}},
		Tags:        []int64{1},
		Name:        "soup",
		Text:        "boil",
		CookingTime: 0,
	}

	err := Struct(in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"cooking_time", "ingredients"}, keys(verr))
}

func TestStruct_Tag(t *testing.T) {
	require.NoError(t, Struct(models.Tag{Name: "Lunch", Color: "#a0B1c2", Slug: "lunch_1"}))

	err := Struct(models.Tag{Name: "Lunch", Color: "red", Slug: "with space"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"color", "slug"}, keys(verr))
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "ingredients", fieldKey("RecipeInput.ingredients[2].amount"))
	assert.Equal(t, "name", fieldKey("RecipeInput.name"))
	assert.Equal(t, "x", fieldKey("x"))
}

func keys(v *models.ValidationError) []string {
	out := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
