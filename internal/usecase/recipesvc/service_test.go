package recipesvc

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo/catalog"
	"github.com/sir_venger/foodgram/internal/repo/recipes"
	"github.com/sir_venger/foodgram/internal/repo/repotest"
	"github.com/sir_venger/foodgram/internal/repo/users"
	"github.com/sir_venger/foodgram/internal/usecase/mediasvc"
)

var (
	pngImage = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfirst"))
	gifImage = "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte("GIF89a-second"))
	fixedNow = time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
)

type env struct {
	svc         *Recipes
	mediaDir    string
	users       *users.Store
	alice, bob  models.User
	admin       models.User
	tags        []models.Tag
	ingredients []models.Ingredient
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db := repotest.Open(t)

	us := users.New(db)
	mk := func(name string, admin bool) models.User {
		u, err := us.Create(ctx, models.User{
			Email: name + "@example.com", Username: name, FirstName: strings.ToUpper(name[:1]) + name[1:], LastName: "Cook",
			PasswordHash: "x", IsAdmin: admin, CreatedAt: fixedNow,
		})
		require.NoError(t, err)
		return u
	}

	cs := catalog.New(db)
	_, err := cs.InsertTags(ctx, []models.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Ужин", Color: "#8775D2", Slug: "dinner"},
	})
	require.NoError(t, err)
	_, err = cs.InsertIngredients(ctx, []models.Ingredient{
		{Name: "молоко", MeasurementUnit: "мл"},
		{Name: "мука", MeasurementUnit: "г"},
		{Name: "яйца", MeasurementUnit: "шт"},
	})
	require.NoError(t, err)
	tags, err := cs.ListTags(ctx)
	require.NoError(t, err)
	ingredients, err := cs.ListIngredients(ctx, "")
	require.NoError(t, err)

	dir := t.TempDir()
	e := &env{
		svc: New(Deps{
			Recipes: recipes.New(db),
			Users:   us,
			Catalog: cs,
			Media:   mediasvc.New(mediasvc.Deps{Backend: mediasvc.NewLocalStore(dir, "/media"), MaxBytes: 1 << 20}),
			Now:     func() time.Time { return fixedNow },
		}),
		mediaDir:    dir,
		users:       us,
		alice:       mk("alice", false),
		bob:         mk("bob", false),
		admin:       mk("root", true),
		tags:        tags,
		ingredients: ingredients,
	}
	return e
}

func (e *env) input(name string) models.RecipeInput {
	return models.RecipeInput{
		Ingredients: []models.IngredientAmount{
			{ID: e.ingredients[0].ID, Amount: 200},
			{ID: e.ingredients[2].ID, Amount: 2},
		},
		Tags:        []int64{e.tags[0].ID},
		Image:       pngImage,
		Name:        name,
		Text:        "Смешать и пожарить.",
		CookingTime: 15,
	}
}

func (e *env) imagePath(location string) string {
	return filepath.Join(e.mediaDir, filepath.FromSlash(strings.TrimPrefix(location, "/media/")))
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	r, err := e.svc.Create(ctx, e.alice, e.input("Омлет"))
	require.NoError(t, err)
	assert.Equal(t, "Омлет", r.Name)
	assert.Equal(t, e.alice.ID, r.Author.ID)
	assert.True(t, fixedNow.Equal(r.PubDate))
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, models.RecipeIngredient{ID: e.ingredients[0].ID, Name: "молоко", MeasurementUnit: "мл", Amount: 200}, r.Ingredients[0])
	require.Len(t, r.Tags, 1)
	assert.Equal(t, "breakfast", r.Tags[0].Slug)
	assert.True(t, strings.HasPrefix(r.Image, "/media/recipes/"))
	_, err = os.Stat(e.imagePath(r.Image))
	require.NoError(t, err)

	anon, err := e.svc.Get(ctx, 0, r.ID)
	require.NoError(t, err)
	assert.False(t, anon.IsFavorited)
	assert.False(t, anon.Author.IsSubscribed)

	require.NoError(t, e.users.Subscribe(ctx, e.bob.ID, e.alice.ID))
	_, err = e.svc.AddMark(ctx, models.MarkFavorite, e.bob.ID, r.ID)
	require.NoError(t, err)

	seen, err := e.svc.Get(ctx, e.bob.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, seen.IsFavorited)
	assert.False(t, seen.IsInShoppingCart)
	assert.True(t, seen.Author.IsSubscribed)

	_, err = e.svc.Get(ctx, 0, r.ID+100)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	in := e.input("")
	in.Image = ""
	in.CookingTime = 0
	in.Ingredients = append(in.Ingredients, models.IngredientAmount{ID: e.ingredients[0].ID, Amount: 1}, models.IngredientAmount{ID: 9999, Amount: 1})
	in.Tags = []int64{e.tags[0].ID, e.tags[0].ID, 777}

	_, err := e.svc.Create(ctx, e.alice, in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"name", "image", "cooking_time", "ingredients", "tags"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Len(t, verr.Fields["ingredients"], 2, "duplicate and unknown")
	assert.Len(t, verr.Fields["tags"], 2, "duplicate and unknown")

	bad := e.input("x")
	bad.Image = "data:text/plain;base64,aGk="
	_, err = e.svc.Create(ctx, e.alice, bad)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"image"}, keys(verr))

	entries, _ := os.ReadDir(e.mediaDir)
	assert.Empty(t, entries, "nothing stored on invalid input")
}

func TestList(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	r1, err := e.svc.Create(ctx, e.alice, e.input("first"))
	require.NoError(t, err)
	in := e.input("second")
	in.Tags = []int64{e.tags[1].ID}
	r2, err := e.svc.Create(ctx, e.bob, in)
	require.NoError(t, err)

	list, total, err := e.svc.List(ctx, 0, models.RecipeFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, r2.ID, list[0].ID, "same pub date: newer id first")

	list, _, err = e.svc.List(ctx, 0, models.RecipeFilter{TagSlugs: []string{"dinner"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r2.ID, list[0].ID)

	_, err = e.svc.AddMark(ctx, models.MarkShoppingCart, e.alice.ID, r1.ID)
	require.NoError(t, err)

	list, total, err = e.svc.List(ctx, 0, models.RecipeFilter{OnlyInCart: true, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	list, total, err = e.svc.List(ctx, e.alice.ID, models.RecipeFilter{OnlyInCart: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.True(t, list[0].IsInShoppingCart)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	r, err := e.svc.Create(ctx, e.alice, e.input("draft"))
	require.NoError(t, err)

	_, err = e.svc.Update(ctx, e.bob, r.ID, e.input("stolen"))
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = e.svc.Update(ctx, e.alice, r.ID+100, e.input("x"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	in := e.input("final")
	in.Image = ""
	in.Tags = []int64{e.tags[1].ID}
	in.Ingredients = []models.IngredientAmount{{ID: e.ingredients[1].ID, Amount: 300}}
	upd, err := e.svc.Update(ctx, e.alice, r.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "final", upd.Name)
	assert.Equal(t, r.Image, upd.Image, "omitted image is kept")
	require.Len(t, upd.Ingredients, 1)
	assert.Equal(t, "мука", upd.Ingredients[0].Name)
	assert.Equal(t, "dinner", upd.Tags[0].Slug)

	in.Image = gifImage
	upd, err = e.svc.Update(ctx, e.admin, r.ID, in)
	require.NoError(t, err, "admin may edit any recipe")
	assert.NotEqual(t, r.Image, upd.Image)
	assert.True(t, strings.HasSuffix(upd.Image, ".gif"))
	assert.Equal(t, e.alice.ID, upd.Author.ID, "author does not change")

	_, err = os.Stat(e.imagePath(r.Image))
	assert.True(t, os.IsNotExist(err), "old image removed")
	_, err = os.Stat(e.imagePath(upd.Image))
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	r, err := e.svc.Create(ctx, e.alice, e.input("gone"))
	require.NoError(t, err)

	assert.ErrorIs(t, e.svc.Delete(ctx, e.bob, r.ID), models.ErrForbidden)
	require.NoError(t, e.svc.Delete(ctx, e.alice, r.ID))
	assert.ErrorIs(t, e.svc.Delete(ctx, e.alice, r.ID), models.ErrNotFound)

	_, err = os.Stat(e.imagePath(r.Image))
	assert.True(t, os.IsNotExist(err))
}

func TestMarks(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	r, err := e.svc.Create(ctx, e.alice, e.input("fav"))
	require.NoError(t, err)

	for _, m := range []models.Mark{models.MarkFavorite, models.MarkShoppingCart} {
		short, err := e.svc.AddMark(ctx, m, e.bob.ID, r.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RecipeShort{ID: r.ID, Name: "fav", Image: r.Image, CookingTime: 15}, short)

		_, err = e.svc.AddMark(ctx, m, e.bob.ID, r.ID)
		assert.ErrorIs(t, err, models.ErrAlreadyExists)
		_, err = e.svc.AddMark(ctx, m, e.bob.ID, r.ID+100)
		assert.ErrorIs(t, err, models.ErrNotFound)

		require.NoError(t, e.svc.RemoveMark(ctx, m, e.bob.ID, r.ID))
		assert.ErrorIs(t, e.svc.RemoveMark(ctx, m, e.bob.ID, r.ID), models.ErrNotExists)
		assert.ErrorIs(t, e.svc.RemoveMark(ctx, m, e.bob.ID, r.ID+100), models.ErrNotFound)
	}
}

func TestShoppingList(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.svc.ShoppingList(ctx, e.bob)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	r1, err := e.svc.Create(ctx, e.alice, e.input("omelette"))
	require.NoError(t, err)
	in := e.input("pancakes")
	in.Ingredients = []models.IngredientAmount{
		{ID: e.ingredients[0].ID, Amount: 300},
		{ID: e.ingredients[1].ID, Amount: 250},
	}
	r2, err := e.svc.Create(ctx, e.alice, in)
	require.NoError(t, err)

	for _, id := range []int64{r1.ID, r2.ID} {
		_, err := e.svc.AddMark(ctx, models.MarkShoppingCart, e.bob.ID, id)
		require.NoError(t, err)
	}

	file, err := e.svc.ShoppingList(ctx, e.bob)
	require.NoError(t, err)
	assert.Equal(t, "bob_shopping_list.txt", file.Filename)

	want := "Список покупок для: Bob Cook\n\n" +
		"Дата: 2026-03-08\n\n" +
		"- молоко (мл) - 500\n" +
		"- мука (г) - 250\n" +
		"- яйца (шт) - 2\n\n" +
		"Foodgram (2026)"
	if diff := cmp.Diff(want, string(file.Body)); diff != "" {
		t.Errorf("shopping list mismatch (-want +got):\n%s", diff)
	}
}

func keys(v *models.ValidationError) []string {
	out := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		out = append(out, k)
	}
	return out
}
