package recipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
	"github.com/sir_venger/foodgram/internal/repo/catalog"
	"github.com/sir_venger/foodgram/internal/repo/repotest"
	"github.com/sir_venger/foodgram/internal/repo/users"
)

type fixture struct {
	db          *repo.DB
	store       *Store
	alice, bob  models.User
	tags        []models.Tag
	ingredients []models.Ingredient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := repotest.Open(t)

	us := users.New(db)
	now := time.Now().UTC()
	alice, err := us.Create(ctx, models.User{Email: "alice@example.com", Username: "alice", FirstName: "Alice", LastName: "A", PasswordHash: "x", CreatedAt: now})
	require.NoError(t, err)
	bob, err := us.Create(ctx, models.User{Email: "bob@example.com", Username: "bob", FirstName: "Bob", LastName: "B", PasswordHash: "x", CreatedAt: now})
	require.NoError(t, err)

	cs := catalog.New(db)
	_, err = cs.InsertTags(ctx, []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	})
	require.NoError(t, err)
	_, err = cs.InsertIngredients(ctx, []models.Ingredient{
		{Name: "eggs", MeasurementUnit: "pcs"},
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	})
	require.NoError(t, err)

	tags, err := cs.ListTags(ctx)
	require.NoError(t, err)
	ingredients, err := cs.ListIngredients(ctx, "")
	require.NoError(t, err)

	return &fixture{db: db, store: New(db), alice: alice, bob: bob, tags: tags, ingredients: ingredients}
}

func (f *fixture) create(t *testing.T, author models.User, name string, pub time.Time, tagIdx []int, amounts map[int]int) int64 {
	t.Helper()
	w := models.RecipeWrite{AuthorID: author.ID, Name: name, Image: "img/" + name, Text: "text", CookingTime: 10}
	for _, i := range tagIdx {
		w.Tags = append(w.Tags, f.tags[i].ID)
	}
	for i := range f.ingredients {
		if a, ok := amounts[i]; ok {
			w.Ingredients = append(w.Ingredients, models.IngredientAmount{ID: f.ingredients[i].ID, Amount: a})
		}
	}
	id, err := f.store.Create(context.Background(), w, pub)
	require.NoError(t, err)
	return id
}

func ids(rows []models.RecipeRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestCreateGetRelations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	id := f.create(t, f.alice, "omelette", pub, []int{0}, map[int]int{0: 3, 2: 100})

	row, err := f.store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, row.AuthorID)
	assert.Equal(t, "omelette", row.Name)
	assert.True(t, pub.Equal(row.PubDate), "pub date %v", row.PubDate)

	ingr, err := f.store.Ingredients(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, ingr[id], 2)
	assert.Equal(t, models.RecipeIngredient{ID: f.ingredients[0].ID, Name: "eggs", MeasurementUnit: "pcs", Amount: 3}, ingr[id][0])

	tags, err := f.store.Tags(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, tags[id], 1)
	assert.Equal(t, "breakfast", tags[id][0].Slug)

	_, err = f.store.Get(ctx, id+100)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreate_UnknownIngredientRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.store.Create(ctx, models.RecipeWrite{
		AuthorID: f.alice.ID, Name: "ghost", Text: "t", CookingTime: 1,
		Ingredients: []models.IngredientAmount{{ID: 9999, Amount: 1}},
	}, time.Now())
	require.ErrorIs(t, err, models.ErrNotExists)

	_, total, err := f.store.List(ctx, models.RecipeFilter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUpdateReplacesRelations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.create(t, f.alice, "pancakes", time.Now(), []int{0}, map[int]int{0: 2, 1: 200})

	err := f.store.Update(ctx, id, models.RecipeWrite{
		Name: "crepes", Text: "thin", CookingTime: 20,
		Tags:        []int64{f.tags[1].ID},
		Ingredients: []models.IngredientAmount{{ID: f.ingredients[2].ID, Amount: 500}},
	})
	require.NoError(t, err)

	row, err := f.store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "crepes", row.Name)
	assert.Equal(t, "img/pancakes", row.Image, "empty image keeps the old one")

	ingr, err := f.store.Ingredients(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, ingr[id], 1)
	assert.Equal(t, "milk", ingr[id][0].Name)

	tags, err := f.store.Tags(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, tags[id], 1)
	assert.Equal(t, "dinner", tags[id][0].Slug)

	assert.ErrorIs(t, f.store.Update(ctx, id+100, models.RecipeWrite{Name: "x", Text: "x", CookingTime: 1}), models.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	r1 := f.create(t, f.alice, "r1", base, []int{0}, map[int]int{0: 1})
	r2 := f.create(t, f.alice, "r2", base.Add(time.Hour), []int{1}, map[int]int{0: 1})
	r3 := f.create(t, f.bob, "r3", base.Add(2*time.Hour), []int{0, 1}, map[int]int{0: 1})

	rows, total, err := f.store.List(ctx, models.RecipeFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int64{r3, r2, r1}, ids(rows))

	rows, total, err = f.store.List(ctx, models.RecipeFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int64{r2}, ids(rows))

	rows, _, err = f.store.List(ctx, models.RecipeFilter{AuthorID: f.alice.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{r2, r1}, ids(rows))

	rows, total, err = f.store.List(ctx, models.RecipeFilter{TagSlugs: []string{"breakfast"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []int64{r3, r1}, ids(rows))

	rows, total, err = f.store.List(ctx, models.RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "recipe with both tags is counted once")
	assert.Len(t, rows, 3)

	require.NoError(t, f.store.AddMark(ctx, Favorites, f.bob.ID, r1))
	require.NoError(t, f.store.AddMark(ctx, ShoppingCart, f.bob.ID, r2))

	rows, _, err = f.store.List(ctx, models.RecipeFilter{OnlyFavorited: true, ViewerID: f.bob.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{r1}, ids(rows))

	rows, _, err = f.store.List(ctx, models.RecipeFilter{OnlyInCart: true, ViewerID: f.bob.ID, AuthorID: f.alice.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{r2}, ids(rows))

	rows, total, err = f.store.List(ctx, models.RecipeFilter{OnlyFavorited: true, ViewerID: f.alice.ID, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

func TestMarks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r1 := f.create(t, f.alice, "r1", time.Now(), []int{0}, map[int]int{0: 1})

	require.NoError(t, f.store.AddMark(ctx, Favorites, f.bob.ID, r1))
	assert.ErrorIs(t, f.store.AddMark(ctx, Favorites, f.bob.ID, r1), models.ErrAlreadyExists)
	assert.ErrorIs(t, f.store.AddMark(ctx, Favorites, f.bob.ID, r1+100), models.ErrNotFound)

	marked, err := f.store.Marked(ctx, Favorites, f.bob.ID, []int64{r1})
	require.NoError(t, err)
	assert.True(t, marked[r1])

	marked, err = f.store.Marked(ctx, ShoppingCart, f.bob.ID, []int64{r1})
	require.NoError(t, err)
	assert.False(t, marked[r1])

	require.NoError(t, f.store.RemoveMark(ctx, Favorites, f.bob.ID, r1))
	assert.ErrorIs(t, f.store.RemoveMark(ctx, Favorites, f.bob.ID, r1), models.ErrNotExists)
}

func TestAddMark_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r1 := f.create(t, f.alice, "r1", time.Now(), []int{0}, map[int]int{0: 1})

	const n = 8
	for _, m := range []Mark{Favorites, ShoppingCart} {
		errs := make([]error, n)
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				errs[i] = f.store.AddMark(ctx, m, f.bob.ID, r1)
				return nil
			})
		}
		require.NoError(t, g.Wait())

		var ok, dup int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, models.ErrAlreadyExists):
				dup++
			default:
				t.Fatalf("%s: unexpected error: %v", m, err)
			}
		}
		assert.Equal(t, 1, ok, m)
		assert.Equal(t, n-1, dup, m)
	}

	size, err := f.store.CartSize(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestShoppingListAggregates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r1 := f.create(t, f.alice, "r1", time.Now(), []int{0}, map[int]int{0: 2, 1: 100})
	r2 := f.create(t, f.bob, "r2", time.Now(), []int{0}, map[int]int{0: 3, 2: 250})
	r3 := f.create(t, f.bob, "r3", time.Now(), []int{0}, map[int]int{1: 999})

	require.NoError(t, f.store.AddMark(ctx, ShoppingCart, f.bob.ID, r1))
	require.NoError(t, f.store.AddMark(ctx, ShoppingCart, f.bob.ID, r2))
	require.NoError(t, f.store.AddMark(ctx, ShoppingCart, f.alice.ID, r3))

	size, err := f.store.CartSize(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	items, err := f.store.ShoppingList(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.ShoppingItem{
		{Name: "eggs", MeasurementUnit: "pcs", Amount: 5},
		{Name: "flour", MeasurementUnit: "g", Amount: 100},
		{Name: "milk", MeasurementUnit: "ml", Amount: 250},
	}, items)
}

func TestShortByAuthors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a1 := f.create(t, f.alice, "a1", base, []int{0}, map[int]int{0: 1})
	a2 := f.create(t, f.alice, "a2", base.Add(time.Hour), []int{0}, map[int]int{0: 1})
	_ = a1

	recipes, counts, err := f.store.ShortByAuthors(ctx, []int64{f.alice.ID, f.bob.ID}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[f.alice.ID])
	assert.Equal(t, 0, counts[f.bob.ID])
	require.Len(t, recipes[f.alice.ID], 1)
	assert.Equal(t, a2, recipes[f.alice.ID][0].ID)
	assert.Empty(t, recipes[f.bob.ID])

	recipes, _, err = f.store.ShortByAuthors(ctx, []int64{f.alice.ID}, 0)
	require.NoError(t, err)
	assert.Len(t, recipes[f.alice.ID], 2)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r1 := f.create(t, f.alice, "r1", time.Now(), []int{0}, map[int]int{0: 1})
	require.NoError(t, f.store.AddMark(ctx, ShoppingCart, f.bob.ID, r1))

	require.NoError(t, f.store.Delete(ctx, r1))
	assert.ErrorIs(t, f.store.Delete(ctx, r1), models.ErrNotFound)

	size, err := f.store.CartSize(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Zero(t, size)
}
