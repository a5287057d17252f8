package recipesvc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/foodgram/internal/models"
)

// Get рецепт с отметками смотрящего; для анонима viewerID = 0.
func (s *Recipes) Get(ctx context.Context, viewerID, id int64) (models.Recipe, error) {
	row, err := s.Recipes.Get(ctx, id)
	if err != nil {
		return models.Recipe{}, err
	}

	list, err := s.enrich(ctx, viewerID, []models.RecipeRow{row})
	if err != nil {
		return models.Recipe{}, err
	}
	return list[0], nil
}

// List страница рецептов по фильтру. Фильтры по отметкам для анонима дают пустую страницу.
func (s *Recipes) List(ctx context.Context, viewerID int64, f models.RecipeFilter) ([]models.Recipe, int, error) {
	if viewerID == 0 && (f.OnlyFavorited || f.OnlyInCart) {
		return []models.Recipe{}, 0, nil
	}
	f.ViewerID = viewerID

	rows, total, err := s.Recipes.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	list, err := s.enrich(ctx, viewerID, rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// enrich параллельно подтягивает авторов, теги, состав и отметки.
func (s *Recipes) enrich(ctx context.Context, viewerID int64, rows []models.RecipeRow) ([]models.Recipe, error) {
	out := make([]models.Recipe, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, len(rows))
	authorIDs := make([]int64, 0, len(rows))
	seenAuthor := make(map[int64]bool, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		if !seenAuthor[r.AuthorID] {
			seenAuthor[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	var (
		authors     map[int64]models.User
		subscribed  map[int64]bool
		tags        map[int64][]models.Tag
		ingredients map[int64][]models.RecipeIngredient
		favorited   map[int64]bool
		inCart      map[int64]bool
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		authors, err = s.Users.ByIDs(egCtx, authorIDs)
		return err
	})
	eg.Go(func() (err error) {
		subscribed, err = s.Users.SubscribedTo(egCtx, viewerID, authorIDs)
		return err
	})
	eg.Go(func() (err error) {
		tags, err = s.Recipes.Tags(egCtx, ids)
		return err
	})
	eg.Go(func() (err error) {
		ingredients, err = s.Recipes.Ingredients(egCtx, ids)
		return err
	})
	eg.Go(func() (err error) {
		favorited, err = s.Recipes.Marked(egCtx, models.MarkFavorite, viewerID, ids)
		return err
	})
	eg.Go(func() (err error) {
		inCart, err = s.Recipes.Marked(egCtx, models.MarkShoppingCart, viewerID, ids)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, r := range rows {
		author := models.ProfileOf(authors[r.AuthorID])
		author.IsSubscribed = subscribed[r.AuthorID]

		t := tags[r.ID]
		if t == nil {
			t = []models.Tag{}
		}
		ing := ingredients[r.ID]
		if ing == nil {
			ing = []models.RecipeIngredient{}
		}

		out[i] = models.Recipe{
			ID:               r.ID,
			Tags:             t,
			Author:           author,
			Ingredients:      ing,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			PubDate:          r.PubDate,
		}
	}
	return out, nil
}
