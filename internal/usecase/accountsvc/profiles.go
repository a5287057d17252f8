package accountsvc

import (
	"context"

	"github.com/sir_venger/foodgram/internal/models"
)

// List пользователи постранично с флагом подписки смотрящего.
func (s *Accounts) List(ctx context.Context, viewerID int64, limit, offset int) ([]models.Profile, int, error) {
	users, total, err := s.Users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	subscribed, err := s.Users.SubscribedTo(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.Profile, len(users))
	for i, u := range users {
		out[i] = models.ProfileOf(u)
		out[i].IsSubscribed = subscribed[u.ID]
	}
	return out, total, nil
}

// Get профиль пользователя id.
func (s *Accounts) Get(ctx context.Context, viewerID, id int64) (models.Profile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}

	p := models.ProfileOf(u)
	if viewerID != 0 && viewerID != id {
		subscribed, err := s.Users.SubscribedTo(ctx, viewerID, []int64{id})
		if err != nil {
			return models.Profile{}, err
		}
		p.IsSubscribed = subscribed[id]
	}
	return p, nil
}

// Subscribe подписывает userID на автора и возвращает карточку подписки.
func (s *Accounts) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (models.Subscription, error) {
	author, err := s.Users.GetByID(ctx, authorID)
	if err != nil {
		return models.Subscription{}, err
	}
	if userID == authorID {
		return models.Subscription{}, models.ErrSelfSubscribe
	}
	if err := s.Users.Subscribe(ctx, userID, authorID); err != nil {
		return models.Subscription{}, err
	}

	subs, err := s.withRecipes(ctx, []models.User{author}, recipesLimit)
	if err != nil {
		return models.Subscription{}, err
	}
	return subs[0], nil
}

// Unsubscribe снимает подписку. Неизвестный автор: ErrNotFound, не подписан: ErrNotExists.
func (s *Accounts) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.Users.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.Users.Unsubscribe(ctx, userID, authorID)
}

// Subscriptions лента подписок пользователя.
func (s *Accounts) Subscriptions(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]models.Subscription, int, error) {
	authors, total, err := s.Users.Subscriptions(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.withRecipes(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Accounts) withRecipes(ctx context.Context, authors []models.User, recipesLimit int) ([]models.Subscription, error) {
	ids := make([]int64, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}

	recipes, counts, err := s.Recipes.ShortByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}

	out := make([]models.Subscription, len(authors))
	for i, a := range authors {
		p := models.ProfileOf(a)
		p.IsSubscribed = true
		list := recipes[a.ID]
		if list == nil {
			list = []models.RecipeShort{}
		}
		out[i] = models.Subscription{Profile: p, Recipes: list, RecipesCount: counts[a.ID]}
	}
	return out, nil
}
