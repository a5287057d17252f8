// Package accountsvc: регистрация, вход, профили и подписки пользователей.
package accountsvc

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/usecase/auth"
)

type (
	// UserStore хранилище учётных записей и подписок.
	UserStore interface {
		Create(ctx context.Context, u models.User) (models.User, error)
		GetByID(ctx context.Context, id int64) (models.User, error)
		GetByEmail(ctx context.Context, email string) (models.User, error)
		ByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error)
		List(ctx context.Context, limit, offset int) ([]models.User, int, error)
		Taken(ctx context.Context, email, username string) (bool, bool, error)
		SetPassword(ctx context.Context, id int64, hash string) error
		SetAdmin(ctx context.Context, email string, admin bool) error
		Subscribe(ctx context.Context, userID, authorID int64) error
		Unsubscribe(ctx context.Context, userID, authorID int64) error
		SubscribedTo(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
		Subscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.User, int, error)
	}

	// RecipeCounter отдаёт короткие рецепты авторов для ленты подписок.
	RecipeCounter interface {
		ShortByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]models.RecipeShort, map[int64]int, error)
	}

	// Service операции над учётными записями.
	Service interface {
		Register(ctx context.Context, in models.RegisterInput) (models.Profile, error)
		Login(ctx context.Context, in models.LoginInput) (string, error)
		Logout(ctx context.Context, c auth.Claims) error
		Authenticate(ctx context.Context, token string) (models.User, auth.Claims, error)
		List(ctx context.Context, viewerID int64, limit, offset int) ([]models.Profile, int, error)
		Get(ctx context.Context, viewerID, id int64) (models.Profile, error)
		SetPassword(ctx context.Context, userID int64, in models.SetPasswordInput) error
		Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (models.Subscription, error)
		Unsubscribe(ctx context.Context, userID, authorID int64) error
		Subscriptions(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]models.Subscription, int, error)
		Promote(ctx context.Context, email string) error
	}
)

type Deps struct {
	Users   UserStore
	Recipes RecipeCounter
	Tokens  *auth.Tokens
	// BcryptCost по умолчанию bcrypt.DefaultCost.
	BcryptCost int
	Now        func() time.Time
}

type Accounts struct {
	Deps
}

// New конструирует сервис учётных записей.
func New(deps Deps) *Accounts {
	if deps.BcryptCost == 0 {
		deps.BcryptCost = bcrypt.DefaultCost
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Accounts{Deps: deps}
}

var _ Service = (*Accounts)(nil)
