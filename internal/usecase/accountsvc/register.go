package accountsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/usecase/auth"
	"github.com/sir_venger/foodgram/internal/usecase/validate"
)

// Register создаёт пользователя. Занятые email/username возвращаются как ошибки полей.
func (s *Accounts) Register(ctx context.Context, in models.RegisterInput) (models.Profile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Struct(in); err != nil {
		return models.Profile{}, err
	}

	emailTaken, usernameTaken, err := s.Users.Taken(ctx, in.Email, in.Username)
	if err != nil {
		return models.Profile{}, err
	}
	verr := &models.ValidationError{}
	if emailTaken {
		verr.Add("email", "A user with that email already exists.")
	}
	if usernameTaken {
		verr.Add("username", "A user with that username already exists.")
	}
	if err := verr.Err(); err != nil {
		return models.Profile{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return models.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.Users.Create(ctx, models.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		CreatedAt:    s.Now().UTC(),
	})
	var dup *models.DuplicateError
	if errors.As(err, &dup) {
		// гонка между Taken и Create
		switch dup.Field {
		case "email":
			return models.Profile{}, models.NewValidationError("email", "A user with that email already exists.")
		case "username":
			return models.Profile{}, models.NewValidationError("username", "A user with that username already exists.")
		}
		return models.Profile{}, models.NewValidationError("non_field_errors", "A user with that email or username already exists.")
	}
	if err != nil {
		return models.Profile{}, err
	}
	return models.ProfileOf(u), nil
}

// Login проверяет пару email/пароль и выдаёт токен.
func (s *Accounts) Login(ctx context.Context, in models.LoginInput) (string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return "", err
	}

	u, err := s.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return "", models.ErrInvalidCredentials
	}

	return s.Tokens.Issue(u.ID)
}

// Logout отзывает предъявленный токен.
func (s *Accounts) Logout(ctx context.Context, c auth.Claims) error {
	return s.Tokens.Revoke(ctx, c)
}

// Authenticate разбирает токен и загружает его владельца.
func (s *Accounts) Authenticate(ctx context.Context, token string) (models.User, auth.Claims, error) {
	c, err := s.Tokens.Parse(ctx, token)
	if err != nil {
		return models.User{}, auth.Claims{}, err
	}

	u, err := s.Users.GetByID(ctx, c.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, auth.Claims{}, fmt.Errorf("%w: user is gone", models.ErrUnauthorized)
	}
	if err != nil {
		return models.User{}, auth.Claims{}, err
	}
	return u, c, nil
}

// SetPassword меняет пароль после проверки текущего.
func (s *Accounts) SetPassword(ctx context.Context, userID int64, in models.SetPasswordInput) error {
	if err := validate.Struct(in); err != nil {
		return err
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return models.NewValidationError("current_password", "Invalid password.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Users.SetPassword(ctx, userID, string(hash))
}

// Promote выдаёт права администратора.
func (s *Accounts) Promote(ctx context.Context, email string) error {
	return s.Users.SetAdmin(ctx, strings.ToLower(strings.TrimSpace(email)), true)
}
