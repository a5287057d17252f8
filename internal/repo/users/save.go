package users

import (
	"context"
	"fmt"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

// Create сохраняет нового пользователя и возвращает его с присвоенным id.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	sqlStr, args, err := s.db.SQ().
		Insert(usersTable).
		Columns("email", "username", "first_name", "last_name", "password_hash", "is_admin", "created_at").
		Values(u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.IsAdmin, u.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build insert user: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&u.ID); err != nil {
		if repo.IsUniqueViolation(err) {
			dup := &models.DuplicateError{Field: repo.UniqueColumn(err, usersTable)}
			return models.User{}, fmt.Errorf("user %s: %w", u.Email, dup)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// SetPassword заменяет хеш пароля.
func (s *Store) SetPassword(ctx context.Context, id int64, hash string) error {
	return s.update(ctx, id, map[string]any{"password_hash": hash})
}

// SetAdmin выставляет флаг администратора по email.
func (s *Store) SetAdmin(ctx context.Context, email string, admin bool) error {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.update(ctx, u.ID, map[string]any{"is_admin": admin})
}

func (s *Store) update(ctx context.Context, id int64, set map[string]any) error {
	sqlStr, args, err := s.db.SQ().
		Update(usersTable).
		SetMap(set).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}

	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
