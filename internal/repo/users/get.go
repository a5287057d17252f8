package users

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

// GetByID возвращает пользователя по id.
func (s *Store) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail ищет пользователя по email без учёта регистра.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getOne(ctx, sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Store) getOne(ctx context.Context, where sq.Sqlizer) (models.User, error) {
	sqlStr, args, err := s.db.SQ().
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build select user: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		return models.User{}, repo.NotFound(err)
	}
	return u, nil
}

// ByIDs возвращает пользователей с указанными id в виде карты.
func (s *Store) ByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error) {
	out := make(map[int64]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sqlStr, args, err := s.db.SQ().
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	list, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	for _, u := range list {
		out[u.ID] = u
	}
	return out, nil
}

// List постраничный список пользователей по возрастанию id.
func (s *Store) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	total, err := s.count(ctx, s.db.SQ().Select("COUNT(*)").From(usersTable))
	if err != nil {
		return nil, 0, err
	}

	sqlStr, args, err := s.db.SQ().
		Select(userColumns...).
		From(usersTable).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	list, err := scanUsers(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan users: %w", err)
	}
	return list, total, nil
}

// Taken проверяет занятость email и username.
func (s *Store) Taken(ctx context.Context, email, username string) (emailTaken, usernameTaken bool, err error) {
	sqlStr, args, err := s.db.SQ().
		Select("email", "username").
		From(usersTable).
		Where(sq.Or{sq.Eq{"email": email}, sq.Eq{"username": username}}).
		ToSql()
	if err != nil {
		return false, false, fmt.Errorf("build taken query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return false, false, fmt.Errorf("taken query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e, u string
		if err := rows.Scan(&e, &u); err != nil {
			return false, false, err
		}
		emailTaken = emailTaken || e == email
		usernameTaken = usernameTaken || u == username
	}
	return emailTaken, usernameTaken, rows.Err()
}

func (s *Store) count(ctx context.Context, b sq.SelectBuilder) (int, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
