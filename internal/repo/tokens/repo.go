// Package tokens хранит отозванные токены до истечения их срока.
package tokens

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/repo"
)

const revokedTable = "revoked_tokens"

type Store struct {
	db *repo.DB
}

func New(db *repo.DB) *Store {
	return &Store{db: db}
}

// Revoke помечает jti отозванным. Повторный вызов не ошибка.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	sqlStr, args, err := s.db.SQ().
		Insert(revokedTable).
		Columns("jti", "expires_at").
		Values(jti, expiresAt.UTC()).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked сообщает, отозван ли jti.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	sqlStr, args, err := s.db.SQ().
		Select("COUNT(*)").
		From(revokedTable).
		Where(sq.Eq{"jti": jti}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build revoked check: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("revoked check: %w", err)
	}
	return n > 0, nil
}

// PurgeExpired удаляет записи, чей токен уже истёк сам по себе.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	sqlStr, args, err := s.db.SQ().
		Delete(revokedTable).
		Where(sq.Lt{"expires_at": now.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge: %w", err)
	}

	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return res.RowsAffected()
}
