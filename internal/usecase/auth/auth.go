// Package auth выпускает и проверяет токены доступа (HS256 JWT) и ведёт список отозванных.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sir_venger/foodgram/internal/models"
)

// RevocationStore хранилище отозванных токенов.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Claims то, что сервису нужно знать о предъявленном токене.
type Claims struct {
	UserID    int64
	ID        string
	ExpiresAt time.Time
}

// Tokens выпускает, проверяет и отзывает токены.
type Tokens struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
	now     func() time.Time
}

func New(secret string, ttl time.Duration, revoked RevocationStore) *Tokens {
	return &Tokens{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// Issue подписывает новый токен для пользователя.
func (t *Tokens) Issue(userID int64) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись, срок и отзыв. Любая проблема с токеном: models.ErrUnauthorized.
func (t *Tokens) Parse(ctx context.Context, raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &rc,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	userID, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil || userID <= 0 || rc.ID == "" {
		return Claims{}, fmt.Errorf("%w: malformed claims", models.ErrUnauthorized)
	}

	revoked, err := t.revoked.IsRevoked(ctx, rc.ID)
	if err != nil {
		return Claims{}, err
	}
	if revoked {
		return Claims{}, fmt.Errorf("%w: token revoked", models.ErrUnauthorized)
	}

	return Claims{UserID: userID, ID: rc.ID, ExpiresAt: rc.ExpiresAt.Time}, nil
}

// Revoke делает токен недействительным до истечения его срока.
func (t *Tokens) Revoke(ctx context.Context, c Claims) error {
	if c.ID == "" {
		return errors.New("revoke: empty token id")
	}
	return t.revoked.Revoke(ctx, c.ID, c.ExpiresAt)
}
