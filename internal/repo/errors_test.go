package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueColumn(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"pg email", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}, "email"},
		{"pg wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"}), "username"},
		{"pg other table", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "tags_slug_key"}, ""},
		{"pg custom name", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_pkey"}, ""},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), "email"},
		{"sqlite composite", errors.New("UNIQUE constraint failed: subscriptions.user_id, subscriptions.author_id"), ""},
		{"sqlite other table", errors.New("UNIQUE constraint failed: tags.slug"), ""},
		{"unrelated", errors.New("disk I/O error"), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UniqueColumn(tc.err, "users"))
		})
	}
}
