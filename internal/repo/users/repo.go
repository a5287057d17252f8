// Package users хранит учётные записи и подписки между пользователями.
package users

import (
	"database/sql"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

const (
	usersTable         = "users"
	subscriptionsTable = "subscriptions"
)

var userColumns = []string{
	"id", "email", "username", "first_name", "last_name", "password_hash", "is_admin", "created_at",
}

// Store хранилище пользователей поверх repo.DB.
type Store struct {
	db *repo.DB
}

func New(db *repo.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
