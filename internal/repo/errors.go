package repo

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sir_venger/foodgram/internal/models"
)

// IsUniqueViolation сообщает о нарушении уникального ключа в любом из диалектов.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgCode(err) == pgUniqueViolation {
		return true
	}
	switch sqliteCode(err) {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

// UniqueColumn имя столбца table из нарушенного уникального ключа или "".
// Postgres: имя ограничения по умолчанию <table>_<column>_key.
// SQLite: текст "UNIQUE constraint failed: <table>.<column>".
func UniqueColumn(err error, table string) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		name := strings.TrimPrefix(pgErr.ConstraintName, table+"_")
		if name == pgErr.ConstraintName || !strings.HasSuffix(name, "_key") {
			return ""
		}
		return strings.TrimSuffix(name, "_key")
	}

	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	cols := msg[i+len(marker):]
	if j := strings.IndexAny(cols, " ,("); j >= 0 {
		if cols[j] == ',' {
			return ""
		}
		cols = cols[:j]
	}
	col, ok := strings.CutPrefix(cols, table+".")
	if !ok {
		return ""
	}
	return col
}

// IsForeignKeyViolation сообщает о ссылке на несуществующую строку.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return pgCode(err) == pgForeignKeyViolation ||
		sqliteCode(err) == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
}

// NotFound переводит sql.ErrNoRows в models.ErrNotFound.
func NotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}
