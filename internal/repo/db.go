// Package repo открывает подключение к базе, применяет миграции и даёт
// общие примитивы для хранилищ: построитель запросов и транзакции.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect диалект SQL, под который собраны запросы и миграции.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Querier общий интерфейс *sql.DB и *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB пул подключений вместе с диалектом.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open выбирает драйвер по схеме DSN: postgres:// или sqlite://<path>.
func Open(ctx context.Context, dsn string) (*DB, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, fmt.Errorf("db dsn is empty")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return openPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported db dsn scheme: %q", dsn)
	}
}

// SQ возвращает построитель запросов с плейсхолдерами диалекта.
func (d *DB) SQ() sq.StatementBuilderType {
	if d.Dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// InTx выполняет fn в транзакции. Коммит только если fn вернула nil.
// Внутри fn все запросы должны идти через переданный Querier.
func (d *DB) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// LikePrefix экранирует метасимволы LIKE и добавляет '%'.
func LikePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// PrefixMatch условие "column начинается с prefix" без учёта регистра (Unicode).
// На Postgres форма lower(column) LIKE обслуживается индексом varchar_pattern_ops.
func (d *DB) PrefixMatch(column, prefix string) sq.Sqlizer {
	pattern := LikePrefix(strings.ToLower(prefix))
	if d.Dialect == DialectPostgres {
		return sq.Expr("lower("+column+") LIKE ?", pattern)
	}
	return sq.Expr(sqliteLowerFunc+"("+column+`) LIKE ? ESCAPE '\'`, pattern)
}
