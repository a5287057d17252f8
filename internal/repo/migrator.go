package repo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// MigrationState строка вывода `manage migrate status`.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func (d *DB) provider() (*goose.Provider, error) {
	gooseDialect := goose.DialectSQLite3
	if d.Dialect == DialectPostgres {
		gooseDialect = goose.DialectPostgres
	}

	sub, err := fs.Sub(migrationFiles, migrationsDir+"/"+string(d.Dialect))
	if err != nil {
		return nil, err
	}

	return goose.NewProvider(gooseDialect, d.DB, sub)
}

// ApplyMigrations накатывает все встроенные goose-миграции своего диалекта.
func (d *DB) ApplyMigrations(ctx context.Context) error {
	p, err := d.provider()
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// RollbackMigration откатывает последнюю применённую миграцию.
func (d *DB) RollbackMigration(ctx context.Context) error {
	p, err := d.provider()
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}
	if _, err := p.Down(ctx); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// MigrationStatus возвращает состояние каждой известной миграции.
func (d *DB) MigrationStatus(ctx context.Context) ([]MigrationState, error) {
	p, err := d.provider()
	if err != nil {
		return nil, fmt.Errorf("migrations provider: %w", err)
	}
	st, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate status: %w", err)
	}

	out := make([]MigrationState, 0, len(st))
	for _, s := range st {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
