// Package repotest поднимает SQLite-базу с миграциями для тестов хранилищ.
package repotest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sir_venger/foodgram/internal/repo"
)

// Open создаёт базу во временном каталоге теста и накатывает миграции.
func Open(t testing.TB) *repo.DB {
	t.Helper()

	ctx := context.Background()
	db, err := repo.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "foodgram.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.ApplyMigrations(ctx); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}
