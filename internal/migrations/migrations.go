package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/migrate"
)

//go:embed data/sqlite/*.sql data/postgres/*.sql
var sqlFS embed.FS

// FS exposes the embedded migration files, one directory per dialect.
func FS() embed.FS {
	return sqlFS
}

// DialectFS returns the migration files for db's dialect.
func DialectFS(name dialect.Name) (fs.FS, error) {
	switch name {
	case dialect.SQLite:
		return fs.Sub(sqlFS, "data/sqlite")
	case dialect.PG:
		return fs.Sub(sqlFS, "data/postgres")
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %s", name)
	}
}

// Apply runs every pending up migration for db's dialect and returns the
// names of the migrations applied.
func Apply(ctx context.Context, db *bun.DB) ([]string, error) {
	files, err := DialectFS(db.Dialect().Name())
	if err != nil {
		return nil, err
	}

	set := migrate.NewMigrations()
	if err := set.Discover(files); err != nil {
		return nil, fmt.Errorf("migrations: discover: %w", err)
	}

	migrator := migrate.NewMigrator(db, set)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("migrations: init: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: migrate: %w", err)
	}
	if group == nil || group.IsZero() {
		return nil, nil
	}

	applied := make([]string, 0, len(group.Migrations))
	for _, m := range group.Migrations {
		applied = append(applied, m.Name)
	}
	return applied, nil
}
