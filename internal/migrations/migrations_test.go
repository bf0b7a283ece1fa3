package migrations_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-cms-footnotes/internal/migrations"
	"github.com/goliatone/go-cms-footnotes/pkg/testsupport"
)

func TestDialectFSListsMigrations(t *testing.T) {
	for _, name := range []dialect.Name{dialect.SQLite, dialect.PG} {
		files, err := migrations.DialectFS(name)
		if err != nil {
			t.Fatalf("DialectFS(%s): %v", name, err)
		}
		matches, err := fs.Glob(files, "*.up.sql")
		if err != nil {
			t.Fatalf("glob: %v", err)
		}
		if len(matches) == 0 {
			t.Fatalf("expected up migrations for %s", name)
		}
	}

	if _, err := migrations.DialectFS(dialect.MySQL); err == nil {
		t.Fatal("expected unsupported dialect error")
	}
}

func TestApplyCreatesFootnotesTable(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	applied, err := migrations.Apply(ctx, db)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(applied) != 1 {
		t.Fatalf("expected one migration applied, got %v", applied)
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO footnotes (id, page_id, uuid, text) VALUES ('1', 'p', 'f1', 'body')`); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO footnotes (id, page_id, uuid, text) VALUES ('2', 'p', 'f1', 'dup')`); err == nil {
		t.Fatal("expected unique page/uuid index to reject duplicate")
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO footnotes (id, page_id, uuid, text) VALUES ('3', 'q', 'f1', 'other page')`); err != nil {
		t.Fatalf("expected marker id reuse on another page: %v", err)
	}

	again, err := migrations.Apply(ctx, db)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no pending migrations, got %v", again)
	}
}
