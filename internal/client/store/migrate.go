package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/quotekeeper/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded schema migrations for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	var gooseDialect, dir string
	switch dialect {
	case dbx.Postgres:
		gooseDialect, dir = "postgres", "migrations/postgres"
	case dbx.SQLite:
		gooseDialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

// Open connects to the database for driver ("postgres" or "sqlite"),
// applies migrations and returns the matching Store.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, *sql.DB, error) {
	dialect := dbx.Dialect(driver)

	var sqlDriver string
	switch dialect {
	case dbx.Postgres:
		sqlDriver = "pgx"
	case dbx.SQLite:
		sqlDriver = "sqlite"
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if dialect == dbx.SQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, normalize(fmt.Errorf("ping %s: %w", driver, err))
	}
	if err := Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return newSQLStore(db, dialect), db, nil
}
