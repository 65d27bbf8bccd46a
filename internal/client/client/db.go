package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/migrations"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/dismissals"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/notifications"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/purchases"
	"github.com/dmitrijs2005/warrantykeeper/internal/filex"
)

type Repositories struct {
	Purchases     purchases.Repository
	Dismissals    *dismissals.SQLiteRepository
	Notifications notifications.Repository
	DB            *sql.DB
}

// Close closes the underlying database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite database at dsn,
// migrates it and returns the repositories bound to it. A file path dsn has
// its parent directory created first. opts configure the purchases
// repository.
func InitDatabase(ctx context.Context, dsn string, opts ...purchases.Option) (*Repositories, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps a ":memory:" database alive.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &Repositories{
		Purchases:     purchases.NewSQLiteRepository(db, opts...),
		Dismissals:    dismissals.NewSQLiteRepository(db),
		Notifications: notifications.NewSQLiteRepository(db),
		DB:            db,
	}, nil
}

func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
