package dismissals

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/warrantykeeper/internal/dbx"
)

var table = dbx.Set{Table: "dismissals", Column: "record_id"}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Load returns every dismissed id.
func (r *SQLiteRepository) Load(ctx context.Context) (map[string]struct{}, error) {
	return table.Load(ctx, r.db)
}

// Save replaces the stored set with ids in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, ids map[string]struct{}) error {
	return table.Replace(ctx, r.db, ids)
}
