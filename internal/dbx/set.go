package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Set is a table holding one text value per row, such as the dismissed
// purchase ids. Table and Column are trusted identifiers, never user input.
type Set struct {
	Table  string
	Column string
}

// Load reads every value of the set.
func (s Set) Load(ctx context.Context, db DBTX) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM %s`, s.Column, s.Table))
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", s.Table, err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.Table, err)
		}
		out[v] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", s.Table, err)
	}
	return out, nil
}

// Replace swaps the stored set for values in one transaction. Values are
// written in sorted order; on any failure the previous set is kept.
func (s Set) Replace(ctx context.Context, db *sql.DB, values map[string]struct{}) error {
	sorted := make([]string, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?)`, s.Table, s.Column)
	return WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+s.Table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", s.Table, err)
		}
		for _, v := range sorted {
			if _, err := tx.ExecContext(ctx, insert, v); err != nil {
				return fmt.Errorf("failed to insert %s %s: %w", s.Column, v, err)
			}
		}
		return nil
	})
}
