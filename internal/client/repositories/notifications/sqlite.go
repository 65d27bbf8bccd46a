package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/dbx"
)

// fireAtLayout is fixed width and always UTC, so text comparison in SQL
// orders instants correctly.
const fireAtLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Schedule upserts a pending notification; an existing key is replaced.
func (r *SQLiteRepository) Schedule(ctx context.Context, key string, at time.Time, title, body string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_notifications (key, fire_at, title, body) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET fire_at = excluded.fire_at, title = excluded.title, body = excluded.body
	`, key, at.UTC().Format(fireAtLayout), title, body)
	if err != nil {
		return fmt.Errorf("failed to schedule notification[%s]: %w", key, err)
	}
	return nil
}

// Cancel removes the given keys. Unknown keys are ignored.
func (r *SQLiteRepository) Cancel(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_notifications WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to cancel notification[%s]: %w", key, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) CancelAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_notifications`); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

// Due returns notifications whose fire time is at or before now, earliest
// first.
func (r *SQLiteRepository) Due(ctx context.Context, now time.Time) ([]models.Notification, error) {
	return r.list(ctx, `SELECT key, fire_at, title, body FROM pending_notifications
		WHERE fire_at <= ? ORDER BY fire_at, key`, now.UTC().Format(fireAtLayout))
}

// Pending returns every queued notification, earliest first.
func (r *SQLiteRepository) Pending(ctx context.Context) ([]models.Notification, error) {
	return r.list(ctx, `SELECT key, fire_at, title, body FROM pending_notifications ORDER BY fire_at, key`)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		var (
			n      models.Notification
			fireAt string
		)
		if err := rows.Scan(&n.Key, &fireAt, &n.Title, &n.Body); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		if n.FireAt, err = time.Parse(fireAtLayout, fireAt); err != nil {
			return nil, fmt.Errorf("bad fire_at %q for %s: %w", fireAt, n.Key, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification rows: %w", err)
	}
	return result, nil
}
