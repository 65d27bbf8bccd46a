package purchases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/dbx"
)

// Purchase dates are stored as bare calendar dates and read back as midnight
// in the repository's location, so reminder clocks derived from them stay in
// local wall time across offset changes.
const dateLayout = time.DateOnly

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db  dbx.DBTX
	loc *time.Location
}

type Option func(*SQLiteRepository)

// WithLocation sets the location purchase dates are read back in.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *SQLiteRepository) { r.loc = loc }
}

func NewSQLiteRepository(db dbx.DBTX, opts ...Option) *SQLiteRepository {
	r := &SQLiteRepository{db: db, loc: time.Local}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// parseDate reads a stored purchase date. Rows written with a full RFC3339
// timestamp keep their calendar date, re-anchored in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err == nil {
		return t, nil
	}
	legacy, lerr := time.Parse(time.RFC3339, s)
	if lerr != nil {
		return time.Time{}, err
	}
	y, m, d := legacy.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// CreateOrUpdate upserts a purchase by id.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, p *models.Purchase) error {
	query := `INSERT INTO purchases (id, name, shop, purchase_date, warranty_months,
				is_lifetime_warranty, is_returned, photo, attachment_ref)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				shop = excluded.shop,
				purchase_date = excluded.purchase_date,
				warranty_months = excluded.warranty_months,
				is_lifetime_warranty = excluded.is_lifetime_warranty,
				is_returned = excluded.is_returned,
				photo = excluded.photo,
				attachment_ref = excluded.attachment_ref
	`
	_, err := r.db.ExecContext(ctx, query,
		p.Id, p.Name, p.Shop, p.PurchaseDate.Format(dateLayout), p.WarrantyMonths,
		p.IsLifetimeWarranty, p.IsReturned, p.Photo, p.AttachmentRef)
	if err != nil {
		return fmt.Errorf("failed to upsert purchase: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, name, shop, purchase_date, warranty_months,
	is_lifetime_warranty, is_returned, photo, attachment_ref FROM purchases`

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) scanPurchase(s scanner) (models.Purchase, error) {
	var (
		p    models.Purchase
		date string
	)
	if err := s.Scan(&p.Id, &p.Name, &p.Shop, &date, &p.WarrantyMonths,
		&p.IsLifetimeWarranty, &p.IsReturned, &p.Photo, &p.AttachmentRef); err != nil {
		return models.Purchase{}, err
	}

	t, err := parseDate(date, r.loc)
	if err != nil {
		return models.Purchase{}, fmt.Errorf("bad purchase_date %q for %s: %w", date, p.Id, err)
	}
	p.PurchaseDate = t
	return p, nil
}

// GetAll lists every purchase, newest purchase date first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY purchase_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select purchases: %w", err)
	}
	defer rows.Close()

	var result []models.Purchase
	for rows.Next() {
		p, err := r.scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase rows: %w", err)
	}
	return result, nil
}

// GetByID returns common.ErrNotFound when no purchase has the given id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	p, err := r.scanPurchase(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase %s: %w", id, err)
	}
	return &p, nil
}

// DeleteByID removes a purchase. It returns common.ErrNotFound when nothing
// was deleted.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("purchase %s: %w", id, common.ErrNotFound)
	}
	return nil
}
