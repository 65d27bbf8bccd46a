package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/purchases"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/warranty"
)

// Filter selects the ordering of the main purchase list.
type Filter string

const (
	// FilterRecent lists newest purchases first.
	FilterRecent Filter = "recent"
	// FilterActive lists purchases still under warranty first.
	FilterActive Filter = "active"
	// FilterRefund lists returned purchases first.
	FilterRefund Filter = "refund"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterRecent, nil
	case FilterRecent, FilterActive, FilterRefund:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownFilter, s)
}

// ReminderScheduler is the part of reminder.Scheduler the collection uses.
type ReminderScheduler interface {
	OnRecordChanged(ctx context.Context, p models.Purchase)
	OnRecordDeleted(ctx context.Context, recordID string)
	RescheduleAll(ctx context.Context, purchases []models.Purchase)
}

type PurchaseService interface {
	Add(ctx context.Context, in models.NewPurchase) (*models.Purchase, error)
	Update(ctx context.Context, p models.Purchase) (*models.Purchase, error)
	Delete(ctx context.Context, id string) error
	MarkReturned(ctx context.Context, id string) (*models.Purchase, error)
	Get(ctx context.Context, id string) (*models.Purchase, error)
	List(ctx context.Context, f Filter) ([]models.Purchase, error)
	Archive(ctx context.Context) ([]models.Purchase, error)
	RescheduleAll(ctx context.Context) error
}

type purchaseService struct {
	// mu serialises writes so a record has a single writer at a time.
	mu        sync.Mutex
	repo      purchases.Repository
	scheduler ReminderScheduler
	now       func() time.Time
	newID     func() string
}

type PurchaseOption func(*purchaseService)

// WithClock overrides the time source used for status-based ordering.
func WithClock(now func() time.Time) PurchaseOption {
	return func(s *purchaseService) { s.now = now }
}

func withIDs(newID func() string) PurchaseOption {
	return func(s *purchaseService) { s.newID = newID }
}

func NewPurchaseService(repo purchases.Repository, scheduler ReminderScheduler, opts ...PurchaseOption) PurchaseService {
	s := &purchaseService{repo: repo, scheduler: scheduler, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validate(name, shop string) error {
	var errs []error
	if strings.TrimSpace(name) == "" {
		errs = append(errs, common.ErrEmptyName)
	}
	if strings.TrimSpace(shop) == "" {
		errs = append(errs, common.ErrEmptyShop)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrValidation, errors.Join(errs...))
}

func (s *purchaseService) Add(ctx context.Context, in models.NewPurchase) (*models.Purchase, error) {
	if err := validate(in.Name, in.Shop); err != nil {
		return nil, err
	}

	p := models.Purchase{
		Id:                 s.newID(),
		Name:               strings.TrimSpace(in.Name),
		Shop:               strings.TrimSpace(in.Shop),
		PurchaseDate:       in.PurchaseDate,
		WarrantyMonths:     in.WarrantyMonths,
		IsLifetimeWarranty: in.IsLifetimeWarranty,
		Photo:              in.Photo,
		AttachmentRef:      in.AttachmentRef,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.CreateOrUpdate(ctx, &p); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	s.scheduler.OnRecordChanged(ctx, p)
	return &p, nil
}

// Update replaces the editable fields of an existing purchase. The return
// flag cannot be cleared here.
func (s *purchaseService) Update(ctx context.Context, p models.Purchase) (*models.Purchase, error) {
	if err := validate(p.Name, p.Shop); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.repo.GetByID(ctx, p.Id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving purchase: %w", err)
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Shop = strings.TrimSpace(p.Shop)
	p.IsReturned = p.IsReturned || cur.IsReturned

	if err := s.repo.CreateOrUpdate(ctx, &p); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	s.scheduler.OnRecordChanged(ctx, p)
	return &p, nil
}

func (s *purchaseService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting purchase: %w", err)
	}
	s.scheduler.OnRecordDeleted(ctx, id)
	return nil
}

// MarkReturned sets the return flag. Marking an already returned purchase
// again changes nothing.
func (s *purchaseService) MarkReturned(ctx context.Context, id string) (*models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving purchase: %w", err)
	}
	if p.IsReturned {
		return p, nil
	}

	p.IsReturned = true
	if err := s.repo.CreateOrUpdate(ctx, p); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	s.scheduler.OnRecordChanged(ctx, *p)
	return p, nil
}

func (s *purchaseService) Get(ctx context.Context, id string) (*models.Purchase, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving purchase: %w", err)
	}
	return p, nil
}

func (s *purchaseService) List(ctx context.Context, f Filter) ([]models.Purchase, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing purchases: %w", err)
	}

	var first func(models.Purchase) bool
	switch f {
	case FilterRecent, "":
	case FilterActive:
		now := s.now()
		first = func(p models.Purchase) bool {
			st := warranty.ComputeStatus(p, now)
			return st == warranty.StatusActiveWarranty || st == warranty.StatusExpiresSoon
		}
	case FilterRefund:
		first = func(p models.Purchase) bool { return p.IsReturned }
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownFilter, f)
	}

	slices.SortStableFunc(all, func(a, b models.Purchase) int {
		if first != nil {
			if fa, fb := first(a), first(b); fa != fb {
				if fa {
					return -1
				}
				return 1
			}
		}
		return newestFirst(a, b)
	})
	return all, nil
}

// Archive lists returned purchases, newest first.
func (s *purchaseService) Archive(ctx context.Context) ([]models.Purchase, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing purchases: %w", err)
	}

	returned := slices.DeleteFunc(all, func(p models.Purchase) bool { return !p.IsReturned })
	slices.SortStableFunc(returned, newestFirst)
	return returned, nil
}

// RescheduleAll rebuilds the pending reminders for the whole collection.
func (s *purchaseService) RescheduleAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error listing purchases: %w", err)
	}
	s.scheduler.RescheduleAll(ctx, all)
	return nil
}

func newestFirst(a, b models.Purchase) int {
	return b.PurchaseDate.Compare(a.PurchaseDate)
}
