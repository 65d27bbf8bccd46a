package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/purchases"
	"github.com/dmitrijs2005/warrantykeeper/internal/warranty"
)

// Dismisser is the dismissal store seen by the feed.
type Dismisser interface {
	Dismiss(ctx context.Context, id string) error
	IsDismissed(id string) bool
}

// FeedItem is one entry of the reminder feed.
type FeedItem struct {
	Purchase   models.Purchase
	Evaluation warranty.Evaluation
}

// FeedService builds the reminder feed: purchases whose warranty expires
// soon and which the user has not dismissed.
type FeedService struct {
	repo       purchases.Repository
	dismissals Dismisser
	now        func() time.Time
}

func NewFeedService(repo purchases.Repository, dismissals Dismisser, now func() time.Time) *FeedService {
	if now == nil {
		now = time.Now
	}
	return &FeedService{repo: repo, dismissals: dismissals, now: now}
}

// Feed returns the current feed, soonest expiry first.
func (s *FeedService) Feed(ctx context.Context) ([]FeedItem, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing purchases: %w", err)
	}

	now := s.now()
	items := make([]FeedItem, 0)
	for _, p := range all {
		ev := warranty.Evaluate(p, now)
		if ev.Status != warranty.StatusExpiresSoon || s.dismissals.IsDismissed(p.Id) {
			continue
		}
		items = append(items, FeedItem{Purchase: p, Evaluation: ev})
	}

	slices.SortStableFunc(items, func(a, b FeedItem) int {
		return a.Evaluation.DaysRemaining - b.Evaluation.DaysRemaining
	})
	return items, nil
}

// Dismiss hides a purchase from the feed. It has no effect on the
// purchase's status or its reminders.
func (s *FeedService) Dismiss(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("error retrieving purchase: %w", err)
	}
	if err := s.dismissals.Dismiss(ctx, id); err != nil {
		return fmt.Errorf("error dismissing purchase: %w", err)
	}
	return nil
}
