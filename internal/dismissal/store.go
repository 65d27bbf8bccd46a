// Package dismissal remembers which purchases the user has dismissed from
// the reminder feed. Dismissal only hides a feed entry; it never changes a
// purchase's status or its scheduled reminders.
package dismissal

import (
	"context"
	"fmt"
	"sort"
)

// Persistence is the backing store for the dismissed id set.
type Persistence interface {
	Load(ctx context.Context) (map[string]struct{}, error)
	Save(ctx context.Context, ids map[string]struct{}) error
}

// Store is an in-memory view of the dismissed set, written through to
// Persistence on every change. The set only grows.
type Store struct {
	p   Persistence
	ids map[string]struct{}
}

// Open loads the persisted set.
func Open(ctx context.Context, p Persistence) (*Store, error) {
	ids, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dismissed ids: %w", err)
	}
	if ids == nil {
		ids = make(map[string]struct{})
	}
	return &Store{p: p, ids: ids}, nil
}

// Dismiss adds id to the set and persists it. Dismissing an id twice is a
// no-op. On a persistence failure the in-memory set is left unchanged.
func (s *Store) Dismiss(ctx context.Context, id string) error {
	if _, ok := s.ids[id]; ok {
		return nil
	}

	next := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}

	if err := s.p.Save(ctx, next); err != nil {
		return fmt.Errorf("save dismissed ids: %w", err)
	}
	s.ids = next
	return nil
}

func (s *Store) IsDismissed(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the dismissed ids in sorted order.
func (s *Store) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
