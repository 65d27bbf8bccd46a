package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
)

// Queue is the read side of a pending-notification store.
type Queue interface {
	Due(ctx context.Context, now time.Time) ([]models.Notification, error)
	Cancel(ctx context.Context, keys []string) error
}

// Notifier presents a due notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, n models.Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n models.Notification) error { return f(ctx, n) }

// Dispatcher delivers due notifications on a fixed interval. DispatchDue
// may also be called from other goroutines; calls are serialised so a
// notification is delivered once.
type Dispatcher struct {
	mu       sync.Mutex
	queue    Queue
	notifier Notifier
	logger   logging.Logger
	interval time.Duration
	now      func() time.Time
}

type DispatcherOption func(*Dispatcher)

// WithDispatchNow overrides the clock used to decide what is due.
func WithDispatchNow(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

func NewDispatcher(q Queue, n Notifier, logger logging.Logger, interval time.Duration, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{queue: q, notifier: n, logger: logger, interval: interval, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run delivers once immediately and then on every tick until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	d.DispatchDue(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.DispatchDue(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// DispatchDue delivers every notification due at now and returns how many
// were delivered. A notification whose delivery fails stays queued.
func (d *Dispatcher) DispatchDue(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	due, err := d.queue.Due(ctx, d.now())
	if err != nil {
		d.logger.Warn(ctx, "failed to load due notifications", "err", err)
		return 0
	}

	delivered := make([]string, 0, len(due))
	for _, n := range due {
		if err := d.notifier.Notify(ctx, n); err != nil {
			d.logger.Warn(ctx, "failed to deliver notification", "key", n.Key, "err", err)
			continue
		}
		delivered = append(delivered, n.Key)
	}

	if len(delivered) == 0 {
		return 0
	}
	if err := d.queue.Cancel(ctx, delivered); err != nil {
		d.logger.Warn(ctx, "failed to remove delivered notifications", "keys", delivered, "err", err)
	}
	return len(delivered)
}
