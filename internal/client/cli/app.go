package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/client"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/config"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/purchases"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/services"
	"github.com/dmitrijs2005/warrantykeeper/internal/dismissal"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
	"github.com/dmitrijs2005/warrantykeeper/internal/reminder"

	_ "modernc.org/sqlite"
)

// syncWriter lets the dispatcher print banners while the REPL is writing.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      *client.Repositories
	purchases  services.PurchaseService
	feed       *services.FeedService
	dispatcher *reminder.Dispatcher
	reader     *bufio.Reader
	out        io.Writer
	now        func() time.Time
	// interactive controls whether the prompt is printed.
	interactive bool
}

// NewApp opens the database and wires the services to the process
// terminal.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	a, err := newApp(ctx, c, logger, time.Local, os.Stdin, &syncWriter{w: os.Stdout})
	if err != nil {
		return nil, err
	}
	a.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	return a, nil
}

// newApp reads stored purchase dates as calendar dates in loc.
func newApp(ctx context.Context, c *config.Config, logger logging.Logger, loc *time.Location, in io.Reader, out io.Writer) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DatabasePath, purchases.WithLocation(loc))
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
		return nil, err
	}

	store, err := dismissal.Open(ctx, repos.Dismissals)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := &App{
		config: c,
		logger: logger,
		repos:  repos,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}

	a.dispatcher = reminder.NewDispatcher(repos.Notifications, reminder.NotifierFunc(a.notify),
		logger.With("component", "dispatcher"), c.DispatchInterval, reminder.WithDispatchNow(a.clock))
	scheduler := reminder.NewScheduler(repos.Notifications, logger.With("component", "scheduler"),
		reminder.WithNow(a.clock), reminder.WithTimeOfDay(c.ReminderClock),
		reminder.WithDeliverDue(func(ctx context.Context) { a.dispatcher.DispatchDue(ctx) }))
	a.purchases = services.NewPurchaseService(repos.Purchases, scheduler, services.WithClock(a.clock))
	a.feed = services.NewFeedService(repos.Purchases, store, a.clock)

	return a, nil
}

func (a *App) clock() time.Time { return a.now() }

// notify prints a delivered reminder as a banner.
func (a *App) notify(ctx context.Context, n models.Notification) error {
	_, err := fmt.Fprintf(a.out, "\n*** %s ***\n%s\n\n", n.Title, n.Body)
	return err
}

// Run delivers reminders that came due while the app was closed, rebuilds
// the pending set, starts the background loops and blocks in the REPL until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.repos.Close(); err != nil {
			a.logger.Warn(ctx, "error closing database", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.refresh(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.dispatcher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.StartDayWatcher(ctx, a.config.DayCheckInterval)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fmt.Fprintln(a.out, "Welcome to Warranty Keeper (type 'help' for commands)")
		runREPL(ctx, a, a.prompt, a.reader, a.out)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Fprintln(a.out, "\nBye!")
	}

	cancel()
	wg.Wait()
}

// refresh delivers anything already due, then re-applies the reminder rule
// to the whole collection. Delivery must run first: RescheduleAll cancels
// reminders whose instant has passed.
func (a *App) refresh(ctx context.Context) {
	a.dispatcher.DispatchDue(ctx)
	if err := a.purchases.RescheduleAll(ctx); err != nil {
		a.logger.Warn(ctx, "failed to reschedule reminders", "err", err)
	}
}

// StartDayWatcher refreshes reminders whenever the calendar day changes.
func (a *App) StartDayWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := dayOf(a.now())
	for {
		select {
		case <-ticker.C:
			if today := dayOf(a.now()); today != last {
				last = today
				a.logger.Info(ctx, "day changed, rescheduling reminders", "day", today)
				a.refresh(ctx)
			}
		case <-ctx.Done():
			return
		}
	}
}

func dayOf(t time.Time) string {
	return t.Format(time.DateOnly)
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	return "wk> "
}
