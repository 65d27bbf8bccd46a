package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
	"github.com/dmitrijs2005/warrantykeeper/internal/warranty"
)

// LeadDays are the fixed reminder offsets, in days before warranty end.
var LeadDays = [...]int{7, 3, 1}

const Title = "Warranty Expiring Soon!"

// Sink is the notification backend. Schedule with an existing key replaces
// the previous instance.
type Sink interface {
	Schedule(ctx context.Context, key string, at time.Time, title, body string) error
	Cancel(ctx context.Context, keys []string) error
	CancelAll(ctx context.Context) error
}

// Reminder is one planned notification.
type Reminder struct {
	Key      string
	RecordID string
	LeadDays int
	FireAt   time.Time
	Title    string
	Body     string
}

// TimeOfDay is the wall-clock time reminders fire at on their day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultTimeOfDay is used when no reminder time is configured.
var DefaultTimeOfDay = TimeOfDay{Hour: 9}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid reminder time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Key is the canonical sink key for one lead time of one record.
func Key(recordID string, leadDays int) string {
	return fmt.Sprintf("warranty_%d_%s", leadDays, recordID)
}

// Keys returns the keys for every lead time of a record.
func Keys(recordID string) []string {
	keys := make([]string, 0, len(LeadDays))
	for _, lead := range LeadDays {
		keys = append(keys, Key(recordID, lead))
	}
	return keys
}

// LegacyKey is the single lead-less key older builds registered. The
// scheduler neither schedules nor cancels it.
func LegacyKey(recordID string) string {
	return "warranty_" + recordID
}

// Body renders the notification text for a purchase and lead time.
func Body(name string, leadDays int) string {
	unit := "days"
	if leadDays == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s warranty expires in %d %s. Consider returning or checking the product.", name, leadDays, unit)
}

// FireAt is the reminder instant for a lead time: the calendar day leadDays
// before end, at tod, in end's location.
func FireAt(end time.Time, leadDays int, tod TimeOfDay) time.Time {
	d := end.AddDate(0, 0, -leadDays)
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour, tod.Minute, 0, 0, d.Location())
}

// Plan returns the reminders that should be pending for p at now, ordered
// by lead time as in LeadDays. It is empty for returned purchases, lifetime
// warranties, and once every reminder instant has passed.
func Plan(p models.Purchase, now time.Time, tod TimeOfDay) []Reminder {
	if p.IsReturned || p.IsLifetimeWarranty {
		return nil
	}

	end := warranty.WarrantyEndDate(p)

	var out []Reminder
	for _, lead := range LeadDays {
		at := FireAt(end, lead, tod)
		if !at.After(now) {
			continue
		}
		out = append(out, Reminder{
			Key:      Key(p.Id, lead),
			RecordID: p.Id,
			LeadDays: lead,
			FireAt:   at,
			Title:    Title,
			Body:     Body(p.Name, lead),
		})
	}
	return out
}

// Scheduler keeps a Sink in line with the purchases it is told about.
//
// It is not safe for concurrent use on the same record id; callers are
// expected to serialise edits per record.
type Scheduler struct {
	sink       Sink
	logger     logging.Logger
	now        func() time.Time
	tod        TimeOfDay
	deliverDue func(ctx context.Context)
}

type Option func(*Scheduler)

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithTimeOfDay sets the wall-clock time reminders fire at.
func WithTimeOfDay(tod TimeOfDay) Option {
	return func(s *Scheduler) { s.tod = tod }
}

// WithDeliverDue sets a hook run before OnRecordChanged cancels a record's
// keys, so a reminder whose instant has passed but which is still queued is
// delivered instead of dropped.
func WithDeliverDue(f func(ctx context.Context)) Option {
	return func(s *Scheduler) { s.deliverDue = f }
}

func NewScheduler(sink Sink, logger logging.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{sink: sink, logger: logger, now: time.Now, tod: DefaultTimeOfDay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnRecordChanged runs the deliver-due hook, if any, then cancels every
// reminder of p and schedules the ones still applicable. A failed schedule
// after a successful cancel leaves the record without that reminder.
func (s *Scheduler) OnRecordChanged(ctx context.Context, p models.Purchase) {
	if s.deliverDue != nil {
		s.deliverDue(ctx)
	}
	s.cancel(ctx, p.Id, Keys(p.Id))
	for _, r := range Plan(p, s.now(), s.tod) {
		s.schedule(ctx, r)
	}
}

// OnRecordDeleted cancels every reminder of the record.
func (s *Scheduler) OnRecordDeleted(ctx context.Context, recordID string) {
	s.cancel(ctx, recordID, Keys(recordID))
}

// RescheduleAll re-applies the scheduling rule to every live record without
// a blanket cancel first. Keys whose reminder is no longer applicable are
// cancelled individually.
func (s *Scheduler) RescheduleAll(ctx context.Context, purchases []models.Purchase) {
	now := s.now()
	for _, p := range purchases {
		planned := Plan(p, now, s.tod)

		keep := make(map[string]struct{}, len(planned))
		for _, r := range planned {
			keep[r.Key] = struct{}{}
			s.schedule(ctx, r)
		}

		var stale []string
		for _, k := range Keys(p.Id) {
			if _, ok := keep[k]; !ok {
				stale = append(stale, k)
			}
		}
		if len(stale) > 0 {
			s.cancel(ctx, p.Id, stale)
		}
	}
	s.logger.Debug(ctx, "reminders rescheduled", "records", len(purchases))
}

func (s *Scheduler) schedule(ctx context.Context, r Reminder) {
	if err := s.sink.Schedule(ctx, r.Key, r.FireAt, r.Title, r.Body); err != nil {
		s.logger.Warn(ctx, "failed to schedule reminder", "key", r.Key, "record_id", r.RecordID, "err", err)
		return
	}
	s.logger.Debug(ctx, "reminder scheduled", "key", r.Key, "fire_at", r.FireAt)
}

func (s *Scheduler) cancel(ctx context.Context, recordID string, keys []string) {
	if err := s.sink.Cancel(ctx, keys); err != nil {
		s.logger.Warn(ctx, "failed to cancel reminders", "record_id", recordID, "keys", keys, "err", err)
	}
}
