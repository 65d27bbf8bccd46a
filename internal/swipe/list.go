package swipe

import (
	"math"
	"time"
)

// State is the visual state of a row.
type State int

const (
	StateClosed State = iota
	StateDragging
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateDragging:
		return "dragging"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// List holds the revealed-row value for one list and the rows it governs.
type List struct {
	opts     Options
	revealed string
	rows     map[string]*Row
	pending  []pendingAction
}

type pendingAction struct {
	due time.Time
	fn  func()
}

func NewList(opts Options) *List {
	return &List{opts: opts.withDefaults(), rows: make(map[string]*Row)}
}

func (l *List) Options() Options { return l.opts }

// Revealed returns the id of the open row, if any.
func (l *List) Revealed() (string, bool) {
	return l.revealed, l.revealed != ""
}

// Row returns the machine for id, creating a closed one on first use.
func (l *List) Row(id string) *Row {
	r, ok := l.rows[id]
	if !ok {
		r = &Row{id: id, list: l}
		l.rows[id] = r
	}
	return r
}

// Remove forgets a row, e.g. after its record is deleted.
func (l *List) Remove(id string) {
	delete(l.rows, id)
	if l.revealed == id {
		l.revealed = ""
	}
}

// CloseAll clears the revealed row and snaps every row shut.
func (l *List) CloseAll() {
	l.setRevealed("")
}

// setRevealed changes the revealed id and snaps every other displaced,
// idle row back to zero.
func (l *List) setRevealed(id string) {
	l.revealed = id
	for rid, r := range l.rows {
		if rid != id && r.offset != 0 && !r.dragging {
			r.setOffset(0)
		}
	}
}

// Flush runs the queued action follow-ups whose slide-out delay has elapsed,
// in the order they were triggered, and returns how many ran. It is a no-op
// when Options.After is set.
func (l *List) Flush() int {
	if len(l.pending) == 0 {
		return 0
	}
	now := l.opts.Now()

	var due []pendingAction
	rest := l.pending[:0:0]
	for _, p := range l.pending {
		if p.due.After(now) {
			rest = append(rest, p)
			continue
		}
		due = append(due, p)
	}
	l.pending = rest

	for _, p := range due {
		p.fn()
	}
	return len(due)
}

// Pending reports how many action follow-ups are waiting for Flush.
func (l *List) Pending() int { return len(l.pending) }

// Row is the per-row gesture machine.
type Row struct {
	id       string
	list     *List
	offset   float64
	dragging bool
}

func (r *Row) ID() string { return r.id }

func (r *Row) Offset() float64 { return r.offset }

func (r *Row) Dragging() bool { return r.dragging }

func (r *Row) revealedHere() bool { return r.list.revealed == r.id }

func (r *Row) State() State {
	switch {
	case r.dragging:
		return StateDragging
	case r.revealedHere():
		return StateOpen
	default:
		return StateClosed
	}
}

// Change feeds a drag update with the gesture's total translation. It
// reports whether the row is tracking the gesture. A drag starts only once
// the horizontal travel exceeds the activation distance and dominates the
// vertical travel; starting one closes any other open row first.
func (r *Row) Change(dx, dy float64) bool {
	opts := r.list.opts

	if !r.dragging {
		if math.Abs(dx) <= opts.ActivationDistance || math.Abs(dx) <= math.Abs(dy) {
			return false
		}
		r.dragging = true
		if id, ok := r.list.Revealed(); ok && id != r.id {
			r.list.setRevealed("")
		}
	}

	switch {
	case dx < 0:
		r.setOffset(dx)
	case r.revealedHere():
		r.setOffset(math.Min(0, -opts.Threshold+dx))
	}
	return true
}

// End releases the gesture. The row opens when dragged past half the
// threshold or flung left faster than the velocity threshold, and closes
// otherwise. A release with no drag in progress changes nothing.
func (r *Row) End(dx, predictedDx float64) State {
	if !r.dragging {
		return r.State()
	}
	r.dragging = false

	opts := r.list.opts
	velocity := predictedDx - dx

	if dx < -opts.Threshold/2 || velocity < -opts.VelocityThreshold {
		r.setOffset(-opts.Threshold)
		r.list.setRevealed(r.id)
		return StateOpen
	}
	r.Close()
	return StateClosed
}

// Close snaps the row shut and clears the revealed id if it was this row.
func (r *Row) Close() {
	r.setOffset(0)
	if r.revealedHere() {
		r.list.revealed = ""
	}
}

// ActionsTappable reports whether the buttons behind the row are exposed
// enough to accept taps.
func (r *Row) ActionsTappable() bool {
	return r.offset < -r.list.opts.VisibleAt
}

// Trigger slides the row off-screen and runs action once the slide-out
// delay has elapsed; the row is then closed. The follow-up goes through
// Options.After, or is queued for Flush when no After is set. It returns
// false, and does nothing, when the actions are not tappable.
func (r *Row) Trigger(action func()) bool {
	if !r.ActionsTappable() {
		return false
	}
	opts := r.list.opts
	r.setOffset(opts.OffscreenOffset)
	fire := func() {
		action()
		r.Close()
	}
	if opts.After != nil {
		opts.After(opts.ActionDelay, fire)
		return true
	}
	r.list.pending = append(r.list.pending, pendingAction{due: opts.Now().Add(opts.ActionDelay), fn: fire})
	return true
}

func (r *Row) setOffset(v float64) {
	if r.offset == v {
		return
	}
	r.offset = v
	if cb := r.list.opts.OnOffset; cb != nil {
		cb(r.id, v)
	}
}
