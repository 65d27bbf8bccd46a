package swipe

import "time"

const (
	defaultActivationDistance = 15
	defaultVelocityThreshold  = 100
	defaultVisibleAt          = 20
	defaultActionDelay        = 250 * time.Millisecond
)

// Options parameterise a List. Zero fields take the defaults above, except
// Threshold, which must be set.
type Options struct {
	// Threshold is the open offset magnitude; an open row sits at -Threshold.
	Threshold float64

	// ActivationDistance is the horizontal travel before a drag starts.
	ActivationDistance float64

	// VelocityThreshold is the fling speed (predicted minus current
	// translation) past which a release opens the row regardless of distance.
	VelocityThreshold float64

	// VisibleAt is the offset magnitude beyond which action buttons accept taps.
	VisibleAt float64

	// OffscreenOffset is where a row slides when an action is invoked.
	// Defaults to -4 * Threshold.
	OffscreenOffset float64

	// ActionDelay is the slide-out duration before the action callback fires.
	ActionDelay time.Duration

	// After, if set, hands f to the host's event loop to run once d has
	// elapsed. When nil, follow-ups are queued on the List and run by Flush.
	After func(d time.Duration, f func())

	// Now is the clock Flush compares deadlines against. Defaults to time.Now.
	Now func() time.Time

	// OnOffset, if set, is called after every offset change of any row.
	OnOffset func(id string, offset float64)
}

// Threshold returns the open offset for a row exposing the given number of
// action buttons: a third of the viewport for two or more, a quarter for one.
func Threshold(viewportWidth float64, actions int) float64 {
	if actions >= 2 {
		return viewportWidth * 0.33
	}
	return viewportWidth / 4
}

// NewOptions returns defaults for a viewport of the given width showing
// the given number of actions per row.
func NewOptions(viewportWidth float64, actions int) Options {
	return Options{
		Threshold:       Threshold(viewportWidth, actions),
		OffscreenOffset: -viewportWidth,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.ActivationDistance == 0 {
		o.ActivationDistance = defaultActivationDistance
	}
	if o.VelocityThreshold == 0 {
		o.VelocityThreshold = defaultVelocityThreshold
	}
	if o.VisibleAt == 0 {
		o.VisibleAt = defaultVisibleAt
	}
	if o.OffscreenOffset == 0 {
		o.OffscreenOffset = -4 * o.Threshold
	}
	if o.ActionDelay == 0 {
		o.ActionDelay = defaultActionDelay
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
