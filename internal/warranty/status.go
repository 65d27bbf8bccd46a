package warranty

import (
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
)

const (
	// ExpiresSoonDays is the inclusive days-remaining bound for StatusExpiresSoon.
	ExpiresSoonDays = 5

	// LifetimeYears is how far a lifetime warranty is pushed out.
	LifetimeYears = 100
)

// Status is the derived lifecycle state of a purchase.
type Status int

const (
	StatusActiveWarranty Status = iota
	StatusExpiresSoon
	StatusOutOfWarranty
	StatusReturned
)

func (s Status) String() string {
	switch s {
	case StatusActiveWarranty:
		return "active_warranty"
	case StatusExpiresSoon:
		return "expires_soon"
	case StatusOutOfWarranty:
		return "out_of_warranty"
	case StatusReturned:
		return "returned"
	default:
		return "unknown"
	}
}

// Label is the short human-readable form shown next to a purchase.
// Returned purchases read as out of warranty; the badge says "Returned".
func (s Status) Label() string {
	switch s {
	case StatusActiveWarranty:
		return "Active warranty"
	case StatusExpiresSoon:
		return "Expires soon"
	default:
		return "Out of warranty"
	}
}

// Evaluation bundles everything derived for one purchase at one instant.
type Evaluation struct {
	Status        Status
	EndDate       time.Time
	DaysRemaining int
}

// WarrantyEndDate returns the purchase date plus the warranty term, or plus
// LifetimeYears for lifetime warranties. If the arithmetic leaves the
// representable calendar range, the purchase date itself is returned.
func WarrantyEndDate(p models.Purchase) time.Time {
	if p.PurchaseDate.IsZero() {
		return p.PurchaseDate
	}

	months := p.WarrantyMonths
	if p.IsLifetimeWarranty {
		months = LifetimeYears * 12
	}

	end := AddMonths(p.PurchaseDate, months)
	if !inRange(end) {
		return p.PurchaseDate
	}
	return end
}

// DaysRemaining is the number of calendar days from now until the warranty
// end date, floored at zero.
func DaysRemaining(p models.Purchase, now time.Time) int {
	return daysUntil(WarrantyEndDate(p), now)
}

// ComputeStatus resolves the lifecycle status of p at now.
func ComputeStatus(p models.Purchase, now time.Time) Status {
	return Evaluate(p, now).Status
}

// Evaluate computes end date, days remaining and status in one pass.
func Evaluate(p models.Purchase, now time.Time) Evaluation {
	end := WarrantyEndDate(p)
	days := daysUntil(end, now)
	return Evaluation{
		Status:        resolve(p, days),
		EndDate:       end,
		DaysRemaining: days,
	}
}

func resolve(p models.Purchase, days int) Status {
	switch {
	case p.IsReturned:
		return StatusReturned
	case p.IsLifetimeWarranty:
		return StatusActiveWarranty
	case days == 0:
		return StatusOutOfWarranty
	case days <= ExpiresSoonDays:
		return StatusExpiresSoon
	default:
		return StatusActiveWarranty
	}
}

func daysUntil(end, now time.Time) int {
	return max(0, DaysBetween(now, end))
}
