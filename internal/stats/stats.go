// Package stats summarises a purchase collection over the current month or
// year: warranty status counts, refund availability and the "returned"
// insight shown on the statistics screen.
package stats

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/warranty"
)

// ReturnWindowDays is how long after purchase an item still counts as
// returnable.
const ReturnWindowDays = 14

type Period int

const (
	Month Period = iota
	Year
)

func (p Period) String() string {
	if p == Year {
		return "year"
	}
	return "month"
}

// ParsePeriod accepts "month" and "year"; the empty string means Month.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "", "month":
		return Month, nil
	case "year":
		return Year, nil
	}
	return Month, fmt.Errorf("unknown period %q", s)
}

// Summary is the result of Compute.
type Summary struct {
	Period          Period
	Active          int
	ExpiresSoon     int
	Expired         int
	Returned        int
	ReturnAvailable int
	Total           int
}

// InsightPercent is the share of returned items, rounded down.
func (s Summary) InsightPercent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Returned * 100 / s.Total
}

func (s Summary) InsightTitle() string {
	switch p := s.InsightPercent(); {
	case p < 13:
		return "Just starting!"
	case p < 38:
		return "Making progress!"
	case p < 63:
		return "Halfway there!"
	case p < 88:
		return "Great job!"
	default:
		return "Amazing!"
	}
}

func (s Summary) InsightDescription() string {
	if s.Total == 0 {
		return "Add your first purchase to start tracking warranties."
	}

	var tail string
	switch p := s.InsightPercent(); {
	case p < 13:
		tail = "There's room to improve!"
	case p < 38:
		tail = "Keep tracking your purchases!"
	case p < 63:
		tail = "You're doing well!"
	case p < 88:
		tail = "Keep it up!"
	default:
		tail = "Outstanding work!"
	}
	return fmt.Sprintf("You returned %d of %d items. %s", s.Returned, s.Total, tail)
}

// Compute counts purchases whose purchase date falls in the same month (or
// year) as now, in now's location.
func Compute(purchases []models.Purchase, now time.Time, period Period) Summary {
	sum := Summary{Period: period}

	for _, p := range purchases {
		if !inPeriod(p.PurchaseDate, now, period) {
			continue
		}
		sum.Total++

		switch warranty.ComputeStatus(p, now) {
		case warranty.StatusActiveWarranty:
			sum.Active++
		case warranty.StatusExpiresSoon:
			sum.ExpiresSoon++
		case warranty.StatusOutOfWarranty:
			sum.Expired++
		}

		if p.IsReturned {
			sum.Returned++
		} else if warranty.DaysBetween(p.PurchaseDate, now) <= ReturnWindowDays {
			sum.ReturnAvailable++
		}
	}

	return sum
}

func inPeriod(t, now time.Time, period Period) bool {
	t = t.In(now.Location())
	if t.Year() != now.Year() {
		return false
	}
	return period == Year || t.Month() == now.Month()
}

// ReturnDeadline is the last day an item can be returned to the shop.
func ReturnDeadline(p models.Purchase) time.Time {
	return p.PurchaseDate.AddDate(0, 0, ReturnWindowDays)
}

// ReturnDaysLeft is the number of calendar days until ReturnDeadline,
// never negative.
func ReturnDaysLeft(p models.Purchase, now time.Time) int {
	return max(0, warranty.DaysBetween(now, ReturnDeadline(p)))
}
