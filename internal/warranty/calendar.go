package warranty

import "time"

const (
	minYear = 1
	maxYear = 9999
)

// AddMonths moves t by n calendar months, keeping the time of day and
// location. The day is clamped to the last valid day of the target month,
// so Jan 31 + 1 month is Feb 28 (or 29), not Mar 3 as time.AddDate gives.
// Negative n moves backwards with the same clamping.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)

	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// DaysBetween returns the number of calendar days from a to b. Each instant
// is reduced to its calendar date in its own location first, so the time of
// day never changes the result. The value is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return civilDay(b) - civilDay(a)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func inRange(t time.Time) bool {
	y := t.Year()
	return y >= minYear && y <= maxYear
}

// civilDay maps a calendar date to a day count relative to 1970-01-01
// (H. Hinnant's days_from_civil). Integer-only, so it does not hit the
// ~292 year limit of time.Duration.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (int(m) + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
