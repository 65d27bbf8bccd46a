package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain", date(2025, time.January, 1), 6, date(2025, time.July, 1)},
		{"clamp to feb", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"clamp to leap feb", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamp to 30 day month", date(2025, time.March, 31), 1, date(2025, time.April, 30)},
		{"year rollover", date(2025, time.November, 15), 3, date(2026, time.February, 15)},
		{"zero", date(2025, time.May, 5), 0, date(2025, time.May, 5)},
		{"backwards", date(2025, time.March, 31), -1, date(2025, time.February, 28)},
		{"backwards across year", date(2025, time.January, 10), -2, date(2024, time.November, 10)},
		{"hundred years off leap day", date(2024, time.February, 29), 1200, date(2124, time.February, 29)},
		{"hundred years clamps", date(2000, time.February, 29), 1212, date(2101, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(AddMonths(tt.in, tt.n)), "got %v", AddMonths(tt.in, tt.n))
		})
	}
}

func TestAddMonths_KeepsClockAndLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2025, time.January, 31, 14, 30, 15, 7, loc)

	got := AddMonths(in, 1)

	require.Equal(t, loc, got.Location())
	h, m, s := got.Clock()
	assert.Equal(t, []int{14, 30, 15, 7}, []int{h, m, s, got.Nanosecond()})
	assert.Equal(t, 28, got.Day())
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	end := date(2025, time.July, 1)

	early := time.Date(2025, time.June, 28, 0, 1, 0, 0, time.UTC)
	late := time.Date(2025, time.June, 28, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(early, end))
	assert.Equal(t, 3, DaysBetween(late, end))
	assert.Equal(t, -3, DaysBetween(end, late))
}

func TestDaysBetween_UsesEachInstantsOwnCalendarDate(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	// 2025-06-28 06:00 in UTC+10 is still 2025-06-27 in UTC.
	now := time.Date(2025, time.June, 28, 6, 0, 0, 0, east)

	assert.Equal(t, 3, DaysBetween(now, date(2025, time.July, 1)))
}

func TestDaysBetween_AcrossCenturies(t *testing.T) {
	assert.Equal(t, 36525, DaysBetween(date(2000, time.January, 1), date(2100, time.January, 1)))
	assert.Equal(t, 0, civilDay(date(1970, time.January, 1)))
	assert.Equal(t, -1, civilDay(date(1969, time.December, 31)))
}
