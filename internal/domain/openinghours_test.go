package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func point(day, hour, minute int) ClockPoint {
	return ClockPoint{Day: ip(day), Hour: ip(hour), Minute: ip(minute)}
}

func pointPtr(day, hour, minute int) *ClockPoint {
	p := point(day, hour, minute)
	return &p
}

// 2026-08-24 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, 8, 24, hour, minute, 0, 0, time.UTC)
}

func tuesday(hour, minute int) time.Time {
	return time.Date(2026, 8, 25, hour, minute, 0, 0, time.UTC)
}

func TestAlwaysOpenSchedule(t *testing.T) {
	s := WeeklySchedule{Periods: []Period{{Open: point(0, 0, 0)}}}

	for day := 0; day < 7; day++ {
		instant := monday(3, 17).AddDate(0, 0, day)
		assert.True(t, s.IsOpenAt(instant, time.UTC), "day offset %d", day)
	}
	assert.True(t, s.CoversWindow(monday(22, 0), tuesday(4, 0), time.UTC))
}

func TestOvernightPeriod(t *testing.T) {
	// Open Monday 17:00, close Tuesday 02:00.
	s := WeeklySchedule{Periods: []Period{
		{Open: point(1, 17, 0), Close: pointPtr(2, 2, 0)},
	}}

	tests := []struct {
		name    string
		instant time.Time
		open    bool
	}{
		{"monday evening", monday(23, 0), true},
		{"past midnight", tuesday(0, 30), true},
		{"late tail", tuesday(1, 30), true},
		{"after close", tuesday(2, 15), false},
		{"monday before open", monday(12, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.open, s.IsOpenAt(tc.instant, time.UTC))
		})
	}

	assert.True(t, s.CoversWindow(monday(23, 0), tuesday(1, 0), time.UTC))
	assert.False(t, s.CoversWindow(monday(23, 0), tuesday(2, 30), time.UTC))
}

func TestSplitHoursSchedule(t *testing.T) {
	s := WeeklySchedule{Periods: []Period{
		{Open: point(1, 11, 30), Close: pointPtr(1, 14, 30)},
		{Open: point(1, 17, 0), Close: pointPtr(1, 22, 0)},
	}}

	assert.True(t, s.IsOpenAt(monday(12, 0), time.UTC))
	assert.False(t, s.IsOpenAt(monday(15, 0), time.UTC))
	assert.True(t, s.IsOpenAt(monday(18, 0), time.UTC))

	// A window must fit inside a single period.
	assert.True(t, s.CoversWindow(monday(12, 0), monday(14, 0), time.UTC))
	assert.False(t, s.CoversWindow(monday(14, 0), monday(17, 30), time.UTC))
}

func TestBoundaryInclusivity(t *testing.T) {
	s := WeeklySchedule{Periods: []Period{
		{Open: point(1, 9, 0), Close: pointPtr(1, 17, 0)},
	}}

	assert.True(t, s.IsOpenAt(monday(9, 0), time.UTC), "open boundary is inclusive")
	assert.False(t, s.IsOpenAt(monday(17, 0), time.UTC), "close boundary is exclusive")
	assert.True(t, s.CoversWindow(monday(16, 0), monday(17, 0), time.UTC),
		"window may end exactly at closing time")
	assert.False(t, s.CoversWindow(monday(16, 30), monday(17, 30), time.UTC))
}

func TestEmptyScheduleIsClosed(t *testing.T) {
	s := WeeklySchedule{}

	assert.False(t, s.IsOpenAt(monday(12, 0), time.UTC))
	assert.False(t, s.CoversWindow(monday(12, 0), monday(13, 0), time.UTC))
	assert.Nil(t, s.NextOpeningAfter(monday(12, 0), time.UTC))
}

func TestMalformedPeriodIsClosed(t *testing.T) {
	s := WeeklySchedule{Periods: []Period{
		{
			Open:  ClockPoint{Day: ip(1), Hour: ip(9)}, // minute missing
			Close: pointPtr(1, 17, 0),
		},
	}}

	assert.False(t, s.IsOpenAt(monday(12, 0), time.UTC))
	assert.False(t, s.CoversWindow(monday(12, 0), monday(13, 0), time.UTC))
}

func TestNextOpeningAfter(t *testing.T) {
	s := WeeklySchedule{Periods: []Period{
		{Open: point(1, 9, 0), Close: pointPtr(1, 17, 0)},
	}}

	next := s.NextOpeningAfter(monday(18, 0), time.UTC)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), *next,
		"after closing, the next opening is the following Monday")

	sunday := time.Date(2026, 8, 23, 8, 0, 0, 0, time.UTC)
	next = s.NextOpeningAfter(sunday, time.UTC)
	require.NotNil(t, next)
	assert.Equal(t, monday(9, 0), *next)
}

func TestTimezoneConversion(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	s := WeeklySchedule{Periods: []Period{
		{Open: point(1, 9, 0), Close: pointPtr(1, 17, 0)},
	}}

	// 08:30 UTC is 10:30 in Madrid (CEST) on 2026-08-24.
	assert.True(t, s.IsOpenAt(time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC), madrid))
	// 06:30 UTC is 08:30 local, before opening.
	assert.False(t, s.IsOpenAt(time.Date(2026, 8, 24, 6, 30, 0, 0, time.UTC), madrid))
}
