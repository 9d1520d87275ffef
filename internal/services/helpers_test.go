package services

import (
	"time"

	"itinerary-scheduler-service/internal/domain"
)

func ip(v int) *int { return &v }

func open247() domain.WeeklySchedule {
	return domain.WeeklySchedule{Periods: []domain.Period{
		{Open: domain.ClockPoint{Day: ip(0), Hour: ip(0), Minute: ip(0)}},
	}}
}

func weekly(openDay, oh, om, closeDay, ch, cm int) domain.WeeklySchedule {
	return domain.WeeklySchedule{Periods: []domain.Period{{
		Open:  domain.ClockPoint{Day: ip(openDay), Hour: ip(oh), Minute: ip(om)},
		Close: &domain.ClockPoint{Day: ip(closeDay), Hour: ip(ch), Minute: ip(cm)},
	}}}
}

// 2026-08-24 is a Monday.
func tripMonday() time.Time {
	return time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func restaurant(id string, lng float64, hours domain.WeeklySchedule) domain.ActivityCandidate {
	return domain.ActivityCandidate{
		ID:              id,
		Name:            id,
		Location:        domain.Coordinates{Lat: 0, Lng: lng},
		DurationMinutes: 60,
		Categories:      []string{"restaurant"},
		Hours:           hours,
	}
}
