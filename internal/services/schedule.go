package services

import (
	"sort"
	"time"

	"itinerary-scheduler-service/internal/domain"
)

// Placement granularity: candidate starts snap to half-hour boundaries.
const placementStepMinutes = 30

// roundUpToStep rounds t up to the next placement boundary on its local
// wall clock. Already-aligned instants are returned unchanged.
func roundUpToStep(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	minutes := lt.Hour()*60 + lt.Minute()
	if lt.Second() > 0 || lt.Nanosecond() > 0 {
		minutes++
	}
	rounded := (minutes + placementStepMinutes - 1) / placementStepMinutes * placementStepMinutes
	return time.Date(lt.Year(), lt.Month(), lt.Day(), rounded/60, rounded%60, 0, 0, loc)
}

func sameLocalDay(a, b time.Time, loc *time.Location) bool {
	la, lb := a.In(loc), b.In(loc)
	return la.Year() == lb.Year() && la.YearDay() == lb.YearDay()
}

// placedOn returns the activities committed to the given local calendar day.
func placedOn(activities []*domain.ScheduledActivity, day time.Time, loc *time.Location) []*domain.ScheduledActivity {
	var out []*domain.ScheduledActivity
	for _, a := range activities {
		if a.Placed() && sameLocalDay(*a.StartTime, day, loc) {
			out = append(out, a)
		}
	}
	return out
}

// latestEndingBy returns the day's placement with the latest end time at or
// before limit, or nil. Equal end times break deterministically by ID.
func latestEndingBy(activities []*domain.ScheduledActivity, day, limit time.Time, loc *time.Location) *domain.ScheduledActivity {
	var best *domain.ScheduledActivity
	for _, a := range placedOn(activities, day, loc) {
		if a.EndTime.After(limit) {
			continue
		}
		if best == nil || a.EndTime.After(*best.EndTime) ||
			(a.EndTime.Equal(*best.EndTime) && a.ID < best.ID) {
			best = a
		}
	}
	return best
}

// latestPlaced returns the day's most recently ending placement, or nil.
func latestPlaced(activities []*domain.ScheduledActivity, day time.Time, loc *time.Location) *domain.ScheduledActivity {
	var best *domain.ScheduledActivity
	for _, a := range placedOn(activities, day, loc) {
		if best == nil || a.EndTime.After(*best.EndTime) ||
			(a.EndTime.Equal(*best.EndTime) && a.ID < best.ID) {
			best = a
		}
	}
	return best
}

// SortSchedule orders activities by ascending start time. Unplaced records
// sort after every placed one; ties keep their original relative order.
func SortSchedule(activities []*domain.ScheduledActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		a, b := activities[i], activities[j]
		switch {
		case a.StartTime == nil:
			return false
		case b.StartTime == nil:
			return true
		default:
			return a.StartTime.Before(*b.StartTime)
		}
	})
}
