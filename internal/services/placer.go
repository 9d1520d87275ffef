package services

import (
	"sort"
	"time"

	"itinerary-scheduler-service/internal/domain"
)

// dayParts are the fixed non-meal search windows within a trip day.
var dayParts = []struct {
	kind      domain.SlotKind
	startHour int
	endHour   int
}{
	{domain.SlotMorning, 9, 12},
	{domain.SlotAfternoon, 12, 17},
	{domain.SlotEvening, 17, 21},
}

// PlaceActivities tries to place every still-unplaced non-restaurant
// activity into the given day, enumerating day-part slots at half-hour ticks
// and committing the best-scoring feasible placement per activity. Activities
// with no feasible placement stay unplaced and are retried on later days.
func PlaceActivities(day time.Time, loc *time.Location, activities []*domain.ScheduledActivity, weights ScoreWeights) {
	local := day.In(loc)

	// Must-see activities pick first; the order is otherwise the caller's,
	// kept stable for determinism.
	pool := make([]*domain.ScheduledActivity, len(activities))
	copy(pool, activities)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].MustSee && !pool[j].MustSee
	})

	for _, a := range pool {
		if a.Placed() || InferCategory(a.ActivityCandidate) == CategoryRestaurant {
			continue
		}

		best := PlacementScore{Total: infeasibleScore}
		found := false

		for _, part := range dayParts {
			slot := domain.TimeSlot{
				Start: time.Date(local.Year(), local.Month(), local.Day(), part.startHour, 0, 0, 0, loc),
				End:   time.Date(local.Year(), local.Month(), local.Day(), part.endHour, 0, 0, 0, loc),
				Kind:  part.kind,
			}

			step := time.Duration(placementStepMinutes) * time.Minute
			for tick := slot.Start; tick.Before(slot.End); tick = tick.Add(step) {
				prev := latestEndingBy(activities, day, tick, loc)
				transit := 0
				if prev != nil {
					transit = EstimateWalkMinutes(prev.Location, a.Location)
				}

				start := roundUpToStep(tick.Add(time.Duration(transit)*time.Minute), loc)
				end := start.Add(a.Duration())
				if end.After(slot.End) {
					continue
				}
				if conflictsWithDay(activities, a, start, end, day, loc) {
					continue
				}
				if !a.Hours.CoversWindow(start, end, loc) {
					continue
				}

				score := scorePlacement(
					a.ActivityCandidate, start, end, transit, slot,
					placedOn(activities, day, loc), loc, weights,
				)
				if score.Total > best.Total {
					best = score
					found = true
				}
			}
		}

		if found && best.Total >= 0 {
			a.Commit(best.Start, best.End, best.TransitMinutes)
		}
	}
}

// conflictsWithDay reports whether a candidate [start, end) placement for
// activity a collides with any placement already committed on the day.
// Transit time is a hard buffer: a preceding activity must leave enough time
// to walk over, and the candidate must leave enough time to reach whatever
// follows it.
func conflictsWithDay(
	activities []*domain.ScheduledActivity,
	a *domain.ScheduledActivity,
	start, end time.Time,
	day time.Time,
	loc *time.Location,
) bool {
	for _, p := range placedOn(activities, day, loc) {
		if start.Before(*p.EndTime) && p.StartTime.Before(end) {
			return true
		}
		if !p.EndTime.After(start) {
			buffer := time.Duration(EstimateWalkMinutes(p.Location, a.Location)) * time.Minute
			if p.EndTime.Add(buffer).After(start) {
				return true
			}
		}
		if !end.After(*p.StartTime) {
			buffer := time.Duration(EstimateWalkMinutes(a.Location, p.Location)) * time.Minute
			if end.Add(buffer).After(*p.StartTime) {
				return true
			}
		}
	}
	return false
}
