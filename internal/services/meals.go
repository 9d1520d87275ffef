package services

import (
	"time"

	"itinerary-scheduler-service/internal/domain"
)

// mealWindow is one fixed meal convention for a trip day.
type mealWindow struct {
	name            string
	startHour       int
	startMinute     int
	endHour         int
	endMinute       int
	durationMinutes int
}

var defaultMealWindows = []mealWindow{
	{name: "breakfast", startHour: 8, startMinute: 0, endHour: 11, endMinute: 30, durationMinutes: 60},
	{name: "lunch", startHour: 11, startMinute: 30, endHour: 16, endMinute: 0, durationMinutes: 60},
	{name: "dinner", startHour: 17, startMinute: 0, endHour: 22, endMinute: 0, durationMinutes: 60},
}

// ScheduleMeals places unplaced restaurant-category activities into the
// day's breakfast/lunch/dinner windows, in that order.
//
// For each window the eligible restaurants are those whose opening hours
// cover the window's nominal start through start+duration; among those the
// one nearest (by walking estimate) to the day's most recent placement wins,
// with an ID tie-break for determinism. The committed start is the nominal
// start shifted by transit and rounded up to the next half-hour boundary.
func ScheduleMeals(day time.Time, loc *time.Location, activities []*domain.ScheduledActivity) {
	local := day.In(loc)

	for _, w := range defaultMealWindows {
		windowStart := time.Date(local.Year(), local.Month(), local.Day(), w.startHour, w.startMinute, 0, 0, loc)
		duration := time.Duration(w.durationMinutes) * time.Minute

		prev := latestPlaced(activities, day, loc)

		var best *domain.ScheduledActivity
		bestTransit := 0
		for _, a := range activities {
			if a.Placed() || InferCategory(a.ActivityCandidate) != CategoryRestaurant {
				continue
			}
			if !a.Hours.CoversWindow(windowStart, windowStart.Add(duration), loc) {
				continue
			}

			transit := 0
			if prev != nil {
				transit = EstimateWalkMinutes(prev.Location, a.Location)
			}
			if best == nil || transit < bestTransit ||
				(transit == bestTransit && a.ID < best.ID) {
				best = a
				bestTransit = transit
			}
		}
		if best == nil {
			continue
		}

		start := roundUpToStep(windowStart.Add(time.Duration(bestTransit)*time.Minute), loc)
		best.Commit(start, start.Add(best.Duration()), bestTransit)
	}
}
