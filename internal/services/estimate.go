package services

import (
	"math"

	"itinerary-scheduler-service/internal/domain"
)

// Assumed walking pace for the synchronous estimate.
const walkingSpeedKmh = 4.0

// EstimateWalkMinutes returns a deterministic great-circle walking-time
// estimate between two coordinates, rounded to whole minutes.
//
// This is intentionally an approximation with zero I/O: the placement search
// calls it for every candidate slot, so it only has to rank placements
// consistently within one pass, not match the precise transit resolver.
func EstimateWalkMinutes(from, to domain.Coordinates) int {
	meters := from.DistanceMeters(to)
	metersPerMinute := walkingSpeedKmh * 1000 / 60
	return int(math.Round(meters / metersPerMinute))
}
