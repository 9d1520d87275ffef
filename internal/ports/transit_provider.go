package ports

import (
	"context"
	"fmt"
	"time"

	"itinerary-scheduler-service/internal/domain"
)

// Travel distance and duration between two coordinates.
type TransitResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// CoordKey renders a coordinate at 5-decimal (~1m) precision so lookups for
// near-identical points share cache and matrix entries.
func CoordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lng)
}

// PairKey builds the canonical key for an origin/destination pair.
func PairKey(origin, destination domain.Coordinates) string {
	return CoordKey(origin) + "->" + CoordKey(destination)
}

// TransitMatrixProvider is the narrow call shape a precise travel-time
// backend must satisfy: one call covering every origin x destination pair.
type TransitMatrixProvider interface {
	// Durations returns results keyed by PairKey. A pair absent from the map
	// means the provider could not route it; that is a per-pair condition,
	// not a call failure.
	Durations(ctx context.Context, origins, destinations []domain.Coordinates, departAt time.Time) (map[string]TransitResult, error)
}
