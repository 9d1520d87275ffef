package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"itinerary-scheduler-service/internal/domain"
)

func TestEstimateWalkMinutes(t *testing.T) {
	origin := domain.Coordinates{Lat: 0, Lng: 0}

	assert.Equal(t, 0, EstimateWalkMinutes(origin, origin))

	// ~1km north at 4 km/h is 15 minutes.
	km := domain.Coordinates{Lat: 0.008993, Lng: 0}
	assert.Equal(t, 15, EstimateWalkMinutes(origin, km))
	assert.Equal(t, 15, EstimateWalkMinutes(km, origin), "estimate is symmetric")

	// ~250m rounds to 4 minutes (3.75).
	near := domain.Coordinates{Lat: 0.0022482, Lng: 0}
	assert.Equal(t, 4, EstimateWalkMinutes(origin, near))
}
