package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"itinerary-scheduler-service/internal/domain"
)

func TestInferCategoryPrecedence(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want Category
	}{
		{"museum beats restaurant", []string{"restaurant", "museum"}, CategoryMuseum},
		{"restaurant beats nightlife", []string{"nightlife", "restaurant"}, CategoryRestaurant},
		{"castle maps to historic", []string{"castle"}, CategoryHistoric},
		{"park beats attraction", []string{"attraction", "garden"}, CategoryPark},
		{"unknown tags default", []string{"quirky"}, CategoryDefault},
		{"no tags default", nil, CategoryDefault},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := domain.ActivityCandidate{Categories: tc.tags}
			assert.Equal(t, tc.want, InferCategory(a))
		})
	}
}

func TestPopularityScore(t *testing.T) {
	assert.InDelta(t, 1.0, popularityScore(domain.ActivityCandidate{Rating: 5, ReviewCount: 1500}), 1e-9)
	assert.InDelta(t, 0.5, popularityScore(domain.ActivityCandidate{Rating: 4, ReviewCount: 500}), 1e-9)
	assert.InDelta(t, 0, popularityScore(domain.ActivityCandidate{Rating: 2.5, ReviewCount: 0}), 1e-9,
		"sub-3 ratings clamp to zero instead of going negative")
}

func TestScorePlacementSubScores(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	slot := domain.TimeSlot{
		Start: day.Add(9 * time.Hour),
		End:   day.Add(12 * time.Hour),
		Kind:  domain.SlotMorning,
	}
	a := domain.ActivityCandidate{
		ID:              "m1",
		DurationMinutes: 90,
		Categories:      []string{"museum"},
		Rating:          5,
		ReviewCount:     2000,
	}

	score := scorePlacement(a, slot.Start, slot.Start.Add(90*time.Minute), 30, slot, nil, time.UTC, DefaultScoreWeights())

	assert.InDelta(t, 0.5, score.Transit, 1e-9, "30 of 60 ceiling minutes")
	assert.InDelta(t, 1.0, score.TimeOfDay, 1e-9, "museums prefer mornings")
	assert.InDelta(t, 1.0, score.Popularity, 1e-9)
	assert.InDelta(t, 0.5, score.Clustering, 1e-9, "no neighbors is neutral")
	assert.InDelta(t, 0.5, score.SlotUsage, 1e-9, "90 of 180 available minutes")
	assert.Greater(t, score.Total, 0.0)
}

func TestScorePlacementTransitCeiling(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	slot := domain.TimeSlot{Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour), Kind: domain.SlotMorning}
	a := domain.ActivityCandidate{DurationMinutes: 60}

	score := scorePlacement(a, slot.Start, slot.Start.Add(time.Hour), 90, slot, nil, time.UTC, DefaultScoreWeights())
	assert.InDelta(t, 0, score.Transit, 1e-9, "transit cost caps at the 60-minute ceiling")
}

func TestScorePlacementOverlapSentinel(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	slot := domain.TimeSlot{Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour), Kind: domain.SlotMorning}

	start := day.Add(10 * time.Hour)
	end := day.Add(11 * time.Hour)
	other := &domain.ScheduledActivity{ActivityCandidate: domain.ActivityCandidate{ID: "x"}}
	other.Commit(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute), 0)

	a := domain.ActivityCandidate{ID: "y", DurationMinutes: 60}
	score := scorePlacement(a, start, end, 0, slot, []*domain.ScheduledActivity{other}, time.UTC, DefaultScoreWeights())

	assert.Equal(t, float64(infeasibleScore), score.Total)
	assert.Zero(t, score.Transit)
	assert.Zero(t, score.TimeOfDay)
}

func TestTagOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, tagOverlap([]string{"a", "b"}, []string{"b", "a"}), 1e-9)
	assert.InDelta(t, 1.0/3, tagOverlap([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.InDelta(t, 0, tagOverlap([]string{"a"}, []string{"b"}), 1e-9)
	assert.InDelta(t, 0, tagOverlap(nil, nil), 1e-9)
}
