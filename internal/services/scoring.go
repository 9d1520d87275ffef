package services

import (
	"math"
	"time"

	"itinerary-scheduler-service/internal/domain"
)

// Sentinel total for a placement the overlap double-check rejected. Any
// feasible placement scores >= 0 and wins a "keep best" comparison over it.
const infeasibleScore = -1

// ScoreWeights are the fixed multipliers combining the five sub-scores.
type ScoreWeights struct {
	Transit    float64
	TimeOfDay  float64
	Popularity float64
	Clustering float64
	SlotUsage  float64
}

// DefaultScoreWeights returns the production weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Transit:    0.30,
		TimeOfDay:  0.20,
		Popularity: 0.10,
		Clustering: 0.15,
		SlotUsage:  0.25,
	}
}

// PlacementScore is the outcome of evaluating one candidate (start, end)
// pair, including the sub-scores that produced the total.
type PlacementScore struct {
	Total          float64
	Start          time.Time
	End            time.Time
	TransitMinutes int

	Transit    float64
	TimeOfDay  float64
	Popularity float64
	Clustering float64
	SlotUsage  float64
}

// Category is the inferred activity kind used for time-of-day preferences.
type Category string

const (
	CategoryMuseum     Category = "museum"
	CategoryPark       Category = "park"
	CategoryBeach      Category = "beach"
	CategoryRestaurant Category = "restaurant"
	CategoryNightlife  Category = "nightlife"
	CategorySpa        Category = "spa"
	CategoryHistoric   Category = "historic"
	CategoryAttraction Category = "attraction"
	CategoryDefault    Category = "default"
)

// categoryRules is an ordered predicate chain; the first rule whose tags
// intersect the activity's categories wins, so precedence stays explicit.
var categoryRules = []struct {
	category Category
	tags     []string
}{
	{CategoryMuseum, []string{"museum", "gallery", "art", "exhibition"}},
	{CategoryPark, []string{"park", "garden", "nature"}},
	{CategoryBeach, []string{"beach"}},
	{CategoryRestaurant, []string{"restaurant", "food", "cafe", "dining"}},
	{CategoryNightlife, []string{"bar", "club", "nightlife", "pub"}},
	{CategorySpa, []string{"spa", "wellness"}},
	{CategoryHistoric, []string{"historic", "monument", "temple", "church", "castle"}},
	{CategoryAttraction, []string{"attraction", "landmark", "viewpoint"}},
}

// InferCategory maps an activity's tags to a scoring category.
func InferCategory(a domain.ActivityCandidate) Category {
	for _, rule := range categoryRules {
		for _, tag := range rule.tags {
			if a.HasCategory(tag) {
				return rule.category
			}
		}
	}
	return CategoryDefault
}

// Coarse time-of-day buckets: morning before 12:00, afternoon before 17:00,
// evening otherwise.
const (
	bucketMorning = iota
	bucketAfternoon
	bucketEvening
)

func bucketOf(t time.Time, loc *time.Location) int {
	switch h := t.In(loc).Hour(); {
	case h < 12:
		return bucketMorning
	case h < 17:
		return bucketAfternoon
	default:
		return bucketEvening
	}
}

// Preference per category for [morning, afternoon, evening] starts.
var timeOfDayPrefs = map[Category][3]float64{
	CategoryMuseum:     {1.0, 0.8, 0.3},
	CategoryPark:       {0.9, 1.0, 0.5},
	CategoryBeach:      {0.8, 1.0, 0.6},
	CategoryRestaurant: {0.6, 0.8, 1.0},
	CategoryNightlife:  {0.1, 0.3, 1.0},
	CategorySpa:        {0.5, 0.9, 0.8},
	CategoryHistoric:   {1.0, 0.9, 0.4},
	CategoryAttraction: {0.8, 1.0, 0.7},
	CategoryDefault:    {0.7, 0.8, 0.7},
}

const (
	transitCeilingMinutes = 60.0
	clusterWindow         = 3 * time.Hour
	clusterNeutral        = 0.5
	reviewCountSaturation = 1000.0
)

// scorePlacement evaluates one candidate placement against the activities
// already committed on the same day.
func scorePlacement(
	a domain.ActivityCandidate,
	start, end time.Time,
	transitMinutes int,
	slot domain.TimeSlot,
	placed []*domain.ScheduledActivity,
	loc *time.Location,
	weights ScoreWeights,
) PlacementScore {
	// Overlap is rejected by the placer before scoring; re-check here as a
	// safety net so a bug upstream can never commit a conflicting slot.
	for _, p := range placed {
		if !p.Placed() {
			continue
		}
		if start.Before(*p.EndTime) && p.StartTime.Before(end) {
			return PlacementScore{Total: infeasibleScore, Start: start, End: end, TransitMinutes: transitMinutes}
		}
	}

	transitScore := 1 - math.Min(float64(transitMinutes)/transitCeilingMinutes, 1)
	todScore := timeOfDayPrefs[InferCategory(a)][bucketOf(start, loc)]
	popScore := popularityScore(a)
	clusterScore := clusteringScore(a, start, placed)
	usageScore := slotUsageScore(a, start, slot)

	total := weights.Transit*transitScore +
		weights.TimeOfDay*todScore +
		weights.Popularity*popScore +
		weights.Clustering*clusterScore +
		weights.SlotUsage*usageScore

	return PlacementScore{
		Total:          total,
		Start:          start,
		End:            end,
		TransitMinutes: transitMinutes,
		Transit:        transitScore,
		TimeOfDay:      todScore,
		Popularity:     popScore,
		Clustering:     clusterScore,
		SlotUsage:      usageScore,
	}
}

// popularityScore maps a 3-5 star rating to [0,1] and saturates review
// counts at 1000, averaging the two signals.
func popularityScore(a domain.ActivityCandidate) float64 {
	rating := clamp01((a.Rating - 3) / 2)
	reviews := math.Min(float64(a.ReviewCount)/reviewCountSaturation, 1)
	return (rating + reviews) / 2
}

// clusteringScore rewards placements near (in time and in topic) already
// scheduled activities. Isolated placements get a neutral 0.5.
func clusteringScore(a domain.ActivityCandidate, start time.Time, placed []*domain.ScheduledActivity) float64 {
	var sum float64
	var n int
	for _, p := range placed {
		if !p.Placed() {
			continue
		}
		gap := start.Sub(*p.StartTime)
		if gap < 0 {
			gap = -gap
		}
		if gap > clusterWindow {
			continue
		}
		overlap := tagOverlap(a.Categories, p.Categories)
		decay := 1 - float64(gap)/float64(clusterWindow)
		sum += (overlap + decay) / 2
		n++
	}
	if n == 0 {
		return clusterNeutral
	}
	return sum / float64(n)
}

// tagOverlap is the Jaccard ratio of two category-tag sets.
func tagOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	union := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		union[t] = struct{}{}
	}
	shared := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			shared++
		}
		union[t] = struct{}{}
	}
	return float64(shared) / float64(len(union))
}

// slotUsageScore rewards placements that fill the window actually available
// to them (adjusted start through slot end) instead of leaving idle gaps.
func slotUsageScore(a domain.ActivityCandidate, start time.Time, slot domain.TimeSlot) float64 {
	window := slot.End.Sub(start)
	if window <= 0 {
		return 0
	}
	return math.Min(float64(a.Duration())/float64(window), 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
