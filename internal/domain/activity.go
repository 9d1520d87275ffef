package domain

import "time"

// ActivityCandidate is one activity proposed for a trip: a place to visit,
// with a fixed visit duration, category tags, opening hours and popularity
// signals. It is immutable input to a scheduling pass.
type ActivityCandidate struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Location        Coordinates    `json:"location"`
	DurationMinutes int            `json:"duration_minutes"`
	Categories      []string       `json:"categories,omitempty"`
	Hours           WeeklySchedule `json:"hours"`
	Rating          float64        `json:"rating,omitempty"`
	ReviewCount     int            `json:"review_count,omitempty"`
	MustSee         bool           `json:"must_see,omitempty"`
}

// HasCategory reports whether the candidate carries the given category tag.
func (a ActivityCandidate) HasCategory(tag string) bool {
	for _, c := range a.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// Duration returns the visit duration as a time.Duration.
func (a ActivityCandidate) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

// ScheduledActivity is a candidate plus its placement outcome. Start and end
// are nil while the activity has not been placed; that is a reportable
// outcome, not an error. A non-empty Warning flags a placement the
// opening-hours re-check found infeasible.
type ScheduledActivity struct {
	ActivityCandidate

	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	TransitMinutes int        `json:"transit_minutes"`
	Warning        string     `json:"warning,omitempty"`
}

// NewSchedule wraps candidates into unplaced scheduled records.
func NewSchedule(candidates []ActivityCandidate) []*ScheduledActivity {
	out := make([]*ScheduledActivity, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, &ScheduledActivity{ActivityCandidate: c})
	}
	return out
}

// Placed reports whether the activity has been committed to a time slot.
func (s *ScheduledActivity) Placed() bool {
	return s.StartTime != nil && s.EndTime != nil
}

// Reset returns the activity to its unplaced state.
func (s *ScheduledActivity) Reset() {
	s.StartTime = nil
	s.EndTime = nil
	s.TransitMinutes = 0
	s.Warning = ""
}

// Commit records a placement decision.
func (s *ScheduledActivity) Commit(start, end time.Time, transitMinutes int) {
	s.StartTime = &start
	s.EndTime = &end
	s.TransitMinutes = transitMinutes
}
