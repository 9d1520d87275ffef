package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itinerary-scheduler-service/internal/domain"
	"itinerary-scheduler-service/internal/platform/obs"
)

// ScheduleRequest is a full scheduling pass input: the trip's candidate
// activities, an inclusive date range and the trip's timezone.
type ScheduleRequest struct {
	Activities []domain.ActivityCandidate
	Start      time.Time
	End        time.Time
	Timezone   string
}

// ScheduleResult partitions the annotated records into placed and unplaced.
type ScheduleResult struct {
	Scheduled   []*domain.ScheduledActivity
	Unscheduled []*domain.ScheduledActivity
}

// Planner runs the greedy day-by-day scheduling pass. A Planner holds no
// per-trip state, so one instance may serve concurrent rebalances.
type Planner struct {
	Weights ScoreWeights
}

func NewPlanner() *Planner {
	return &Planner{Weights: DefaultScoreWeights()}
}

// Rebalance resets every activity and re-runs meal scheduling and activity
// placement over the full date range, then re-checks each final placement
// against opening hours and attaches a warning where it is infeasible.
//
// The pass is deterministic: identical inputs produce identical placements.
// Infeasible placements, malformed opening hours and missing next-opening
// times are all handled locally; only programmer errors (bad timezone,
// inverted range, non-positive durations) fail the call.
func (p *Planner) Rebalance(ctx context.Context, req ScheduleRequest) (_ *ScheduleResult, err error) {
	defer obs.Time(ctx, "scheduler.Rebalance")(&err)

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, fmt.Errorf("rebalance: load timezone %q: %w", req.Timezone, err)
	}
	if req.End.Before(req.Start) {
		return nil, errors.New("rebalance: date range end precedes start")
	}
	for _, a := range req.Activities {
		if a.DurationMinutes <= 0 {
			return nil, fmt.Errorf("rebalance: activity %q has non-positive duration %d", a.ID, a.DurationMinutes)
		}
	}

	schedule := domain.NewSchedule(req.Activities)

	first := req.Start.In(loc)
	firstDay := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	last := req.End.In(loc)
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, loc)

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		ScheduleMeals(day, loc, schedule)
		PlaceActivities(day, loc, schedule, p.Weights)
	}

	SortSchedule(schedule)
	annotateClosedPlacements(schedule, loc)

	res := &ScheduleResult{}
	for _, a := range schedule {
		if a.Placed() {
			res.Scheduled = append(res.Scheduled, a)
		} else {
			res.Unscheduled = append(res.Unscheduled, a)
		}
	}
	return res, nil
}

// annotateClosedPlacements re-validates committed start times against the
// venue's opening hours. Closed placements keep their slot but carry a
// human-readable warning.
func annotateClosedPlacements(schedule []*domain.ScheduledActivity, loc *time.Location) {
	for _, a := range schedule {
		if !a.Placed() || a.Hours.IsOpenAt(*a.StartTime, loc) {
			continue
		}

		if next := a.Hours.NextOpeningAfter(*a.StartTime, loc); next != nil {
			a.Warning = fmt.Sprintf(
				"closed at the scheduled time; next opens %s",
				next.In(loc).Format("Mon 15:04"),
			)
		} else {
			a.Warning = "opening hours could not be confirmed for the scheduled time"
		}
	}
}
