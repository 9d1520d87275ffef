package domain

import "time"

// SlotKind labels the day-part a time slot belongs to.
type SlotKind string

const (
	SlotMorning   SlotKind = "morning"
	SlotAfternoon SlotKind = "afternoon"
	SlotEvening   SlotKind = "evening"
	SlotMeal      SlotKind = "meal"
)

// TimeSlot is a fixed day-part window, expressed in the trip's local
// timezone, used to bound the placement search space.
type TimeSlot struct {
	Start time.Time
	End   time.Time
	Kind  SlotKind
}

// Duration returns the window length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
