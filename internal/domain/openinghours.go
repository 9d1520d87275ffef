package domain

import "time"

// How far NextOpeningAfter scans before giving up.
const nextOpeningHorizonDays = 7

// ClockPoint is one endpoint of a weekly-recurring period. Day is 0 (Sunday)
// through 6 (Saturday). Fields are pointers because upstream venue data may
// legitimately omit them; a point with missing fields is unusable and the
// period it belongs to is treated as closed.
type ClockPoint struct {
	Day    *int `json:"day,omitempty"`
	Hour   *int `json:"hour,omitempty"`
	Minute *int `json:"minute,omitempty"`
}

func (p *ClockPoint) usable() bool {
	return p != nil &&
		p.Day != nil && p.Hour != nil && p.Minute != nil &&
		*p.Day >= 0 && *p.Day <= 6
}

// Period is one weekly-recurring open/close interval. A nil close on the
// schedule's sole period means the venue never closes. A close on a different
// day than the open spans midnight (overnight period).
type Period struct {
	Open  ClockPoint  `json:"open"`
	Close *ClockPoint `json:"close,omitempty"`
}

func (p Period) overnight() bool {
	return p.Close != nil && p.Close.Day != nil && p.Open.Day != nil &&
		*p.Close.Day != *p.Open.Day
}

// bounds anchors the period to the local calendar day containing ref and
// returns its concrete open/close instants. ok is false when the period does
// not apply to that day. An overnight period applies both to its open day and
// to its close day (the tail of last night's interval past midnight).
func (p Period) bounds(ref time.Time, loc *time.Location) (open, close time.Time, ok bool) {
	local := ref.In(loc)
	localDay := int(local.Weekday())

	anchor := local
	switch {
	case localDay == *p.Open.Day:
	case p.overnight() && localDay == *p.Close.Day:
		anchor = local.AddDate(0, 0, -1)
	default:
		return time.Time{}, time.Time{}, false
	}

	open = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), *p.Open.Hour, *p.Open.Minute, 0, 0, loc)

	closeDate := anchor
	if p.overnight() {
		closeDate = anchor.AddDate(0, 0, 1)
	}
	close = time.Date(closeDate.Year(), closeDate.Month(), closeDate.Day(), *p.Close.Hour, *p.Close.Minute, 0, 0, loc)

	return open, close, true
}

// WeeklySchedule is a venue's full set of weekly-recurring opening periods.
// An empty schedule means the venue is always closed.
type WeeklySchedule struct {
	Periods []Period `json:"periods,omitempty"`
}

// AlwaysOpen reports the 24/7 convention: a single period with a usable open
// point and no close point.
func (s WeeklySchedule) AlwaysOpen() bool {
	return len(s.Periods) == 1 && s.Periods[0].Close == nil && (&s.Periods[0].Open).usable()
}

// IsOpenAt reports whether the venue is open at instant, interpreted in the
// trip's local timezone. Open is inclusive, close exclusive. Periods with
// missing open or close fields count as closed rather than failing.
func (s WeeklySchedule) IsOpenAt(instant time.Time, loc *time.Location) bool {
	if len(s.Periods) == 0 {
		return false
	}
	if s.AlwaysOpen() {
		return true
	}

	for _, p := range s.Periods {
		if !(&p.Open).usable() || !p.Close.usable() {
			continue
		}
		open, close, ok := p.bounds(instant, loc)
		if !ok {
			continue
		}
		if !instant.Before(open) && instant.Before(close) {
			return true
		}
	}
	return false
}

// NextOpeningAfter scans forward day by day and returns the earliest open
// instant strictly after instant, or nil when none exists within the horizon.
// Callers treat nil as "could not determine" and surface a generic warning.
func (s WeeklySchedule) NextOpeningAfter(instant time.Time, loc *time.Location) *time.Time {
	if s.AlwaysOpen() {
		t := instant
		return &t
	}

	local := instant.In(loc)
	for offset := 0; offset <= nextOpeningHorizonDays; offset++ {
		day := local.AddDate(0, 0, offset)

		var earliest *time.Time
		for _, p := range s.Periods {
			if !(&p.Open).usable() || *p.Open.Day != int(day.Weekday()) {
				continue
			}
			cand := time.Date(day.Year(), day.Month(), day.Day(), *p.Open.Hour, *p.Open.Minute, 0, 0, loc)
			if !cand.After(instant) {
				continue
			}
			if earliest == nil || cand.Before(*earliest) {
				earliest = &cand
			}
		}
		if earliest != nil {
			return earliest
		}
	}
	return nil
}

// CoversWindow reports whether a single period keeps the venue open for the
// whole [start, end) window. Stricter than IsOpenAt: both endpoints must fall
// within the same period, so a window ending exactly at closing time passes
// but one straddling a split-hours gap does not.
func (s WeeklySchedule) CoversWindow(start, end time.Time, loc *time.Location) bool {
	if len(s.Periods) == 0 {
		return false
	}
	if s.AlwaysOpen() {
		return true
	}

	for _, p := range s.Periods {
		if !(&p.Open).usable() || !p.Close.usable() {
			continue
		}
		open, close, ok := p.bounds(start, loc)
		if !ok {
			continue
		}
		if !start.Before(open) && start.Before(close) && !end.After(close) {
			return true
		}
	}
	return false
}
