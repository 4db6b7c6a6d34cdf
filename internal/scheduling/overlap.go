// Package scheduling implements the appointment overlap rule. It is the only
// domain rule that can block a write, so it lives apart from the handlers and
// works on plain values to stay testable without a database.
package scheduling

import (
	"time"
)

// Slot is an occupied (or proposed) stretch of calendar time. Intervals are
// half-open: [Start, Start+Duration). A zero or negative duration falls back
// to the default of 30 minutes.
type Slot struct {
	ID              string
	Start           time.Time
	DurationMinutes int
}

// DefaultDurationMinutes is assumed when a slot carries no duration.
const DefaultDurationMinutes = 30

// End returns the exclusive end of the slot's interval.
func (s Slot) End() time.Time {
	minutes := s.DurationMinutes
	if minutes <= 0 {
		minutes = DefaultDurationMinutes
	}
	return s.Start.Add(time.Duration(minutes) * time.Minute)
}

// Overlapping reports whether two slots share any point in time. A slot that
// starts exactly when another ends does not overlap it.
func Overlapping(a, b Slot) bool {
	return a.Start.Before(b.End()) && a.End().After(b.Start)
}

// Conflict returns the first slot in existing that overlaps candidate.
// A slot whose ID matches the candidate's is skipped, so an appointment being
// rescheduled never conflicts with its own prior time. Callers are expected
// to pass only active (non-cancelled) slots.
func Conflict(candidate Slot, existing []Slot) (Slot, bool) {
	for _, s := range existing {
		if candidate.ID != "" && s.ID == candidate.ID {
			continue
		}
		if Overlapping(candidate, s) {
			return s, true
		}
	}
	return Slot{}, false
}
