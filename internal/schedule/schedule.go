// Package schedule maps a day's tasks onto fixed start-hour event slots.
package schedule

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrBadSlotCount  = errors.New("exactly three start hours are required")
	ErrHourOutOfDay  = errors.New("start hours must be between 0 and 23")
	ErrHoursNotOrder = errors.New("start hours must be strictly ascending")
	ErrBadDuration   = errors.New("event duration must be positive")
)

// SlotCount is the number of calendar event slots per day. It matches
// the cap on tasks surfaced per day: task i goes into slot i.
const SlotCount = 3

// Slot is a concrete time range within a day.
type Slot struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// Assigner turns task positions into event slots.
type Assigner struct {
	startHours      []int
	durationMinutes int
}

// New creates an Assigner from the configured start hours and event
// duration.
func New(startHours []int, durationMinutes int) (*Assigner, error) {
	if err := ValidateStartHours(startHours); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, ErrBadDuration
	}
	hours := make([]int, len(startHours))
	copy(hours, startHours)
	return &Assigner{startHours: hours, durationMinutes: durationMinutes}, nil
}

// ValidateStartHours checks the start-hour slot configuration.
func ValidateStartHours(hours []int) error {
	if len(hours) != SlotCount {
		return fmt.Errorf("%w, got %d", ErrBadSlotCount, len(hours))
	}
	prev := -1
	for _, h := range hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("%w, got %d", ErrHourOutOfDay, h)
		}
		if h <= prev {
			return ErrHoursNotOrder
		}
		prev = h
	}
	return nil
}

// Assign returns the slot for the task at the given 0-based position
// within its day. ok is false for positions past the last slot.
func (a *Assigner) Assign(position int) (Slot, bool) {
	if position < 0 || position >= len(a.startHours) {
		return Slot{}, false
	}
	start := a.startHours[position] * 60
	return Slot{
		Start: MinutesToTime(start),
		End:   MinutesToTime(start + a.durationMinutes),
	}, true
}

// Slots returns the slots for the first n task positions of a day.
func (a *Assigner) Slots(n int) []Slot {
	if n > len(a.startHours) {
		n = len(a.startHours)
	}
	out := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		s, _ := a.Assign(i)
		out = append(out, s)
	}
	return out
}

// StartHours returns a copy of the configured start hours.
func (a *Assigner) StartHours() []int {
	out := make([]int, len(a.startHours))
	copy(out, a.startHours)
	return out
}

// DurationMinutes returns the configured event duration.
func (a *Assigner) DurationMinutes() int {
	return a.durationMinutes
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values past the end of the day clamp to 23:59.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
