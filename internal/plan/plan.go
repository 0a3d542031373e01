// Package plan defines the core domain types for jjprep.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyID        = errors.New("plan id cannot be empty")
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrNoDays         = errors.New("plan must contain at least one day")
	ErrBadDayNumber   = errors.New("day numbers must be positive and ascending")
)

// Domain errors.
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrDuplicateID  = errors.New("a plan with this id already exists")
)

// LocalIDPrefix marks client-ephemeral plans that do not exist on the
// server. Pushing such a plan must inline its days instead of sending
// the id.
const LocalIDPrefix = "plan-"

// IsLocalID reports whether id identifies a client-ephemeral plan.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// Task is a single preparation task within a plan day.
// Resources is local reference material and is never transmitted.
type Task struct {
	Title           string `json:"title"`
	Type            string `json:"type,omitempty"`
	DurationMinutes int    `json:"duration,omitempty"`
	Gap             string `json:"gap,omitempty"`
	Resources       string `json:"resources,omitempty"`
}

// DayPlan holds the ordered tasks for one plan day. Day is 1-based.
type DayPlan struct {
	Day   int    `json:"day"`
	Tasks []Task `json:"tasks"`
}

// Plan is a multi-day sequence of preparation tasks. It is immutable
// once loaded; projections copy, they never mutate.
type Plan struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	DurationDays int       `json:"durationDays"`
	Days         []DayPlan `json:"days"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// New creates a Plan with validation. DurationDays defaults to the
// number of days when zero.
func New(id, title string, days []DayPlan) (*Plan, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if len(days) == 0 {
		return nil, ErrNoDays
	}

	prev := 0
	for _, d := range days {
		if d.Day <= prev {
			return nil, fmt.Errorf("%w: day %d after day %d", ErrBadDayNumber, d.Day, prev)
		}
		prev = d.Day
		for _, t := range d.Tasks {
			if strings.TrimSpace(t.Title) == "" {
				return nil, fmt.Errorf("%w: day %d", ErrEmptyTaskTitle, d.Day)
			}
		}
	}

	return &Plan{
		ID:           id,
		Title:        title,
		DurationDays: len(days),
		Days:         days,
		CreatedAt:    time.Now(),
	}, nil
}

// IsLocal reports whether the plan is client-ephemeral.
func (p *Plan) IsLocal() bool {
	return IsLocalID(p.ID)
}

// TaskCount returns the total number of tasks across all days.
func (p *Plan) TaskCount() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.Tasks)
	}
	return n
}

// TotalMinutes returns the summed task durations across all days.
func (p *Plan) TotalMinutes() int {
	n := 0
	for _, d := range p.Days {
		for _, t := range d.Tasks {
			n += t.DurationMinutes
		}
	}
	return n
}

// NewLocalID generates a fresh client-ephemeral plan id.
func NewLocalID(now time.Time) string {
	return fmt.Sprintf("%s%d", LocalIDPrefix, now.UnixMilli())
}
