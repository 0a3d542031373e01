// Package calendar talks to the backend calendar API: connection
// status, authorization URLs, and pushing plan tasks as events.
package calendar

import (
	"time"

	"github.com/jobjourney/jjprep/internal/plan"
)

// ConnectionStatus reports whether the user's calendar account is
// linked. Transient: re-fetched on demand, never cached across runs.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Email     string `json:"email,omitempty"`
}

// PushTask is the wire form of a plan task. Resources deliberately has
// no field here: it never leaves the client.
type PushTask struct {
	Title    string `json:"title"`
	Type     string `json:"type,omitempty"`
	Duration int    `json:"duration,omitempty"` // minutes
	Gap      string `json:"gap,omitempty"`
}

// PushDay is one plan day in a push body, capped at
// plan.MaxPreviewTasks tasks.
type PushDay struct {
	Day   int        `json:"day"`
	Tasks []PushTask `json:"tasks"`
}

// PushRequest is the body of POST /calendar/push. Exactly one of
// PlanID or Plan is set: PlanID for server-resident plans, an inlined
// Plan for client-ephemeral ones.
type PushRequest struct {
	StartDate            string    `json:"startDate"`
	Timezone             string    `json:"timezone"`
	StartHours           []int     `json:"startHours"`
	EventDurationMinutes int       `json:"eventDurationMinutes"`
	PlanID               string    `json:"planId,omitempty"`
	Plan                 []PushDay `json:"plan,omitempty"`
}

// PushResult is the 2xx response of POST /calendar/push.
type PushResult struct {
	CreatedCount int `json:"createdCount"`
}

// BuildPushRequest assembles a push body for the plan. Server-resident
// plans are referenced by id; local plans inline their days with at
// most plan.MaxPreviewTasks tasks each.
func BuildPushRequest(p *plan.Plan, startDate, timezone string, startHours []int, eventDurationMinutes int) PushRequest {
	req := PushRequest{
		StartDate:            startDate,
		Timezone:             timezone,
		StartHours:           append([]int(nil), startHours...),
		EventDurationMinutes: eventDurationMinutes,
	}

	if !p.IsLocal() {
		req.PlanID = p.ID
		return req
	}

	req.Plan = make([]PushDay, 0, len(p.Days))
	for _, d := range p.Days {
		tasks := plan.FirstTasks(d.Tasks, plan.MaxPreviewTasks)
		wire := make([]PushTask, 0, len(tasks))
		for _, t := range tasks {
			wire = append(wire, PushTask{
				Title:    t.Title,
				Type:     t.Type,
				Duration: t.DurationMinutes,
				Gap:      t.Gap,
			})
		}
		req.Plan = append(req.Plan, PushDay{Day: d.Day, Tasks: wire})
	}
	return req
}

// ResolveTimezone returns the runtime's local IANA zone name, or
// fallback when it cannot be resolved to a real zone name.
func ResolveTimezone(fallback string) string {
	name := time.Now().Location().String()
	if name == "" || name == "Local" {
		return fallback
	}
	return name
}
