package calendar

import (
	"context"
	"errors"

	"github.com/jobjourney/jjprep/internal/plan"
)

// Pusher submits a single push attempt.
type Pusher interface {
	Push(ctx context.Context, req PushRequest) (*PushResult, error)
}

// Authorizer runs an interactive authorization against authURL and
// returns once the completion signal has arrived.
type Authorizer interface {
	Authorize(ctx context.Context, authURL string) error
}

// Orchestrator drives a push through its step-up cycle: attempt,
// authorize on NEEDS_SCOPES, retry. The step-up budget is one per
// invocation; a second NEEDS_SCOPES ends the cycle and is reported,
// so each retry round requires a fresh user action.
type Orchestrator struct {
	pusher     Pusher
	auth       Authorizer
	startHours []int
	duration   int
	tzFallback string
	stepUps    int
}

// NewOrchestrator creates a push orchestrator with a step-up budget of
// one.
func NewOrchestrator(pusher Pusher, auth Authorizer, startHours []int, eventDurationMinutes int, timezoneFallback string) *Orchestrator {
	return &Orchestrator{
		pusher:     pusher,
		auth:       auth,
		startHours: startHours,
		duration:   eventDurationMinutes,
		tzFallback: timezoneFallback,
		stepUps:    1,
	}
}

// Push validates, builds, and submits the push request, transparently
// running one authorize-then-retry cycle when the API demands more
// scopes. The request is rebuilt fresh for the retry.
func (o *Orchestrator) Push(ctx context.Context, p *plan.Plan, startDate string) (*PushResult, error) {
	if startDate == "" {
		return nil, ErrMissingStartDate
	}

	timezone := ResolveTimezone(o.tzFallback)

	stepUps := 0
	for {
		req := BuildPushRequest(p, startDate, timezone, o.startHours, o.duration)

		result, err := o.pusher.Push(ctx, req)
		if err == nil {
			return result, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NeedsScopes() && stepUps < o.stepUps && o.auth != nil {
			stepUps++
			if err := o.auth.Authorize(ctx, apiErr.AuthURL); err != nil {
				return nil, err
			}
			continue
		}

		return nil, err
	}
}
