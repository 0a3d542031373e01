package plan

import (
	"context"
)

// Repository defines the storage interface for plans.
type Repository interface {
	// CreatePlan stores a plan and its day tasks.
	// Returns ErrDuplicateID if the id is already taken.
	CreatePlan(ctx context.Context, p *Plan) error

	// GetPlan retrieves a plan by id, nil if not found.
	GetPlan(ctx context.Context, id string) (*Plan, error)

	// ListPlans returns all stored plans, most recent first.
	ListPlans(ctx context.Context) ([]*Plan, error)

	// DeletePlan removes a plan and its tasks.
	// Returns ErrPlanNotFound if no plan has the id.
	DeletePlan(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
