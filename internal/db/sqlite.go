// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jobjourney/jjprep/internal/plan"
)

// SQLite implements plan.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreatePlan stores a plan and its day tasks in a single transaction.
// Returns plan.ErrDuplicateID if the id is already taken.
func (s *SQLite) CreatePlan(ctx context.Context, p *plan.Plan) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM plans WHERE id = ?`, p.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking plan id: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", plan.ErrDuplicateID, p.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (id, title, duration_days, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Title, p.DurationDays, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for _, d := range p.Days {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO plan_days (plan_id, day) VALUES (?, ?)`,
			p.ID, d.Day,
		)
		if err != nil {
			return fmt.Errorf("inserting day %d: %w", d.Day, err)
		}

		for pos, t := range d.Tasks {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO plan_tasks (plan_id, day, position, title, type, duration_minutes, gap, resources)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, d.Day, pos, t.Title, t.Type, t.DurationMinutes, t.Gap, t.Resources,
			)
			if err != nil {
				return fmt.Errorf("inserting task %q: %w", t.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetPlan retrieves a plan by id, nil if not found.
func (s *SQLite) GetPlan(ctx context.Context, id string) (*plan.Plan, error) {
	var (
		p         plan.Plan
		createdAt string
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, duration_days, created_at FROM plans WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.DurationDays, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	p.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	p.Days, err = s.loadDays(ctx, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// loadDays loads the ordered day plans for a plan, including days that
// have no tasks.
func (s *SQLite) loadDays(ctx context.Context, planID string) ([]plan.DayPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day FROM plan_days WHERE plan_id = ? ORDER BY day`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []plan.DayPlan
	index := make(map[int]int)
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		index[day] = len(days)
		days = append(days, plan.DayPlan{Day: day})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}

	taskRows, err := s.db.QueryContext(ctx,
		`SELECT day, title, type, duration_minutes, gap, resources
		 FROM plan_tasks WHERE plan_id = ? ORDER BY day, position`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = taskRows.Close() }()

	for taskRows.Next() {
		var (
			day int
			t   plan.Task
		)
		if err := taskRows.Scan(&day, &t.Title, &t.Type, &t.DurationMinutes, &t.Gap, &t.Resources); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		i, ok := index[day]
		if !ok {
			return nil, fmt.Errorf("task references unknown day %d", day)
		}
		days[i].Tasks = append(days[i].Tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return days, nil
}

// ListPlans returns all stored plans, most recent first.
func (s *SQLite) ListPlans(ctx context.Context) ([]*plan.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM plans ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning plan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	plans := make([]*plan.Plan, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetPlan(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			plans = append(plans, p)
		}
	}

	return plans, nil
}

// DeletePlan removes a plan and its tasks.
func (s *SQLite) DeletePlan(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_days WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan days: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_tasks WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseTimestamp parses timestamps in either RFC3339 or SQLite's
// CURRENT_TIMESTAMP format.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
