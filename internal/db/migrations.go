package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS plans (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL DEFAULT '',
			duration_days INTEGER NOT NULL,
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS plan_days (
			plan_id TEXT NOT NULL REFERENCES plans(id),
			day     INTEGER NOT NULL,
			PRIMARY KEY (plan_id, day)
		);

		CREATE TABLE IF NOT EXISTS plan_tasks (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			plan_id          TEXT NOT NULL REFERENCES plans(id),
			day              INTEGER NOT NULL,
			position         INTEGER NOT NULL,
			title            TEXT NOT NULL,
			type             TEXT NOT NULL DEFAULT '',
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			gap              TEXT NOT NULL DEFAULT '',
			resources        TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_plan_tasks_plan ON plan_tasks(plan_id, day, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating plan tables: %w", err)
	}

	return nil
}
