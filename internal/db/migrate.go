package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTaskBureau(db); err != nil {
		return fmt.Errorf("backfilling planning_tasks bureau_id: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS planning_templates (
		id          TEXT PRIMARY KEY,
		bureau_id   TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_default  INTEGER NOT NULL DEFAULT 0,
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_planning_templates_bureau ON planning_templates(bureau_id)`,

	`CREATE TABLE IF NOT EXISTS planning_template_tasks (
		id                TEXT PRIMARY KEY,
		template_id       TEXT NOT NULL REFERENCES planning_templates(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		description       TEXT,
		role              TEXT NOT NULL,
		t_minus_workdays  INTEGER NOT NULL DEFAULT 0 CHECK(t_minus_workdays >= 0),
		duration_workdays INTEGER NOT NULL DEFAULT 1,
		is_milestone      INTEGER NOT NULL DEFAULT 0,
		is_required       INTEGER NOT NULL DEFAULT 1,
		sort_order        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_tasks_template ON planning_template_tasks(template_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS checklist_templates (
		id          TEXT PRIMARY KEY,
		bureau_id   TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT,
		section     TEXT NOT NULL DEFAULT '',
		is_required INTEGER NOT NULL DEFAULT 1,
		is_active   INTEGER NOT NULL DEFAULT 1,
		sort_order  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checklist_templates_bureau ON checklist_templates(bureau_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS bureau_holidays (
		bureau_id TEXT NOT NULL,
		date      TEXT NOT NULL,
		name      TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (bureau_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id           TEXT PRIMARY KEY,
		bureau_id    TEXT NOT NULL,
		name         TEXT NOT NULL,
		initials     TEXT NOT NULL DEFAULT '',
		avatar_color TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS works (
		id         TEXT PRIMARY KEY,
		bureau_id  TEXT NOT NULL,
		name       TEXT NOT NULL,
		deadline   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS planning_tasks (
		id                TEXT PRIMARY KEY,
		work_id           TEXT NOT NULL REFERENCES works(id) ON DELETE CASCADE,
		kind              TEXT NOT NULL DEFAULT 'task'
		                  CHECK(kind IN ('task','checklist')),
		name              TEXT NOT NULL,
		description       TEXT,
		role              TEXT NOT NULL DEFAULT '',
		assignee_id       TEXT,
		start_date        TEXT NOT NULL,
		end_date          TEXT NOT NULL,
		duration_workdays INTEGER NOT NULL DEFAULT 1,
		is_milestone      INTEGER NOT NULL DEFAULT 0,
		is_required       INTEGER NOT NULL DEFAULT 1,
		t_minus           INTEGER NOT NULL DEFAULT 0,
		sort_order        INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		CHECK(start_date <= end_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_planning_tasks_work ON planning_tasks(work_id)`,
	`CREATE INDEX IF NOT EXISTS idx_planning_tasks_assignee ON planning_tasks(assignee_id, start_date)`,

	// Category on template tasks and planned tasks
	`ALTER TABLE planning_template_tasks ADD COLUMN category TEXT NOT NULL DEFAULT 'general'`,
	`ALTER TABLE planning_tasks ADD COLUMN category TEXT NOT NULL DEFAULT 'general'`,

	// Denormalised bureau scope for workload queries
	`ALTER TABLE planning_tasks ADD COLUMN bureau_id TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_planning_tasks_bureau ON planning_tasks(bureau_id)`,
}

// migrateBackfillTaskBureau copies the owning work's bureau onto planning
// tasks stored before planning_tasks carried bureau_id. Idempotent: only rows
// with an empty bureau_id are touched.
func migrateBackfillTaskBureau(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM planning_tasks WHERE bureau_id = ''`).Scan(&count); err != nil {
		return fmt.Errorf("checking planning_tasks bureau_id: %w", err)
	}
	if count == 0 {
		return nil
	}

	_, err := db.ExecContext(ctx, `UPDATE planning_tasks
		SET bureau_id = (SELECT w.bureau_id FROM works w WHERE w.id = planning_tasks.work_id)
		WHERE bureau_id = ''
		  AND EXISTS (SELECT 1 FROM works w WHERE w.id = planning_tasks.work_id)`)
	if err != nil {
		return fmt.Errorf("updating planning_tasks bureau_id: %w", err)
	}
	return nil
}
