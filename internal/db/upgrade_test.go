package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyPlanningTasks simulates a database created
// before planning tasks carried category and bureau_id. Stored rows must
// survive, gain the column defaults and get their bureau backfilled from the
// owning work.
func TestMigrate_UpgradePath_LegacyPlanningTasks(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
		`CREATE TABLE works (
			id         TEXT PRIMARY KEY,
			bureau_id  TEXT NOT NULL,
			name       TEXT NOT NULL,
			deadline   TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE planning_tasks (
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
			created_at        TEXT NOT NULL
		)`,
		`INSERT INTO works (id, bureau_id, name, created_at, updated_at)
			VALUES ('w1', 'bureau-a', 'Tender A', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		`INSERT INTO planning_tasks (id, work_id, name, assignee_id, start_date, end_date, created_at)
			VALUES ('t1', 'w1', 'Write texts', 'user-2', '2026-02-20', '2026-02-26', '2026-01-01T00:00:00Z')`,
	}
	for _, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var name, category, bureau string
	err = db.QueryRow(`SELECT name, category, bureau_id FROM planning_tasks WHERE id = 't1'`).Scan(&name, &category, &bureau)
	require.NoError(t, err)
	assert.Equal(t, "Write texts", name)
	assert.Equal(t, "general", category)
	assert.Equal(t, "bureau-a", bureau)

	// Second run is a no-op.
	require.NoError(t, Migrate(db))
}
