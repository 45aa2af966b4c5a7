package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SQLitePlanTaskRepo implements PlanTaskRepo using a SQLite database.
type SQLitePlanTaskRepo struct {
	db db.DBTX
}

// NewSQLitePlanTaskRepo creates a new SQLitePlanTaskRepo.
func NewSQLitePlanTaskRepo(conn db.DBTX) *SQLitePlanTaskRepo {
	return &SQLitePlanTaskRepo{db: conn}
}

const planTaskColumns = `id, work_id, bureau_id, kind, name, description, role, category, assignee_id,
	start_date, end_date, duration_workdays, is_milestone, is_required, t_minus, sort_order, created_at`

func (r *SQLitePlanTaskRepo) Create(ctx context.Context, t *domain.PersistedTask) error {
	query := `INSERT INTO planning_tasks (` + planTaskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.WorkID,
		t.BureauID,
		string(t.Kind),
		t.Name,
		nullableString(t.Description),
		t.Role,
		domain.CoalesceStr(t.Category, domain.DefaultCategory),
		nullableString(t.AssigneeID),
		domain.FormatDate(t.StartDate),
		domain.FormatDate(t.EndDate),
		t.DurationWorkdays,
		boolToInt(t.IsMilestone),
		boolToInt(t.IsRequired),
		t.TMinus,
		t.Order,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting planning task: %w", err)
	}
	return nil
}

// DeleteByWork removes every stored task of a work and reports how many
// rows were deleted.
func (r *SQLitePlanTaskRepo) DeleteByWork(ctx context.Context, workID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM planning_tasks WHERE work_id = ?`, workID)
	if err != nil {
		return 0, fmt.Errorf("deleting planning tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted planning tasks: %w", err)
	}
	return int(n), nil
}

func (r *SQLitePlanTaskRepo) ListByWork(ctx context.Context, workID string) ([]*domain.PersistedTask, error) {
	query := `SELECT ` + planTaskColumns + ` FROM planning_tasks WHERE work_id = ?
		ORDER BY kind DESC, sort_order, rowid`
	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("listing planning tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.PersistedTask
	for rows.Next() {
		t, err := scanPlanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planning tasks: %w", err)
	}
	return tasks, nil
}

// CountExistingTasks counts, for each date, the stored tasks assigned to
// personID whose [start, end] range covers that date. Tasks of excludeWorkID
// are ignored. One query covers all dates; dates without tasks are absent
// from the result.
func (r *SQLitePlanTaskRepo) CountExistingTasks(ctx context.Context, personID string, dates []time.Time, excludeWorkID string) (map[time.Time]int, error) {
	counts := make(map[time.Time]int, len(dates))
	if len(dates) == 0 {
		return counts, nil
	}

	minDate, maxDate := domain.DateOf(dates[0]), domain.DateOf(dates[0])
	for _, d := range dates[1:] {
		d = domain.DateOf(d)
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	query := `SELECT start_date, end_date FROM planning_tasks
		WHERE assignee_id = ? AND work_id != ? AND start_date <= ? AND end_date >= ?`
	rows, err := r.db.QueryContext(ctx, query, personID, excludeWorkID, domain.FormatDate(maxDate), domain.FormatDate(minDate))
	if err != nil {
		return nil, fmt.Errorf("querying workload for %s: %w", personID, err)
	}
	defer rows.Close()

	type span struct{ start, end time.Time }
	var spans []span
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning workload row: %w", err)
		}
		start, err := domain.ParseDate(startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		end, err := domain.ParseDate(endStr)
		if err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
		spans = append(spans, span{start, end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workload rows: %w", err)
	}

	for _, d := range dates {
		d = domain.DateOf(d)
		for _, s := range spans {
			if !d.Before(s.start) && !d.After(s.end) {
				counts[d]++
			}
		}
	}
	return counts, nil
}

// ListScheduledTasks returns the stored tasks of the given people starting
// within [start, end], labelled with the owning work's name. bureauID, when
// set, restricts the result to that bureau.
func (r *SQLitePlanTaskRepo) ListScheduledTasks(ctx context.Context, personIDs []string, start, end time.Time, bureauID *string) ([]domain.ScheduledTaskRef, error) {
	refs := []domain.ScheduledTaskRef{}
	if len(personIDs) == 0 {
		return refs, nil
	}

	args := make([]any, 0, len(personIDs)+3)
	for _, id := range personIDs {
		args = append(args, id)
	}
	args = append(args, domain.FormatDate(start), domain.FormatDate(end))

	query := `SELECT t.assignee_id, t.start_date, t.work_id, COALESCE(w.name, '')
		FROM planning_tasks t
		LEFT JOIN works w ON w.id = t.work_id
		WHERE t.assignee_id IN (` + placeholders(len(personIDs)) + `)
		  AND t.start_date >= ? AND t.start_date <= ?`
	if bureauID != nil && *bureauID != "" {
		query += ` AND t.bureau_id = ?`
		args = append(args, *bureauID)
	}
	query += ` ORDER BY t.assignee_id, t.start_date, t.rowid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref domain.ScheduledTaskRef
		var dateStr string
		if err := rows.Scan(&ref.PersonID, &dateStr, &ref.WorkID, &ref.WorkItemLabel); err != nil {
			return nil, fmt.Errorf("scanning scheduled task row: %w", err)
		}
		ref.Date, err = domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduled tasks: %w", err)
	}
	return refs, nil
}

func scanPlanTask(row rowScanner) (*domain.PersistedTask, error) {
	var t domain.PersistedTask
	var kind, startStr, endStr, createdAt string
	var description, assignee sql.NullString
	var milestone, required int
	err := row.Scan(
		&t.ID, &t.WorkID, &t.BureauID, &kind, &t.Name, &description, &t.Role, &t.Category, &assignee,
		&startStr, &endStr, &t.DurationWorkdays, &milestone, &required, &t.TMinus, &t.Order, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning planning task row: %w", err)
	}
	t.Kind = domain.TaskKind(kind)
	t.Description = stringPtr(description)
	t.AssigneeID = stringPtr(assignee)
	t.IsMilestone = intToBool(milestone)
	t.IsRequired = intToBool(required)
	t.CreatedAt = parseTimestamp(createdAt)

	var parseErr error
	t.StartDate, parseErr = domain.ParseDate(startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	t.EndDate, parseErr = domain.ParseDate(endStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	return &t, nil
}
