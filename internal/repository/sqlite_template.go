package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO planning_templates (id, bureau_id, name, description, is_default, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.BureauID,
		t.Name,
		t.Description,
		boolToInt(t.IsDefault),
		boolToInt(t.IsActive),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting planning template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) CreateTask(ctx context.Context, task *domain.TemplateTask) error {
	query := `INSERT INTO planning_template_tasks (id, template_id, name, description, role, category,
		t_minus_workdays, duration_workdays, is_milestone, is_required, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.TemplateID,
		task.Name,
		nullableString(task.Description),
		task.Role,
		domain.CoalesceStr(task.Category, domain.DefaultCategory),
		task.TMinusWorkdays,
		task.DurationWorkdays,
		boolToInt(task.IsMilestone),
		boolToInt(task.IsRequired),
		task.Order,
	)
	if err != nil {
		return fmt.Errorf("inserting template task: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT id, bureau_id, name, description, is_default, is_active, created_at, updated_at
		FROM planning_templates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t, err := scanTemplate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("planning template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning planning template: %w", err)
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) ListByBureau(ctx context.Context, bureauID string) ([]*domain.Template, error) {
	query := `SELECT id, bureau_id, name, description, is_default, is_active, created_at, updated_at
		FROM planning_templates WHERE bureau_id = ? AND is_active = 1
		ORDER BY is_default DESC, name`
	rows, err := r.db.QueryContext(ctx, query, bureauID)
	if err != nil {
		return nil, fmt.Errorf("listing planning templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning planning template row: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planning templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) GetTemplateTasks(ctx context.Context, templateID string) ([]domain.TemplateTask, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM planning_templates WHERE id = ?`, templateID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("planning template %s: %w", templateID, ErrNotFound)
		}
		return nil, fmt.Errorf("checking planning template: %w", err)
	}

	query := `SELECT id, template_id, name, description, role, category,
		t_minus_workdays, duration_workdays, is_milestone, is_required, sort_order
		FROM planning_template_tasks WHERE template_id = ?
		ORDER BY sort_order, rowid`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing template tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.TemplateTask{}
	for rows.Next() {
		var t domain.TemplateTask
		var description sql.NullString
		var milestone, required int
		if err := rows.Scan(
			&t.ID, &t.TemplateID, &t.Name, &description, &t.Role, &t.Category,
			&t.TMinusWorkdays, &t.DurationWorkdays, &milestone, &required, &t.Order,
		); err != nil {
			return nil, fmt.Errorf("scanning template task row: %w", err)
		}
		t.Description = stringPtr(description)
		t.IsMilestone = intToBool(milestone)
		t.IsRequired = intToBool(required)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template tasks: %w", err)
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var t domain.Template
	var isDefault, isActive int
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.BureauID, &t.Name, &t.Description, &isDefault, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.IsDefault = intToBool(isDefault)
	t.IsActive = intToBool(isActive)
	t.CreatedAt = parseTimestamp(createdAt)
	t.UpdatedAt = parseTimestamp(updatedAt)
	return &t, nil
}
