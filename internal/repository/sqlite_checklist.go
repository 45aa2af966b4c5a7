package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db db.DBTX
}

// NewSQLiteChecklistRepo creates a new SQLiteChecklistRepo.
func NewSQLiteChecklistRepo(conn db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: conn}
}

func (r *SQLiteChecklistRepo) Create(ctx context.Context, item *domain.ChecklistTemplateItem) error {
	query := `INSERT INTO checklist_templates (id, bureau_id, name, description, section, is_required, is_active, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.BureauID,
		item.Name,
		nullableString(item.Description),
		item.Section,
		boolToInt(item.IsRequired),
		boolToInt(item.IsActive),
		item.Order,
	)
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) GetChecklistItems(ctx context.Context, bureauID string) ([]domain.ChecklistTemplateItem, error) {
	query := `SELECT id, bureau_id, name, description, section, is_required, is_active, sort_order
		FROM checklist_templates WHERE bureau_id = ? AND is_active = 1
		ORDER BY sort_order, rowid`
	rows, err := r.db.QueryContext(ctx, query, bureauID)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	items := []domain.ChecklistTemplateItem{}
	for rows.Next() {
		var it domain.ChecklistTemplateItem
		var description sql.NullString
		var required, active int
		if err := rows.Scan(&it.ID, &it.BureauID, &it.Name, &description, &it.Section, &required, &active, &it.Order); err != nil {
			return nil, fmt.Errorf("scanning checklist item row: %w", err)
		}
		it.Description = stringPtr(description)
		it.IsRequired = intToBool(required)
		it.IsActive = intToBool(active)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return items, nil
}
