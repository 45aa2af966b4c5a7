package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SQLiteWorkRepo implements WorkRepo using a SQLite database.
type SQLiteWorkRepo struct {
	db db.DBTX
}

// NewSQLiteWorkRepo creates a new SQLiteWorkRepo.
func NewSQLiteWorkRepo(conn db.DBTX) *SQLiteWorkRepo {
	return &SQLiteWorkRepo{db: conn}
}

func (r *SQLiteWorkRepo) Create(ctx context.Context, w *domain.Work) error {
	query := `INSERT INTO works (id, bureau_id, name, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.BureauID,
		w.Name,
		nullableDateToString(w.Deadline),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work: %w", err)
	}
	return nil
}

func (r *SQLiteWorkRepo) GetByID(ctx context.Context, id string) (*domain.Work, error) {
	query := `SELECT id, bureau_id, name, deadline, created_at, updated_at FROM works WHERE id = ?`
	var w domain.Work
	var deadline sql.NullString
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.BureauID, &w.Name, &deadline, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work: %w", err)
	}
	w.Deadline = parseNullableDate(deadline)
	w.CreatedAt = parseTimestamp(createdAt)
	w.UpdatedAt = parseTimestamp(updatedAt)
	return &w, nil
}
