package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

// Upsert stores a holiday, replacing the name of an existing (bureau, date).
func (r *SQLiteHolidayRepo) Upsert(ctx context.Context, h domain.Holiday) error {
	query := `INSERT INTO bureau_holidays (bureau_id, date, name) VALUES (?, ?, ?)
		ON CONFLICT(bureau_id, date) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, h.BureauID, domain.FormatDate(h.Date), h.Name); err != nil {
		return fmt.Errorf("upserting holiday: %w", err)
	}
	return nil
}

// GetHolidays returns the bureau's holidays in the given calendar year,
// ordered by date.
func (r *SQLiteHolidayRepo) GetHolidays(ctx context.Context, bureauID string, year int) ([]domain.Holiday, error) {
	from := domain.FormatDate(domain.Date(year, time.January, 1))
	to := domain.FormatDate(domain.Date(year, time.December, 31))

	query := `SELECT bureau_id, date, name FROM bureau_holidays
		WHERE bureau_id = ? AND date >= ? AND date <= ?
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, bureauID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	holidays := []domain.Holiday{}
	for rows.Next() {
		var h domain.Holiday
		var dateStr string
		if err := rows.Scan(&h.BureauID, &dateStr, &h.Name); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}
		h.Date, err = domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday date: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}
