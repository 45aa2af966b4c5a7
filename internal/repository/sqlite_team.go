package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using a SQLite database.
type SQLiteTeamRepo struct {
	db db.DBTX
}

// NewSQLiteTeamRepo creates a new SQLiteTeamRepo.
func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, p *domain.PersonSummary) error {
	query := `INSERT INTO team_members (id, bureau_id, name, initials, avatar_color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.BureauID, p.Name, p.Initials, p.AvatarColor, nowUTC())
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) GetPersonSummaries(ctx context.Context, ids []string) (map[string]domain.PersonSummary, error) {
	out := make(map[string]domain.PersonSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT id, bureau_id, name, initials, avatar_color FROM team_members
		WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("looking up team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return out, nil
}

func (r *SQLiteTeamRepo) ListByBureau(ctx context.Context, bureauID string) ([]domain.PersonSummary, error) {
	query := `SELECT id, bureau_id, name, initials, avatar_color FROM team_members
		WHERE bureau_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, bureauID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var people []domain.PersonSummary
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return people, nil
}

func scanPerson(row rowScanner) (domain.PersonSummary, error) {
	var p domain.PersonSummary
	if err := row.Scan(&p.ID, &p.BureauID, &p.Name, &p.Initials, &p.AvatarColor); err != nil {
		return p, fmt.Errorf("scanning team member row: %w", err)
	}
	if p.AvatarColor == "" {
		p.AvatarColor = domain.DefaultAvatarColor
	}
	return p, nil
}
