package app

import (
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

// SavePlanRequest replaces the stored plan of a work with Tasks. A work that
// does not exist yet is created with WorkName and Deadline.
type SavePlanRequest struct {
	WorkID   string
	WorkName string
	BureauID string
	Deadline *time.Time
	Tasks    []domain.PlannedTask
}

type SavePlanResult struct {
	WorkID      string
	CreatedWork bool
	Deleted     int
	Inserted    int
}

type ImportResult struct {
	BureauID       string
	TemplateCount  int
	TaskCount      int
	ChecklistCount int
	HolidayCount   int
	MemberCount    int
	WorkCount      int
	Warnings       []string
}

// StoredPlan is the persisted plan of a work with its assignees resolved.
type StoredPlan struct {
	Work   *domain.Work
	Tasks  []*domain.PersistedTask
	People map[string]domain.PersonSummary
}

type TemplateDetail struct {
	Template *domain.Template
	Tasks    []domain.TemplateTask
}
