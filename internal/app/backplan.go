package app

import (
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

type GenerateRequest struct {
	Deadline         time.Time
	TemplateID       string
	BureauID         string
	TeamAssignments  domain.TeamAssignment
	CurrentWorkID    string // excluded from workload lookups; may be empty
	IncludeChecklist bool
	Now              *time.Time
}

func NewGenerateRequest(deadline time.Time, templateID, bureauID string) GenerateRequest {
	return GenerateRequest{
		Deadline:         deadline,
		TemplateID:       templateID,
		BureauID:         bureauID,
		TeamAssignments:  domain.TeamAssignment{},
		IncludeChecklist: true,
	}
}

type GenerateResponse struct {
	GeneratedAt      time.Time
	TemplateID       string
	BureauID         string
	ScheduledTasks   []domain.PlannedTask
	ChecklistItems   []domain.PlannedTask
	WorkloadWarnings []domain.WorkloadWarning
	Metadata         domain.PlanningMetadata
	People           map[string]domain.PersonSummary
	// Notes describe degraded lookups that were absorbed.
	Notes []string
}

// AllTasks returns the schedule followed by the checklist.
func (r *GenerateResponse) AllTasks() []domain.PlannedTask {
	out := make([]domain.PlannedTask, 0, len(r.ScheduledTasks)+len(r.ChecklistItems))
	out = append(out, r.ScheduledTasks...)
	return append(out, r.ChecklistItems...)
}

type WorkloadRequest struct {
	PersonIDs []string
	Start     time.Time
	End       time.Time
	BureauID  *string
}

type WorkloadResponse struct {
	// Workload maps person id to ISO week key to that week's load.
	Workload map[string]map[string]domain.WeekLoad
	People   map[string]domain.PersonSummary
}
