package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

// TemplateRepo is the Template Store.
type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	CreateTask(ctx context.Context, task *domain.TemplateTask) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	ListByBureau(ctx context.Context, bureauID string) ([]*domain.Template, error)
	// GetTemplateTasks returns the template's tasks ordered by sort order.
	// A missing template yields ErrNotFound; a template without tasks an
	// empty slice.
	GetTemplateTasks(ctx context.Context, templateID string) ([]domain.TemplateTask, error)
}

// ChecklistRepo is the Checklist Catalog Store.
type ChecklistRepo interface {
	Create(ctx context.Context, item *domain.ChecklistTemplateItem) error
	// GetChecklistItems returns the bureau's active items ordered by sort order.
	GetChecklistItems(ctx context.Context, bureauID string) ([]domain.ChecklistTemplateItem, error)
}

// HolidayRepo is the Holiday Calendar Store.
type HolidayRepo interface {
	Upsert(ctx context.Context, h domain.Holiday) error
	GetHolidays(ctx context.Context, bureauID string, year int) ([]domain.Holiday, error)
}

// TeamRepo is the Team Directory.
type TeamRepo interface {
	Create(ctx context.Context, p *domain.PersonSummary) error
	// GetPersonSummaries resolves ids in one query. Unknown ids are absent
	// from the result.
	GetPersonSummaries(ctx context.Context, ids []string) (map[string]domain.PersonSummary, error)
	ListByBureau(ctx context.Context, bureauID string) ([]domain.PersonSummary, error)
}

type WorkRepo interface {
	Create(ctx context.Context, w *domain.Work) error
	GetByID(ctx context.Context, id string) (*domain.Work, error)
}

// WorkloadLedger counts a person's already-scheduled tasks per date,
// ignoring tasks that belong to excludeWorkID.
type WorkloadLedger interface {
	CountExistingTasks(ctx context.Context, personID string, dates []time.Time, excludeWorkID string) (map[time.Time]int, error)
}

// ScheduledTaskSource is the Workload Aggregator Source.
type ScheduledTaskSource interface {
	ListScheduledTasks(ctx context.Context, personIDs []string, start, end time.Time, bureauID *string) ([]domain.ScheduledTaskRef, error)
}

// PlanTaskRepo stores accepted plans. Its rows back both the WorkloadLedger
// and the ScheduledTaskSource.
type PlanTaskRepo interface {
	WorkloadLedger
	ScheduledTaskSource
	Create(ctx context.Context, t *domain.PersistedTask) error
	DeleteByWork(ctx context.Context, workID string) (int, error)
	ListByWork(ctx context.Context, workID string) ([]*domain.PersistedTask, error)
}
