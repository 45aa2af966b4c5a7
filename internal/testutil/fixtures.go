package testutil

import (
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/google/uuid"
)

// Template options
type TemplateOption func(*domain.Template)

func WithDefaultTemplate() TemplateOption {
	return func(t *domain.Template) {
		t.IsDefault = true
	}
}

func WithInactiveTemplate() TemplateOption {
	return func(t *domain.Template) {
		t.IsActive = false
	}
}

func NewTestTemplate(bureauID, name string, opts ...TemplateOption) *domain.Template {
	now := time.Now().UTC()
	t := &domain.Template{
		ID:        uuid.New().String(),
		BureauID:  bureauID,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TemplateTask options
type TemplateTaskOption func(*domain.TemplateTask)

func WithDuration(workdays int) TemplateTaskOption {
	return func(t *domain.TemplateTask) {
		t.DurationWorkdays = workdays
	}
}

func WithOrder(order int) TemplateTaskOption {
	return func(t *domain.TemplateTask) {
		t.Order = order
	}
}

func WithMilestone() TemplateTaskOption {
	return func(t *domain.TemplateTask) {
		t.IsMilestone = true
	}
}

func WithCategory(c string) TemplateTaskOption {
	return func(t *domain.TemplateTask) {
		t.Category = c
	}
}

func WithTaskDescription(d string) TemplateTaskOption {
	return func(t *domain.TemplateTask) {
		t.Description = &d
	}
}

func NewTestTemplateTask(templateID, name, role string, tMinus int, opts ...TemplateTaskOption) *domain.TemplateTask {
	t := &domain.TemplateTask{
		ID:               uuid.New().String(),
		TemplateID:       templateID,
		Name:             name,
		Role:             role,
		Category:         domain.DefaultCategory,
		TMinusWorkdays:   tMinus,
		DurationWorkdays: 1,
		IsRequired:       true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Checklist options
type ChecklistOption func(*domain.ChecklistTemplateItem)

func WithSection(s string) ChecklistOption {
	return func(c *domain.ChecklistTemplateItem) {
		c.Section = s
	}
}

func WithInactiveItem() ChecklistOption {
	return func(c *domain.ChecklistTemplateItem) {
		c.IsActive = false
	}
}

func NewTestChecklistItem(bureauID, name string, order int, opts ...ChecklistOption) *domain.ChecklistTemplateItem {
	c := &domain.ChecklistTemplateItem{
		ID:         uuid.New().String(),
		BureauID:   bureauID,
		Name:       name,
		IsRequired: true,
		IsActive:   true,
		Order:      order,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestPerson(bureauID, id, name string) *domain.PersonSummary {
	return &domain.PersonSummary{
		ID:          id,
		BureauID:    bureauID,
		Name:        name,
		Initials:    initials(name),
		AvatarColor: "#7c3aed",
	}
}

func initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start && r >= 'A' && r <= 'Z' {
			out = append(out, r)
		}
		start = false
	}
	return string(out)
}

func NewTestWork(bureauID, name string, deadline *time.Time) *domain.Work {
	now := time.Now().UTC()
	return &domain.Work{
		ID:        uuid.New().String(),
		BureauID:  bureauID,
		Name:      name,
		Deadline:  deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PersistedTask options
type PlanTaskOption func(*domain.PersistedTask)

func WithAssignee(personID string) PlanTaskOption {
	return func(t *domain.PersistedTask) {
		t.AssigneeID = &personID
	}
}

func WithSpan(start, end time.Time) PlanTaskOption {
	return func(t *domain.PersistedTask) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithKind(k domain.TaskKind) PlanTaskOption {
	return func(t *domain.PersistedTask) {
		t.Kind = k
	}
}

func NewTestPlanTask(work *domain.Work, name string, day time.Time, opts ...PlanTaskOption) *domain.PersistedTask {
	t := &domain.PersistedTask{
		ID:               uuid.New().String(),
		WorkID:           work.ID,
		BureauID:         work.BureauID,
		Kind:             domain.KindTask,
		Name:             name,
		Category:         domain.DefaultCategory,
		StartDate:        day,
		EndDate:          day,
		DurationWorkdays: 1,
		IsRequired:       true,
		CreatedAt:        time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
