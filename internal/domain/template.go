package domain

import "time"

// Template is a bureau-scoped planning template header.
type Template struct {
	ID          string
	BureauID    string
	Name        string
	Description string
	IsDefault   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TemplateTask is one task of a planning template, positioned by its offset
// in working days before the deadline.
type TemplateTask struct {
	ID               string
	TemplateID       string
	Name             string
	Description      *string
	Role             string
	Category         string
	TMinusWorkdays   int
	DurationWorkdays int
	IsMilestone      bool
	IsRequired       bool
	Order            int
}

// EffectiveDuration returns the duration in workdays, never less than one.
func (t TemplateTask) EffectiveDuration() int {
	if t.DurationWorkdays < 1 {
		return 1
	}
	return t.DurationWorkdays
}

// ChecklistTemplateItem is one entry of a bureau's submission checklist catalog.
type ChecklistTemplateItem struct {
	ID          string
	BureauID    string
	Name        string
	Description *string
	Section     string
	IsRequired  bool
	IsActive    bool
	Order       int
}
