package domain

import "time"

// PlannedTask is a dated, role-assigned task instance produced by a
// back-planning run. It is never persisted by the engine itself.
type PlannedTask struct {
	Kind             TaskKind
	Name             string
	Description      *string
	StartDate        time.Time
	EndDate          time.Time
	DurationWorkdays int
	Role             string
	Category         string
	AssigneeID       *string
	Assignee         *PersonSummary // nil when unassigned or unresolved
	IsMilestone      bool
	IsRequired       bool
	TMinus           int
	Order            int
	Conflict         *WorkloadWarning
}

// HasAssignee reports whether the task is assigned to a person.
func (t PlannedTask) HasAssignee() bool {
	return t.AssigneeID != nil && *t.AssigneeID != ""
}

// WorkloadWarning flags a person who already carries a heavy load on a date.
type WorkloadWarning struct {
	PersonID      string
	PersonName    string
	Date          time.Time
	Week          string
	ExistingCount int
	Severity      Severity
	Message       string
}

// PlanningMetadata summarises a generated schedule.
type PlanningMetadata struct {
	FirstTaskDate   *time.Time
	LastTaskDate    *time.Time
	Deadline        time.Time
	WorkdaySpan     int
	CalendarDaySpan int
	SkippedHolidays []time.Time
}
