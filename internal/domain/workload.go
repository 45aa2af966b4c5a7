package domain

import "time"

// Holiday is a non-working day in a bureau's calendar.
type Holiday struct {
	BureauID string
	Date     time.Time
	Name     string
}

// Work is a body of work (a tender) that planned tasks belong to.
type Work struct {
	ID        string
	BureauID  string
	Name      string
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduledTaskRef is one already-scheduled task of a person, as read back
// from persisted plans.
type ScheduledTaskRef struct {
	PersonID      string
	Date          time.Time
	WorkID        string
	WorkItemLabel string
}

// WeekLoad is a person's task count for one ISO week and the distinct work
// labels those tasks belong to.
type WeekLoad struct {
	Count int
	Items []string
}

// PersistedTask is a planned task stored for a work item.
type PersistedTask struct {
	ID               string
	WorkID           string
	BureauID         string
	Kind             TaskKind
	Name             string
	Description      *string
	Role             string
	Category         string
	AssigneeID       *string
	StartDate        time.Time
	EndDate          time.Time
	DurationWorkdays int
	IsMilestone      bool
	IsRequired       bool
	TMinus           int
	Order            int
	CreatedAt        time.Time
}
