package scheduler

import (
	"strings"
	"time"

	"github.com/alexanderramin/backplan/internal/calendar"
	"github.com/alexanderramin/backplan/internal/domain"
)

// DefaultChecklistWindow is the number of working-day slots before the
// deadline that checklist items are spread over.
const DefaultChecklistWindow = 14

// SectionRule maps checklist sections containing any of Keywords
// (case-insensitive substring match) to Role.
type SectionRule struct {
	Keywords []string `json:"keywords" koanf:"keywords"`
	Role     string   `json:"role" koanf:"role"`
}

// ChecklistPolicy controls how checklist items are dated and assigned.
type ChecklistPolicy struct {
	Window      int
	Rules       []SectionRule
	DefaultRole string
}

// DefaultSectionRules covers English and Dutch section names.
func DefaultSectionRules() []SectionRule {
	return []SectionRule{
		{Keywords: []string{"financ", "budget"}, Role: domain.RoleCalculator},
		{Keywords: []string{"compliance", "legal", "juridisch"}, Role: domain.RoleWriter},
		{Keywords: []string{"quality", "kwaliteit", "review"}, Role: domain.RoleReviewer},
	}
}

// DefaultChecklistPolicy returns the standard fourteen-slot policy.
func DefaultChecklistPolicy() ChecklistPolicy {
	return ChecklistPolicy{
		Window:      DefaultChecklistWindow,
		Rules:       DefaultSectionRules(),
		DefaultRole: domain.RoleTenderManager,
	}
}

// orDefault fills the unset parts of p from DefaultChecklistPolicy. An
// empty but non-nil Rules slice is kept, disabling the keyword table.
func (p ChecklistPolicy) orDefault() ChecklistPolicy {
	if p.Window < 1 {
		p.Window = DefaultChecklistWindow
	}
	if p.Rules == nil {
		p.Rules = DefaultSectionRules()
	}
	if p.DefaultRole == "" {
		p.DefaultRole = domain.RoleTenderManager
	}
	return p
}

// RoleForSection returns the role of the first rule whose keyword occurs in
// section, or the policy's default role.
func (p ChecklistPolicy) RoleForSection(section string) string {
	lower := strings.ToLower(section)
	for _, rule := range p.Rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return rule.Role
			}
		}
	}
	return p.DefaultRole
}

// DaysBeforeDeadline places a checklist item by catalog position: earlier
// items land further from the deadline, and everything past the window
// collapses onto the last workday before it.
func DaysBeforeDeadline(order, window int) int {
	days := window - order
	if days < 1 {
		return 1
	}
	return days
}

// ChecklistInput carries a bureau's checklist catalog and planning context.
type ChecklistInput struct {
	Deadline    time.Time
	Items       []domain.ChecklistTemplateItem
	Assignments domain.TeamAssignment
	Directory   map[string]domain.PersonSummary
	Holidays    calendar.HolidaySet
	Policy      ChecklistPolicy
}

// ScheduleChecklist dates every checklist item and assigns it through the
// section heuristic. Items are single-day and never milestones.
func ScheduleChecklist(in ChecklistInput) []domain.PlannedTask {
	if len(in.Items) == 0 {
		return []domain.PlannedTask{}
	}
	policy := in.Policy.orDefault()

	planned := make([]domain.PlannedTask, 0, len(in.Items))
	for _, item := range in.Items {
		days := DaysBeforeDeadline(item.Order, policy.Window)
		date := calendar.StepBackward(in.Deadline, days, in.Holidays)
		section := strings.TrimSpace(item.Section)

		pt := domain.PlannedTask{
			Kind:             domain.KindChecklist,
			Name:             item.Name,
			Description:      item.Description,
			StartDate:        date,
			EndDate:          date,
			DurationWorkdays: 1,
			Role:             domain.CoalesceStr(strings.ToLower(section), domain.DefaultCategory),
			Category:         domain.CoalesceStr(section, domain.DefaultCategory),
			IsRequired:       item.IsRequired,
			TMinus:           days,
			Order:            item.Order,
		}
		assign(&pt, policy.RoleForSection(section), in.Assignments, in.Directory)
		planned = append(planned, pt)
	}

	SortByOrder(planned)
	return planned
}
