package scheduler

import (
	"time"

	"github.com/alexanderramin/backplan/internal/calendar"
	"github.com/alexanderramin/backplan/internal/domain"
)

// ExpandInput carries everything needed to date a template.
type ExpandInput struct {
	Deadline    time.Time
	Tasks       []domain.TemplateTask
	Assignments domain.TeamAssignment
	Directory   map[string]domain.PersonSummary
	Holidays    calendar.HolidaySet
}

// ExpandTemplateTasks turns template tasks into dated planned tasks by
// counting workdays back from the deadline. Each task is placed on its own;
// there is no dependency resolution between tasks. The result is ordered by
// template order with ties kept stable, not by date.
func ExpandTemplateTasks(in ExpandInput) []domain.PlannedTask {
	if len(in.Tasks) == 0 {
		return []domain.PlannedTask{}
	}

	planned := make([]domain.PlannedTask, 0, len(in.Tasks))
	for _, task := range in.Tasks {
		start := calendar.StepBackward(in.Deadline, task.TMinusWorkdays, in.Holidays)
		duration := task.EffectiveDuration()
		end := start
		if duration > 1 {
			end = calendar.StepForward(start, duration-1, in.Holidays)
		}

		pt := domain.PlannedTask{
			Kind:             domain.KindTask,
			Name:             task.Name,
			Description:      task.Description,
			StartDate:        start,
			EndDate:          end,
			DurationWorkdays: duration,
			Role:             task.Role,
			Category:         domain.CoalesceStr(task.Category, domain.DefaultCategory),
			IsMilestone:      task.IsMilestone,
			IsRequired:       task.IsRequired,
			TMinus:           task.TMinusWorkdays,
			Order:            task.Order,
		}
		assign(&pt, task.Role, in.Assignments, in.Directory)
		planned = append(planned, pt)
	}

	SortByOrder(planned)
	return planned
}

// assign resolves role through the team assignment and attaches the person
// summary when the directory knows the person.
func assign(pt *domain.PlannedTask, role string, assignments domain.TeamAssignment, directory map[string]domain.PersonSummary) {
	personID, ok := assignments.AssigneeFor(role)
	if !ok {
		return
	}
	pt.AssigneeID = &personID
	if summary, found := directory[personID]; found {
		s := summary
		pt.Assignee = &s
	}
}
