package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/backplan/internal/contract"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/scheduler"
)

// FormatPlan renders a generated back-plan: summary, schedule, checklist,
// workload warnings and any degraded-lookup notes.
func FormatPlan(resp *contract.GenerateResponse) string {
	var b strings.Builder
	meta := resp.Metadata

	b.WriteString(Header("Back-plan"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Deadline:  %s  %s\n", Bold(meta.Deadline.Format("Mon 02 Jan 2006")),
		Dim(RelativeDateFrom(meta.Deadline, resp.GeneratedAt)))
	fmt.Fprintf(&b, "  Template:  %s\n", resp.TemplateID)
	if meta.FirstTaskDate != nil {
		fmt.Fprintf(&b, "  Starts:    %s\n", domain.FormatDate(*meta.FirstTaskDate))
		fmt.Fprintf(&b, "  Span:      %d workdays / %d calendar days\n", meta.WorkdaySpan, meta.CalendarDaySpan)
	}
	if len(meta.SkippedHolidays) > 0 {
		days := make([]string, len(meta.SkippedHolidays))
		for i, h := range meta.SkippedHolidays {
			days[i] = domain.FormatDate(h)
		}
		fmt.Fprintf(&b, "  Holidays:  %s\n", strings.Join(days, ", "))
	}
	b.WriteString("\n")

	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	if len(resp.ScheduledTasks) == 0 {
		b.WriteString(Dim("  Template has no tasks.") + "\n")
	} else {
		b.WriteString(renderTasks(resp.ScheduledTasks))
	}

	if len(resp.ChecklistItems) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Checklist"))
		b.WriteString("\n")
		b.WriteString(renderTasks(resp.ChecklistItems))
	}

	if len(resp.WorkloadWarnings) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Workload warnings"))
		b.WriteString("\n")
		for _, w := range dangerFirst(resp.WorkloadWarnings) {
			fmt.Fprintf(&b, "  %s  %s  %s\n", SeverityIndicator(w.Severity), Dim(w.Week), w.Message)
		}
	}

	if len(resp.Notes) > 0 {
		notes := make([]string, len(resp.Notes))
		for i, n := range resp.Notes {
			notes[i] = StyleYellow.Render("! " + n)
		}
		b.WriteString("\n")
		b.WriteString(RenderBox("Degraded lookups", strings.Join(notes, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// dangerFirst lists danger warnings before plain warnings, keeping the date
// order within each severity.
func dangerFirst(warnings []domain.WorkloadWarning) []domain.WorkloadWarning {
	out := slices.Clone(warnings)
	slices.SortStableFunc(out, func(a, b domain.WorkloadWarning) int {
		return scheduler.SeverityPriority(a.Severity) - scheduler.SeverityPriority(b.Severity)
	})
	return out
}

func renderTasks(tasks []domain.PlannedTask) string {
	headers := []string{"When", "T-", "Task", "Role", "Assignee", ""}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		name := t.Name
		if t.IsMilestone {
			name = StylePurple.Render("◆ " + name)
		}
		flag := ""
		if t.Conflict != nil {
			flag = SeverityIndicator(t.Conflict.Severity)
		}
		rows = append(rows, []string{
			DateSpan(t.StartDate, t.EndDate),
			fmt.Sprintf("%d", t.TMinus),
			name,
			t.Role,
			AssigneeLabel(t),
			flag,
		})
	}
	return RenderTable(headers, rows)
}

// FormatSaveResult summarises a stored plan.
func FormatSaveResult(res *contract.SavePlanResult) string {
	verb := "Updated"
	if res.CreatedWork {
		verb = "Created"
	}
	return fmt.Sprintf("%s work %s: %d tasks stored, %d replaced\n",
		verb, Bold(res.WorkID), res.Inserted, res.Deleted)
}

// FormatStoredPlan renders the tasks saved for a work, split into schedule
// and checklist like a freshly generated plan.
func FormatStoredPlan(plan *contract.StoredPlan) string {
	var b strings.Builder
	b.WriteString(Header("Stored plan"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Work:      %s  %s\n", Bold(plan.Work.Name), Dim(plan.Work.ID))
	if plan.Work.Deadline != nil {
		fmt.Fprintf(&b, "  Deadline:  %s\n", Bold(plan.Work.Deadline.Format("Mon 02 Jan 2006")))
	}
	b.WriteString("\n")

	var tasks, checklist []domain.PlannedTask
	for _, t := range plan.Tasks {
		pt := storedToPlanned(t, plan.People)
		if t.Kind == domain.KindChecklist {
			checklist = append(checklist, pt)
		} else {
			tasks = append(tasks, pt)
		}
	}

	if len(tasks) == 0 && len(checklist) == 0 {
		b.WriteString(Dim("  No plan stored for this work.") + "\n")
		return b.String()
	}
	if len(tasks) > 0 {
		b.WriteString(Header("Schedule"))
		b.WriteString("\n")
		b.WriteString(renderTasks(tasks))
	}
	if len(checklist) > 0 {
		if len(tasks) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header("Checklist"))
		b.WriteString("\n")
		b.WriteString(renderTasks(checklist))
	}
	return b.String()
}

func storedToPlanned(t *domain.PersistedTask, people map[string]domain.PersonSummary) domain.PlannedTask {
	pt := domain.PlannedTask{
		Kind:             t.Kind,
		Name:             t.Name,
		Description:      t.Description,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		DurationWorkdays: t.DurationWorkdays,
		Role:             t.Role,
		Category:         t.Category,
		AssigneeID:       t.AssigneeID,
		IsMilestone:      t.IsMilestone,
		IsRequired:       t.IsRequired,
		TMinus:           t.TMinus,
		Order:            t.Order,
	}
	if pt.HasAssignee() {
		if p, ok := people[*pt.AssigneeID]; ok {
			pt.Assignee = &p
		}
	}
	return pt
}
