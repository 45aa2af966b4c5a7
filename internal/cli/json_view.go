package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/alexanderramin/backplan/internal/contract"
	"github.com/alexanderramin/backplan/internal/domain"
)

type personJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Initials    string `json:"initials,omitempty"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

type warningJSON struct {
	PersonID      string `json:"person_id"`
	PersonName    string `json:"person_name"`
	Date          string `json:"date"`
	Week          string `json:"week"`
	ExistingCount int    `json:"existing_count"`
	Severity      string `json:"severity"`
	Message       string `json:"message"`
}

type taskJSON struct {
	Kind             string       `json:"kind"`
	Name             string       `json:"name"`
	Description      *string      `json:"description,omitempty"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	DurationWorkdays int          `json:"duration_workdays"`
	Role             string       `json:"role"`
	Category         string       `json:"category"`
	AssigneeID       *string      `json:"assignee_id"`
	Assignee         *personJSON  `json:"assignee,omitempty"`
	IsMilestone      bool         `json:"is_milestone"`
	IsRequired       bool         `json:"is_required"`
	TMinus           int          `json:"t_minus"`
	Order            int          `json:"order"`
	Conflict         *warningJSON `json:"conflict,omitempty"`
}

type metadataJSON struct {
	FirstTaskDate   *string  `json:"first_task_date"`
	LastTaskDate    *string  `json:"last_task_date"`
	Deadline        string   `json:"deadline"`
	WorkdaySpan     int      `json:"workday_span"`
	CalendarDaySpan int      `json:"calendar_day_span"`
	SkippedHolidays []string `json:"skipped_holidays"`
}

type savedJSON struct {
	WorkID      string `json:"work_id"`
	CreatedWork bool   `json:"created_work"`
	Deleted     int    `json:"deleted"`
	Inserted    int    `json:"inserted"`
}

type planJSON struct {
	GeneratedAt      string                `json:"generated_at"`
	TemplateID       string                `json:"template_id"`
	BureauID         string                `json:"bureau_id"`
	ScheduledTasks   []taskJSON            `json:"scheduled_tasks"`
	ChecklistItems   []taskJSON            `json:"checklist_items"`
	WorkloadWarnings []warningJSON         `json:"workload_warnings"`
	Metadata         metadataJSON          `json:"metadata"`
	People           map[string]personJSON `json:"people"`
	Notes            []string              `json:"notes,omitempty"`
	Saved            *savedJSON            `json:"saved,omitempty"`
}

type storedPlanJSON struct {
	WorkID   string                `json:"work_id"`
	WorkName string                `json:"work_name"`
	BureauID string                `json:"bureau_id"`
	Deadline *string               `json:"deadline"`
	Tasks    []taskJSON            `json:"tasks"`
	People   map[string]personJSON `json:"people"`
}

type weekJSON struct {
	Count int      `json:"count"`
	Items []string `json:"items"`
}

type workloadJSON struct {
	Workload map[string]map[string]weekJSON `json:"workload"`
	People   map[string]personJSON          `json:"people"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toPersonJSON(p domain.PersonSummary) personJSON {
	return personJSON{ID: p.ID, Name: p.Name, Initials: p.Initials, AvatarColor: p.AvatarColor}
}

func toWarningJSON(w domain.WorkloadWarning) warningJSON {
	return warningJSON{
		PersonID:      w.PersonID,
		PersonName:    w.PersonName,
		Date:          domain.FormatDate(w.Date),
		Week:          w.Week,
		ExistingCount: w.ExistingCount,
		Severity:      string(w.Severity),
		Message:       w.Message,
	}
}

func toTasksJSON(tasks []domain.PlannedTask) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		tj := taskJSON{
			Kind:             string(t.Kind),
			Name:             t.Name,
			Description:      t.Description,
			StartDate:        domain.FormatDate(t.StartDate),
			EndDate:          domain.FormatDate(t.EndDate),
			DurationWorkdays: t.DurationWorkdays,
			Role:             t.Role,
			Category:         t.Category,
			AssigneeID:       t.AssigneeID,
			IsMilestone:      t.IsMilestone,
			IsRequired:       t.IsRequired,
			TMinus:           t.TMinus,
			Order:            t.Order,
		}
		if t.Assignee != nil {
			p := toPersonJSON(*t.Assignee)
			tj.Assignee = &p
		}
		if t.Conflict != nil {
			w := toWarningJSON(*t.Conflict)
			tj.Conflict = &w
		}
		out = append(out, tj)
	}
	return out
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := domain.FormatDate(*t)
	return &s
}

func toPlanJSON(resp *contract.GenerateResponse, saved *contract.SavePlanResult) planJSON {
	var savedView *savedJSON
	if saved != nil {
		savedView = &savedJSON{
			WorkID:      saved.WorkID,
			CreatedWork: saved.CreatedWork,
			Deleted:     saved.Deleted,
			Inserted:    saved.Inserted,
		}
	}
	warnings := make([]warningJSON, 0, len(resp.WorkloadWarnings))
	for _, w := range resp.WorkloadWarnings {
		warnings = append(warnings, toWarningJSON(w))
	}
	holidays := make([]string, 0, len(resp.Metadata.SkippedHolidays))
	for _, h := range resp.Metadata.SkippedHolidays {
		holidays = append(holidays, domain.FormatDate(h))
	}
	people := make(map[string]personJSON, len(resp.People))
	for id, p := range resp.People {
		people[id] = toPersonJSON(p)
	}

	return planJSON{
		GeneratedAt:      resp.GeneratedAt.UTC().Format(time.RFC3339),
		TemplateID:       resp.TemplateID,
		BureauID:         resp.BureauID,
		ScheduledTasks:   toTasksJSON(resp.ScheduledTasks),
		ChecklistItems:   toTasksJSON(resp.ChecklistItems),
		WorkloadWarnings: warnings,
		Metadata: metadataJSON{
			FirstTaskDate:   optionalDate(resp.Metadata.FirstTaskDate),
			LastTaskDate:    optionalDate(resp.Metadata.LastTaskDate),
			Deadline:        domain.FormatDate(resp.Metadata.Deadline),
			WorkdaySpan:     resp.Metadata.WorkdaySpan,
			CalendarDaySpan: resp.Metadata.CalendarDaySpan,
			SkippedHolidays: holidays,
		},
		People: people,
		Notes:  resp.Notes,
		Saved:  savedView,
	}
}

func toWorkloadJSON(resp *contract.WorkloadResponse) workloadJSON {
	out := workloadJSON{
		Workload: make(map[string]map[string]weekJSON, len(resp.Workload)),
		People:   make(map[string]personJSON, len(resp.People)),
	}
	for id, weeks := range resp.Workload {
		wj := make(map[string]weekJSON, len(weeks))
		for week, load := range weeks {
			items := load.Items
			if items == nil {
				items = []string{}
			}
			wj[week] = weekJSON{Count: load.Count, Items: items}
		}
		out.Workload[id] = wj
	}
	for id, p := range resp.People {
		out.People[id] = toPersonJSON(p)
	}
	return out
}

func toStoredPlanJSON(plan *contract.StoredPlan) storedPlanJSON {
	tasks := make([]domain.PlannedTask, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
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
			if p, ok := plan.People[*pt.AssigneeID]; ok {
				pt.Assignee = &p
			}
		}
		tasks = append(tasks, pt)
	}
	people := make(map[string]personJSON, len(plan.People))
	for id, p := range plan.People {
		people[id] = toPersonJSON(p)
	}
	return storedPlanJSON{
		WorkID:   plan.Work.ID,
		WorkName: plan.Work.Name,
		BureauID: plan.Work.BureauID,
		Deadline: optionalDate(plan.Work.Deadline),
		Tasks:    toTasksJSON(tasks),
		People:   people,
	}
}
