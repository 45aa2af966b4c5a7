package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/backplan/internal/contract"
	"github.com/alexanderramin/backplan/internal/domain"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func ptr[T any](v T) *T { return &v }

func samplePlan() *contract.GenerateResponse {
	deadline := domain.Date(2026, 3, 13)
	first := domain.Date(2026, 2, 26)
	warning := &domain.WorkloadWarning{
		PersonID: "p-tm", PersonName: "Tom Manager", Date: deadline, Week: "2026-W11",
		ExistingCount: 5, Severity: domain.SeverityDanger, Message: "Tom Manager already has 5 tasks on 2026-03-13",
	}
	return &contract.GenerateResponse{
		GeneratedAt: domain.Date(2026, 2, 27),
		TemplateID:  "standard",
		BureauID:    "bureau-1",
		ScheduledTasks: []domain.PlannedTask{
			{Name: "Kick-off", StartDate: first, EndDate: domain.Date(2026, 2, 27), Role: "writer", TMinus: 10,
				AssigneeID: ptr("p-writer"), Assignee: &domain.PersonSummary{ID: "p-writer", Name: "Wendy Writer"}},
			{Name: "Submit", StartDate: deadline, EndDate: deadline, Role: "tendermanager", IsMilestone: true,
				AssigneeID: ptr("p-tm"), Conflict: warning},
		},
		ChecklistItems: []domain.PlannedTask{
			{Kind: domain.KindChecklist, Name: "Quality plan", StartDate: domain.Date(2026, 2, 20), EndDate: domain.Date(2026, 2, 20), Role: "kwaliteit", TMinus: 14},
		},
		WorkloadWarnings: []domain.WorkloadWarning{*warning},
		Metadata: domain.PlanningMetadata{
			FirstTaskDate: &first, LastTaskDate: &deadline, Deadline: deadline,
			WorkdaySpan: 11, CalendarDaySpan: 15, SkippedHolidays: []time.Time{domain.Date(2026, 3, 9)},
		},
		Notes: []string{"holidays for 2027 unavailable"},
	}
}

func TestFormatPlan(t *testing.T) {
	out := stripANSI(FormatPlan(samplePlan()))

	for _, want := range []string{
		"BACK-PLAN",
		"Fri 13 Mar 2026",
		"In 2w",
		"11 workdays / 15 calendar days",
		"2026-03-09",
		"Thu 26 Feb → Fri 27 Feb",
		"Wendy Writer",
		"◆ Submit",
		"p-tm",
		"● DANGER",
		"CHECKLIST",
		"Quality plan",
		"unassigned",
		"WORKLOAD WARNINGS",
		"already has 5 tasks",
		"! holidays for 2027 unavailable",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatPlan_DangerWarningsFirst(t *testing.T) {
	plan := samplePlan()
	plan.WorkloadWarnings = []domain.WorkloadWarning{
		{PersonID: "p-a", Date: domain.Date(2026, 3, 2), Severity: domain.SeverityWarning, Message: "early warning"},
		{PersonID: "p-b", Date: domain.Date(2026, 3, 5), Severity: domain.SeverityDanger, Message: "late danger"},
		{PersonID: "p-c", Date: domain.Date(2026, 3, 3), Severity: domain.SeverityWarning, Message: "middle warning"},
	}

	out := stripANSI(FormatPlan(plan))
	danger := strings.Index(out, "late danger")
	early := strings.Index(out, "early warning")
	middle := strings.Index(out, "middle warning")
	assert.True(t, danger >= 0 && danger < early, "danger listed first")
	assert.Less(t, early, middle, "date order kept within a severity")
	assert.Equal(t, "p-a", plan.WorkloadWarnings[0].PersonID, "response is not reordered")
}

func TestFormatPlan_EmptyTemplate(t *testing.T) {
	out := stripANSI(FormatPlan(&contract.GenerateResponse{
		Metadata: domain.PlanningMetadata{Deadline: domain.Date(2026, 3, 13)},
	}))
	assert.Contains(t, out, "Template has no tasks.")
	assert.NotContains(t, out, "CHECKLIST")
	assert.NotContains(t, out, "Span:")
}

func TestFormatWorkload(t *testing.T) {
	out := stripANSI(FormatWorkload(&contract.WorkloadResponse{
		Workload: map[string]map[string]domain.WeekLoad{
			"p2": {"2026-W12": {Count: 1, Items: []string{"Tender B"}}},
			"p1": {
				"2026-W12": {Count: 5, Items: []string{"Tender A", "Tender B"}},
				"2026-W11": {Count: 2, Items: []string{"Tender A"}},
			},
		},
		People: map[string]domain.PersonSummary{"p1": {ID: "p1", Name: "Anna"}},
	}, DefaultLoadScale()))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, underline, table header, separator, three rows
	assert.Len(t, lines, 7)
	assert.Contains(t, lines[4], "Anna")
	assert.Contains(t, lines[4], "2026-W11")
	assert.Contains(t, lines[5], "Tender A, Tender B")
	assert.NotContains(t, lines[5], "Anna")
	assert.Contains(t, lines[6], "p2")

	assert.Contains(t, stripANSI(FormatWorkload(&contract.WorkloadResponse{}, DefaultLoadScale())), "No scheduled tasks")
}

func TestFormatCatalog(t *testing.T) {
	templates := stripANSI(FormatTemplateList([]*domain.Template{
		{ID: "standard", Name: "Standard", IsDefault: true},
		{ID: "light", Name: "Light"},
	}))
	assert.Contains(t, templates, "standard")
	assert.Contains(t, templates, "yes")
	assert.Contains(t, stripANSI(FormatTemplateList(nil)), "No templates found.")

	holidays := stripANSI(FormatHolidayList([]domain.Holiday{{Date: domain.Date(2026, 4, 27), Name: "Koningsdag"}}))
	assert.Contains(t, holidays, "2026-04-27")
	assert.Contains(t, holidays, "Mon")
	assert.Contains(t, holidays, "Koningsdag")

	imported := stripANSI(FormatImportResult(&contract.ImportResult{
		BureauID: "bureau-9", TemplateCount: 2, TaskCount: 4, Warnings: []string{`unknown role "ghostwriter"`},
	}))
	assert.Contains(t, imported, "bureau-9")
	assert.Contains(t, imported, "template tasks")
	assert.NotContains(t, imported, "works")
	assert.Contains(t, imported, "ghostwriter")

	saved := stripANSI(FormatSaveResult(&contract.SavePlanResult{WorkID: "w1", CreatedWork: true, Inserted: 3}))
	assert.Equal(t, "Created work w1: 3 tasks stored, 0 replaced\n", saved)
}

func TestFormatTeamList(t *testing.T) {
	out := stripANSI(FormatTeamList([]domain.PersonSummary{
		{ID: "p-tm", Name: "Tom Manager", Initials: "TM"},
		{ID: "p-writer", Name: "Wendy Writer", Initials: "WW"},
	}))
	assert.Contains(t, out, "TEAM")
	assert.Regexp(t, `p-tm\s+Tom Manager\s+TM`, out)
	assert.Contains(t, out, "p-writer")

	assert.Contains(t, stripANSI(FormatTeamList(nil)), "No team members found.")
}

func TestFormatTemplateDetail(t *testing.T) {
	out := stripANSI(FormatTemplateDetail(&contract.TemplateDetail{
		Template: &domain.Template{ID: "standard", Name: "Standard", IsActive: true},
		Tasks: []domain.TemplateTask{
			{Name: "Kick-off", Role: domain.RoleWriter, TMinusWorkdays: 10, DurationWorkdays: 2, IsRequired: true},
			{Name: "Submit", Role: domain.RoleTenderManager, DurationWorkdays: 1, IsMilestone: true},
		},
	}))
	assert.Contains(t, out, "standard")
	assert.Regexp(t, `10\s+2\s+Kick-off`, out)
	assert.Contains(t, out, "◆ Submit")
	assert.Contains(t, out, "optional")
	assert.NotContains(t, out, "inactive")

	empty := stripANSI(FormatTemplateDetail(&contract.TemplateDetail{
		Template: &domain.Template{ID: "old", Name: "Old"},
	}))
	assert.Contains(t, empty, "inactive")
	assert.Contains(t, empty, "Template has no tasks.")
}

func TestFormatStoredPlan(t *testing.T) {
	deadline := domain.Date(2026, 3, 13)
	plan := &contract.StoredPlan{
		Work: &domain.Work{ID: "work-1", Name: "Tender Current", Deadline: &deadline},
		Tasks: []*domain.PersistedTask{
			{Kind: domain.KindTask, Name: "Submit", Role: domain.RoleTenderManager, AssigneeID: ptr("p-tm"),
				StartDate: deadline, EndDate: deadline, DurationWorkdays: 1, IsMilestone: true},
			{Kind: domain.KindTask, Name: "Review", Role: domain.RoleReviewer, AssigneeID: ptr("p-gone"),
				StartDate: deadline, EndDate: deadline, DurationWorkdays: 1},
			{Kind: domain.KindChecklist, Name: "Quality plan", Role: domain.RoleTenderManager,
				StartDate: deadline, EndDate: deadline, DurationWorkdays: 1},
		},
		People: map[string]domain.PersonSummary{"p-tm": {ID: "p-tm", Name: "Tom Manager"}},
	}
	out := stripANSI(FormatStoredPlan(plan))
	assert.Contains(t, out, "Tender Current  work-1")
	assert.Contains(t, out, "Fri 13 Mar 2026")
	assert.Contains(t, out, "Tom Manager")
	assert.Contains(t, out, "p-gone", "unresolved assignees fall back to their id")
	assert.Less(t, strings.Index(out, "SCHEDULE"), strings.Index(out, "CHECKLIST"))
	assert.Less(t, strings.Index(out, "CHECKLIST"), strings.Index(out, "Quality plan"))

	plan.Tasks = nil
	assert.Contains(t, stripANSI(FormatStoredPlan(plan)), "No plan stored for this work.")
}

func TestRelativeDateFrom(t *testing.T) {
	now := domain.Date(2026, 3, 1)
	tests := []struct {
		days int
		want string
	}{
		{0, "Today"},
		{1, "Tomorrow"},
		{-1, "Yesterday"},
		{5, "In 5d"},
		{21, "In 3w"},
		{90, "In 3mo"},
		{-10, "10d ago"},
		{-30, "4w ago"},
		{-120, "4mo ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeDateFrom(now.AddDate(0, 0, tt.days), now), "days=%d", tt.days)
	}
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{
		{StyleRed.Render("long cell"), "x"},
		{"s", "y"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestLoadScale_Style(t *testing.T) {
	scale := DefaultLoadScale()
	assert.Equal(t, ColorGreen, scale.Style(5).GetForeground(), "a normal week of one task a day")
	assert.Equal(t, ColorYellow, scale.Style(10).GetForeground())
	assert.Equal(t, ColorRed, scale.Style(15).GetForeground())

	assert.Equal(t, ColorGreen, LoadScale{}.Style(4).GetForeground(), "zero scale falls back to the default")
	assert.Equal(t, ColorRed, LoadScale{Warning: 2, Danger: 3}.Style(3).GetForeground())
}
