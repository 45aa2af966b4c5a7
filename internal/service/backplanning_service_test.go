package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/backplan/internal/app"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/metrics"
	"github.com/alexanderramin/backplan/internal/scheduler"
)

func generateRequest(templateID string) app.GenerateRequest {
	req := app.NewGenerateRequest(testDeadline, templateID, testBureau)
	req.TeamAssignments = domain.TeamAssignment{
		domain.RoleWriter:        "p-writer",
		domain.RoleTenderManager: "p-tm",
	}
	return req
}

func TestGenerateBackplanning_FullPlan(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := newTestBackplanning(r)

	resp, err := svc.GenerateBackplanning(context.Background(), generateRequest(s.templateID))
	require.NoError(t, err)

	require.Len(t, resp.ScheduledTasks, 2)
	kickoff, submit := resp.ScheduledTasks[0], resp.ScheduledTasks[1]

	assert.Equal(t, "Kick-off", kickoff.Name)
	assert.Equal(t, domain.Date(2026, 2, 26), kickoff.StartDate, "holiday on 2026-03-09 pushes the start back a day")
	assert.Equal(t, domain.Date(2026, 2, 27), kickoff.EndDate)
	require.NotNil(t, kickoff.Assignee)
	assert.Equal(t, "Wendy Writer", kickoff.Assignee.Name)

	assert.Equal(t, "Submit", submit.Name)
	assert.Equal(t, testDeadline, submit.StartDate)
	assert.True(t, submit.IsMilestone)
	require.NotNil(t, submit.AssigneeID)
	assert.Equal(t, "p-tm", *submit.AssigneeID)

	require.Len(t, resp.ChecklistItems, 1)
	item := resp.ChecklistItems[0]
	assert.Equal(t, domain.KindChecklist, item.Kind)
	assert.Equal(t, domain.Date(2026, 2, 20), item.StartDate)
	assert.Equal(t, "kwaliteit", item.Role)
	assert.Nil(t, item.AssigneeID, "reviewer role is not assigned")

	meta := resp.Metadata
	require.NotNil(t, meta.FirstTaskDate)
	assert.Equal(t, domain.Date(2026, 2, 26), *meta.FirstTaskDate)
	assert.Equal(t, testDeadline, *meta.LastTaskDate)
	assert.Equal(t, 11, meta.WorkdaySpan)
	assert.Equal(t, 15, meta.CalendarDaySpan)
	assert.Equal(t, []time.Time{domain.Date(2026, 3, 9)}, meta.SkippedHolidays)

	assert.Empty(t, resp.WorkloadWarnings)
	assert.Empty(t, resp.Notes)
	assert.Len(t, resp.People, 2)
	assert.Equal(t, testNow, resp.GeneratedAt)
}

func TestGenerateBackplanning_WithoutChecklist(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := newTestBackplanning(r)

	req := generateRequest(s.templateID)
	req.IncludeChecklist = false
	resp, err := svc.GenerateBackplanning(context.Background(), req)
	require.NoError(t, err)

	assert.NotNil(t, resp.ChecklistItems)
	assert.Empty(t, resp.ChecklistItems)
	assert.Len(t, resp.AllTasks(), 2)
}

func TestGenerateBackplanning_ConflictsExcludeCurrentWork(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	seedLoad(t, r, s.other, "p-tm", testDeadline, 3)
	seedLoad(t, r, s.current, "p-tm", testDeadline, 2)
	svc := newTestBackplanning(r)

	tests := []struct {
		name          string
		currentWorkID string
		wantCount     int
		wantSeverity  domain.Severity
	}{
		{"excluding current work", s.current.ID, 3, domain.SeverityWarning},
		{"without exclusion", "", 5, domain.SeverityDanger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := generateRequest(s.templateID)
			req.CurrentWorkID = tt.currentWorkID

			resp, err := svc.GenerateBackplanning(context.Background(), req)
			require.NoError(t, err)

			require.Len(t, resp.WorkloadWarnings, 1)
			w := resp.WorkloadWarnings[0]
			assert.Equal(t, "p-tm", w.PersonID)
			assert.Equal(t, "Tom Manager", w.PersonName)
			assert.Equal(t, tt.wantCount, w.ExistingCount)
			assert.Equal(t, tt.wantSeverity, w.Severity)
			assert.Equal(t, "2026-W11", w.Week)

			submit := resp.ScheduledTasks[1]
			require.NotNil(t, submit.Conflict)
			assert.Equal(t, tt.wantSeverity, submit.Conflict.Severity)
			assert.Nil(t, resp.ScheduledTasks[0].Conflict)
		})
	}
}

func TestGenerateBackplanning_CustomThresholds(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	seedLoad(t, r, s.other, "p-writer", domain.Date(2026, 2, 26), 1)
	svc := newTestBackplanning(r, WithThresholds(scheduler.Thresholds{Warning: 1, Danger: 2}))

	resp, err := svc.GenerateBackplanning(context.Background(), generateRequest(s.templateID))
	require.NoError(t, err)

	require.Len(t, resp.WorkloadWarnings, 1)
	assert.Equal(t, "p-writer", resp.WorkloadWarnings[0].PersonID)
	assert.Equal(t, domain.SeverityWarning, resp.WorkloadWarnings[0].Severity)
}

func TestGenerateBackplanning_ValidationErrors(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	obs := &recordingObserver{}
	svc := newTestBackplanning(r, WithObserver(obs))

	tests := []struct {
		name   string
		mutate func(*app.GenerateRequest)
		code   app.ValidationErrorCode
	}{
		{"missing deadline", func(req *app.GenerateRequest) { req.Deadline = time.Time{} }, app.ErrMissingDeadline},
		{"missing template", func(req *app.GenerateRequest) { req.TemplateID = " " }, app.ErrMissingTemplate},
		{"missing bureau", func(req *app.GenerateRequest) { req.BureauID = "" }, app.ErrMissingBureau},
		{"blank role", func(req *app.GenerateRequest) { req.TeamAssignments[""] = "p-tm" }, app.ErrInvalidAssignment},
		{"unknown template", func(req *app.GenerateRequest) { req.TemplateID = "nope" }, app.ErrTemplateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := generateRequest(s.templateID)
			tt.mutate(&req)

			resp, err := svc.GenerateBackplanning(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, app.IsValidation(err, tt.code), "got %v", err)

			ev := obs.last()
			assert.Equal(t, "generate-backplanning", ev.Name)
			assert.False(t, ev.Success)
			assert.Equal(t, "validation_error", ev.Outcome())
		})
	}
}

func TestGenerateBackplanning_TemplateStoreErrorPropagates(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := NewBackplanningService(failingTemplateRepo{}, r.checklist, r.holidays, r.team, r.tasks, r.tasks)

	_, err := svc.GenerateBackplanning(context.Background(), generateRequest(s.templateID))
	require.ErrorIs(t, err, errBoom)
	assert.False(t, app.IsValidation(err))
}

func TestGenerateBackplanning_DegradedLookupsFailOpen(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	seedLoad(t, r, s.other, "p-tm", testDeadline, 5)

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	svc := NewBackplanningService(
		r.templates,
		failingChecklistRepo{},
		failingHolidayRepo{},
		failingTeamRepo{},
		selectiveLedger{WorkloadLedger: r.tasks, failFor: "p-tm"},
		r.tasks,
		WithClock(func() time.Time { return testNow }),
		WithRecorder(rec),
	)

	resp, err := svc.GenerateBackplanning(context.Background(), generateRequest(s.templateID))
	require.NoError(t, err)

	// Without the holiday the kick-off lands one workday later.
	assert.Equal(t, domain.Date(2026, 2, 27), resp.ScheduledTasks[0].StartDate)
	assert.Empty(t, resp.Metadata.SkippedHolidays)

	require.NotNil(t, resp.ScheduledTasks[0].AssigneeID)
	assert.Nil(t, resp.ScheduledTasks[0].Assignee, "directory failure leaves the summary unresolved")
	assert.Empty(t, resp.People)

	assert.Empty(t, resp.ChecklistItems)
	assert.Empty(t, resp.WorkloadWarnings, "ledger failure suppresses that person's warnings")
	assert.Len(t, resp.Notes, 4)

	expected := `
# HELP backplan_lookup_failures_total Failed lookups that were tolerated, by source
# TYPE backplan_lookup_failures_total counter
backplan_lookup_failures_total{source="checklist"} 1
backplan_lookup_failures_total{source="directory"} 1
backplan_lookup_failures_total{source="holidays"} 1
backplan_lookup_failures_total{source="workload_ledger"} 1
`
	require.NoError(t, promtest.GatherAndCompare(reg, strings.NewReader(expected), "backplan_lookup_failures_total"))
}

func TestGenerateBackplanning_HolidayYearsSpanTodayToDeadline(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	ctx := context.Background()
	require.NoError(t, r.holidays.Upsert(ctx, domain.Holiday{BureauID: testBureau, Date: domain.Date(2027, 1, 1), Name: "New year"}))

	deadline := domain.Date(2027, 1, 4) // Monday
	req := generateRequest(s.templateID)
	req.Deadline = deadline
	now := domain.Date(2026, 12, 1)
	req.Now = &now

	resp, err := newTestBackplanning(r).GenerateBackplanning(ctx, req)
	require.NoError(t, err)

	// Ten workdays back from Mon 2027-01-04, skipping Fri 2027-01-01.
	assert.Equal(t, domain.Date(2026, 12, 18), resp.ScheduledTasks[0].StartDate)
	assert.Equal(t, []time.Time{domain.Date(2027, 1, 1)}, resp.Metadata.SkippedHolidays)
}

func TestGenerateBackplanning_CancelledContext(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	svc := NewBackplanningService(r.templates, r.checklist, failingHolidayRepo{}, failingTeamRepo{}, r.tasks, r.tasks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateBackplanning(ctx, generateRequest(s.templateID))
	assert.Error(t, err)
}

func TestGenerateBackplanning_ObserverFields(t *testing.T) {
	r := setupRepos(t)
	s := seedCatalog(t, r)
	obs := &recordingObserver{}
	svc := newTestBackplanning(r, WithObserver(obs))

	_, err := svc.GenerateBackplanning(context.Background(), generateRequest(s.templateID))
	require.NoError(t, err)

	ev := obs.last()
	assert.True(t, ev.Success)
	assert.Equal(t, "success", ev.Outcome())
	assert.Equal(t, 2, ev.Fields["task_count"])
	assert.Equal(t, 1, ev.Fields["checklist_count"])
	assert.Equal(t, "2026-03-13", ev.Fields["deadline"])
}
