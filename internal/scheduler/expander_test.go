package scheduler

import (
	"testing"

	"github.com/alexanderramin/backplan/internal/calendar"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplateTasks_Empty(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{Deadline: date(2026, 3, 13)})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExpandTemplateTasks_FiveWorkdaysBeforeFriday(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{
		Deadline: date(2026, 3, 13),
		Tasks:    []domain.TemplateTask{{Name: "Draft", Role: "writer", TMinusWorkdays: 5, DurationWorkdays: 1}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-06", domain.FormatDate(got[0].StartDate))
	assert.Equal(t, got[0].StartDate, got[0].EndDate)
	assert.Equal(t, domain.KindTask, got[0].Kind)
}

func TestExpandTemplateTasks_SundayDeadlineTMinusZero(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{
		Deadline: date(2026, 3, 15),
		Tasks:    []domain.TemplateTask{{Name: "Submit", Role: "tendermanager", TMinusWorkdays: 0}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-13", domain.FormatDate(got[0].StartDate))
}

func TestExpandTemplateTasks_SampleTemplateDates(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{
		Deadline:    date(2026, 3, 13),
		Tasks:       sampleTemplate(),
		Assignments: sampleAssignments(),
		Directory:   sampleDirectory(),
	})
	require.Len(t, got, 5)

	cases := []struct {
		name, start, end string
		duration         int
	}{
		{"Kick-off", "2026-02-13", "2026-02-13", 1},
		{"Write texts", "2026-02-20", "2026-02-26", 5},
		{"Review", "2026-02-27", "2026-03-02", 2},
		{"Internal deadline", "2026-03-10", "2026-03-10", 1},
		{"Submit", "2026-03-13", "2026-03-13", 1},
	}
	for i, tc := range cases {
		assert.Equal(t, tc.name, got[i].Name)
		assert.Equal(t, tc.start, domain.FormatDate(got[i].StartDate), tc.name)
		assert.Equal(t, tc.end, domain.FormatDate(got[i].EndDate), tc.name)
		assert.Equal(t, tc.duration, got[i].DurationWorkdays, tc.name)
	}
	assert.Equal(t, "Start meeting", *got[0].Description)
	assert.True(t, got[0].IsMilestone)
	assert.Equal(t, 20, got[0].TMinus)
	assert.Equal(t, domain.DefaultCategory, got[0].Category)
}

func TestExpandTemplateTasks_AssignsPeopleByRole(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{
		Deadline:    date(2026, 3, 13),
		Tasks:       sampleTemplate(),
		Assignments: sampleAssignments(),
		Directory:   sampleDirectory(),
	})

	require.NotNil(t, got[0].Assignee)
	assert.Equal(t, "Rick van Dam", got[0].Assignee.Name)
	assert.Equal(t, "Nathalie Kuiper", got[1].Assignee.Name)
	assert.Equal(t, "Sarah Jansen", got[2].Assignee.Name)
	assert.Equal(t, "user-3", *got[2].AssigneeID)
}

func TestExpandTemplateTasks_MissingRoleIsUnassigned(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{
		Deadline:    date(2026, 3, 13),
		Tasks:       sampleTemplate(),
		Assignments: domain.TeamAssignment{"tendermanager": "user-1"},
		Directory:   sampleDirectory(),
	})

	review := got[2]
	assert.Equal(t, "Review", review.Name)
	assert.Nil(t, review.AssigneeID)
	assert.Nil(t, review.Assignee)
	assert.False(t, review.HasAssignee())
}

func TestExpandTemplateTasks_UnresolvedPersonKeepsID(t *testing.T) {
	got := ExpandTemplateTasks(ExpandInput{
		Deadline:    date(2026, 3, 13),
		Tasks:       sampleTemplate()[:1],
		Assignments: domain.TeamAssignment{"tendermanager": "ghost"},
	})
	require.NotNil(t, got[0].AssigneeID)
	assert.Equal(t, "ghost", *got[0].AssigneeID)
	assert.Nil(t, got[0].Assignee)
}

func TestExpandTemplateTasks_StableOrder(t *testing.T) {
	tasks := []domain.TemplateTask{
		{Name: "c", Order: 2, TMinusWorkdays: 1},
		{Name: "a", Order: 1, TMinusWorkdays: 9},
		{Name: "b", Order: 1, TMinusWorkdays: 3},
		{Name: "d", Order: 3, TMinusWorkdays: 0},
	}
	got := ExpandTemplateTasks(ExpandInput{Deadline: date(2026, 3, 13), Tasks: tasks})

	names := make([]string, len(got))
	for i, pt := range got {
		names[i] = pt.Name
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestExpandTemplateTasks_HolidaysNeverScheduled(t *testing.T) {
	holidays := dutchHolidays2026()
	got := ExpandTemplateTasks(ExpandInput{
		Deadline:    date(2026, 4, 30),
		Tasks:       sampleTemplate(),
		Assignments: sampleAssignments(),
		Holidays:    holidays,
	})
	for _, pt := range got {
		assert.True(t, calendar.IsWorkday(pt.StartDate, holidays), "%s starts on %s", pt.Name, domain.FormatDate(pt.StartDate))
		assert.True(t, calendar.IsWorkday(pt.EndDate, holidays), "%s ends on %s", pt.Name, domain.FormatDate(pt.EndDate))
		assert.False(t, pt.EndDate.Before(pt.StartDate))
		assert.Equal(t, pt.DurationWorkdays, calendar.WorkdaysBetween(pt.StartDate, pt.EndDate, holidays), pt.Name)
	}
}
