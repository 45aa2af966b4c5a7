package scheduler

import (
	"testing"

	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePlan_Basic(t *testing.T) {
	tasks := []domain.PlannedTask{
		{StartDate: date(2026, 2, 20), EndDate: date(2026, 2, 26)},
		{StartDate: date(2026, 2, 13), EndDate: date(2026, 2, 13)},
		{StartDate: date(2026, 3, 13), EndDate: date(2026, 3, 13)},
	}
	meta := SummarizePlan(date(2026, 3, 13), tasks, nil)

	require.NotNil(t, meta.FirstTaskDate)
	require.NotNil(t, meta.LastTaskDate)
	assert.Equal(t, "2026-02-13", domain.FormatDate(*meta.FirstTaskDate))
	assert.Equal(t, "2026-03-13", domain.FormatDate(*meta.LastTaskDate))
	assert.Equal(t, "2026-03-13", domain.FormatDate(meta.Deadline))
	assert.Equal(t, 28, meta.CalendarDaySpan)
	assert.Equal(t, 21, meta.WorkdaySpan)
	assert.Empty(t, meta.SkippedHolidays)
}

func TestSummarizePlan_LastDateUsesEndDate(t *testing.T) {
	tasks := []domain.PlannedTask{
		{StartDate: date(2026, 3, 13), EndDate: date(2026, 3, 17)},
	}
	meta := SummarizePlan(date(2026, 3, 13), tasks, nil)
	assert.Equal(t, "2026-03-17", domain.FormatDate(*meta.LastTaskDate))
}

func TestSummarizePlan_Empty(t *testing.T) {
	meta := SummarizePlan(date(2026, 3, 13), nil, nil)
	assert.Nil(t, meta.FirstTaskDate)
	assert.Nil(t, meta.LastTaskDate)
	assert.Zero(t, meta.WorkdaySpan)
	assert.Zero(t, meta.CalendarDaySpan)
	assert.NotNil(t, meta.SkippedHolidays)
	assert.Empty(t, meta.SkippedHolidays)
}

func TestSummarizePlan_SkippedHolidays(t *testing.T) {
	tasks := []domain.PlannedTask{{StartDate: date(2026, 4, 1), EndDate: date(2026, 4, 1)}}
	meta := SummarizePlan(date(2026, 5, 30), tasks, dutchHolidays2026())

	got := fmtDates(meta.SkippedHolidays...)
	assert.Contains(t, got, "2026-04-06")
	assert.Contains(t, got, "2026-04-27")
	assert.NotContains(t, got, "2026-01-01")
	assert.NotContains(t, got, "2026-12-25")
	assert.IsNonDecreasing(t, got)
}
