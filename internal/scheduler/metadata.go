package scheduler

import (
	"time"

	"github.com/alexanderramin/backplan/internal/calendar"
	"github.com/alexanderramin/backplan/internal/domain"
)

// SummarizePlan derives span statistics from the dated schedule. Only the
// tasks passed in are considered; callers pass the template schedule without
// checklist items.
//
// WorkdaySpan counts the workdays from the first task through the deadline,
// CalendarDaySpan the calendar days between them, and SkippedHolidays lists
// the holidays inside that range. An empty schedule yields zero values.
func SummarizePlan(deadline time.Time, tasks []domain.PlannedTask, holidays calendar.HolidaySet) domain.PlanningMetadata {
	meta := domain.PlanningMetadata{
		Deadline:        domain.DateOf(deadline),
		SkippedHolidays: []time.Time{},
	}
	if len(tasks) == 0 {
		return meta
	}

	first := tasks[0].StartDate
	last := tasks[0].EndDate
	for _, t := range tasks[1:] {
		if t.StartDate.Before(first) {
			first = t.StartDate
		}
		if t.EndDate.After(last) {
			last = t.EndDate
		}
	}
	first, last = domain.DateOf(first), domain.DateOf(last)

	meta.FirstTaskDate = &first
	meta.LastTaskDate = &last
	meta.WorkdaySpan = calendar.WorkdaysBetween(first, meta.Deadline, holidays)
	meta.CalendarDaySpan = domain.DaysBetween(first, meta.Deadline)
	if skipped := calendar.HolidaysBetween(first, meta.Deadline, holidays); skipped != nil {
		meta.SkippedHolidays = skipped
	}
	return meta
}
