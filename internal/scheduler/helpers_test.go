package scheduler

import (
	"time"

	"github.com/alexanderramin/backplan/internal/calendar"
	"github.com/alexanderramin/backplan/internal/domain"
)

var date = domain.Date

func strPtr(s string) *string { return &s }

func dutchHolidays2026() calendar.HolidaySet {
	return calendar.NewHolidaySet(
		date(2026, 1, 1), date(2026, 4, 3), date(2026, 4, 5), date(2026, 4, 6),
		date(2026, 4, 27), date(2026, 5, 5), date(2026, 5, 14), date(2026, 5, 15),
		date(2026, 5, 24), date(2026, 5, 25), date(2026, 12, 25), date(2026, 12, 26),
	)
}

// sampleTemplate is a simplified five-task tender template.
func sampleTemplate() []domain.TemplateTask {
	return []domain.TemplateTask{
		{Name: "Kick-off", Description: strPtr("Start meeting"), Role: "tendermanager", TMinusWorkdays: 20, DurationWorkdays: 1, IsMilestone: true, IsRequired: true, Order: 10},
		{Name: "Write texts", Role: "writer", TMinusWorkdays: 15, DurationWorkdays: 5, IsRequired: true, Order: 20},
		{Name: "Review", Role: "reviewer", TMinusWorkdays: 10, DurationWorkdays: 2, IsRequired: true, Order: 30},
		{Name: "Internal deadline", Role: "tendermanager", TMinusWorkdays: 3, DurationWorkdays: 0, IsMilestone: true, IsRequired: true, Order: 40},
		{Name: "Submit", Role: "tendermanager", TMinusWorkdays: 0, DurationWorkdays: 0, IsMilestone: true, IsRequired: true, Order: 50},
	}
}

func sampleAssignments() domain.TeamAssignment {
	return domain.TeamAssignment{
		"tendermanager": "user-1",
		"writer":        "user-2",
		"reviewer":      "user-3",
	}
}

func sampleDirectory() map[string]domain.PersonSummary {
	return map[string]domain.PersonSummary{
		"user-1": {ID: "user-1", Name: "Rick van Dam", Initials: "RD", AvatarColor: "#7c3aed"},
		"user-2": {ID: "user-2", Name: "Nathalie Kuiper", Initials: "NK", AvatarColor: "#22c55e"},
		"user-3": {ID: "user-3", Name: "Sarah Jansen", Initials: "SJ", AvatarColor: "#f59e0b"},
	}
}

func fmtDates(ts ...time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = domain.FormatDate(t)
	}
	return out
}
