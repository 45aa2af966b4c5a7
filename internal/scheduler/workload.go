package scheduler

import (
	"sort"

	"github.com/alexanderramin/backplan/internal/domain"
)

// AggregateWorkload buckets scheduled tasks per person into ISO weeks,
// counting tasks and collecting the distinct work labels touched each week.
// Labels are sorted; blank labels are counted but not listed.
func AggregateWorkload(refs []domain.ScheduledTaskRef) map[string]map[string]domain.WeekLoad {
	out := make(map[string]map[string]domain.WeekLoad)
	labels := make(map[string]map[string]map[string]bool)

	for _, ref := range refs {
		if ref.PersonID == "" {
			continue
		}
		week := domain.ISOWeekKey(ref.Date)
		if out[ref.PersonID] == nil {
			out[ref.PersonID] = make(map[string]domain.WeekLoad)
			labels[ref.PersonID] = make(map[string]map[string]bool)
		}
		load := out[ref.PersonID][week]
		load.Count++
		if labels[ref.PersonID][week] == nil {
			labels[ref.PersonID][week] = make(map[string]bool)
		}
		if ref.WorkItemLabel != "" && !labels[ref.PersonID][week][ref.WorkItemLabel] {
			labels[ref.PersonID][week][ref.WorkItemLabel] = true
			load.Items = append(load.Items, ref.WorkItemLabel)
		}
		out[ref.PersonID][week] = load
	}

	for personID, weeks := range out {
		for week, load := range weeks {
			if load.Items == nil {
				load.Items = []string{}
			}
			sort.Strings(load.Items)
			out[personID][week] = load
		}
	}
	return out
}
