package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/backplan/internal/contract"
)

// FormatWorkload renders one row per person and ISO week, with counts
// coloured on scale.
func FormatWorkload(resp *contract.WorkloadResponse, scale LoadScale) string {
	if len(resp.Workload) == 0 {
		return Dim("No scheduled tasks in this period.") + "\n"
	}

	personIDs := make([]string, 0, len(resp.Workload))
	for id := range resp.Workload {
		personIDs = append(personIDs, id)
	}
	sort.Strings(personIDs)

	headers := []string{"Person", "Week", "Tasks", "Tenders"}
	var rows [][]string
	for _, id := range personIDs {
		name := id
		if p, ok := resp.People[id]; ok && p.Name != "" {
			name = p.Name
		}

		weeks := resp.Workload[id]
		keys := make([]string, 0, len(weeks))
		for k := range weeks {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i, week := range keys {
			load := weeks[week]
			label := ""
			if i == 0 {
				label = name
			}
			rows = append(rows, []string{
				label,
				week,
				scale.Style(load.Count).Render(fmt.Sprintf("%d", load.Count)),
				strings.Join(load.Items, ", "),
			})
		}
	}

	return Header("Workload") + "\n" + RenderTable(headers, rows)
}
