package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/backplan/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom describes t relative to now in whole days: "Today",
// "In 3d", "2w ago" and so on.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(domain.DateOf(t).Sub(domain.DateOf(now)).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DateSpan renders a task's dates as "Mon 02 Mar" or "Mon 02 Mar → Wed 04 Mar".
func DateSpan(start, end time.Time) string {
	const layout = "Mon 02 Jan"
	if !end.After(start) {
		return start.Format(layout)
	}
	return start.Format(layout) + " → " + end.Format(layout)
}

// AssigneeLabel prefers the resolved person's name, then the raw id.
func AssigneeLabel(t domain.PlannedTask) string {
	switch {
	case t.Assignee != nil && t.Assignee.Name != "":
		return t.Assignee.Name
	case t.HasAssignee():
		return *t.AssigneeID
	default:
		return Dim("unassigned")
	}
}
