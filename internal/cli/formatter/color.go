package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/backplan/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle returns the style for a workload warning severity.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityDanger:
		return StyleRed
	case domain.SeverityWarning:
		return StyleYellow
	default:
		return StyleDim
	}
}

// SeverityIndicator returns a coloured marker such as "● DANGER".
func SeverityIndicator(s domain.Severity) string {
	if s == "" {
		return ""
	}
	return SeverityStyle(s).Render("● " + strings.ToUpper(string(s)))
}

// LoadScale holds the weekly task counts at which a person's week is shown
// as busy (Warning) or overloaded (Danger). Per-day conflict thresholds are
// far too low for week totals.
type LoadScale struct {
	Warning int
	Danger  int
}

// DefaultLoadScale is two tasks per workday for a warning, three for danger.
func DefaultLoadScale() LoadScale {
	return LoadScale{Warning: 10, Danger: 15}
}

// Style colours a weekly task count. A scale without a Warning uses
// DefaultLoadScale.
func (s LoadScale) Style(count int) lipgloss.Style {
	if s.Warning < 1 {
		s = DefaultLoadScale()
	}
	switch {
	case count >= s.Danger:
		return StyleRed
	case count >= s.Warning:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
