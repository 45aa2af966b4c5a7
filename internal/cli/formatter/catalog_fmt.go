package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/backplan/internal/contract"
	"github.com/alexanderramin/backplan/internal/domain"
)

func FormatTemplateList(templates []*domain.Template) string {
	if len(templates) == 0 {
		return Dim("No templates found.") + "\n"
	}
	headers := []string{"ID", "Name", "Default", "Description"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		def := ""
		if t.IsDefault {
			def = StyleGreen.Render("yes")
		}
		rows = append(rows, []string{t.ID, t.Name, def, t.Description})
	}
	return Header("Templates") + "\n" + RenderTable(headers, rows)
}

func FormatHolidayList(holidays []domain.Holiday) string {
	if len(holidays) == 0 {
		return Dim("No holidays found.") + "\n"
	}
	headers := []string{"Date", "Day", "Name"}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{domain.FormatDate(h.Date), h.Date.Format("Mon"), h.Name})
	}
	return Header("Holidays") + "\n" + RenderTable(headers, rows)
}

// FormatImportResult lists what a catalog import stored, then its warnings.
func FormatImportResult(res *contract.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported catalog for %s\n", Bold(res.BureauID))
	counts := []struct {
		label string
		n     int
	}{
		{"templates", res.TemplateCount},
		{"template tasks", res.TaskCount},
		{"checklist items", res.ChecklistCount},
		{"holidays", res.HolidayCount},
		{"team members", res.MemberCount},
		{"works", res.WorkCount},
	}
	for _, c := range counts {
		if c.n > 0 {
			fmt.Fprintf(&b, "  %-16s %d\n", c.label, c.n)
		}
	}
	for _, w := range res.Warnings {
		b.WriteString(StyleYellow.Render("  ! "+w) + "\n")
	}
	return b.String()
}

// FormatTeamList lists a bureau's people with the ids that --assign takes.
func FormatTeamList(people []domain.PersonSummary) string {
	if len(people) == 0 {
		return Dim("No team members found.") + "\n"
	}
	headers := []string{"ID", "Name", "Initials"}
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		rows = append(rows, []string{p.ID, p.Name, p.Initials})
	}
	return Header("Team") + "\n" + RenderTable(headers, rows)
}

func FormatTemplateDetail(detail *contract.TemplateDetail) string {
	var b strings.Builder
	tpl := detail.Template
	b.WriteString(Header(tpl.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  ID:      %s\n", tpl.ID)
	if tpl.Description != "" {
		fmt.Fprintf(&b, "  About:   %s\n", tpl.Description)
	}
	if !tpl.IsActive {
		b.WriteString("  " + StyleYellow.Render("inactive") + "\n")
	}
	b.WriteString("\n")

	if len(detail.Tasks) == 0 {
		b.WriteString(Dim("  Template has no tasks.") + "\n")
		return b.String()
	}
	headers := []string{"T-", "Days", "Task", "Role", "Category", ""}
	rows := make([][]string, 0, len(detail.Tasks))
	for _, t := range detail.Tasks {
		name := t.Name
		if t.IsMilestone {
			name = StylePurple.Render("◆ " + name)
		}
		optional := ""
		if !t.IsRequired {
			optional = Dim("optional")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.TMinusWorkdays),
			fmt.Sprintf("%d", t.DurationWorkdays),
			name,
			t.Role,
			t.Category,
			optional,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
