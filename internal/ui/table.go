package ui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/staffbook/staffql/internal/record"
)

const (
	nameColWidth        = 26
	designationColWidth = 20
	departmentColWidth  = 18
	salaryColWidth      = 12
)

// RenderEmployees renders employees as an aligned table with a header row.
func RenderEmployees(employees []*record.Employee) string {
	maxIDWidth := 2 // minimum for "ID" header
	for _, e := range employees {
		if len(e.ID) > maxIDWidth {
			maxIDWidth = len(e.ID)
		}
	}
	maxIDWidth += 2 // padding

	idStyle := lipgloss.NewStyle().Width(maxIDWidth)
	nameStyle := lipgloss.NewStyle().Width(nameColWidth)
	designationStyle := lipgloss.NewStyle().Width(designationColWidth)
	departmentStyle := lipgloss.NewStyle().Width(departmentColWidth)
	salaryStyle := lipgloss.NewStyle().Width(salaryColWidth).Align(lipgloss.Right)
	headerCol := lipgloss.NewStyle().Foreground(ColorMuted)

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(headerCol.Render("ID")),
		nameStyle.Render(headerCol.Render("NAME")),
		designationStyle.Render(headerCol.Render("DESIGNATION")),
		departmentStyle.Render(headerCol.Render("DEPARTMENT")),
		salaryStyle.Render(headerCol.Render("SALARY")),
	))
	sb.WriteString("\n")
	sb.WriteString(Muted.Render(strings.Repeat("─", maxIDWidth+nameColWidth+designationColWidth+departmentColWidth+salaryColWidth)))
	sb.WriteString("\n")

	for _, e := range employees {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(ID.Render(e.ID)),
			nameStyle.Render(truncateString(FullName(e), nameColWidth-2)),
			designationStyle.Render(truncateString(record.StringValue(e.Designation), designationColWidth-2)),
			departmentStyle.Render(Department.Render(truncateString(record.StringValue(e.Department), departmentColWidth-2))),
			salaryStyle.Render(FormatSalary(e.Salary)),
		))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FullName joins first and last name, skipping whichever is unset.
func FullName(e *record.Employee) string {
	return strings.TrimSpace(record.StringValue(e.FirstName) + " " + record.StringValue(e.LastName))
}

// FormatSalary renders a salary with two decimals, or "-" when unset.
func FormatSalary(salary *float64) string {
	if salary == nil {
		return "-"
	}
	return strconv.FormatFloat(*salary, 'f', 2, 64)
}

// truncateString shortens s to maxLen runes, marking the cut with an ellipsis.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
