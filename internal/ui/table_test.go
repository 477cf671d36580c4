package ui

import (
	"strings"
	"testing"

	"github.com/staffbook/staffql/internal/record"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
		{"Zoë Ångström", 5, "Zoë …"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		e    record.Employee
		want string
	}{
		{record.Employee{FirstName: record.String("Ada"), LastName: record.String("Lovelace")}, "Ada Lovelace"},
		{record.Employee{FirstName: record.String("Ada")}, "Ada"},
		{record.Employee{LastName: record.String("Lovelace")}, "Lovelace"},
		{record.Employee{}, ""},
	}

	for _, tt := range tests {
		if got := FullName(&tt.e); got != tt.want {
			t.Errorf("FullName(%+v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestFormatSalary(t *testing.T) {
	if got := FormatSalary(nil); got != "-" {
		t.Errorf("FormatSalary(nil) = %q, want \"-\"", got)
	}
	s := 1234.5
	if got := FormatSalary(&s); got != "1234.50" {
		t.Errorf("FormatSalary(1234.5) = %q, want \"1234.50\"", got)
	}
}

func TestRenderEmployees(t *testing.T) {
	salary := 5000.0
	out := RenderEmployees([]*record.Employee{
		{ID: "abc123", FirstName: record.String("Ada"), LastName: record.String("Lovelace"), Designation: record.String("Engineer"), Department: record.String("Research"), Salary: &salary},
		{ID: "def456", FirstName: record.String("Grace")},
	})

	for _, want := range []string{"ID", "NAME", "SALARY", "abc123", "Ada Lovelace", "Engineer", "Research", "5000.00", "def456", "Grace", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderEmployees() missing %q in:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("RenderEmployees() produced %d lines, want 4 (header, rule, 2 rows)", len(lines))
	}
}
