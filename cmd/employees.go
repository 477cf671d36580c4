package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/staffbook/staffql/internal/ui"
)

var (
	employeesDepartment  string
	employeesDesignation string
	employeesJSON        bool
)

var employeesCmd = &cobra.Command{
	Use:     "employees",
	Aliases: []string{"ls"},
	Short:   "List employees",
	Long: `List employees, optionally filtered by department and/or designation.

Examples:
  staffql employees
  staffql employees --department Engineering
  staffql employees --designation Manager --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var department, designation *string
		if cmd.Flags().Changed("department") {
			department = &employeesDepartment
		}
		if cmd.Flags().Changed("designation") {
			designation = &employeesDesignation
		}
		return listEmployees(cmd.Context(), os.Stdout, department, designation, employeesJSON)
	},
}

// listEmployees writes the matching employees to w as a table or as JSON.
func listEmployees(ctx context.Context, w io.Writer, department, designation *string, asJSON bool) error {
	resolver, err := newResolver(ctx, false)
	if err != nil {
		return err
	}

	employees, err := resolver.Query().EmployeesByDeptOrDesignation(ctx, department, designation)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(employees)
	}

	if len(employees) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No employees found"))
		return nil
	}

	fmt.Fprint(w, ui.RenderEmployees(employees))
	return nil
}

func init() {
	employeesCmd.Flags().StringVarP(&employeesDepartment, "department", "d", "", "Only employees in this department")
	employeesCmd.Flags().StringVar(&employeesDesignation, "designation", "", "Only employees with this designation")
	employeesCmd.Flags().BoolVar(&employeesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(employeesCmd)
}
