// Package model holds GraphQL input types that have no record counterpart.
package model

import "github.com/staffbook/staffql/internal/record"

// EmployeeInput carries the optional employee attributes accepted by
// addEmployee and updateEmployee. Nil means the argument was omitted or null;
// Unset names the attributes given an explicit null.
type EmployeeInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Department    *string
	Salary        *float64
	DateOfJoining *string
	EmployeePhoto *string

	Unset []string
}

// ToChanges converts the input into a partial update.
func (in EmployeeInput) ToChanges() record.EmployeeChanges {
	return record.EmployeeChanges{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Gender:        in.Gender,
		Designation:   in.Designation,
		Department:    in.Department,
		Salary:        in.Salary,
		DateOfJoining: in.DateOfJoining,
		EmployeePhoto: in.EmployeePhoto,
		Unset:         in.Unset,
	}
}

// ToEmployee builds a new, unsaved employee from the supplied attributes.
func (in EmployeeInput) ToEmployee() *record.Employee {
	e := &record.Employee{}
	in.ToChanges().Apply(e)
	return e
}
