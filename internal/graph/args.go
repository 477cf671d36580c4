package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/staffbook/staffql/internal/graph/model"
	"github.com/staffbook/staffql/internal/record"
)

// Argument values arrive either as literals parsed from the document (string,
// int64, float64, bool) or as JSON-decoded variables (string, json.Number,
// float64). The optional readers treat a missing key and an explicit null
// alike; employeeInputArgs tells them apart.

func optionalString(args map[string]any, name string) (*string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("argument %s: %T is not a string", name, v)
	}
	return &s, nil
}

func requiredString(args map[string]any, name string) (string, error) {
	s, err := optionalString(args, name)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("argument %s is required", name)
	}
	return *s, nil
}

func requiredID(args map[string]any, name string) (string, error) {
	switch v := args[name].(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case nil:
		return "", fmt.Errorf("argument %s is required", name)
	default:
		return "", fmt.Errorf("argument %s: %T is not an ID", name, v)
	}
}

func optionalFloat(args map[string]any, name string) (*float64, error) {
	var f float64
	switch v := args[name].(type) {
	case nil:
		return nil, nil
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", name, err)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("argument %s: %T is not a Float", name, v)
	}
	return &f, nil
}

func optionalInt(args map[string]any, name string) (*int, error) {
	var n int64
	switch v := args[name].(type) {
	case nil:
		return nil, nil
	case int64:
		n = v
	case int:
		n = int64(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("argument %s: %v is not an Int", name, v)
		}
		n = int64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", name, err)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("argument %s: %T is not an Int", name, v)
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("argument %s: %d overflows Int", name, n)
	}
	i := int(n)
	return &i, nil
}

func credentialArgs(args map[string]any) (email, password string, err error) {
	if email, err = requiredString(args, "email"); err != nil {
		return "", "", err
	}
	if password, err = requiredString(args, "password"); err != nil {
		return "", "", err
	}
	return email, password, nil
}

// employeeInputArgs reads the employee attribute arguments shared by
// addEmployee and updateEmployee. Attributes passed as an explicit null are
// listed in Unset.
func employeeInputArgs(args map[string]any) (model.EmployeeInput, error) {
	var in model.EmployeeInput
	var err error

	attrs := []struct {
		name string
		dst  **string
	}{
		{record.AttrFirstName, &in.FirstName},
		{record.AttrLastName, &in.LastName},
		{record.AttrEmail, &in.Email},
		{record.AttrGender, &in.Gender},
		{record.AttrDesignation, &in.Designation},
		{record.AttrDepartment, &in.Department},
		{record.AttrDateOfJoining, &in.DateOfJoining},
		{record.AttrEmployeePhoto, &in.EmployeePhoto},
	}
	for _, s := range attrs {
		if *s.dst, err = optionalString(args, s.name); err != nil {
			return in, err
		}
		if isNull(args, s.name) {
			in.Unset = append(in.Unset, s.name)
		}
	}

	if in.Salary, err = optionalFloat(args, record.AttrSalary); err != nil {
		return in, err
	}
	if isNull(args, record.AttrSalary) {
		in.Unset = append(in.Unset, record.AttrSalary)
	}
	return in, nil
}

// isNull reports whether name was supplied with an explicit null.
func isNull(args map[string]any, name string) bool {
	v, ok := args[name]
	return ok && v == nil
}
