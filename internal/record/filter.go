package record

// EmployeeFilter selects employees by exact attribute match.
// Empty fields match every employee.
type EmployeeFilter struct {
	Department  string
	Designation string
}

// IsEmpty reports whether the filter matches everything.
func (f EmployeeFilter) IsEmpty() bool {
	return f.Department == "" && f.Designation == ""
}

// Matches reports whether e satisfies every set field of the filter.
func (f EmployeeFilter) Matches(e *Employee) bool {
	if f.Department != "" && StringValue(e.Department) != f.Department {
		return false
	}
	if f.Designation != "" && StringValue(e.Designation) != f.Designation {
		return false
	}
	return true
}

// Fields returns the set filter fields keyed by stored attribute name.
func (f EmployeeFilter) Fields() map[string]string {
	fields := make(map[string]string, 2)
	if f.Department != "" {
		fields["department"] = f.Department
	}
	if f.Designation != "" {
		fields["designation"] = f.Designation
	}
	return fields
}

// ApplyFilter returns the employees matching filter, preserving order.
// Backends without a query engine (bolt, file) filter with this after loading.
func ApplyFilter(employees []*Employee, filter EmployeeFilter) []*Employee {
	if filter.IsEmpty() {
		return employees
	}

	result := employees
	if filter.Department != "" {
		result = filterByField(result, filter.Department, func(e *Employee) string { return StringValue(e.Department) })
	}
	if filter.Designation != "" {
		result = filterByField(result, filter.Designation, func(e *Employee) string { return StringValue(e.Designation) })
	}
	return result
}

// filterByField keeps employees where getter returns value.
func filterByField(employees []*Employee, value string, getter func(*Employee) string) []*Employee {
	result := make([]*Employee, 0, len(employees))
	for _, e := range employees {
		if getter(e) == value {
			result = append(result, e)
		}
	}
	return result
}
