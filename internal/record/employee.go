// Package record defines the User and Employee documents shared by the store
// backends and the GraphQL layer.
package record

// Stored attribute names of an employee.
const (
	AttrFirstName     = "first_name"
	AttrLastName      = "last_name"
	AttrEmail         = "email"
	AttrGender        = "gender"
	AttrDesignation   = "designation"
	AttrDepartment    = "department"
	AttrSalary        = "salary"
	AttrDateOfJoining = "date_of_joining"
	AttrEmployeePhoto = "employee_photo"
)

// Employee is a staff member record.
//
// Every attribute is optional. Nil means unset; a pointer to "" is a value
// and is kept as such.
type Employee struct {
	ID string `yaml:"-" json:"id"`

	FirstName     *string  `yaml:"first_name,omitempty" json:"first_name,omitempty"`
	LastName      *string  `yaml:"last_name,omitempty" json:"last_name,omitempty"`
	Email         *string  `yaml:"email,omitempty" json:"email,omitempty"`
	Gender        *string  `yaml:"gender,omitempty" json:"gender,omitempty"`
	Designation   *string  `yaml:"designation,omitempty" json:"designation,omitempty"`
	Department    *string  `yaml:"department,omitempty" json:"department,omitempty"`
	Salary        *float64 `yaml:"salary,omitempty" json:"salary,omitempty"`
	DateOfJoining *string  `yaml:"date_of_joining,omitempty" json:"date_of_joining,omitempty"`
	EmployeePhoto *string  `yaml:"employee_photo,omitempty" json:"employee_photo,omitempty"`
}

// Clone returns a deep copy of the employee.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	return &Employee{
		ID:            e.ID,
		FirstName:     clonePtr(e.FirstName),
		LastName:      clonePtr(e.LastName),
		Email:         clonePtr(e.Email),
		Gender:        clonePtr(e.Gender),
		Designation:   clonePtr(e.Designation),
		Department:    clonePtr(e.Department),
		Salary:        clonePtr(e.Salary),
		DateOfJoining: clonePtr(e.DateOfJoining),
		EmployeePhoto: clonePtr(e.EmployeePhoto),
	}
}

// stringAttr returns the field holding the named string attribute, or nil.
func (e *Employee) stringAttr(name string) **string {
	switch name {
	case AttrFirstName:
		return &e.FirstName
	case AttrLastName:
		return &e.LastName
	case AttrEmail:
		return &e.Email
	case AttrGender:
		return &e.Gender
	case AttrDesignation:
		return &e.Designation
	case AttrDepartment:
		return &e.Department
	case AttrDateOfJoining:
		return &e.DateOfJoining
	case AttrEmployeePhoto:
		return &e.EmployeePhoto
	}
	return nil
}

// EmployeeChanges is a partial update. Nil fields are left untouched;
// attributes named in Unset are cleared.
type EmployeeChanges struct {
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

// IsEmpty reports whether the changes would leave a record untouched.
func (c EmployeeChanges) IsEmpty() bool {
	return len(c.Fields()) == 0 && len(c.UnsetFields()) == 0
}

// Apply merges the changes into e.
func (c EmployeeChanges) Apply(e *Employee) {
	for _, name := range c.UnsetFields() {
		if name == AttrSalary {
			e.Salary = nil
		} else if dst := e.stringAttr(name); dst != nil {
			*dst = nil
		}
	}
	for name, v := range c.stringFields() {
		*e.stringAttr(name) = clonePtr(v)
	}
	if c.Salary != nil {
		e.Salary = clonePtr(c.Salary)
	}
}

func (c EmployeeChanges) stringFields() map[string]*string {
	fields := make(map[string]*string)
	put := func(name string, v *string) {
		if v != nil {
			fields[name] = v
		}
	}
	put(AttrFirstName, c.FirstName)
	put(AttrLastName, c.LastName)
	put(AttrEmail, c.Email)
	put(AttrGender, c.Gender)
	put(AttrDesignation, c.Designation)
	put(AttrDepartment, c.Department)
	put(AttrDateOfJoining, c.DateOfJoining)
	put(AttrEmployeePhoto, c.EmployeePhoto)
	return fields
}

// Fields returns the set fields keyed by their stored attribute name.
// Backends that update documents in place (MongoDB) use this as the $set payload.
func (c EmployeeChanges) Fields() map[string]any {
	fields := make(map[string]any)
	for name, v := range c.stringFields() {
		fields[name] = *v
	}
	if c.Salary != nil {
		fields[AttrSalary] = *c.Salary
	}
	return fields
}

// UnsetFields returns the known attribute names to clear, skipping any that
// are also set.
func (c EmployeeChanges) UnsetFields() []string {
	set := c.stringFields()
	var names []string
	for _, name := range c.Unset {
		if name == AttrSalary {
			if c.Salary == nil {
				names = append(names, name)
			}
			continue
		}
		if (&Employee{}).stringAttr(name) == nil {
			continue
		}
		if _, ok := set[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// StringValue returns *p, or "" when p is nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
