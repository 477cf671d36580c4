package record

import (
	"bytes"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestEmployeeRenderAndParse(t *testing.T) {
	e := &Employee{
		ID:            "ignored",
		FirstName:     String("Ada"),
		LastName:      String("Lovelace"),
		Email:         String("ada@example.com"),
		Gender:        String(""),
		Designation:   String("Engineer"),
		Department:    String("Engineering"),
		Salary:        ptr(120000.5),
		DateOfJoining: String("2024-01-15"),
	}

	content, err := e.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(content, []byte("---\n")) {
		t.Errorf("Render() should start with front matter delimiter, got %q", content)
	}
	if strings.Contains(string(content), "ignored") {
		t.Error("Render() should not write the ID into the document")
	}
	if strings.Contains(string(content), "employee_photo") {
		t.Error("Render() should omit unset attributes")
	}

	got, err := ParseEmployee(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("ParseEmployee() error = %v", err)
	}
	if StringValue(got.FirstName) != "Ada" || StringValue(got.Department) != "Engineering" || StringValue(got.DateOfJoining) != "2024-01-15" {
		t.Errorf("ParseEmployee() = %+v", got)
	}
	if got.Gender == nil || *got.Gender != "" {
		t.Errorf("ParseEmployee().Gender = %v, want pointer to empty string", got.Gender)
	}
	if got.EmployeePhoto != nil {
		t.Errorf("ParseEmployee().EmployeePhoto = %q, want nil", *got.EmployeePhoto)
	}
	if got.Salary == nil || *got.Salary != 120000.5 {
		t.Errorf("ParseEmployee().Salary = %v, want 120000.5", got.Salary)
	}
	if got.ID != "" {
		t.Errorf("ParseEmployee().ID = %q, want empty", got.ID)
	}
}

func TestUserParseKeepsHash(t *testing.T) {
	input := "---\nusername: ada\nemail: ada@example.com\npassword: $2a$10$abcdefghijklmnopqrstuv\n---\n"

	u, err := ParseUser(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseUser() error = %v", err)
	}
	if u.Username != "ada" || u.Email != "ada@example.com" {
		t.Errorf("ParseUser() = %+v", u)
	}
	if u.Password != "$2a$10$abcdefghijklmnopqrstuv" {
		t.Errorf("ParseUser().Password = %q", u.Password)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name   string
		wantID string
		wantOK bool
	}{
		{"abc123.md", "abc123", true},
		{"abc123.txt", "", false},
		{".md", "", false},
		{".hidden.md", "", false},
		{"abc123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseFilename(tt.name)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ParseFilename(%q) = (%q, %v), want (%q, %v)", tt.name, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}

	if got := BuildFilename("xyz"); got != "xyz.md" {
		t.Errorf("BuildFilename() = %q, want %q", got, "xyz.md")
	}
}

func TestEmployeeChangesApply(t *testing.T) {
	e := &Employee{FirstName: String("Ada"), LastName: String("Lovelace"), Department: String("Engineering")}

	changes := EmployeeChanges{
		Department: String("Research"),
		Salary:     ptr(0.0),
	}
	if changes.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}
	changes.Apply(e)

	if StringValue(e.Department) != "Research" {
		t.Errorf("Department = %v, want %q", e.Department, "Research")
	}
	if StringValue(e.FirstName) != "Ada" || StringValue(e.LastName) != "Lovelace" {
		t.Errorf("untouched fields changed: %+v", e)
	}
	if e.Salary == nil || *e.Salary != 0 {
		t.Errorf("Salary = %v, want explicit 0", e.Salary)
	}

	fields := changes.Fields()
	if len(fields) != 2 || fields["department"] != "Research" || fields["salary"] != 0.0 {
		t.Errorf("Fields() = %v", fields)
	}

	if !(EmployeeChanges{}).IsEmpty() {
		t.Error("zero EmployeeChanges should be empty")
	}
}

func TestEmployeeChangesEmptyString(t *testing.T) {
	e := &Employee{FirstName: String("Ada")}
	EmployeeChanges{FirstName: String("")}.Apply(e)

	if e.FirstName == nil || *e.FirstName != "" {
		t.Errorf("FirstName = %v, want pointer to empty string", e.FirstName)
	}
}

func TestEmployeeChangesUnset(t *testing.T) {
	e := &Employee{FirstName: String("Ada"), Department: String("Engineering"), Salary: ptr(10.0)}

	changes := EmployeeChanges{
		FirstName: String("Augusta"),
		Unset:     []string{AttrDepartment, AttrSalary, AttrFirstName, "unknown"},
	}
	if changes.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}

	unset := changes.UnsetFields()
	if len(unset) != 2 || unset[0] != AttrDepartment || unset[1] != AttrSalary {
		t.Errorf("UnsetFields() = %v, want [department salary]", unset)
	}

	changes.Apply(e)
	if e.Department != nil || e.Salary != nil {
		t.Errorf("unset fields kept values: department=%v salary=%v", e.Department, e.Salary)
	}
	if StringValue(e.FirstName) != "Augusta" {
		t.Errorf("FirstName = %v, want Augusta (set wins over unset)", e.FirstName)
	}

	if !(EmployeeChanges{Unset: []string{"unknown"}}).IsEmpty() {
		t.Error("changes naming only unknown attributes should be empty")
	}
}

func TestEmployeeClone(t *testing.T) {
	e := &Employee{ID: "a", FirstName: String("Ada"), Salary: ptr(10.0)}
	c := e.Clone()
	*c.Salary = 20
	*c.FirstName = "Grace"
	if *e.Salary != 10 {
		t.Errorf("Clone() shares salary pointer")
	}
	if *e.FirstName != "Ada" {
		t.Errorf("Clone() shares first name pointer")
	}
	if (*Employee)(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestApplyFilter(t *testing.T) {
	employees := []*Employee{
		{ID: "1", Department: String("Engineering"), Designation: String("Engineer")},
		{ID: "2", Department: String("Engineering"), Designation: String("Manager")},
		{ID: "3", Department: String("Sales"), Designation: String("Manager")},
		{ID: "4"},
	}

	tests := []struct {
		name   string
		filter EmployeeFilter
		want   []string
	}{
		{"empty filter returns all", EmployeeFilter{}, []string{"1", "2", "3", "4"}},
		{"department only", EmployeeFilter{Department: "Engineering"}, []string{"1", "2"}},
		{"designation only", EmployeeFilter{Designation: "Manager"}, []string{"2", "3"}},
		{"both fields", EmployeeFilter{Department: "Engineering", Designation: "Manager"}, []string{"2"}},
		{"no match", EmployeeFilter{Department: "Legal"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(employees, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("ApplyFilter() count = %d, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.ID != tt.want[i] {
					t.Errorf("ApplyFilter()[%d].ID = %q, want %q", i, e.ID, tt.want[i])
				}
				if !tt.filter.Matches(e) {
					t.Errorf("Matches(%q) = false for returned employee", e.ID)
				}
			}
		})
	}
}

func TestNewID(t *testing.T) {
	id := NewID(0)
	if len(id) != DefaultIDLength {
		t.Errorf("NewID(0) length = %d, want %d", len(id), DefaultIDLength)
	}
	if strings.Trim(id, idAlphabet) != "" {
		t.Errorf("NewID() = %q contains characters outside the alphabet", id)
	}
	if NewID(8) == NewID(8) {
		t.Error("NewID() returned the same ID twice")
	}
}
