package search

import (
	"testing"

	"github.com/staffbook/staffql/internal/record"
)

func setupTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	err = idx.IndexEmployees([]*record.Employee{
		{ID: "e1", FirstName: record.String("Ada"), LastName: record.String("Lovelace"), Email: record.String("ada@example.com"), Designation: record.String("Engineer"), Department: record.String("Research")},
		{ID: "e2", FirstName: record.String("Grace"), LastName: record.String("Hopper"), Email: record.String("grace@example.com"), Designation: record.String("Admiral"), Department: record.String("Navy")},
		{ID: "e3", FirstName: record.String("Alan"), LastName: record.String("Turing"), Email: record.String("alan@example.com"), Designation: record.String("Engineer"), Department: record.String("Codebreaking")},
	})
	if err != nil {
		t.Fatalf("IndexEmployees() error = %v", err)
	}
	return idx
}

func containsID(ids []string, id string) bool {
	for _, got := range ids {
		if got == id {
			return true
		}
	}
	return false
}

func TestSearch(t *testing.T) {
	idx := setupTestIndex(t)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"first name", "ada", []string{"e1"}},
		{"last name", "hopper", []string{"e2"}},
		{"designation", "engineer", []string{"e1", "e3"}},
		{"field query", "department:navy", []string{"e2"}},
		{"wildcard", "lov*", []string{"e1"}},
		{"phrase on full name", `name:"alan turing"`, []string{"e3"}},
		{"no match", "nobody", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := idx.Search(tt.query, 0)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", tt.query, err)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, ids, tt.wantIDs)
			}
			for _, want := range tt.wantIDs {
				if !containsID(ids, want) {
					t.Errorf("Search(%q) = %v, missing %s", tt.query, ids, want)
				}
			}
		})
	}
}

func TestSearchLimit(t *testing.T) {
	idx := setupTestIndex(t)

	ids, err := idx.Search("engineer", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("len(ids) = %d, want 1", len(ids))
	}
}

func TestIndexEmployeeUpdatesDocument(t *testing.T) {
	idx := setupTestIndex(t)

	err := idx.IndexEmployee(&record.Employee{ID: "e2", FirstName: record.String("Grace"), LastName: record.String("Hopper"), Department: record.String("Compilers")})
	if err != nil {
		t.Fatalf("IndexEmployee() error = %v", err)
	}

	if ids, _ := idx.Search("department:navy", 0); len(ids) != 0 {
		t.Errorf("old department still matches: %v", ids)
	}
	if ids, _ := idx.Search("compilers", 0); !containsID(ids, "e2") {
		t.Errorf("new department does not match: %v", ids)
	}

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestDeleteEmployee(t *testing.T) {
	idx := setupTestIndex(t)

	if err := idx.DeleteEmployee("e1"); err != nil {
		t.Fatalf("DeleteEmployee() error = %v", err)
	}

	ids, err := idx.Search("engineer", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if containsID(ids, "e1") {
		t.Errorf("deleted employee still found: %v", ids)
	}

	// Deleting an unknown ID is a no-op
	if err := idx.DeleteEmployee("missing"); err != nil {
		t.Errorf("DeleteEmployee(missing) error = %v", err)
	}
}
