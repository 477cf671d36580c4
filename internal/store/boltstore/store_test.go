package boltstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/store"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staffql.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, path
}

func salary(v float64) *float64 { return &v }

func TestEmployeeEmptyStringAndUnset(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	e, err := s.InsertEmployee(ctx, &record.Employee{FirstName: record.String(""), Department: record.String("Eng"), Salary: salary(10)})
	require.NoError(t, err)

	found, err := s.FindEmployeeByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, found.FirstName)
	assert.Equal(t, "", *found.FirstName)
	assert.Nil(t, found.LastName)

	cleared, err := s.UpdateEmployeeByID(ctx, e.ID, record.EmployeeChanges{Unset: []string{record.AttrDepartment, record.AttrSalary}})
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Nil(t, cleared.Department)
	assert.Nil(t, cleared.Salary)
	require.NotNil(t, cleared.FirstName)

	found, err = s.FindEmployeeByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, cleared, found)
}

func TestEmployeeLifecycle(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := s.InsertEmployee(ctx, &record.Employee{
		FirstName:  record.String("Ada"),
		LastName:   record.String("Lovelace"),
		Department: record.String("Engineering"),
		Salary:     salary(120000),
	})
	require.NoError(t, err)
	require.Len(t, created.ID, record.DefaultIDLength)

	found, err := s.FindEmployeeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	title := "Principal"
	updated, err := s.UpdateEmployeeByID(ctx, created.ID, record.EmployeeChanges{Designation: &title, Salary: salary(0)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Principal", record.StringValue(updated.Designation))
	assert.Equal(t, "Lovelace", record.StringValue(updated.LastName))
	require.NotNil(t, updated.Salary)
	assert.Equal(t, 0.0, *updated.Salary)

	deleted, err := s.DeleteEmployeeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	gone, err := s.FindEmployeeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMissingEmployee(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	dept := "Sales"
	updated, err := s.UpdateEmployeeByID(ctx, "missing", record.EmployeeChanges{Department: &dept})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := s.DeleteEmployeeByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestEmptyUpdateReturnsCurrent(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	e, err := s.InsertEmployee(ctx, &record.Employee{FirstName: record.String("Ada")})
	require.NoError(t, err)

	got, err := s.UpdateEmployeeByID(ctx, e.ID, record.EmployeeChanges{})
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestFindEmployeesFilter(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	for _, e := range []*record.Employee{
		{FirstName: record.String("A"), Department: record.String("Engineering"), Designation: record.String("Engineer")},
		{FirstName: record.String("B"), Department: record.String("Engineering"), Designation: record.String("Manager")},
		{FirstName: record.String("C"), Department: record.String("Sales"), Designation: record.String("Manager")},
	} {
		_, err := s.InsertEmployee(ctx, e)
		require.NoError(t, err)
	}

	all, err := s.FindEmployees(ctx, record.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	managers, err := s.FindEmployees(ctx, record.EmployeeFilter{Designation: "Manager"})
	require.NoError(t, err)
	assert.Len(t, managers, 2)

	none, err := s.FindEmployees(ctx, record.EmployeeFilter{Department: "Legal"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUsers(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	u, err := s.InsertUser(ctx, &record.User{Username: "ada", Email: "ada@example.com", Password: "$2a$10$hash"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	byEmail, err := s.FindUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u, byEmail)

	byID, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, byID)

	none, err := s.FindUserByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReopenKeepsData(t *testing.T) {
	s, path := setupTestStore(t)
	ctx := context.Background()

	e, err := s.InsertEmployee(ctx, &record.Employee{FirstName: record.String("Ada"), Salary: salary(1.25)})
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	got, err := reopened.FindEmployeeByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Equal(t, path, reopened.Path())
}

func TestClosedStore(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close(ctx))

	_, err := s.FindEmployees(ctx, record.EmployeeFilter{})
	require.ErrorIs(t, err, store.ErrClosed)
	assert.True(t, store.IsStoreError(err))
}

func TestCanceledContext(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.InsertUser(ctx, &record.User{Email: "ada@example.com"})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, store.IsStoreError(err))
}
