// Package store defines record store access for users and employees.
//
// Lookups that find nothing return a nil record and a nil error; absence is not a
// fault. Connectivity and serialization faults are reported as *Error.
package store

import (
	"context"
	"errors"

	"github.com/staffbook/staffql/internal/record"
)

// Users is access to the user collection.
type Users interface {
	FindUserByID(ctx context.Context, id string) (*record.User, error)
	FindUserByEmail(ctx context.Context, email string) (*record.User, error)
	// InsertUser stores u under a fresh ID and returns the stored record.
	InsertUser(ctx context.Context, u *record.User) (*record.User, error)
}

// Employees is access to the employee collection.
type Employees interface {
	FindEmployeeByID(ctx context.Context, id string) (*record.Employee, error)
	FindEmployees(ctx context.Context, filter record.EmployeeFilter) ([]*record.Employee, error)
	// InsertEmployee stores e under a fresh ID and returns the stored record.
	InsertEmployee(ctx context.Context, e *record.Employee) (*record.Employee, error)
	// UpdateEmployeeByID merges changes into the employee and returns the updated record,
	// or nil if no employee has that ID.
	UpdateEmployeeByID(ctx context.Context, id string, changes record.EmployeeChanges) (*record.Employee, error)
	// DeleteEmployeeByID removes the employee and returns it, or nil if no employee has that ID.
	DeleteEmployeeByID(ctx context.Context, id string) (*record.Employee, error)
}

// Store is a connected record store.
type Store interface {
	Users
	Employees

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the connection. The store must not be used afterwards.
	Close(ctx context.Context) error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Error is a storage fault (connectivity, serialization, I/O).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as a *Error for op. nil stays nil and errors that already are
// store errors are returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a storage fault.
func IsStoreError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}
