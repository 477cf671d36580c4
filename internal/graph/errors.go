package graph

import (
	"errors"
	"fmt"
)

// Resolver errors reach clients verbatim as GraphQL error messages, so they
// are capitalised like the messages clients already match on.

var (
	// ErrNotFound is wrapped by every "not found" error a resolver returns.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned by login when the password does not match.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrDuplicateEmail is returned by signup when a user with that email exists.
	ErrDuplicateEmail = errors.New("Email already exists")
	// ErrEmailRequired is returned by signup when the email is empty.
	ErrEmailRequired = errors.New("Email is required")
)

var (
	errEmployeeNotFound = fmt.Errorf("Employee %w", ErrNotFound)
	errUserNotFound     = fmt.Errorf("User %w", ErrNotFound)
	errSearchDisabled   = errors.New("Search is not available")
)
