package graph

import (
	"context"
	"strings"

	"github.com/staffbook/staffql/internal/credential"
	"github.com/staffbook/staffql/internal/logging"
	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/search"
	"github.com/staffbook/staffql/internal/store"
)

// Resolver is the root resolver for the GraphQL schema.
// Store and Hasher are required. Index is optional; without it searchEmployees fails.
type Resolver struct {
	Store  store.Store
	Hasher credential.Hasher
	Index  *search.Index
	Logger logging.Logger
}

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

type queryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }

func (r *Resolver) log() logging.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}

// authenticate backs both the login query and the login mutation.
func (r *Resolver) authenticate(ctx context.Context, email, password string) (*record.User, error) {
	user, err := r.Store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		r.log().Info(ctx, "login failed", "email", maskEmail(email), "reason", "unknown email")
		return nil, errUserNotFound
	}
	if !r.Hasher.Verify(password, user.Password) {
		r.log().Info(ctx, "login failed", "user", user.ID, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	r.log().Info(ctx, "login succeeded", "user", user.ID)
	return user, nil
}

// maskEmail keeps the first rune of the local part and the domain:
// "ada@example.com" logs as "a***@example.com".
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	first := []rune(local)[0]
	return string(first) + "***@" + domain
}

// BuildIndex loads every employee from the store into the search index.
func (r *Resolver) BuildIndex(ctx context.Context) error {
	if r.Index == nil {
		return nil
	}
	employees, err := r.Store.FindEmployees(ctx, record.EmployeeFilter{})
	if err != nil {
		return err
	}
	return r.Index.IndexEmployees(employees)
}

// indexEmployee refreshes e in the search index. Failures are logged, not
// returned: the store write has already happened.
func (r *Resolver) indexEmployee(ctx context.Context, e *record.Employee) {
	if r.Index == nil || e == nil {
		return
	}
	if err := r.Index.IndexEmployee(e); err != nil {
		r.log().Warn(ctx, "failed to index employee", "id", e.ID, "error", err)
	}
}

func (r *Resolver) unindexEmployee(ctx context.Context, id string) {
	if r.Index == nil {
		return
	}
	if err := r.Index.DeleteEmployee(id); err != nil {
		r.log().Warn(ctx, "failed to remove employee from index", "id", id, "error", err)
	}
}
