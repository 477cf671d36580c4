package graph

import (
	"context"
	"errors"

	"github.com/staffbook/staffql/internal/graph/model"
	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/search"
)

// Signup is the resolver for the signup field.
func (r *mutationResolver) Signup(ctx context.Context, username string, email string, password string) (*record.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := r.Store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := r.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := r.Store.InsertUser(ctx, &record.User{
		Username: username,
		Email:    email,
		Password: hash,
	})
	if err != nil {
		return nil, err
	}

	r.log().Info(ctx, "user signed up", "user", user.ID, "email", email)
	return user, nil
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, email string, password string) (*record.User, error) {
	return r.authenticate(ctx, email, password)
}

// AddEmployee is the resolver for the addEmployee field.
func (r *mutationResolver) AddEmployee(ctx context.Context, input model.EmployeeInput) (*record.Employee, error) {
	e, err := r.Store.InsertEmployee(ctx, input.ToEmployee())
	if err != nil {
		return nil, err
	}
	r.indexEmployee(ctx, e)
	return e, nil
}

// UpdateEmployee is the resolver for the updateEmployee field.
func (r *mutationResolver) UpdateEmployee(ctx context.Context, id string, input model.EmployeeInput) (*record.Employee, error) {
	e, err := r.Store.UpdateEmployeeByID(ctx, id, input.ToChanges())
	if err != nil {
		return nil, err
	}
	r.indexEmployee(ctx, e)
	return e, nil
}

// DeleteEmployee is the resolver for the deleteEmployee field.
func (r *mutationResolver) DeleteEmployee(ctx context.Context, id string) (*record.Employee, error) {
	e, err := r.Store.DeleteEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e != nil {
		r.unindexEmployee(ctx, e.ID)
	}
	return e, nil
}

// Employees is the resolver for the employees field.
func (r *queryResolver) Employees(ctx context.Context) ([]*record.Employee, error) {
	return r.Store.FindEmployees(ctx, record.EmployeeFilter{})
}

// Employee is the resolver for the employee field.
func (r *queryResolver) Employee(ctx context.Context, id string) (*record.Employee, error) {
	e, err := r.Store.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errEmployeeNotFound
	}
	return e, nil
}

// EmployeesByDeptOrDesignation is the resolver for the employeesByDeptOrDesignation field.
func (r *queryResolver) EmployeesByDeptOrDesignation(ctx context.Context, department *string, designation *string) ([]*record.Employee, error) {
	var filter record.EmployeeFilter
	if department != nil {
		filter.Department = *department
	}
	if designation != nil {
		filter.Designation = *designation
	}
	return r.Store.FindEmployees(ctx, filter)
}

// SearchEmployees is the resolver for the searchEmployees field.
func (r *queryResolver) SearchEmployees(ctx context.Context, query string, limit *int) ([]*record.Employee, error) {
	if r.Index == nil {
		return nil, errSearchDisabled
	}

	n := search.DefaultSearchLimit
	if limit != nil {
		if *limit <= 0 {
			return nil, errors.New("limit must be positive")
		}
		n = *limit
	}

	ids, err := r.Index.Search(query, n)
	if err != nil {
		return nil, err
	}

	result := make([]*record.Employee, 0, len(ids))
	for _, id := range ids {
		e, err := r.Store.FindEmployeeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		// The index can briefly lag behind deletes made elsewhere.
		if e == nil {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// Login is the resolver for the login field.
func (r *queryResolver) Login(ctx context.Context, email string, password string) (*record.User, error) {
	return r.authenticate(ctx, email, password)
}
