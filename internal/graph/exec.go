package graph

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/staffbook/staffql/internal/graph/model"
	"github.com/staffbook/staffql/internal/record"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

// Config configures NewExecutableSchema.
type Config struct {
	Resolvers ResolverRoot
}

// ResolverRoot provides the resolvers for the root operation types.
type ResolverRoot interface {
	Mutation() MutationResolver
	Query() QueryResolver
}

type MutationResolver interface {
	Signup(ctx context.Context, username string, email string, password string) (*record.User, error)
	Login(ctx context.Context, email string, password string) (*record.User, error)
	AddEmployee(ctx context.Context, input model.EmployeeInput) (*record.Employee, error)
	UpdateEmployee(ctx context.Context, id string, input model.EmployeeInput) (*record.Employee, error)
	DeleteEmployee(ctx context.Context, id string) (*record.Employee, error)
}

type QueryResolver interface {
	Employees(ctx context.Context) ([]*record.Employee, error)
	Employee(ctx context.Context, id string) (*record.Employee, error)
	EmployeesByDeptOrDesignation(ctx context.Context, department *string, designation *string) ([]*record.Employee, error)
	SearchEmployees(ctx context.Context, query string, limit *int) ([]*record.Employee, error)
	Login(ctx context.Context, email string, password string) (*record.User, error)
}

// NewExecutableSchema creates an ExecutableSchema from the Config.
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{
		schema:    parsedSchema,
		resolvers: cfg.Resolvers,
	}
}

type executableSchema struct {
	schema    *ast.Schema
	resolvers ResolverRoot
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

// Complexity reports no custom field complexity; the default per-field cost applies.
func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, rawArgs map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := executionContext{opCtx, e}
	first := true

	var root func(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler
	switch opCtx.Operation.Operation {
	case ast.Query:
		root = ec._Query
	case ast.Mutation:
		root = ec._Mutation
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false
		data := root(ctx, opCtx.Operation.SelectionSet)
		var buf bytes.Buffer
		data.MarshalGQL(&buf)

		return &graphql.Response{
			Data: buf.Bytes(),
		}
	}
}

type executionContext struct {
	*graphql.OperationContext
	*executableSchema
}

var (
	queryImplementors    = []string{"Query"}
	mutationImplementors = []string{"Mutation"}
	userImplementors     = []string{"User"}
	employeeImplementors = []string{"Employee"}
)

// field runs resolve for one selected field with a field context for error paths.
// Errors and panics are recorded on the response and the field resolves to null.
func (ec *executionContext) field(ctx context.Context, object string, field graphql.CollectedField, isResolver bool, resolve func(ctx context.Context, args map[string]any) (graphql.Marshaler, error)) (ret graphql.Marshaler) {
	args := field.ArgumentMap(ec.Variables)
	fc := &graphql.FieldContext{
		Object:     object,
		Field:      field,
		Args:       args,
		IsMethod:   true,
		IsResolver: isResolver,
	}
	ctx = graphql.WithFieldContext(ctx, fc)

	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, ec.Recover(ctx, r))
			ret = graphql.Null
		}
	}()

	res, err := resolve(ctx, args)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}
	return res
}

func (ec *executionContext) _Query(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, queryImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		out.Values[i] = ec._Query_field(ctx, field)
	}
	return out
}

func (ec *executionContext) _Query_field(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	switch field.Name {
	case "__typename":
		return graphql.MarshalString("Query")
	case "__schema":
		return ec.field(ctx, "Query", field, false, func(ctx context.Context, _ map[string]any) (graphql.Marshaler, error) {
			s, err := ec.introspectSchema()
			if err != nil {
				return nil, err
			}
			return ec.___Schema(ctx, field.Selections, s), nil
		})
	case "__type":
		return ec.field(ctx, "Query", field, false, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			name, err := requiredString(args, "name")
			if err != nil {
				return nil, err
			}
			t, err := ec.introspectType(name)
			if err != nil {
				return nil, err
			}
			return ec.___Type(ctx, field.Selections, t), nil
		})
	case "employees":
		return ec.field(ctx, "Query", field, true, func(ctx context.Context, _ map[string]any) (graphql.Marshaler, error) {
			res, err := ec.resolvers.Query().Employees(ctx)
			if err != nil {
				return nil, err
			}
			return ec.marshalEmployees(ctx, field.Selections, res), nil
		})
	case "employee":
		return ec.field(ctx, "Query", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			id, err := requiredID(args, "id")
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Query().Employee(ctx, id)
			if err != nil {
				return nil, err
			}
			return ec._Employee(ctx, field.Selections, res), nil
		})
	case "employeesByDeptOrDesignation":
		return ec.field(ctx, "Query", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			department, err := optionalString(args, "department")
			if err != nil {
				return nil, err
			}
			designation, err := optionalString(args, "designation")
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Query().EmployeesByDeptOrDesignation(ctx, department, designation)
			if err != nil {
				return nil, err
			}
			return ec.marshalEmployees(ctx, field.Selections, res), nil
		})
	case "searchEmployees":
		return ec.field(ctx, "Query", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			query, err := requiredString(args, "query")
			if err != nil {
				return nil, err
			}
			limit, err := optionalInt(args, "limit")
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Query().SearchEmployees(ctx, query, limit)
			if err != nil {
				return nil, err
			}
			return ec.marshalEmployees(ctx, field.Selections, res), nil
		})
	case "login":
		return ec.field(ctx, "Query", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			email, password, err := credentialArgs(args)
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Query().Login(ctx, email, password)
			if err != nil {
				return nil, err
			}
			return ec._User(ctx, field.Selections, res), nil
		})
	default:
		return graphql.Null
	}
}

// _Mutation resolves the selected fields one after another, in document order.
func (ec *executionContext) _Mutation(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, mutationImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		out.Values[i] = ec._Mutation_field(ctx, field)
	}
	return out
}

func (ec *executionContext) _Mutation_field(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	switch field.Name {
	case "__typename":
		return graphql.MarshalString("Mutation")
	case "signup":
		return ec.field(ctx, "Mutation", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			username, err := requiredString(args, "username")
			if err != nil {
				return nil, err
			}
			email, password, err := credentialArgs(args)
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Mutation().Signup(ctx, username, email, password)
			if err != nil {
				return nil, err
			}
			return ec._User(ctx, field.Selections, res), nil
		})
	case "login":
		return ec.field(ctx, "Mutation", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			email, password, err := credentialArgs(args)
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Mutation().Login(ctx, email, password)
			if err != nil {
				return nil, err
			}
			return ec._User(ctx, field.Selections, res), nil
		})
	case "addEmployee":
		return ec.field(ctx, "Mutation", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			input, err := employeeInputArgs(args)
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Mutation().AddEmployee(ctx, input)
			if err != nil {
				return nil, err
			}
			return ec._Employee(ctx, field.Selections, res), nil
		})
	case "updateEmployee":
		return ec.field(ctx, "Mutation", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			id, err := requiredID(args, "id")
			if err != nil {
				return nil, err
			}
			input, err := employeeInputArgs(args)
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Mutation().UpdateEmployee(ctx, id, input)
			if err != nil {
				return nil, err
			}
			return ec._Employee(ctx, field.Selections, res), nil
		})
	case "deleteEmployee":
		return ec.field(ctx, "Mutation", field, true, func(ctx context.Context, args map[string]any) (graphql.Marshaler, error) {
			id, err := requiredID(args, "id")
			if err != nil {
				return nil, err
			}
			res, err := ec.resolvers.Mutation().DeleteEmployee(ctx, id)
			if err != nil {
				return nil, err
			}
			return ec._Employee(ctx, field.Selections, res), nil
		})
	default:
		return graphql.Null
	}
}

func (ec *executionContext) _User(ctx context.Context, sel ast.SelectionSet, obj *record.User) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, userImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("User")
		case "id":
			out.Values[i] = marshalOptionalID(obj.ID)
		case "username":
			out.Values[i] = marshalOptionalString(obj.Username)
		case "email":
			out.Values[i] = marshalOptionalString(obj.Email)
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) _Employee(ctx context.Context, sel ast.SelectionSet, obj *record.Employee) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, employeeImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Employee")
		case "id":
			out.Values[i] = marshalOptionalID(obj.ID)
		case "first_name":
			out.Values[i] = marshalStringPtr(obj.FirstName)
		case "last_name":
			out.Values[i] = marshalStringPtr(obj.LastName)
		case "email":
			out.Values[i] = marshalStringPtr(obj.Email)
		case "gender":
			out.Values[i] = marshalStringPtr(obj.Gender)
		case "designation":
			out.Values[i] = marshalStringPtr(obj.Designation)
		case "department":
			out.Values[i] = marshalStringPtr(obj.Department)
		case "salary":
			if obj.Salary == nil {
				out.Values[i] = graphql.Null
			} else {
				out.Values[i] = graphql.MarshalFloat(*obj.Salary)
			}
		case "date_of_joining":
			out.Values[i] = marshalStringPtr(obj.DateOfJoining)
		case "employee_photo":
			out.Values[i] = marshalStringPtr(obj.EmployeePhoto)
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) marshalEmployees(ctx context.Context, sel ast.SelectionSet, v []*record.Employee) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	ret := make(graphql.Array, len(v))
	for i, e := range v {
		ret[i] = ec._Employee(ctx, sel, e)
	}
	return ret
}

func marshalOptionalString(v string) graphql.Marshaler {
	if v == "" {
		return graphql.Null
	}
	return graphql.MarshalString(v)
}

func marshalOptionalID(v string) graphql.Marshaler {
	if v == "" {
		return graphql.Null
	}
	return graphql.MarshalID(v)
}
