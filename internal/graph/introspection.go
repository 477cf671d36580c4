package graph

import (
	"context"
	"errors"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

var errIntrospectionDisabled = errors.New("introspection disabled")

func (ec *executionContext) introspectSchema() (*introspection.Schema, error) {
	if ec.DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapSchema(ec.schema), nil
}

func (ec *executionContext) introspectType(name string) (*introspection.Type, error) {
	if ec.DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapTypeFromDef(ec.schema, ec.schema.Types[name]), nil
}

var (
	__SchemaImplementors     = []string{"__Schema"}
	__TypeImplementors       = []string{"__Type"}
	__FieldImplementors      = []string{"__Field"}
	__InputValueImplementors = []string{"__InputValue"}
	__EnumValueImplementors  = []string{"__EnumValue"}
	__DirectiveImplementors  = []string{"__Directive"}
)

func (ec *executionContext) ___Schema(ctx context.Context, sel ast.SelectionSet, obj *introspection.Schema) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, __SchemaImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Schema")
		case "description":
			out.Values[i] = marshalStringPtr(obj.Description())
		case "types":
			out.Values[i] = ec.marshalTypes(ctx, field.Selections, obj.Types())
		case "queryType":
			out.Values[i] = ec.___Type(ctx, field.Selections, obj.QueryType())
		case "mutationType":
			out.Values[i] = ec.___Type(ctx, field.Selections, obj.MutationType())
		case "subscriptionType":
			out.Values[i] = ec.___Type(ctx, field.Selections, obj.SubscriptionType())
		case "directives":
			directives := obj.Directives()
			list := make(graphql.Array, len(directives))
			for j := range directives {
				list[j] = ec.___Directive(ctx, field.Selections, &directives[j])
			}
			out.Values[i] = list
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) ___Type(ctx context.Context, sel ast.SelectionSet, obj *introspection.Type) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, __TypeImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Type")
		case "kind":
			out.Values[i] = graphql.MarshalString(obj.Kind())
		case "name":
			out.Values[i] = marshalStringPtr(obj.Name())
		case "description":
			out.Values[i] = marshalStringPtr(obj.Description())
		case "specifiedByURL":
			out.Values[i] = marshalStringPtr(obj.SpecifiedByURL())
		case "isOneOf":
			out.Values[i] = graphql.MarshalBoolean(obj.IsOneOf())
		case "fields":
			res := obj.Fields(boolArg(field, ec.Variables, "includeDeprecated"))
			list := make(graphql.Array, len(res))
			for j := range res {
				list[j] = ec.___Field(ctx, field.Selections, &res[j])
			}
			out.Values[i] = list
		case "inputFields":
			out.Values[i] = ec.marshalInputValues(ctx, field.Selections, obj.InputFields())
		case "interfaces":
			out.Values[i] = ec.marshalTypes(ctx, field.Selections, obj.Interfaces())
		case "possibleTypes":
			out.Values[i] = ec.marshalTypes(ctx, field.Selections, obj.PossibleTypes())
		case "enumValues":
			res := obj.EnumValues(boolArg(field, ec.Variables, "includeDeprecated"))
			list := make(graphql.Array, len(res))
			for j := range res {
				list[j] = ec.___EnumValue(ctx, field.Selections, &res[j])
			}
			out.Values[i] = list
		case "ofType":
			out.Values[i] = ec.___Type(ctx, field.Selections, obj.OfType())
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) ___Field(ctx context.Context, sel ast.SelectionSet, obj *introspection.Field) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, __FieldImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Field")
		case "name":
			out.Values[i] = graphql.MarshalString(obj.Name)
		case "description":
			out.Values[i] = marshalStringPtr(obj.Description())
		case "args":
			out.Values[i] = ec.marshalInputValues(ctx, field.Selections, obj.Args)
		case "type":
			out.Values[i] = ec.___Type(ctx, field.Selections, obj.Type)
		case "isDeprecated":
			out.Values[i] = graphql.MarshalBoolean(obj.IsDeprecated())
		case "deprecationReason":
			out.Values[i] = marshalStringPtr(obj.DeprecationReason())
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) ___InputValue(ctx context.Context, sel ast.SelectionSet, obj *introspection.InputValue) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, __InputValueImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__InputValue")
		case "name":
			out.Values[i] = graphql.MarshalString(obj.Name)
		case "description":
			out.Values[i] = marshalStringPtr(obj.Description())
		case "type":
			out.Values[i] = ec.___Type(ctx, field.Selections, obj.Type)
		case "defaultValue":
			out.Values[i] = marshalStringPtr(obj.DefaultValue)
		case "isDeprecated":
			out.Values[i] = graphql.MarshalBoolean(obj.IsDeprecated())
		case "deprecationReason":
			out.Values[i] = marshalStringPtr(obj.DeprecationReason())
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) ___EnumValue(ctx context.Context, sel ast.SelectionSet, obj *introspection.EnumValue) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, __EnumValueImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__EnumValue")
		case "name":
			out.Values[i] = graphql.MarshalString(obj.Name)
		case "description":
			out.Values[i] = marshalStringPtr(obj.Description())
		case "isDeprecated":
			out.Values[i] = graphql.MarshalBoolean(obj.IsDeprecated())
		case "deprecationReason":
			out.Values[i] = marshalStringPtr(obj.DeprecationReason())
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) ___Directive(ctx context.Context, sel ast.SelectionSet, obj *introspection.Directive) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, __DirectiveImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Directive")
		case "name":
			out.Values[i] = graphql.MarshalString(obj.Name)
		case "description":
			out.Values[i] = marshalStringPtr(obj.Description())
		case "locations":
			list := make(graphql.Array, len(obj.Locations))
			for j, loc := range obj.Locations {
				list[j] = graphql.MarshalString(loc)
			}
			out.Values[i] = list
		case "args":
			out.Values[i] = ec.marshalInputValues(ctx, field.Selections, obj.Args)
		case "isRepeatable":
			out.Values[i] = graphql.MarshalBoolean(obj.IsRepeatable)
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) marshalTypes(ctx context.Context, sel ast.SelectionSet, v []introspection.Type) graphql.Marshaler {
	list := make(graphql.Array, len(v))
	for i := range v {
		list[i] = ec.___Type(ctx, sel, &v[i])
	}
	return list
}

func (ec *executionContext) marshalInputValues(ctx context.Context, sel ast.SelectionSet, v []introspection.InputValue) graphql.Marshaler {
	list := make(graphql.Array, len(v))
	for i := range v {
		list[i] = ec.___InputValue(ctx, sel, &v[i])
	}
	return list
}

func marshalStringPtr(v *string) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return graphql.MarshalString(*v)
}

func boolArg(field graphql.CollectedField, vars map[string]any, name string) bool {
	v, _ := field.ArgumentMap(vars)[name].(bool)
	return v
}
