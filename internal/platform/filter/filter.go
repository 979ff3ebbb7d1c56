// Package filter parses AIP-160 filter expressions and translates them into
// parameterized SQL conditions.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldKind is the declared type of a filterable field.
type FieldKind int

const (
	// KindString is a text column.
	KindString FieldKind = iota
	// KindInt is an integer column.
	KindInt
	// KindTimestamp is a column holding Unix milliseconds.
	KindTimestamp
)

// Field maps one filter identifier to its SQL column.
type Field struct {
	Column string
	Kind   FieldKind
}

// Schema lists the fields a filter may reference.
type Schema map[string]Field

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	// Clause is the SQL WHERE clause (e.g., "winner_username = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any
}

// Empty reports whether the condition restricts nothing.
func (c SQLCondition) Empty() bool {
	return strings.TrimSpace(c.Clause) == ""
}

// And joins two conditions; an empty side is dropped.
func (c SQLCondition) And(other SQLCondition) SQLCondition {
	switch {
	case c.Empty():
		return other
	case other.Empty():
		return c
	}
	params := make([]any, 0, len(c.Params)+len(other.Params))
	params = append(params, c.Params...)
	params = append(params, other.Params...)
	return SQLCondition{Clause: fmt.Sprintf("(%s AND %s)", c.Clause, other.Clause), Params: params}
}

// Parse parses an AIP-160 filter expression against schema. An empty filter
// yields an empty condition.
func Parse(filterStr string, schema Schema) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}

	decls, err := schema.declarations()
	if err != nil {
		return SQLCondition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return SQLCondition{}, fmt.Errorf("parse filter: %w", err)
	}
	t := translator{schema: schema}
	return t.expr(parsed.CheckedExpr.GetExpr())
}

func (s Schema) declarations() (*filtering.Declarations, error) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, name := range names {
		var declared *expr.Type
		switch s[name].Kind {
		case KindInt:
			declared = filtering.TypeInt
		case KindTimestamp:
			declared = filtering.TypeTimestamp
		default:
			declared = filtering.TypeString
		}
		opts = append(opts, filtering.DeclareIdent(name, declared))
	}
	return filtering.NewDeclarations(opts...)
}

type translator struct {
	schema Schema
}

func (t translator) expr(e *expr.Expr) (SQLCondition, error) {
	if e == nil {
		return SQLCondition{}, nil
	}
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok {
		return SQLCondition{}, fmt.Errorf("unsupported expression type: %T", e.GetExprKind())
	}
	return t.call(call.CallExpr)
}

func (t translator) call(call *expr.Expr_Call) (SQLCondition, error) {
	switch call.GetFunction() {
	case "_&&_", "AND":
		return t.logical(call.GetArgs(), "AND")
	case "_||_", "OR":
		return t.logical(call.GetArgs(), "OR")
	case "NOT":
		if len(call.GetArgs()) != 1 {
			return SQLCondition{}, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := t.expr(call.GetArgs()[0])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: "NOT (" + inner.Clause + ")", Params: inner.Params}, nil
	case "_==_", "=":
		return t.comparison(call.GetArgs(), "=")
	case "_!=_", "!=":
		return t.comparison(call.GetArgs(), "!=")
	case "_<_", "<":
		return t.comparison(call.GetArgs(), "<")
	case "_<=_", "<=":
		return t.comparison(call.GetArgs(), "<=")
	case "_>_", ">":
		return t.comparison(call.GetArgs(), ">")
	case "_>=_", ">=":
		return t.comparison(call.GetArgs(), ">=")
	default:
		return SQLCondition{}, fmt.Errorf("unsupported function: %s", call.GetFunction())
	}
}

func (t translator) logical(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("%s requires 2 arguments", op)
	}
	left, err := t.expr(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	right, err := t.expr(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: append(left.Params, right.Params...),
	}, nil
}

func (t translator) comparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return SQLCondition{}, fmt.Errorf("expected identifier, got %T", args[0].GetExprKind())
	}
	field, ok := t.schema[ident.IdentExpr.GetName()]
	if !ok {
		return SQLCondition{}, fmt.Errorf("unknown field: %s", ident.IdentExpr.GetName())
	}
	value, err := extractValue(args[1], field.Kind)
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", field.Column, op),
		Params: []any{value},
	}, nil
}

func extractValue(e *expr.Expr, kind FieldKind) (any, error) {
	switch value := e.GetExprKind().(type) {
	case *expr.Expr_ConstExpr:
		switch constant := value.ConstExpr.GetConstantKind().(type) {
		case *expr.Constant_StringValue:
			return constant.StringValue, nil
		case *expr.Constant_Int64Value:
			return constant.Int64Value, nil
		case *expr.Constant_Uint64Value:
			return constant.Uint64Value, nil
		case *expr.Constant_DoubleValue:
			return constant.DoubleValue, nil
		case *expr.Constant_BoolValue:
			return constant.BoolValue, nil
		default:
			return nil, fmt.Errorf("unsupported constant type: %T", constant)
		}
	case *expr.Expr_CallExpr:
		if value.CallExpr.GetFunction() == "timestamp" && len(value.CallExpr.GetArgs()) == 1 && kind == KindTimestamp {
			return extractTimestampMillis(value.CallExpr.GetArgs()[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", value.CallExpr.GetFunction())
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", value)
	}
}

func extractTimestampMillis(e *expr.Expr) (int64, error) {
	constant, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a constant string")
	}
	raw, ok := constant.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a string")
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw.StringValue)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp format: %s", raw.StringValue)
	}
	return parsed.UTC().UnixMilli(), nil
}
