// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlcriteria

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProperty should be wrapped by a [Context] when asked about a
// property it has no mapping for.
var ErrUnknownProperty = errors.New("unknown property")

// ErrNoDialect should be wrapped by a [Context] when dialect rendering is
// requested but no dialect is configured.
var ErrNoDialect = errors.New("no dialect configured")

// Context exposes the services of the host query builder that criteria need
// in order to compile. Errors returned by a Context are passed back to the
// caller of Compile unchanged.
type Context interface {
	// Columns returns the physical columns that back the logical property,
	// in mapping order. A property may map to more than one column.
	Columns(property string) ([]string, error)

	// SQLTypes returns the declared SQL type of each column of the property,
	// aligned with the result of Columns.
	SQLTypes(property string) ([]SQLType, error)

	// RenderOrderByElement assembles a single ORDER BY term for the SQL
	// expression expr. The collation is omitted when empty.
	RenderOrderByElement(expr, collation string, dir Direction, nulls NullPrecedence) (string, error)

	// LowercaseFunction returns the name of the dialect's case folding
	// function.
	LowercaseFunction() (string, error)

	// DefaultNullPrecedence returns the configured null precedence for
	// order terms.
	DefaultNullPrecedence() NullPrecedence

	// TypedParameter tags an integer with the parameter type expected by the
	// host's execution layer.
	TypedParameter(v int32) TypedValue
}

// Expression is a criterion that can be compiled into SQL.
type Expression interface {
	// Compile renders the expression using the services of rc.
	Compile(rc Context) (*Fragment, error)

	// String returns a context free rendering of the expression for
	// debugging.
	String() string
}

// Predicate is an Expression that renders a boolean condition for a WHERE
// clause.
type Predicate interface {
	Expression

	// predicate is a marker method.
	predicate()
}

// Order is an Expression that renders one or more ORDER BY terms.
type Order interface {
	Expression

	// order is a marker method.
	order()
}

// Fragment is compiled SQL together with the values bound to its
// placeholders. The bindings are in the order their placeholders appear in
// the SQL.
type Fragment struct {
	sql      string
	bindings []TypedValue
}

// SQL returns the SQL text of the fragment.
func (f *Fragment) SQL() string {
	return f.sql
}

// Bindings returns the typed values for the placeholders in the fragment.
func (f *Fragment) Bindings() []TypedValue {
	bindings := make([]TypedValue, len(f.bindings))
	copy(bindings, f.bindings)
	return bindings
}

// Args returns the untyped binding values, ready to be passed to
// database/sql alongside the SQL.
func (f *Fragment) Args() []any {
	args := make([]any, len(f.bindings))
	for i, b := range f.bindings {
		args[i] = b.Value
	}
	return args
}

func (f *Fragment) String() string {
	return fmt.Sprintf("%s %v", f.sql, f.bindings)
}

// OrderBy compiles the orders and joins them into an ORDER BY clause. It
// returns an empty string when no orders are given.
func OrderBy(rc Context, orders ...Order) (string, error) {
	if len(orders) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(orders))
	for _, o := range orders {
		f, err := o.Compile(rc)
		if err != nil {
			return "", err
		}
		terms = append(terms, f.SQL())
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}

// noColumnsError is returned when a property resolves to no columns at all.
func noColumnsError(property string) error {
	return fmt.Errorf("cannot compile criterion: property %q has no columns", property)
}
