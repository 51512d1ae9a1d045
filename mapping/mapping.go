// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package mapping provides a [sqlcriteria.Context] that resolves logical
// properties from the `db` tags of a Go struct.
//
// Each tagged field is a property backed by one column:
//
//	type Task struct {
//		Flags int32  `db:"flags"`
//		Code  string `db:"code,type=char"`
//	}
//
// A tagged field of struct type is a composite property. It is backed by the
// columns of its own tagged fields, named <outer>_<inner>, and each member is
// also reachable on its own as <outer>.<inner>.
package mapping

import (
	"fmt"

	"github.com/canonical/sqlcriteria"
	"github.com/canonical/sqlcriteria/dialect"
	"github.com/canonical/sqlcriteria/internal/typeinfo"
)

// Config holds the settings of a mapping Context.
type Config struct {
	// Dialect renders order terms and case folding. Criteria that need it
	// fail with sqlcriteria.ErrNoDialect when it is nil.
	Dialect dialect.Dialect

	// Alias qualifies every column, as in "alias.column", when not empty.
	Alias string

	// NullPrecedence is the default null precedence of order terms.
	NullPrecedence sqlcriteria.NullPrecedence
}

// Context resolves properties of a single struct type.
type Context struct {
	info   *typeinfo.Info
	config Config
}

var _ sqlcriteria.Context = (*Context)(nil)

// New returns a Context for the struct type of sample. The sample is only
// used for its type.
func New(sample any, config Config) (*Context, error) {
	info, err := typeinfo.GetTypeInfo(sample)
	if err != nil {
		return nil, fmt.Errorf("cannot map type: %s", err)
	}
	return &Context{info: info, config: config}, nil
}

// MustNew is the same as [New] except that it panics on error.
func MustNew(sample any, config Config) *Context {
	rc, err := New(sample, config)
	if err != nil {
		panic(err)
	}
	return rc
}

// Properties returns the mapped property names in declaration order.
func (rc *Context) Properties() []string {
	ps := make([]string, len(rc.info.Properties))
	copy(ps, rc.info.Properties)
	return ps
}

func (rc *Context) columns(property string) ([]typeinfo.Column, error) {
	columns, ok := rc.info.PropertyToColumns[property]
	if !ok {
		return nil, fmt.Errorf("%w %q in %s", sqlcriteria.ErrUnknownProperty, property, rc.info.Type.Name())
	}
	return columns, nil
}

// Columns implements sqlcriteria.Context.
func (rc *Context) Columns(property string) ([]string, error) {
	columns, err := rc.columns(property)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(columns))
	for i, column := range columns {
		if rc.config.Alias != "" {
			names[i] = rc.config.Alias + "." + column.Name
		} else {
			names[i] = column.Name
		}
	}
	return names, nil
}

// SQLTypes implements sqlcriteria.Context.
func (rc *Context) SQLTypes(property string) ([]sqlcriteria.SQLType, error) {
	columns, err := rc.columns(property)
	if err != nil {
		return nil, err
	}
	types := make([]sqlcriteria.SQLType, len(columns))
	for i, column := range columns {
		types[i] = column.Type
	}
	return types, nil
}

func (rc *Context) getDialect() (dialect.Dialect, error) {
	if rc.config.Dialect == nil {
		return nil, fmt.Errorf("%w for %s", sqlcriteria.ErrNoDialect, rc.info.Type.Name())
	}
	return rc.config.Dialect, nil
}

// RenderOrderByElement implements sqlcriteria.Context.
func (rc *Context) RenderOrderByElement(expr, collation string, dir sqlcriteria.Direction, nulls sqlcriteria.NullPrecedence) (string, error) {
	d, err := rc.getDialect()
	if err != nil {
		return "", err
	}
	return d.RenderOrderByElement(expr, collation, dir, nulls), nil
}

// LowercaseFunction implements sqlcriteria.Context.
func (rc *Context) LowercaseFunction() (string, error) {
	d, err := rc.getDialect()
	if err != nil {
		return "", err
	}
	return d.LowercaseFunction(), nil
}

// DefaultNullPrecedence implements sqlcriteria.Context.
func (rc *Context) DefaultNullPrecedence() sqlcriteria.NullPrecedence {
	return rc.config.NullPrecedence
}

// TypedParameter implements sqlcriteria.Context.
func (rc *Context) TypedParameter(v int32) sqlcriteria.TypedValue {
	return sqlcriteria.TypedValue{Type: sqlcriteria.Integer, Value: v}
}
