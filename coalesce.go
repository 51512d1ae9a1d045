// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlcriteria

import (
	"fmt"
	"strings"
)

// CoalesceOrder orders by the first non-null value among several properties:
//
//	ORDER BY COALESCE(property1, property2, ...) ASC|DESC
//
// Every column of every property becomes an argument of COALESCE, in order.
type CoalesceOrder struct {
	properties []string
	dir        Direction
	ignoreCase bool
}

var _ Order = CoalesceOrder{}

// CoalesceAsc returns an ascending order on COALESCE(properties...).
func CoalesceAsc(properties ...string) CoalesceOrder {
	return newCoalesceOrder(Asc, properties)
}

// CoalesceDesc returns a descending order on COALESCE(properties...).
func CoalesceDesc(properties ...string) CoalesceOrder {
	return newCoalesceOrder(Desc, properties)
}

func newCoalesceOrder(dir Direction, properties []string) CoalesceOrder {
	ps := make([]string, len(properties))
	copy(ps, properties)
	return CoalesceOrder{properties: ps, dir: dir}
}

// IgnoreCase returns a copy of the order that lower-cases character columns
// before coalescing them.
func (o CoalesceOrder) IgnoreCase() CoalesceOrder {
	o.ignoreCase = true
	return o
}

// Properties returns the logical properties passed to COALESCE.
func (o CoalesceOrder) Properties() []string {
	ps := make([]string, len(o.properties))
	copy(ps, o.properties)
	return ps
}

// Direction returns the sort direction.
func (o CoalesceOrder) Direction() Direction {
	return o.dir
}

// CaseInsensitive reports whether character columns are lower-cased.
func (o CoalesceOrder) CaseInsensitive() bool {
	return o.ignoreCase
}

// Compile renders a single order term wrapping the whole COALESCE
// expression. The SQL types of every property are resolved, and must line
// up with its columns, whether or not the order ignores case.
func (o CoalesceOrder) Compile(rc Context) (*Fragment, error) {
	if len(o.properties) == 0 {
		return nil, fmt.Errorf("cannot compile COALESCE order: no properties")
	}

	var args []string
	var lower string
	for _, property := range o.properties {
		columns, err := rc.Columns(property)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			return nil, noColumnsError(property)
		}
		types, err := rc.SQLTypes(property)
		if err != nil {
			return nil, err
		}
		if len(types) != len(columns) {
			return nil, fmt.Errorf("cannot compile COALESCE order: property %q has %d columns but %d types", property, len(columns), len(types))
		}
		for i, column := range columns {
			if !o.ignoreCase || !types[i].IsCharacter() {
				args = append(args, column)
				continue
			}
			if lower == "" {
				lower, err = rc.LowercaseFunction()
				if err != nil {
					return nil, err
				}
			}
			args = append(args, lower+"("+column+")")
		}
	}

	var expr fragmentBuilder
	expr.write("COALESCE(")
	expr.writeCommaSeparatedList(args)
	expr.write(")")

	term, err := rc.RenderOrderByElement(expr.fragment().SQL(), "", o.dir, rc.DefaultNullPrecedence())
	if err != nil {
		return nil, err
	}
	var b fragmentBuilder
	b.write(term)
	return b.fragment(), nil
}

// SQL returns the SQL text of the compiled order.
func (o CoalesceOrder) SQL(rc Context) (string, error) {
	f, err := o.Compile(rc)
	if err != nil {
		return "", err
	}
	return f.SQL(), nil
}

func (o CoalesceOrder) String() string {
	s := "COALESCE(" + strings.Join(o.properties, ", ") + ") " + o.dir.String()
	if o.ignoreCase {
		s += " IGNORE CASE"
	}
	return s
}

// Marker function for Order.
func (CoalesceOrder) order() {}
