// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlcriteria

import (
	"bytes"
)

// fragmentBuilder accumulates the SQL of a fragment. Placeholders are only
// written through writeParam, which records the binding at the same time, so
// the bindings always follow placeholder order.
type fragmentBuilder struct {
	buf      bytes.Buffer
	bindings []TypedValue
}

// write writes the SQL to the fragmentBuilder.
func (b *fragmentBuilder) write(sql ...string) {
	for _, s := range sql {
		b.buf.WriteString(s)
	}
}

// writeParam writes a placeholder and binds v to it.
func (b *fragmentBuilder) writeParam(v TypedValue) {
	b.buf.WriteString("?")
	b.bindings = append(b.bindings, v)
}

// writeCommaSeparatedList writes out the provided list, separated by ", ".
func (b *fragmentBuilder) writeCommaSeparatedList(list []string) {
	for i, s := range list {
		if i != 0 {
			b.buf.WriteString(", ")
		}
		b.buf.WriteString(s)
	}
}

// fragment returns the generated SQL and its bindings.
func (b *fragmentBuilder) fragment() *Fragment {
	return &Fragment{sql: b.buf.String(), bindings: b.bindings}
}
