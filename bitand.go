// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlcriteria

import (
	"fmt"
)

// Comparison is the operator a masked-bit predicate compares with.
type Comparison int

const (
	Equal Comparison = iota
	NotEqual
)

func (c Comparison) String() string {
	if c == NotEqual {
		return "<>"
	}
	return "="
}

// MaskedBitPredicate is the condition
//
//	(property & mask) op value
//
// Both the mask and the value are bound as integer parameters.
type MaskedBitPredicate struct {
	property string
	mask     int32
	op       Comparison
	value    int32
}

var _ Predicate = MaskedBitPredicate{}

// MaskedBitEqualTo returns the predicate (property & mask) = value.
func MaskedBitEqualTo(property string, mask, value int32) MaskedBitPredicate {
	return MaskedBitPredicate{property: property, mask: mask, op: Equal, value: value}
}

// MaskedBitNotEqualTo returns the predicate (property & mask) <> value.
func MaskedBitNotEqualTo(property string, mask, value int32) MaskedBitPredicate {
	return MaskedBitPredicate{property: property, mask: mask, op: NotEqual, value: value}
}

// Property returns the logical property the predicate applies to.
func (p MaskedBitPredicate) Property() string {
	return p.property
}

// Mask returns the mask.
func (p MaskedBitPredicate) Mask() int32 {
	return p.mask
}

// Comparison returns the comparison operator.
func (p MaskedBitPredicate) Comparison() Comparison {
	return p.op
}

// Value returns the value the masked property is compared to.
func (p MaskedBitPredicate) Value() int32 {
	return p.value
}

// Compile renders the predicate against the first column of the property.
func (p MaskedBitPredicate) Compile(rc Context) (*Fragment, error) {
	columns, err := rc.Columns(p.property)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, noColumnsError(p.property)
	}

	var b fragmentBuilder
	b.write("( ", columns[0], " & ")
	b.writeParam(rc.TypedParameter(p.mask))
	b.write(" ) ", p.op.String(), " ")
	b.writeParam(rc.TypedParameter(p.value))
	return b.fragment(), nil
}

// SQL returns the SQL text of the compiled predicate.
func (p MaskedBitPredicate) SQL(rc Context) (string, error) {
	f, err := p.Compile(rc)
	if err != nil {
		return "", err
	}
	return f.SQL(), nil
}

// Bindings returns the values bound to the placeholders of the compiled
// predicate: the mask followed by the comparison value.
func (p MaskedBitPredicate) Bindings(rc Context) ([]TypedValue, error) {
	f, err := p.Compile(rc)
	if err != nil {
		return nil, err
	}
	return f.Bindings(), nil
}

func (p MaskedBitPredicate) String() string {
	return fmt.Sprintf("(%s & %d) %s %d", p.property, p.mask, p.op, p.value)
}

// Marker function for Predicate.
func (MaskedBitPredicate) predicate() {}
