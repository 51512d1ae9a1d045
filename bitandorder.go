// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlcriteria

import (
	"fmt"
	"strconv"
)

// MaskedBitOrder orders by the bitwise AND of a property and a mask:
//
//	ORDER BY (property & mask) ASC|DESC
//
// The mask is written into the SQL as an integer literal rather than bound.
type MaskedBitOrder struct {
	property string
	mask     int32
	dir      Direction
}

var _ Order = MaskedBitOrder{}

// MaskedBitAsc returns an ascending order on (property & mask).
func MaskedBitAsc(property string, mask int32) MaskedBitOrder {
	return MaskedBitOrder{property: property, mask: mask, dir: Asc}
}

// MaskedBitDesc returns a descending order on (property & mask).
func MaskedBitDesc(property string, mask int32) MaskedBitOrder {
	return MaskedBitOrder{property: property, mask: mask, dir: Desc}
}

// Property returns the logical property being ordered on.
func (o MaskedBitOrder) Property() string {
	return o.property
}

// Mask returns the mask.
func (o MaskedBitOrder) Mask() int32 {
	return o.mask
}

// Direction returns the sort direction.
func (o MaskedBitOrder) Direction() Direction {
	return o.dir
}

// Compile renders one order term per column of the property, in mapping
// order, joined by ", ".
func (o MaskedBitOrder) Compile(rc Context) (*Fragment, error) {
	columns, err := rc.Columns(o.property)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, noColumnsError(o.property)
	}

	nulls := rc.DefaultNullPrecedence()
	mask := strconv.FormatInt(int64(o.mask), 10)
	terms := make([]string, 0, len(columns))
	for _, column := range columns {
		term, err := rc.RenderOrderByElement("( "+column+" & "+mask+" )", "", o.dir, nulls)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	var b fragmentBuilder
	b.writeCommaSeparatedList(terms)
	return b.fragment(), nil
}

// SQL returns the SQL text of the compiled order.
func (o MaskedBitOrder) SQL(rc Context) (string, error) {
	f, err := o.Compile(rc)
	if err != nil {
		return "", err
	}
	return f.SQL(), nil
}

func (o MaskedBitOrder) String() string {
	return fmt.Sprintf("(%s & %d) %s", o.property, o.mask, o.dir)
}

// Marker function for Order.
func (MaskedBitOrder) order() {}
