// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlcriteria

import (
	"fmt"
	"strings"
)

// Direction is the sort direction of an order term.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// NullPrecedence controls where NULL values sort relative to non-null values.
type NullPrecedence int

const (
	// NullsNone leaves null placement to the database.
	NullsNone NullPrecedence = iota
	NullsFirst
	NullsLast
)

func (n NullPrecedence) String() string {
	switch n {
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	}
	return ""
}

// SQLType is the declared SQL type of a column or parameter.
type SQLType int

const (
	Other SQLType = iota
	Char
	VarChar
	LongVarChar
	Boolean
	SmallInt
	Integer
	BigInt
	Real
	Double
	Numeric
	Binary
	VarBinary
	Date
	Timestamp
)

var sqlTypeNames = map[SQLType]string{
	Other:       "other",
	Char:        "char",
	VarChar:     "varchar",
	LongVarChar: "longvarchar",
	Boolean:     "boolean",
	SmallInt:    "smallint",
	Integer:     "integer",
	BigInt:      "bigint",
	Real:        "real",
	Double:      "double",
	Numeric:     "numeric",
	Binary:      "binary",
	VarBinary:   "varbinary",
	Date:        "date",
	Timestamp:   "timestamp",
}

// sqlTypeAliases are accepted by ParseSQLType in addition to the canonical
// names.
var sqlTypeAliases = map[string]SQLType{
	"character": Char,
	"text":      LongVarChar,
	"bool":      Boolean,
	"int":       Integer,
	"float":     Real,
	"decimal":   Numeric,
	"blob":      VarBinary,
	"datetime":  Timestamp,
}

func (t SQLType) String() string {
	if name, ok := sqlTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SQLType(%d)", int(t))
}

// IsCharacter reports whether t is a fixed, variable or long character type.
func (t SQLType) IsCharacter() bool {
	return t == Char || t == VarChar || t == LongVarChar
}

// ParseSQLType returns the SQLType with the given name. Names are case
// insensitive.
func ParseSQLType(name string) (SQLType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range sqlTypeNames {
		if n == name {
			return t, nil
		}
	}
	if t, ok := sqlTypeAliases[name]; ok {
		return t, nil
	}
	return Other, fmt.Errorf("unknown SQL type %q", name)
}

// TypedValue is a query parameter value paired with the SQL type it should be
// bound as.
type TypedValue struct {
	Type  SQLType
	Value any
}

func (v TypedValue) String() string {
	return fmt.Sprintf("%v(%s)", v.Value, v.Type)
}
