package typeinfo

import (
	"reflect"

	"github.com/canonical/sqlcriteria"
)

// Column represents a single physical column backing a struct field.
type Column struct {
	// Name is the column name. Columns of composite properties are prefixed
	// with the name of the enclosing property.
	Name string

	// Type is the declared SQL type of the column.
	Type sqlcriteria.SQLType
}

// Info represents reflected information about a struct type.
type Info struct {
	Type reflect.Type

	// Relate property names to the columns backing them. Composite
	// properties map to the columns of all their members.
	PropertyToColumns map[string][]Column

	// Properties lists the property names in declaration order.
	Properties []string
}
