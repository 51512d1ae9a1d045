package typeinfo

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/canonical/sqlcriteria"
)

var cacheMutex sync.RWMutex
var cache = make(map[reflect.Type]*Info)

// GetTypeInfo will return the Info of a given type,
// generating and caching as required.
func GetTypeInfo(value any) (*Info, error) {
	if value == (any)(nil) {
		return &Info{}, fmt.Errorf("cannot reflect nil value")
	}

	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	cacheMutex.RLock()
	info, found := cache[t]
	cacheMutex.RUnlock()
	if found {
		return info, nil
	}

	info, err := generate(t)
	if err != nil {
		return &Info{}, err
	}

	cacheMutex.Lock()
	cache[t] = info
	cacheMutex.Unlock()

	return info, nil
}

// generate produces and returns reflection information for the input
// struct type.
func generate(typ reflect.Type) (*Info, error) {
	// Reflection information is only generated for structs.
	if typ.Kind() != reflect.Struct {
		return &Info{}, fmt.Errorf("can only reflect struct type")
	}

	info := Info{
		PropertyToColumns: make(map[string][]Column),
		Type:              typ,
	}
	g := generator{
		info:         &info,
		columnOwners: make(map[string]string),
		path:         map[reflect.Type]bool{typ: true},
	}
	if _, err := g.addFields(typ, "", ""); err != nil {
		return &Info{}, err
	}
	return &info, nil
}

// generator holds the state of a single call to generate.
type generator struct {
	info *Info

	// columnOwners relates each column name to the property it backs.
	columnOwners map[string]string

	// path holds the struct types enclosing the fields being added.
	path map[reflect.Type]bool
}

// addFields adds the tagged fields of typ to the Info. Property names are
// prefixed with propPrefix and column names with colPrefix. The columns of
// all the added fields are returned.
func (g *generator) addFields(typ reflect.Type, propPrefix, colPrefix string) ([]Column, error) {
	var all []Column
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		// Fields without a "db" tag are not mapped to columns.
		tag := field.Tag.Get("db")
		if tag == "" {
			continue
		}
		name, sqlType, hasType, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %s", typ.Name(), field.Name, err)
		}
		property := propPrefix + name
		if _, ok := g.info.PropertyToColumns[property]; ok {
			return nil, fmt.Errorf("property %q appears more than once", property)
		}

		ft := field.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		var columns []Column
		if isComposite(ft) {
			if hasType {
				return nil, fmt.Errorf("field %s.%s: type option on composite property %q", typ.Name(), field.Name, property)
			}
			if g.path[ft] {
				return nil, fmt.Errorf("recursive composite property %q", property)
			}
			g.path[ft] = true
			columns, err = g.addFields(ft, property+".", colPrefix+name+"_")
			delete(g.path, ft)
			if err != nil {
				return nil, err
			}
			if len(columns) == 0 {
				return nil, fmt.Errorf("composite property %q has no columns", property)
			}
		} else {
			if !hasType {
				sqlType = inferSQLType(ft)
			}
			column := colPrefix + name
			if owner, ok := g.columnOwners[column]; ok {
				return nil, fmt.Errorf("column %q of property %q is already used by property %q", column, property, owner)
			}
			g.columnOwners[column] = property
			columns = []Column{{Name: column, Type: sqlType}}
		}

		g.info.PropertyToColumns[property] = columns
		g.info.Properties = append(g.info.Properties, property)
		all = append(all, columns...)
	}
	return all, nil
}

var timeType = reflect.TypeOf(time.Time{})
var valuerType = reflect.TypeOf((*driver.Valuer)(nil)).Elem()

// isComposite reports whether a struct field of type t expands into the
// columns of its own tagged fields.
func isComposite(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	return !t.Implements(valuerType) && !reflect.PointerTo(t).Implements(valuerType)
}

var nullTypes = map[reflect.Type]sqlcriteria.SQLType{
	reflect.TypeOf(sql.NullString{}):  sqlcriteria.VarChar,
	reflect.TypeOf(sql.NullBool{}):    sqlcriteria.Boolean,
	reflect.TypeOf(sql.NullInt32{}):   sqlcriteria.Integer,
	reflect.TypeOf(sql.NullInt64{}):   sqlcriteria.BigInt,
	reflect.TypeOf(sql.NullFloat64{}): sqlcriteria.Double,
	reflect.TypeOf(sql.NullTime{}):    sqlcriteria.Timestamp,
}

// inferSQLType returns the SQL type a value of type t is stored as.
func inferSQLType(t reflect.Type) sqlcriteria.SQLType {
	if t == timeType {
		return sqlcriteria.Timestamp
	}
	if st, ok := nullTypes[t]; ok {
		return st
	}
	switch t.Kind() {
	case reflect.String:
		return sqlcriteria.VarChar
	case reflect.Bool:
		return sqlcriteria.Boolean
	case reflect.Int8, reflect.Int16, reflect.Uint8:
		return sqlcriteria.SmallInt
	case reflect.Int32, reflect.Uint16:
		return sqlcriteria.Integer
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return sqlcriteria.BigInt
	case reflect.Float32:
		return sqlcriteria.Real
	case reflect.Float64:
		return sqlcriteria.Double
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return sqlcriteria.VarBinary
		}
	}
	return sqlcriteria.Other
}

// This expression should be aligned with the column names the dialects
// accept unquoted.
var validColNameRx = regexp.MustCompile(`^([a-zA-Z_])+([a-zA-Z_0-9])*$`)

// parseTag parses the input tag string and returns its name and, when the
// "type=" option is present, the SQL type it names.
func parseTag(tag string) (string, sqlcriteria.SQLType, bool, error) {
	options := strings.Split(tag, ",")

	// Refuse to parse if there are more than 2 items.
	if len(options) > 2 {
		return "", sqlcriteria.Other, false, fmt.Errorf("too many options in 'db' tag")
	}

	var sqlType sqlcriteria.SQLType
	var hasType bool
	if len(options) == 2 {
		key, value, ok := strings.Cut(options[1], "=")
		if !ok || strings.ToLower(strings.TrimSpace(key)) != "type" {
			return "", sqlcriteria.Other, false, fmt.Errorf("unexpected tag value %q", options[1])
		}
		t, err := sqlcriteria.ParseSQLType(value)
		if err != nil {
			return "", sqlcriteria.Other, false, err
		}
		sqlType, hasType = t, true
	}

	name := options[0]
	if len(name) == 0 {
		return "", sqlcriteria.Other, false, fmt.Errorf("empty db tag")
	}

	if !validColNameRx.MatchString(name) {
		return "", sqlcriteria.Other, false, fmt.Errorf("invalid column name in 'db' tag")
	}

	return name, sqlType, hasType, nil
}
