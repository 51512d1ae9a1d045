// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package dialect contains the SQL dialects used to render order terms and
// case folding for sqlcriteria.
package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/canonical/sqlcriteria"
)

// Dialect holds the database specific rendering rules.
type Dialect interface {
	// Name returns the canonical name of the dialect.
	Name() string

	// LowercaseFunction returns the name of the case folding function.
	LowercaseFunction() string

	// RenderOrderByElement assembles a single ORDER BY term for expr. The
	// collation is omitted when empty.
	RenderOrderByElement(expr, collation string, dir sqlcriteria.Direction, nulls sqlcriteria.NullPrecedence) string
}

// ANSI renders null precedence with the standard NULLS FIRST and NULLS LAST
// modifiers.
type ANSI struct{}

func (ANSI) Name() string {
	return "ansi"
}

func (ANSI) LowercaseFunction() string {
	return "LOWER"
}

func (ANSI) RenderOrderByElement(expr, collation string, dir sqlcriteria.Direction, nulls sqlcriteria.NullPrecedence) string {
	var sb strings.Builder
	sb.WriteString(expr)
	if collation != "" {
		sb.WriteString(" COLLATE ")
		sb.WriteString(collation)
	}
	sb.WriteString(" ")
	sb.WriteString(dir.String())
	if nulls != sqlcriteria.NullsNone {
		sb.WriteString(" ")
		sb.WriteString(nulls.String())
	}
	return sb.String()
}

// Postgres is the PostgreSQL dialect.
type Postgres struct {
	ANSI
}

func (Postgres) Name() string {
	return "postgres"
}

// SQLite is the SQLite dialect. NULLS FIRST and NULLS LAST need SQLite 3.30.0
// or later.
type SQLite struct {
	ANSI
}

func (SQLite) Name() string {
	return "sqlite"
}

// MySQL is the MySQL dialect. MySQL has no NULLS FIRST or NULLS LAST, so null
// precedence is emulated by sorting on a CASE expression first.
type MySQL struct{}

func (MySQL) Name() string {
	return "mysql"
}

func (MySQL) LowercaseFunction() string {
	return "LOWER"
}

func (MySQL) RenderOrderByElement(expr, collation string, dir sqlcriteria.Direction, nulls sqlcriteria.NullPrecedence) string {
	var sb strings.Builder
	switch nulls {
	case sqlcriteria.NullsFirst:
		sb.WriteString("CASE WHEN " + expr + " IS NULL THEN 0 ELSE 1 END, ")
	case sqlcriteria.NullsLast:
		sb.WriteString("CASE WHEN " + expr + " IS NULL THEN 1 ELSE 0 END, ")
	}
	sb.WriteString(expr)
	if collation != "" {
		sb.WriteString(" COLLATE ")
		sb.WriteString(collation)
	}
	sb.WriteString(" ")
	sb.WriteString(dir.String())
	return sb.String()
}

var dialects = map[string]Dialect{
	"ansi":       ANSI{},
	"postgres":   Postgres{},
	"postgresql": Postgres{},
	"sqlite":     SQLite{},
	"sqlite3":    SQLite{},
	"mysql":      MySQL{},
}

// Lookup returns the dialect with the given name. Names are case insensitive.
func Lookup(name string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q, have: %s", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the sorted names accepted by Lookup.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
