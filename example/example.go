// Package example filters and orders a SQLite table with sqlcriteria.
package example

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/canonical/sqlcriteria"
	"github.com/canonical/sqlcriteria/dialect"
	"github.com/canonical/sqlcriteria/mapping"

	_ "github.com/mattn/go-sqlite3"
)

// Task flags.
const (
	Open    int32 = 1
	Blocked int32 = 2
	Urgent  int32 = 4
)

type Task struct {
	ID       int            `db:"id"`
	Flags    int32          `db:"flags"`
	Nickname sql.NullString `db:"nickname"`
	Title    string         `db:"title"`
}

// Run creates an in-memory task table and writes the results of a filtered
// and an ordered query to w.
func Run(w io.Writer) error {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	defer sqldb.Close()

	_, err = sqldb.Exec(`
	CREATE TABLE task (
		id integer,
		flags integer,
		nickname text,
		title text
	)`)
	if err != nil {
		return err
	}

	var tasks = []Task{
		{1, Urgent | Open, sql.NullString{}, "Write docs"},
		{2, Open, sql.NullString{String: "deploy", Valid: true}, "Deploy release"},
		{3, Urgent | Blocked, sql.NullString{}, "fix CI"},
		{4, 0, sql.NullString{String: "Cleanup", Valid: true}, "Clean up branches"},
	}
	for _, t := range tasks {
		_, err := sqldb.Exec("INSERT INTO task (id, flags, nickname, title) VALUES (?, ?, ?, ?)", t.ID, t.Flags, t.Nickname, t.Title)
		if err != nil {
			return err
		}
	}

	rc, err := mapping.New(Task{}, mapping.Config{
		Dialect:        dialect.SQLite{},
		Alias:          "t",
		NullPrecedence: sqlcriteria.NullsLast,
	})
	if err != nil {
		return err
	}

	// Example 1
	// Find the urgent tasks.
	urgent, err := sqlcriteria.MaskedBitNotEqualTo("flags", Urgent, 0).Compile(rc)
	if err != nil {
		return err
	}
	rows, err := sqldb.Query("SELECT t.id, t.title FROM task AS t WHERE "+urgent.SQL()+" ORDER BY t.id", urgent.Args()...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id int
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			rows.Close()
			return err
		}
		fmt.Fprintf(w, "urgent task %d: %s\n", id, title)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}

	// Example 2
	// List unblocked tasks first, each group by display name.
	orderBy, err := sqlcriteria.OrderBy(rc,
		sqlcriteria.MaskedBitAsc("flags", Blocked),
		sqlcriteria.CoalesceAsc("nickname", "title").IgnoreCase(),
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, orderBy)
	rows, err = sqldb.Query("SELECT t.id, COALESCE(t.nickname, t.title) FROM task AS t " + orderBy)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		fmt.Fprintf(w, "%d %s\n", id, name)
	}
	return rows.Err()
}
