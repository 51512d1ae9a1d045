package sqlcriteria_test

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	. "gopkg.in/check.v1"

	"github.com/canonical/sqlcriteria"
	"github.com/canonical/sqlcriteria/dialect"
	"github.com/canonical/sqlcriteria/mapping"
)

type DBSuite struct{}

var _ = Suite(&DBSuite{})

type Task struct {
	ID       int            `db:"id"`
	Flags    int32          `db:"flags"`
	Nickname sql.NullString `db:"nickname"`
	Fullname sql.NullString `db:"fullname"`
}

func setupDB() (*sql.DB, error) {
	return sql.Open("sqlite3", ":memory:")
}

func createExampleDB(createTables string, inserts []string) (*sql.DB, error) {
	db, err := setupDB()
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(createTables)
	if err != nil {
		return nil, err
	}
	for _, insert := range inserts {
		_, err := db.Exec(insert)
		if err != nil {
			return nil, err
		}
	}

	return db, nil
}

func taskDB() (*sql.DB, error) {
	createTables := `
CREATE TABLE task (
	id integer,
	flags integer,
	nickname text,
	fullname text
);
`
	inserts := []string{
		"INSERT INTO task VALUES (1, 1, 'bob', 'Robert Smith');",
		"INSERT INTO task VALUES (2, 3, NULL, 'alice Jones');",
		"INSERT INTO task VALUES (3, 8, 'Zed', NULL);",
		"INSERT INTO task VALUES (4, 9, NULL, NULL);",
		"INSERT INTO task VALUES (5, 0, 'carl', 'Carl Sagan');",
	}
	return createExampleDB(createTables, inserts)
}

func queryIDs(c *C, db *sql.DB, query string, args ...any) []int {
	rows, err := db.Query(query, args...)
	c.Assert(err, IsNil, Commentf("query: %s", query))
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		c.Assert(rows.Scan(&id), IsNil)
		ids = append(ids, id)
	}
	c.Assert(rows.Err(), IsNil)
	return ids
}

func (s *DBSuite) TestMaskedBitPredicate(c *C) {
	db, err := taskDB()
	c.Assert(err, IsNil)
	defer db.Close()

	rc := mapping.MustNew(Task{}, mapping.Config{Dialect: dialect.SQLite{}})
	tests := []struct {
		summary   string
		predicate sqlcriteria.Predicate
		expected  []int
	}{{
		summary:   "low bit set",
		predicate: sqlcriteria.MaskedBitEqualTo("flags", 1, 1),
		expected:  []int{1, 2, 4},
	}, {
		summary:   "low bits clear",
		predicate: sqlcriteria.MaskedBitEqualTo("flags", 3, 0),
		expected:  []int{3, 5},
	}, {
		summary:   "bit 3 set",
		predicate: sqlcriteria.MaskedBitNotEqualTo("flags", 8, 0),
		expected:  []int{3, 4},
	}}
	for i, test := range tests {
		f, err := test.predicate.Compile(rc)
		c.Assert(err, IsNil, Commentf("test %d: %s", i, test.summary))
		ids := queryIDs(c, db, "SELECT id FROM task WHERE "+f.SQL()+" ORDER BY id", f.Args()...)
		c.Check(ids, DeepEquals, test.expected, Commentf("test %d: %s", i, test.summary))
	}
}

func (s *DBSuite) TestMaskedBitPredicateWithAlias(c *C) {
	db, err := taskDB()
	c.Assert(err, IsNil)
	defer db.Close()

	rc := mapping.MustNew(Task{}, mapping.Config{Alias: "t"})
	f, err := sqlcriteria.MaskedBitEqualTo("flags", 9, 9).Compile(rc)
	c.Assert(err, IsNil)
	c.Check(f.SQL(), Equals, "( t.flags & ? ) = ?")
	ids := queryIDs(c, db, "SELECT t.id FROM task AS t WHERE "+f.SQL(), f.Args()...)
	c.Check(ids, DeepEquals, []int{4})
}

func (s *DBSuite) TestOrders(c *C) {
	db, err := taskDB()
	c.Assert(err, IsNil)
	defer db.Close()

	tests := []struct {
		summary  string
		nulls    sqlcriteria.NullPrecedence
		order    sqlcriteria.Order
		expected []int
	}{{
		summary:  "masked bit descending",
		nulls:    sqlcriteria.NullsLast,
		order:    sqlcriteria.MaskedBitDesc("flags", 8),
		expected: []int{3, 4, 1, 2, 5},
	}, {
		summary:  "masked bit ascending",
		nulls:    sqlcriteria.NullsNone,
		order:    sqlcriteria.MaskedBitAsc("flags", 2),
		expected: []int{1, 3, 4, 5, 2},
	}, {
		summary:  "coalesce ignoring case",
		nulls:    sqlcriteria.NullsLast,
		order:    sqlcriteria.CoalesceAsc("nickname", "fullname").IgnoreCase(),
		expected: []int{2, 1, 5, 3, 4},
	}, {
		summary:  "coalesce case sensitive",
		nulls:    sqlcriteria.NullsLast,
		order:    sqlcriteria.CoalesceAsc("nickname", "fullname"),
		expected: []int{3, 2, 1, 5, 4},
	}, {
		summary:  "coalesce descending nulls first",
		nulls:    sqlcriteria.NullsFirst,
		order:    sqlcriteria.CoalesceDesc("nickname", "fullname").IgnoreCase(),
		expected: []int{4, 3, 5, 1, 2},
	}, {
		summary:  "coalesce prefers earlier properties",
		nulls:    sqlcriteria.NullsLast,
		order:    sqlcriteria.CoalesceAsc("fullname", "nickname").IgnoreCase(),
		expected: []int{2, 5, 1, 3, 4},
	}}
	for i, test := range tests {
		rc := mapping.MustNew(Task{}, mapping.Config{Dialect: dialect.SQLite{}, NullPrecedence: test.nulls})
		clause, err := sqlcriteria.OrderBy(rc, test.order)
		c.Assert(err, IsNil, Commentf("test %d: %s", i, test.summary))
		ids := queryIDs(c, db, "SELECT id FROM task "+clause+", id")
		c.Check(ids, DeepEquals, test.expected, Commentf("test %d: %s", i, test.summary))
	}
}
