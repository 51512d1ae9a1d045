package sqlcriteria_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/canonical/sqlcriteria"
	"github.com/canonical/sqlcriteria/dialect"
	"github.com/canonical/sqlcriteria/mapping"
)

type FullName struct {
	First string `db:"first"`
	Last  string `db:"last"`
}

type Member struct {
	Status   int32    `db:"status"`
	Flags    int32    `db:"flags"`
	Nickname string   `db:"nickname,type=char"`
	Name     FullName `db:"name"`
}

var goldenExprs = []sqlcriteria.Expression{
	sqlcriteria.MaskedBitEqualTo("status", 256, 0),
	sqlcriteria.MaskedBitNotEqualTo("flags", 3, 1),
	sqlcriteria.MaskedBitDesc("flags", 8),
	sqlcriteria.MaskedBitAsc("name", 4),
	sqlcriteria.CoalesceAsc("nickname", "name", "status").IgnoreCase(),
	sqlcriteria.CoalesceDesc("nickname", "name"),
}

// renderAll compiles every golden expression, one per line. Bindings follow
// the SQL after "--".
func renderAll(t *testing.T, rc sqlcriteria.Context) []byte {
	var sb strings.Builder
	for _, e := range goldenExprs {
		f, err := e.Compile(rc)
		if err != nil {
			t.Fatalf("cannot compile %s: %s", e, err)
		}
		sb.WriteString(f.SQL())
		if bindings := f.Bindings(); len(bindings) > 0 {
			values := make([]string, len(bindings))
			for i, b := range bindings {
				values[i] = b.String()
			}
			sb.WriteString(" -- " + strings.Join(values, ", "))
		}
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// Run with -update to regenerate the golden files.
func TestDialectGolden(t *testing.T) {
	for _, name := range []string{"ansi", "postgres", "sqlite", "mysql"} {
		t.Run(name, func(t *testing.T) {
			d, err := dialect.Lookup(name)
			if err != nil {
				t.Fatal(err)
			}
			rc, err := mapping.New(Member{}, mapping.Config{
				Dialect:        d,
				Alias:          "t",
				NullPrecedence: sqlcriteria.NullsLast,
			})
			if err != nil {
				t.Fatal(err)
			}

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, name, renderAll(t, rc))
		})
	}
}
