package example_test

import (
	"os"

	"github.com/canonical/sqlcriteria/example"
)

func ExampleRun() {
	if err := example.Run(os.Stdout); err != nil {
		panic(err)
	}

	// Output:
	// urgent task 1: Write docs
	// urgent task 3: fix CI
	// ORDER BY ( t.flags & 2 ) ASC NULLS LAST, COALESCE(LOWER(t.nickname), LOWER(t.title)) ASC NULLS LAST
	// 4 Cleanup
	// 2 deploy
	// 1 Write docs
	// 3 fix CI
}
