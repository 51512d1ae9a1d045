/*
Package sqlcriteria compiles a small set of query criteria into SQL fragments
for a host query builder.

The host knows how to map logical property names onto physical columns, which
SQL dialect is in use and how query parameters are bound. It exposes that
knowledge through a [Context]. The criteria in this package ask the Context for
what they need and produce a [Fragment]: the SQL text together with the typed
values for every placeholder in it, in placeholder order.

# Criteria

Three shapes of criteria are supported.

A masked-bit predicate compares the bitwise AND of an integer property and a
mask with a value:

	p := sqlcriteria.MaskedBitEqualTo("status", 256, 0)
	// ( status & ? ) = ?    bindings: [256 0]

A masked-bit order sorts on the bitwise AND of a property and a mask. The mask
is written into the SQL as a literal, one term per column of the property:

	o := sqlcriteria.MaskedBitDesc("flags", 8)
	// ( flags & 8 ) DESC NULLS LAST

A coalesce order sorts on the first non-null value among several properties,
optionally lower-casing character columns first:

	o := sqlcriteria.CoalesceAsc("nickname", "fullname").IgnoreCase()
	// COALESCE(LOWER(nickname), LOWER(fullname)) ASC NULLS LAST

The exact placement of null precedence and direction keywords is decided by
the dialect behind the Context.

# Contexts

The [github.com/canonical/sqlcriteria/mapping] package provides a Context built
from a Go struct whose fields carry `db` tags, and the
[github.com/canonical/sqlcriteria/dialect] package provides the dialects it
renders with. Hosts with their own property metadata implement Context
directly.

Criteria are immutable values and may be compiled concurrently.
*/
package sqlcriteria
