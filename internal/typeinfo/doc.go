// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

/*
Package typeinfo contains code relating to Go types and the columns they map
onto. As much as possible, reflection code is limited to this package. It
extracts the logical properties, physical columns and SQL types described by
the `db` tags of a struct.
*/
package typeinfo
