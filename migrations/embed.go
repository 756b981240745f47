// Package migrations holds the versioned SQL that defines the clinic schema.
package migrations

import "embed"

// FS contains every NNN_name.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS
