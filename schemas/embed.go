// Package schemas provides the embedded SQL migrations of the flashcard store.
package schemas

import "embed"

// Migrations contains the SQL migration files, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
