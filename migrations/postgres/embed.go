// Package migrations embebe los archivos SQL de migración.
package migrations

import "embed"

// FS contiene las migraciones de esquema de PostgreSQL.
//
//go:embed *.sql
var FS embed.FS
