// Package schemas provides embedded SQL migration files and the default syllabus.
package schemas

import "embed"

// Migrations contains all SQL migration files, applied in file name order.
// The statements are limited to DDL shared by MySQL, PostgreSQL and SQLite.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// DefaultSyllabus is imported when no syllabus file is given or configured.
//
//go:embed syllabus/default.yaml
var DefaultSyllabus []byte
