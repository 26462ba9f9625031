// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is blank-imported by the entry points so all migrations
// are registered at startup.
package migrations
