// Package sqlite provides SQLite-backed implementations of the session and
// audience stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Both stores share a single database connection:
//
//   - SessionStore: sessions with their parsed questions and merged results
//   - AudienceStore: short-lived custom audiences
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration runs in its own transaction and
// records its version in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.halda/data/halda.db
package sqlite
