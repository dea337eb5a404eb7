// Package sqlite provides a SQLite-backed implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements:
//
//   - KeyValueStore: local keyed storage for annotations and the last opened PDF
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Quota
//
// A positive quota caps the total bytes of keys plus values. Writes that
// would exceed it fail with domain.ErrQuotaExceeded and change nothing.
//
// # Data Location
//
// By default, the database is stored at ~/.folio/data/folio.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
