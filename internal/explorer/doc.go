// Package explorer is the database introspection and statistics engine.
//
// It provides read-only exploration of SQLite database files, plain or
// SQLCipher-encrypted: schema and metadata extraction through pragma
// introspection, per-table and per-column statistical profiling, name
// search, and foreign-key relationship resolution.
//
// Lifecycle: every public operation opens its own connection through the
// database package, performs its work, and closes the connection in a
// deferred cleanup — success or failure. Connections never outlive an
// operation and are never shared between operations.
//
// Concurrency: fan-out work (per-table foreign-key scans, per-column
// statistics probes, column search) runs as errgroup task groups against
// the operation's single connection; the driver serialises access to the
// one pooled connection, so concurrent sub-queries are safe. No partial
// aggregate is ever observable — results are merged only after every
// sub-query completes, indexed by request position rather than arrival
// order. Within a group, an individual probe failure folds into that
// item's zero defaults instead of aborting the aggregate, except for
// probes documented as must-succeed (database metadata) and the
// unknown-table/column checks performed before any fan-out begins.
//
// Failures are values from the sentinel taxonomy in errors.go; low-level
// SQLite errors are translated at this boundary, and Kind maps any engine
// error to its stable payload code.
package explorer
