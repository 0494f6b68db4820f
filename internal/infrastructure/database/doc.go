// Package database opens SQLite database files for read-only exploration.
//
// This package manages:
//   - Read-only connection establishment (mode=ro, single pooled connection)
//   - The encrypted/unencrypted handshake for SQLCipher-compatible files
//     (legacy v3 compatibility profile: 1024-byte pages, 64,000 KDF
//     iterations, SHA1 key derivation and authentication)
//   - Accessibility verification and guaranteed, idempotent closure
//
// Security Considerations:
//   - The passphrase is embedded in a PRAGMA statement (pragmas cannot be
//     parameterised) with quote and backslash escaping; the statement text
//     is never logged
//   - Wrong-password and corrupt-file failures are reported with one
//     ambiguous error so callers get no oracle on the secret
//
// A DB belongs to exactly one operation and is closed when that operation
// ends, success or failure. There is no pooling or reuse across operations.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: path, Key: key}, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// Note: SQLCipher pragmas only take effect when the binary is built against
// a SQLCipher-enabled libsqlite3 (e.g. -tags libsqlite3 with the sqlcipher
// headers). Against stock SQLite they are ignored and encrypted files fail
// verification with ErrInvalidPasswordOrCorrupt.
package database
