package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/nerrad567/dbscope/internal/infrastructure/logging"
)

// Database configuration constants.
const (
	// connectionTimeout is the timeout for verifying database accessibility.
	connectionTimeout = 5 * time.Second

	// busyTimeoutMS is the maximum time to wait for a database lock.
	// Another process may hold the file; we only ever read.
	busyTimeoutMS = 5000
)

// Config contains the options for opening one database file.
type Config struct {
	// Path is the filesystem path to the SQLite database file.
	// The file must already exist; dbscope never creates databases.
	Path string

	// Key is the SQLCipher passphrase. Empty or all-whitespace means the
	// file is treated as a plain, unencrypted database. The key is
	// write-only: it is applied to the connection and never retained.
	Key string
}

// DB wraps a read-only sql.DB handle to one database file.
//
// A DB is owned by exactly one operation: it is opened at the start,
// used (possibly by several concurrent sub-queries, which the driver
// serialises on the single pooled connection), and closed unconditionally
// when the operation ends. It is never shared or reused across operations.
type DB struct {
	*sql.DB
	path   string
	logger *logging.Logger
}

// Open opens a database file read-only and verifies it is accessible.
//
// The handshake distinguishes plain and encrypted files:
//  1. Fail with ErrFileNotFound if the path does not reference an existing file.
//  2. Open the file as a read-only SQLite handle.
//  3. No key: run `SELECT 1`. Failure closes the handle and returns
//     ErrVerificationFailed.
//  4. With a key: set the legacy SQLCipher compatibility profile
//     (1024-byte pages, 64,000 KDF iterations, SHA1 KDF and HMAC — the
//     fixed corpus-wide contract, not user-configurable), apply the key,
//     then run `SELECT 1`.
//  5. A post-keying failure whose signature says "not a database" or
//     "malformed" becomes ErrInvalidPasswordOrCorrupt; the message never
//     reveals which condition applied. Anything else becomes
//     ErrVerificationFailed with the underlying detail.
//
// On every failure path the partially-opened handle is closed best-effort.
//
// Parameters:
//   - ctx: Context for the verification query
//   - cfg: Path and optional key
//   - logger: Logger for close diagnostics (may be nil)
//
// Returns:
//   - *DB: Open, verified handle
//   - error: One of the sentinel errors above, wrapped with detail
func Open(ctx context.Context, cfg Config, logger *logging.Logger) (*DB, error) {
	info, err := os.Stat(cfg.Path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, cfg.Path)
	}

	connStr := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", dsnPath(cfg.Path), busyTimeoutMS)

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One pooled connection, so keying pragmas and every later sub-query
	// run against the same underlying handle.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	db := &DB{
		DB:     sqlDB,
		path:   cfg.Path,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	keyed := strings.TrimSpace(cfg.Key) != ""
	if keyed {
		if err := db.applyKey(ctx, cfg.Key); err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := db.verify(ctx); err != nil {
		db.Close()
		if keyed {
			return nil, classifyKeyedFailure(err)
		}
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	return db, nil
}

// dsnPath escapes the characters a file: DSN would otherwise parse as URI
// syntax, so paths containing ? or # reach the engine intact. Percent is
// escaped first so the other escapes survive decoding.
func dsnPath(path string) string {
	path = strings.ReplaceAll(path, "%", "%25")
	path = strings.ReplaceAll(path, "?", "%3F")
	path = strings.ReplaceAll(path, "#", "%23")
	return path
}

// applyKey configures the legacy cipher profile and applies the passphrase.
//
// The raw secret must never pass through the parameterised-query path:
// SQLite pragmas do not accept bound parameters, so the secret is embedded
// in the statement text with backslashes and single quotes escaped to keep
// the statement syntactically closed.
func (db *DB) applyKey(ctx context.Context, key string) error {
	// SQLCipher 3.x defaults, required to open files produced by the
	// legacy scheme. Must be set before the first page is read.
	if _, err := db.DB.ExecContext(ctx, "PRAGMA cipher_default_compatibility = 3"); err != nil {
		return fmt.Errorf("%w: setting cipher compatibility: %v", ErrVerificationFailed, err)
	}

	stmt := fmt.Sprintf("PRAGMA key = '%s'", escapeKey(key))
	if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
		// Never include the statement (it contains the secret).
		return fmt.Errorf("%w: applying key: %v", ErrVerificationFailed, err)
	}
	return nil
}

// verify runs the trivial accessibility query. Preparing any statement
// forces SQLite to read the schema, which is what actually exercises
// decryption on an encrypted file.
func (db *DB) verify(ctx context.Context) error {
	var one int
	if err := db.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return err
	}
	return nil
}

// escapeKey escapes a passphrase for embedding in a PRAGMA statement.
// Backslashes are doubled first so the quote escaping cannot be undone.
func escapeKey(key string) string {
	key = strings.ReplaceAll(key, `\`, `\\`)
	key = strings.ReplaceAll(key, `'`, `''`)
	return key
}

// classifyKeyedFailure maps a post-keying verification failure onto the
// error taxonomy. A garbled read means either a wrong passphrase or a
// corrupt file; SQLite cannot tell them apart and neither do we — a single
// ambiguous error avoids giving an oracle on the secret.
func classifyKeyedFailure(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not a database") ||
		strings.Contains(msg, "file is encrypted") ||
		strings.Contains(msg, "malformed") {
		return fmt.Errorf("%w", ErrInvalidPasswordOrCorrupt)
	}
	return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
}

// Path returns the filesystem path to the database file.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database handle.
//
// It is idempotent and best-effort: close happens in cleanup paths where a
// second error must not mask the primary one, so failures are logged only
// and never returned.
func (db *DB) Close() {
	if db == nil || db.DB == nil {
		return
	}
	if err := db.DB.Close(); err != nil && db.logger != nil {
		db.logger.Warn("error closing database", "path", db.path, "error", err)
	}
	db.DB = nil
}
