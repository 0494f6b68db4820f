package database

import "errors"

// Connection-establishment errors.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrFileNotFound is returned when the database path does not reference
	// an existing file.
	ErrFileNotFound = errors.New("database: file not found")

	// ErrVerificationFailed is returned when the accessibility check fails
	// and the failure does not look like a wrong key or corruption.
	ErrVerificationFailed = errors.New("database: could not verify database")

	// ErrInvalidPasswordOrCorrupt is returned when a keyed open produces a
	// garbled read. The message is deliberately ambiguous between "wrong
	// password" and "corrupt file".
	ErrInvalidPasswordOrCorrupt = errors.New("database: invalid password or corrupt database file")
)
