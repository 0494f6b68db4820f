package explorer

import (
	"errors"

	"github.com/nerrad567/dbscope/internal/infrastructure/database"
)

// Domain errors for the explorer package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, explorer.ErrTableNotFound) {
//	    // handle not found case
//	}
var (
	// ErrInvalidArguments is returned when an operation's parameter set is
	// missing or not an object.
	ErrInvalidArguments = errors.New("explorer: invalid arguments")

	// ErrInvalidQuery is returned when a query string is empty or absent.
	ErrInvalidQuery = errors.New("explorer: invalid query")

	// ErrWriteQueryRejected is returned when a query is not a pure
	// read-only SELECT.
	ErrWriteQueryRejected = errors.New("explorer: only read-only SELECT queries are allowed")

	// ErrInvalidIdentifier is returned when a table or column name fails
	// identifier validation.
	ErrInvalidIdentifier = errors.New("explorer: invalid identifier")

	// ErrMissingDatabasePath is returned when no path parameter was given
	// and no default path is configured.
	ErrMissingDatabasePath = errors.New("explorer: no database path provided and no default configured")

	// ErrTableNotFound is returned when a named table is absent from the catalog.
	ErrTableNotFound = errors.New("explorer: table not found")

	// ErrColumnNotFound is returned when a requested column is absent from
	// the table schema.
	ErrColumnNotFound = errors.New("explorer: column not found")

	// ErrInfoUnavailable is returned when a must-succeed metadata probe
	// fails, indicating the connection itself is unhealthy.
	ErrInfoUnavailable = errors.New("explorer: database metadata unavailable")

	// ErrInvalidParameter is returned when a numeric parameter is out of
	// its declared bounds or not numeric.
	ErrInvalidParameter = errors.New("explorer: invalid parameter")
)

// Kind names for structured error payloads. Transports map engine failures
// to these stable codes; messages stay human-readable.
const (
	KindInvalidArguments         = "invalid_arguments"
	KindInvalidQuery             = "invalid_query"
	KindWriteQueryRejected       = "write_query_rejected"
	KindInvalidIdentifier        = "invalid_identifier"
	KindMissingDatabasePath      = "missing_database_path"
	KindFileNotFound             = "file_not_found"
	KindVerificationFailed       = "verification_failed"
	KindInvalidPasswordOrCorrupt = "invalid_password_or_corrupt"
	KindTableNotFound            = "table_not_found"
	KindColumnNotFound           = "column_not_found"
	KindInfoUnavailable          = "info_unavailable"
	KindInvalidParameter         = "invalid_parameter"
	KindInternal                 = "internal_error"
)

// Kind classifies an error into its taxonomy code.
// Unrecognised errors classify as internal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArguments):
		return KindInvalidArguments
	case errors.Is(err, ErrInvalidQuery):
		return KindInvalidQuery
	case errors.Is(err, ErrWriteQueryRejected):
		return KindWriteQueryRejected
	case errors.Is(err, ErrInvalidIdentifier):
		return KindInvalidIdentifier
	case errors.Is(err, ErrMissingDatabasePath):
		return KindMissingDatabasePath
	case errors.Is(err, database.ErrFileNotFound):
		return KindFileNotFound
	case errors.Is(err, database.ErrInvalidPasswordOrCorrupt):
		return KindInvalidPasswordOrCorrupt
	case errors.Is(err, database.ErrVerificationFailed):
		return KindVerificationFailed
	case errors.Is(err, ErrTableNotFound):
		return KindTableNotFound
	case errors.Is(err, ErrColumnNotFound):
		return KindColumnNotFound
	case errors.Is(err, ErrInfoUnavailable):
		return KindInfoUnavailable
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	default:
		return KindInternal
	}
}
