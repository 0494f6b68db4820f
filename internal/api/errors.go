package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/dbscope/internal/explorer"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, "unauthorised", message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, explorer.KindInternal, message)
}

// writeEngineError maps an engine failure onto an HTTP status, carrying
// the taxonomy kind as the error code. Messages are already safe: the
// engine never places the database secret in an error.
func writeEngineError(w http.ResponseWriter, err error) {
	kind := explorer.Kind(err)
	writeError(w, statusForKind(kind), kind, err.Error())
}

// statusForKind maps taxonomy kinds to HTTP statuses.
func statusForKind(kind string) int {
	switch kind {
	case explorer.KindInvalidArguments,
		explorer.KindInvalidQuery,
		explorer.KindWriteQueryRejected,
		explorer.KindInvalidIdentifier,
		explorer.KindInvalidParameter,
		explorer.KindMissingDatabasePath:
		return http.StatusBadRequest
	case explorer.KindFileNotFound,
		explorer.KindTableNotFound,
		explorer.KindColumnNotFound:
		return http.StatusNotFound
	case explorer.KindInvalidPasswordOrCorrupt:
		return http.StatusUnprocessableEntity
	case explorer.KindVerificationFailed,
		explorer.KindInfoUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
