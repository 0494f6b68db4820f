package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/dbscope/internal/catalog"
)

// handleHealth reports server liveness and version.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// handleListOperations returns the operation catalog: names, descriptions,
// and declared parameter shapes.
func (s *Server) handleListOperations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"operations": catalog.List(),
	})
}

// handleInvokeOperation dispatches one catalog operation. The request body
// is the flat parameter object; an empty body means no parameters.
func (s *Server) handleInvokeOperation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	params := map[string]any{}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_arguments", "reading request body: "+err.Error())
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &params); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_arguments", "request body must be a JSON object")
			return
		}
	}

	result, err := catalog.Dispatch(r.Context(), s.engine, name, params)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownOperation) {
			writeError(w, http.StatusNotFound, "unknown_operation", "no such operation: "+name)
			return
		}
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}
