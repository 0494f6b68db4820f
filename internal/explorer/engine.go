package explorer

import (
	"context"

	"github.com/nerrad567/dbscope/internal/infrastructure/config"
	"github.com/nerrad567/dbscope/internal/infrastructure/database"
	"github.com/nerrad567/dbscope/internal/infrastructure/logging"
)

// Engine is the database introspection and statistics engine.
//
// It holds the process-wide defaults (database path, encryption key) as
// explicit values supplied at construction, never read ambiently, so tests
// can build engines with distinct configurations.
//
// Every operation opens its own connection, performs its introspection or
// aggregation calls, and closes the connection before returning.
// Connections are never reused across operations.
type Engine struct {
	defaultPath string
	key         string
	log         *logging.Logger
}

// New creates an Engine with the given database defaults.
//
// Parameters:
//   - cfg: Default database path (optional) and encryption key (optional)
//   - log: Logger; must not be nil
func New(cfg config.DatabaseConfig, log *logging.Logger) *Engine {
	return &Engine{
		defaultPath: cfg.Path,
		key:         cfg.Key,
		log:         log.With("component", "explorer"),
	}
}

// resolvePath resolves the effective database path for one operation:
// the request parameter if present, else the configured default, else
// ErrMissingDatabasePath. The order is deterministic.
func (e *Engine) resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if e.defaultPath != "" {
		return e.defaultPath, nil
	}
	return "", ErrMissingDatabasePath
}

// open resolves the path and performs the connection handshake. The key is
// the configured process-wide secret; it is never taken from a request.
// Callers must Close the returned handle in a deferred cleanup.
func (e *Engine) open(ctx context.Context, path string) (*database.DB, error) {
	resolved, err := e.resolvePath(path)
	if err != nil {
		return nil, err
	}
	return database.Open(ctx, database.Config{Path: resolved, Key: e.key}, e.log)
}
