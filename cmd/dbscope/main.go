// dbscope - SQLite Exploration and Profiling Engine
//
// This is the main entry point for dbscope. It opens SQLite database files
// (including SQLCipher-encrypted ones) strictly read-only and exposes
// schema introspection, statistical profiling, and guarded querying over
// two transports:
//   - stdio: line-delimited JSON-RPC 2.0 on stdin/stdout (the default)
//   - http: a JSON API for UIs and scripts
//
// The database encryption key, when needed, is supplied only through the
// DBSCOPE_DATABASE_KEY environment variable. It is never accepted from a
// request and never written to any log or payload.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/dbscope/internal/api"
	"github.com/nerrad567/dbscope/internal/explorer"
	"github.com/nerrad567/dbscope/internal/infrastructure/config"
	"github.com/nerrad567/dbscope/internal/infrastructure/logging"
	"github.com/nerrad567/dbscope/internal/rpc"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting dbscope",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration. The config file is optional: everything can be
	// supplied through environment variables.
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Build the engine. The default database path is optional (operations
	// may name their own); the key is write-only and is never logged.
	engine := explorer.New(cfg.Database, log)
	log.Info("engine initialised",
		"default_path", cfg.Database.Path,
		"keyed", cfg.Database.Key != "",
	)

	switch cfg.Mode {
	case "http":
		return runHTTP(ctx, cfg, log, engine)
	default:
		return runStdio(ctx, log, engine)
	}
}

// runStdio serves JSON-RPC requests on stdin/stdout until EOF or signal.
//
// All logging goes to stderr: stdout belongs to the protocol.
func runStdio(ctx context.Context, log *logging.Logger, engine *explorer.Engine) error {
	server := rpc.New(engine, log, os.Stdin, os.Stdout)

	log.Info("serving on stdio")
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}

	log.Info("dbscope stopped")
	return nil
}

// runHTTP starts the HTTP API and blocks until the shutdown signal.
func runHTTP(ctx context.Context, cfg *config.Config, log *logging.Logger, engine *explorer.Engine) error {
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		Logger:  log,
		Engine:  engine,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("dbscope stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses DBSCOPE_CONFIG environment variable if set, otherwise no file.
func getConfigPath() string {
	return os.Getenv("DBSCOPE_CONFIG")
}
