// Package config provides configuration loading for dbscope.
//
// Configuration is read from a YAML file and overridden by DBSCOPE_*
// environment variables. Secrets (the database encryption key, the API
// bearer token) are never read from YAML; they come from the environment
// only, so a checked-in config file can never leak them.
//
// The loaded Config is threaded explicitly into the explorer engine and
// the transports at construction time. Nothing in the engine reads the
// environment directly, which keeps per-test configuration possible.
package config
