// Package catalog is the static registry of exposed operations.
//
// It declares every operation's public name and parameter shape (types,
// required flags, integer bounds and defaults), validates incoming flat
// parameter objects against those declarations, and dispatches validated
// calls to the explorer engine. Both transports (stdio JSON-RPC and the
// HTTP API) share this one registry, so the exposed surface cannot drift
// between them.
//
// The database secret is deliberately not a parameter of any operation:
// it reaches the engine only through process-wide configuration.
package catalog
