// Package logging provides structured logging for dbscope.
//
// It wraps log/slog with configuration-driven level, format, and output
// selection, plus service-wide default fields. The stdio transport owns
// stdout for the wire protocol, so logs default to stderr.
//
// Database encryption keys must never be passed as log attributes; the
// connection layer logs paths and error kinds only.
package logging
