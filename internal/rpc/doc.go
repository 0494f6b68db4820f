// Package rpc serves engine operations over stdio.
//
// The wire format is line-delimited JSON-RPC 2.0: one request object per
// line on stdin, one response object per line on stdout. The method name
// is the catalog operation name and params is the flat parameter object.
// Failures carry the taxonomy kind in error.data.kind alongside the
// human-readable message; the database secret never appears in any frame.
//
// Structured logs go to stderr so stdout stays protocol-clean.
package rpc
