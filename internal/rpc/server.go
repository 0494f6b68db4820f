package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/nerrad567/dbscope/internal/catalog"
	"github.com/nerrad567/dbscope/internal/explorer"
	"github.com/nerrad567/dbscope/internal/infrastructure/logging"
)

// maxLineBytes bounds one request line. Oversized requests fail cleanly
// instead of growing the scanner buffer without limit.
const maxLineBytes = 1 << 20

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeOperationError = -32000
)

// request is one incoming JSON-RPC 2.0 call.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  map[string]any  `json:"params"`
}

// response is one outgoing JSON-RPC 2.0 reply.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *responseError  `json:"error,omitempty"`
}

// responseError carries the failure message plus the taxonomy kind in data.
// It never contains the database secret.
type responseError struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    errorData `json:"data"`
}

type errorData struct {
	Kind string `json:"kind"`
}

// Server serves engine operations over stdin/stdout as line-delimited
// JSON-RPC 2.0. Logs go to stderr; stdout carries only protocol frames.
type Server struct {
	engine *explorer.Engine
	logger *logging.Logger
	in     io.Reader
	out    io.Writer
}

// New creates a stdio RPC server bound to an engine.
//
// Parameters:
//   - engine: The explorer engine handling operations
//   - logger: Logger for request diagnostics
//   - in, out: Wire streams (os.Stdin/os.Stdout in production; buffers in tests)
func New(engine *explorer.Engine, logger *logging.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{
		engine: engine,
		logger: logger.With("component", "rpc"),
		in:     in,
		out:    out,
	}
}

// Run reads requests line by line until EOF or context cancellation.
// Requests are handled sequentially: the transport is a single
// conversation, and concurrency lives inside engine operations.
//
// Returns:
//   - error: A read or write failure on the wire; EOF is a clean nil
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handle(ctx, line)
		if err := s.write(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// handle decodes and dispatches one request line.
func (s *Server) handle(ctx context.Context, line []byte) response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse(nil, codeParseError, "parse error: invalid JSON", explorer.KindInvalidArguments)
	}
	if req.Method == "" {
		return errorResponse(req.ID, codeInvalidRequest, "invalid request: missing method", explorer.KindInvalidArguments)
	}

	opID := uuid.NewString()
	log := s.logger.With("operation", req.Method, "op_id", opID)

	result, err := catalog.Dispatch(ctx, s.engine, req.Method, req.Params)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownOperation) {
			log.Warn("unknown operation requested")
			return errorResponse(req.ID, codeMethodNotFound,
				fmt.Sprintf("method not found: %s", req.Method), explorer.KindInvalidArguments)
		}
		kind := explorer.Kind(err)
		log.Warn("operation failed", "kind", kind, "error", err)
		return errorResponse(req.ID, codeOperationError, err.Error(), kind)
	}

	log.Info("operation complete")
	return response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

// write emits one response frame followed by a newline.
func (s *Server) write(resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	data = append(data, '\n')
	_, err = s.out.Write(data)
	return err
}

// errorResponse builds a structured failure reply.
func errorResponse(id json.RawMessage, code int, message, kind string) response {
	return response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &responseError{
			Code:    code,
			Message: message,
			Data:    errorData{Kind: kind},
		},
	}
}
