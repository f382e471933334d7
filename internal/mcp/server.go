// Package mcp implements the persistent stdio adapter: a JSON-RPC server
// speaking the Model Context Protocol, exposing the action dispatcher as a
// single tool.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lnr-dev/lnr/internal/action"
)

const protocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	errParse          = -32700
	errMethodNotFound = -32601
	errInvalidParams  = -32602
)

// callTimeout bounds one tools/call dispatch. The CLI adapter runs without a
// deadline; the long-lived server must not let a hung network call pin a
// worker forever.
const callTimeout = 30 * time.Second

// Server reads newline-delimited JSON-RPC requests from in and writes
// responses to out. Requests are handled concurrently; the dispatcher's
// catalog is the only shared state and tolerates that.
type Server struct {
	name       string
	version    string
	dispatcher *action.Dispatcher
	logger     *slog.Logger

	in  io.Reader
	out io.Writer

	encMu sync.Mutex
}

// NewServer creates a server over the given streams.
func NewServer(name, version string, dispatcher *action.Dispatcher, logger *slog.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{
		name:       name,
		version:    version,
		dispatcher: dispatcher,
		logger:     logger,
		in:         in,
		out:        out,
	}
}

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func resultResponse(id any, result any) *jsonRPCResponse {
	return &jsonRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id any, code int, message string) *jsonRPCResponse {
	return &jsonRPCResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
}

// Run processes requests until the input stream closes.
func (s *Server) Run() error {
	s.logger.Info("mcp server starting", "name", s.name, "version", s.version)

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var wg sync.WaitGroup
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.write(errorResponse(nil, errParse, "parse error"))
			continue
		}

		wg.Add(1)
		go func(req jsonRPCRequest) {
			defer wg.Done()
			if resp := s.handle(req); resp != nil {
				s.write(resp)
			}
		}(req)
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("mcp input stream failed: %w", err)
	}
	s.logger.Info("mcp server stopping")
	return nil
}

func (s *Server) write(resp *jsonRPCResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		return
	}
	s.encMu.Lock()
	defer s.encMu.Unlock()
	fmt.Fprintf(s.out, "%s\n", payload)
}

// handle routes one request. Notifications (no ID) get no response.
func (s *Server) handle(req jsonRPCRequest) *jsonRPCResponse {
	if req.ID == nil {
		return nil
	}

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.name,
				"version": s.version,
			},
		})
	case "prompts/list":
		return resultResponse(req.ID, map[string]any{"prompts": []any{}})
	case "resources/list":
		return resultResponse(req.ID, map[string]any{"resources": []any{}})
	case "tools/list":
		return resultResponse(req.ID, map[string]any{"tools": toolDefinitions()})
	case "tools/call":
		return s.handleToolsCall(req.ID, req.Params)
	default:
		return errorResponse(req.ID, errMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *Server) handleToolsCall(id any, params json.RawMessage) *jsonRPCResponse {
	var call struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return errorResponse(id, errInvalidParams, "invalid params")
	}
	if call.Name != toolName {
		return errorResponse(id, errInvalidParams, "unknown tool: "+call.Name)
	}

	req, err := action.ParseRequest(call.Arguments)
	if err != nil {
		return resultResponse(id, toolError(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	s.logger.Debug("tool call", "action", string(req.Action))
	result, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		s.logger.Warn("tool call failed", "action", string(req.Action), "error", err)
		return resultResponse(id, toolError(err))
	}

	return resultResponse(id, map[string]any{
		"content": []map[string]any{{"type": "text", "text": result}},
	})
}

func toolError(err error) map[string]any {
	return map[string]any{
		"content": []map[string]any{{"type": "text", "text": fmt.Sprintf("ERROR: %v", err)}},
		"isError": true,
	}
}
