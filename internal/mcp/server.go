// ABOUTME: MCP-compatible HTTP server for external agents like Claude Code.
// ABOUTME: Implements Streamable HTTP transport (spec 2025-11-25) with session management.

package mcp

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/commerce-gateway/internal/auth"
	"github.com/2389/commerce-gateway/internal/tools"
)

// Supported MCP protocol versions
var supportedProtocolVersions = map[string]bool{
	"2025-03-26": true,
	"2025-11-25": true,
}

// latestProtocolVersion is the version we advertise in initialize responses
const latestProtocolVersion = "2025-11-25"

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// JSON-RPC 2.0 types

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes
const (
	JSONRPCParseError     = -32700
	JSONRPCInvalidRequest = -32600
	JSONRPCMethodNotFound = -32601
	JSONRPCInvalidParams  = -32602
	JSONRPCInternalError  = -32603
)

// MCP-specific types

// MCPToolInfo represents an MCP tool definition.
type MCPToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// MCPListToolsResult is the result for tools/list.
type MCPListToolsResult struct {
	Tools []MCPToolInfo `json:"tools"`
}

// MCPCallToolParams are the params for tools/call.
type MCPCallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// MCPCallToolResult is the result for tools/call.
type MCPCallToolResult struct {
	Content []MCPContent `json:"content"`
	IsError bool         `json:"isError,omitempty"`
}

// MCPContent represents content in a tool result.
type MCPContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// mcpSession tracks an active MCP client session.
type mcpSession struct {
	id              string
	protocolVersion string
	ownerCredential string // Authorization header used at initialize; bound for DELETE ownership
	createdAt       time.Time
}

// sessionStore manages active MCP sessions (in-memory).
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*mcpSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*mcpSession)}
}

func (s *sessionStore) create(protocolVersion, ownerCredential string) *mcpSession {
	sess := &mcpSession{
		id:              uuid.New().String(),
		protocolVersion: protocolVersion,
		ownerCredential: ownerCredential,
		createdAt:       time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *sessionStore) get(id string) (*mcpSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

func (s *sessionStore) delete(id string) bool {
	s.mu.Lock()
	_, existed := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	return existed
}

// Config holds configuration for the MCP server.
type Config struct {
	Dispatcher    *tools.Dispatcher
	Authenticator *auth.Authenticator
	Logger        *slog.Logger
	ServerName    string // advertised in initialize serverInfo
	ServerVersion string
}

// Server implements MCP-compatible HTTP endpoints for external agents.
// Conforms to MCP Streamable HTTP transport specification (2025-11-25).
// Identity is resolved per-request from the Authorization header, so a
// single session can carry authenticated and anonymous calls; the
// dispatcher enforces which tools each caller may run.
type Server struct {
	dispatcher    *tools.Dispatcher
	authenticator *auth.Authenticator
	logger        *slog.Logger
	serverName    string
	serverVersion string
	sessions      *sessionStore
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if cfg.Authenticator == nil {
		return nil, errors.New("authenticator is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.ServerName
	if name == "" {
		name = "commerce-gateway"
	}
	version := cfg.ServerVersion
	if version == "" {
		version = "1.0.0"
	}

	return &Server{
		dispatcher:    cfg.Dispatcher,
		authenticator: cfg.Authenticator,
		logger:        logger,
		serverName:    name,
		serverVersion: version,
		sessions:      newSessionStore(),
	}, nil
}

// RegisterRoutes registers the MCP endpoint on the given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/mcp", s.handleMCP)
}

// handleMCP is the single MCP endpoint supporting POST, GET, and DELETE per the
// Streamable HTTP transport spec (2025-11-25).
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handlePost(w, r)
	case http.MethodGet:
		// We don't support server-initiated SSE streams
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	case http.MethodDelete:
		s.handleDelete(w, r)
	default:
		w.Header().Set("Allow", "POST, GET, DELETE")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleDelete terminates a session per the Streamable HTTP spec.
// Verifies the caller owns the session to prevent unauthorized termination.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("Mcp-Session-Id")
	if sessionID == "" {
		http.Error(w, "Bad Request: missing Mcp-Session-Id", http.StatusBadRequest)
		return
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	// Ownership check: the DELETE must carry the same credential as initialize
	if sess.ownerCredential != "" && r.Header.Get("Authorization") != sess.ownerCredential {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	s.sessions.delete(sessionID)
	s.logger.Info("MCP session terminated", "session_id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// handlePost processes JSON-RPC messages sent via HTTP POST.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("Mcp-Session-Id")
	protoVersion := r.Header.Get("Mcp-Protocol-Version")

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		s.sendJSONRPCError(w, nil, JSONRPCParseError, "failed to read request body", nil)
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		s.sendJSONRPCError(w, nil, JSONRPCInvalidRequest, "request body too large", nil)
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.sendJSONRPCError(w, nil, JSONRPCParseError, "invalid JSON", nil)
		return
	}

	if req.JSONRPC != "2.0" {
		s.sendJSONRPCError(w, req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version", nil)
		return
	}

	isInitialize := req.Method == "initialize"
	isNotification := len(req.ID) == 0 || string(req.ID) == "null"

	// Validate protocol version header (not required on initialize).
	// Per spec: server default assumption if missing is 2025-03-26.
	if !isInitialize && protoVersion != "" {
		if !supportedProtocolVersions[protoVersion] {
			http.Error(w, "Bad Request: unsupported MCP-Protocol-Version", http.StatusBadRequest)
			return
		}
	}

	// Non-initialize requests require a valid session
	if !isInitialize {
		if sessionID == "" {
			http.Error(w, "Bad Request: missing Mcp-Session-Id", http.StatusBadRequest)
			return
		}
		if _, ok := s.sessions.get(sessionID); !ok {
			// Session expired or invalid - client must re-initialize
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
	}

	// Resolve the caller identity for this request. A missing header means
	// anonymous; a presented-but-bad credential is rejected outright rather
	// than downgraded to anonymous.
	id, authErr := s.resolveIdentity(r)
	if authErr != nil {
		if isNotification {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		if auth.IsAuthError(authErr) {
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidRequest, "invalid or expired credentials", nil)
			return
		}
		// Store failure during verification is not the caller's fault
		s.logger.Error("auth resolution failed", "error", authErr)
		s.sendJSONRPCError(w, req.ID, JSONRPCInternalError, "internal error", nil)
		return
	}

	s.logger.Debug("MCP request",
		"method", req.Method,
		"is_notification", isNotification,
		"session_id", sessionID,
	)

	// Handle notifications: accept and return HTTP 202 with no body
	if isNotification {
		if strings.HasPrefix(req.Method, "notifications/") {
			s.logger.Debug("accepted MCP notification", "method", req.Method)
		} else {
			s.logger.Warn("received notification for non-notification method", "method", req.Method)
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, r, req)
	case "tools/list":
		s.handleToolsList(w, req, id)
	case "tools/call":
		s.handleToolsCall(w, r, req, id)
	default:
		s.sendJSONRPCError(w, req.ID, JSONRPCMethodNotFound, "method not found", nil)
	}
}

// resolveIdentity authenticates the request's Authorization header. A missing
// header yields a nil identity and no error.
func (s *Server) resolveIdentity(r *http.Request) (*auth.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, nil
	}
	id, err := s.authenticator.Authenticate(r.Context(), header)
	if err != nil {
		s.logger.Debug("MCP auth failed", "error", err)
		return nil, err
	}
	return id, nil
}

// handleInitialize handles the MCP initialize handshake and creates a session.
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	// Bind the initializing credential so only the creator can DELETE the session
	sess := s.sessions.create(latestProtocolVersion, r.Header.Get("Authorization"))

	s.logger.Info("MCP session created",
		"session_id", sess.id,
		"protocol_version", sess.protocolVersion,
	)

	// Set the session ID header so the client can use it on subsequent requests
	w.Header().Set("Mcp-Session-Id", sess.id)

	result := map[string]any{
		"protocolVersion": latestProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.serverName,
			"version": s.serverVersion,
		},
	}
	s.sendJSONRPCResult(w, req.ID, result)
}

// handleToolsList handles tools/list requests. Anonymous callers see only
// public tools; authenticated customers see the full set.
func (s *Server) handleToolsList(w http.ResponseWriter, req JSONRPCRequest, id *auth.Identity) {
	defs := s.dispatcher.Registry().List(id == nil)

	result := MCPListToolsResult{
		Tools: make([]MCPToolInfo, len(defs)),
	}
	for i, def := range defs {
		result.Tools[i] = MCPToolInfo{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: json.RawMessage(def.InputSchema),
		}
	}

	s.logger.Debug("tools/list",
		"count", len(defs),
		"authenticated", id != nil,
	)

	s.sendJSONRPCResult(w, req.ID, result)
}

// handleToolsCall handles tools/call requests.
func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req JSONRPCRequest, id *auth.Identity) {
	var params MCPCallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "invalid params", nil)
			return
		}
	}

	if params.Name == "" {
		s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "tool name is required", nil)
		return
	}

	s.logger.Debug("tools/call",
		"tool_name", params.Name,
		"authenticated", id != nil,
	)

	output, terr := s.dispatcher.Call(r.Context(), params.Name, params.Arguments, id)
	if terr != nil {
		s.handleToolError(w, req.ID, params.Name, terr)
		return
	}

	result := MCPCallToolResult{
		Content: []MCPContent{{Type: "text", Text: string(output)}},
	}

	s.sendJSONRPCResult(w, req.ID, result)
}

// handleToolError maps dispatch failures onto the JSON-RPC surface.
// Malformed calls become protocol errors; domain failures ride back as
// isError tool results so agents can read and react to them.
func (s *Server) handleToolError(w http.ResponseWriter, id json.RawMessage, toolName string, terr *tools.Error) {
	switch terr.Code {
	case tools.CodeUnknownTool, tools.CodeInvalidInput:
		s.sendJSONRPCError(w, id, JSONRPCInvalidParams, terr.Message, nil)
		return
	case tools.CodeUnauthenticated:
		s.sendJSONRPCError(w, id, JSONRPCInvalidRequest, terr.Message, nil)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"error": terr,
	})
	if err != nil {
		s.sendJSONRPCError(w, id, JSONRPCInternalError, "tool execution failed", nil)
		return
	}

	result := MCPCallToolResult{
		Content: []MCPContent{{Type: "text", Text: string(payload)}},
		IsError: true,
	}
	s.sendJSONRPCResult(w, id, result)
}

// sendJSONRPCResult sends a successful JSON-RPC response.
func (s *Server) sendJSONRPCResult(w http.ResponseWriter, id json.RawMessage, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC response", "error", err)
	}
}

// sendJSONRPCError sends a JSON-RPC error response.
func (s *Server) sendJSONRPCError(w http.ResponseWriter, id json.RawMessage, code int, message string, data any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC error response", "error", err)
	}
}
