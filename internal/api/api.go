// ABOUTME: REST API handlers for health, login, and direct tool invocation.
// ABOUTME: Mirrors the MCP tool surface for plain HTTP clients.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/commerce-gateway/internal/auth"
	"github.com/2389/commerce-gateway/internal/metrics"
	"github.com/2389/commerce-gateway/internal/tools"
)

// MaxRequestBodySize caps tool and login request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// LoginRequest is the JSON request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the JSON response for a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	CustomerID  string `json:"customer_id"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Server exposes the REST surface of the gateway.
type Server struct {
	dispatcher    *tools.Dispatcher
	authenticator *auth.Authenticator
	logger        *slog.Logger
	serviceName   string
	version       string
}

// Config holds configuration for the REST server.
type Config struct {
	Dispatcher    *tools.Dispatcher
	Authenticator *auth.Authenticator
	Logger        *slog.Logger
	ServiceName   string
	Version       string
}

// NewServer creates the REST server.
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

	name := cfg.ServiceName
	if name == "" {
		name = "commerce-gateway"
	}
	version := cfg.Version
	if version == "" {
		version = "1.0.0"
	}

	return &Server{
		dispatcher:    cfg.Dispatcher,
		authenticator: cfg.Authenticator,
		logger:        logger,
		serviceName:   name,
		version:       version,
	}, nil
}

// RegisterRoutes registers the REST endpoints on the given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /tools/{name}", s.handleToolCall)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   s.serviceName,
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleLogin handles POST /auth/login: verifies email/password and issues
// a bearer token for subsequent tool calls.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodySize)).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.sendError(w, http.StatusBadRequest, "invalid_input", "email and password are required")
		return
	}

	result, err := s.authenticator.PasswordLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		if auth.IsAuthError(err) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.sendError(w, http.StatusUnauthorized, "unauthenticated", "invalid email or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.sendError(w, http.StatusBadGateway, "upstream", "internal error")
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		CustomerID:  result.Identity.CustomerID,
	})
}

// handleToolCall handles POST /tools/{name}: the body is passed verbatim as
// the tool input, and the Authorization header is resolved the same way as
// on the MCP surface.
func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid_input", "failed to read request body")
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		s.sendError(w, http.StatusBadRequest, "invalid_input", "request body too large")
		return
	}

	var id *auth.Identity
	if header := r.Header.Get("Authorization"); header != "" {
		id, err = s.authenticator.Authenticate(r.Context(), header)
		if err != nil {
			if auth.IsAuthError(err) {
				s.sendError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired credentials")
				return
			}
			// Store failure during verification is not the caller's fault
			s.logger.Error("auth resolution failed", "error", err)
			s.sendError(w, http.StatusBadGateway, "upstream", "internal error")
			return
		}
	}

	output, terr := s.dispatcher.Call(r.Context(), name, body, id)
	if terr != nil {
		s.sendError(w, tools.HTTPStatus(terr.Code), string(terr.Code), terr.Message)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(output); err != nil {
		s.logger.Warn("failed to write tool response", "error", err)
	}
}

// writeJSON writes a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// sendError writes the structured error envelope.
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}); err != nil {
		s.logger.Warn("failed to encode error response", "error", err)
	}
}
