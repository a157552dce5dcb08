// ABOUTME: Structured error taxonomy for tool dispatch
// ABOUTME: Stable error codes with HTTP status mapping, never leaking internals

package tools

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of tool-call failure. Codes are stable and
// appear verbatim in error responses.
type Code string

const (
	CodeUnauthenticated Code = "unauthenticated" // missing/invalid/expired credential
	CodeForbidden       Code = "forbidden"       // authenticated but not the owner
	CodeInvalidInput    Code = "invalid_input"   // schema violation
	CodeUnknownTool     Code = "unknown_tool"    // no such tool name
	CodeNotFound        Code = "not_found"       // referenced entity absent
	CodeUpstream        Code = "upstream"        // store failure
)

// Error is a structured, caller-visible tool failure. The message is
// human-readable and safe to return; internal details stay in logs.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds an Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a structured Error from err. Unclassified errors are
// wrapped as upstream failures with a generic message so no internal
// error text reaches the caller.
func AsError(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return &Error{Code: CodeUpstream, Message: "internal error"}
}

// HTTPStatus maps an error code to its HTTP response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidInput, CodeUnknownTool:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
