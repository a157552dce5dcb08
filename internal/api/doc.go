// ABOUTME: Package documentation for the REST API surface.
// ABOUTME: Covers health, login, and direct tool invocation endpoints.

/*
Package api provides the plain-HTTP surface of the gateway for clients
that do not speak MCP.

Endpoints:

  - GET /health: liveness info with service name, version, and timestamp.
  - POST /auth/login: exchanges email/password for a bearer access token.
  - POST /tools/{name}: invokes a tool directly. The request body is the
    tool's JSON input; the Authorization header is resolved exactly as on
    the MCP surface.

Tool failures are returned as {"error":{"code","message"}} with the HTTP
status derived from the error code, so REST clients see the same error
taxonomy as MCP clients.
*/
package api
