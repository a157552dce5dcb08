// ABOUTME: Package documentation for the MCP transport layer.
// ABOUTME: Explains the Streamable HTTP surface and session model.

/*
Package mcp implements the Model Context Protocol server surface over the
Streamable HTTP transport (protocol revision 2025-11-25).

The server exposes a single endpoint, /mcp, that accepts JSON-RPC 2.0
messages via POST and session termination via DELETE. Supported methods:

  - initialize: creates a session and returns the advertised protocol
    version and server info. The session ID is returned in the
    Mcp-Session-Id header and must accompany subsequent requests.
  - notifications/*: accepted with HTTP 202 and no body.
  - tools/list: returns tool definitions with their JSON Schemas.
    Anonymous callers see only public tools.
  - tools/call: dispatches a tool call through the gateway dispatcher.

Authentication is per-request: each POST's Authorization header is
resolved independently (Bearer JWT or Basic credentials), so the session
carries no privilege of its own. Sessions bind the credential that
created them, and only a caller presenting the same credential may
terminate one.

Tool dispatch failures are split across the two MCP error channels.
Protocol-shaped failures (unknown tool, invalid input, missing
authentication) become JSON-RPC error responses. Domain failures
(not found, forbidden, upstream) are returned as tool results with
isError set, carrying the structured error JSON in the text content.
*/
package mcp
