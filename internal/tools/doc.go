// Package tools provides the tool registry and dispatcher for commerce-gateway.
//
// # Registry
//
// Tools are declared statically at startup as Definitions: a name, a JSON
// Schema string for discovery, an Access marker, and a handler. The
// registry is read-only after construction, so concurrent requests share
// it without locking.
//
// # Access Markers
//
// Access is an explicit two-variant marker:
//
//   - AccessPublic: the handler runs with a nil identity
//   - AccessCustomer: the dispatcher guarantees a resolved customer
//     identity before the handler runs
//
// Handlers never re-check authentication; the dispatcher is the single
// enforcement point.
//
// # Error Taxonomy
//
// All failures surface as *Error with one of six stable codes:
// unauthenticated, forbidden, invalid_input, unknown_tool, not_found,
// upstream. HTTPStatus maps each code to its REST status. Handler errors
// that are not already structured become generic upstream errors, so no
// internal error text or stack trace reaches a caller.
//
// # Retry Policy
//
// Tools marked ReadOnly are retried up to 3 times with exponential
// backoff when the store reports transient contention. Writes run
// exactly once.
package tools
