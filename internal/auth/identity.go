// ABOUTME: Caller identity for tracking the authenticated customer through request handlers
// ABOUTME: Provides WithIdentity/FromContext for propagating identity via context

package auth

import (
	"context"
)

// Identity holds the authenticated caller information extracted from a request.
// This is populated by the authenticator and retrieved from context in handlers.
type Identity struct {
	CustomerID string // owning customer for all scoped data access
	Email      string
}

// identityKey is the key type for storing Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the Identity from the context, returning nil if not present.
func FromContext(ctx context.Context) *Identity {
	val := ctx.Value(identityKey{})
	if val == nil {
		return nil
	}
	id, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return id
}
