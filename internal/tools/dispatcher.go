// ABOUTME: Tool dispatcher enforcing access markers and the retry policy
// ABOUTME: Single funnel for all tool calls from the MCP and REST surfaces

package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/2389/commerce-gateway/internal/auth"
	"github.com/2389/commerce-gateway/internal/metrics"
	"github.com/2389/commerce-gateway/internal/store"
)

// retry policy for idempotent reads on transient store contention
const (
	maxReadRetries   = 3
	retryBackoffBase = 50 * time.Millisecond
)

// Dispatcher routes tool calls through access checks to their handlers.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// Call executes the named tool with the raw JSON input. id is the resolved
// caller identity, or nil for anonymous callers. Every failure is returned
// as a structured *Error with a stable code; nothing else escapes.
func (d *Dispatcher) Call(ctx context.Context, name string, input json.RawMessage, id *auth.Identity) (json.RawMessage, *Error) {
	def, terr := d.registry.Get(name)
	if terr != nil {
		metrics.ToolCallsTotal.WithLabelValues(name, string(CodeUnknownTool)).Inc()
		return nil, terr
	}

	if def.Access == AccessCustomer && id == nil {
		metrics.ToolCallsTotal.WithLabelValues(name, string(CodeUnauthenticated)).Inc()
		return nil, Errorf(CodeUnauthenticated, "tool %q requires authentication", name)
	}

	if len(input) == 0 || string(input) == "null" {
		input = json.RawMessage("{}")
	}

	// Attach the identity to the context so code below the handler
	// boundary (store hooks, logging) can recover the caller.
	if id != nil {
		ctx = auth.WithIdentity(ctx, id)
	}

	output, err := d.invoke(ctx, def, id, input)
	if err != nil {
		terr := AsError(err)
		d.logger.Warn("tool call failed",
			"tool", name,
			"code", terr.Code,
			"error", err,
		)
		metrics.ToolCallsTotal.WithLabelValues(name, string(terr.Code)).Inc()
		return nil, terr
	}

	metrics.ToolCallsTotal.WithLabelValues(name, "ok").Inc()
	return output, nil
}

// invoke runs the handler, retrying idempotent reads on transient store
// contention. Writes run exactly once: a blind retry of a write could
// place a duplicate order or review.
func (d *Dispatcher) invoke(ctx context.Context, def *Definition, id *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	if !def.ReadOnly {
		return def.Handler(ctx, id, input)
	}

	var lastErr error
	for attempt := 0; attempt <= maxReadRetries; attempt++ {
		if attempt > 0 {
			metrics.StoreRetriesTotal.Inc()
			select {
			case <-time.After(retryBackoffBase << (attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		output, err := def.Handler(ctx, id, input)
		if err == nil {
			return output, nil
		}
		if !store.Retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// Registry exposes the underlying registry for tool discovery.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}
