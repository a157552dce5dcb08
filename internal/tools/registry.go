// ABOUTME: Static registry of tool definitions for the gateway
// ABOUTME: Maps tool names to schemas, access markers, and handlers

package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/2389/commerce-gateway/internal/auth"
)

// Access marks whether a tool requires an authenticated caller.
// Enforced by the dispatcher, never by convention inside handlers.
type Access int

const (
	// AccessPublic tools run without any caller identity.
	AccessPublic Access = iota
	// AccessCustomer tools require a resolved customer identity, which
	// the dispatcher guarantees before the handler runs.
	AccessCustomer
)

// Handler executes a tool call. For AccessCustomer tools, id is non-nil;
// for AccessPublic tools it is always nil.
type Handler func(ctx context.Context, id *auth.Identity, input json.RawMessage) (json.RawMessage, error)

// Definition describes a single tool: its discovery metadata, access
// requirement, and handler. InputSchema is emitted verbatim to MCP
// clients; the handler decodes into its own typed input struct.
type Definition struct {
	Name        string
	Description string
	InputSchema string // JSON Schema for the input, as a JSON string
	Access      Access
	ReadOnly    bool // idempotent reads may be retried on transient store failures
	Handler     Handler
}

// Registry is a static name -> Definition mapping, read-only after Build.
type Registry struct {
	tools map[string]*Definition
	names []string // sorted, for stable listing
}

// NewRegistry builds a registry from the given definitions.
func NewRegistry(defs []*Definition) *Registry {
	tools := make(map[string]*Definition, len(defs))
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		tools[def.Name] = def
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return &Registry{tools: tools, names: names}
}

// Get returns the definition for name, or an unknown_tool error.
func (r *Registry) Get(name string) (*Definition, *Error) {
	def, ok := r.tools[name]
	if !ok {
		return nil, Errorf(CodeUnknownTool, "unknown tool %q", name)
	}
	return def, nil
}

// List returns all definitions in name order. When publicOnly is set,
// tools requiring authentication are omitted.
func (r *Registry) List(publicOnly bool) []*Definition {
	defs := make([]*Definition, 0, len(r.names))
	for _, name := range r.names {
		def := r.tools[name]
		if publicOnly && def.Access != AccessPublic {
			continue
		}
		defs = append(defs, def)
	}
	return defs
}
