// ABOUTME: Tests for the tool registry
// ABOUTME: Covers lookup, unknown-tool errors, and public-only listing

package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/2389/commerce-gateway/internal/auth"
)

func noopHandler(ctx context.Context, id *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{"success":true}`), nil
}

func testRegistry() *Registry {
	return NewRegistry([]*Definition{
		{Name: "zeta_public", Access: AccessPublic, ReadOnly: true, Handler: noopHandler},
		{Name: "alpha_public", Access: AccessPublic, ReadOnly: true, Handler: noopHandler},
		{Name: "beta_customer", Access: AccessCustomer, Handler: noopHandler},
	})
}

func TestRegistryGet(t *testing.T) {
	reg := testRegistry()

	def, terr := reg.Get("alpha_public")
	if terr != nil {
		t.Fatalf("Get returned error: %v", terr)
	}
	if def.Name != "alpha_public" {
		t.Errorf("got name %q, want alpha_public", def.Name)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := testRegistry()

	_, terr := reg.Get("no_such_tool")
	if terr == nil {
		t.Fatal("expected error for unknown tool")
	}
	if terr.Code != CodeUnknownTool {
		t.Errorf("got code %q, want %q", terr.Code, CodeUnknownTool)
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := testRegistry()

	defs := reg.List(false)
	if len(defs) != 3 {
		t.Fatalf("got %d definitions, want 3", len(defs))
	}
	want := []string{"alpha_public", "beta_customer", "zeta_public"}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, def.Name, want[i])
		}
	}
}

func TestRegistryListPublicOnly(t *testing.T) {
	reg := testRegistry()

	defs := reg.List(true)
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	for _, def := range defs {
		if def.Access != AccessPublic {
			t.Errorf("tool %q requires auth but appeared in public listing", def.Name)
		}
	}
}
