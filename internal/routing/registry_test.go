package routing

import (
	"context"
	"math/big"
	"testing"

	"github.com/hxuan190/dex-router/internal/domain"
)

type namedProvider struct {
	name string
	tag  string
}

func (p *namedProvider) Name() string { return p.name }

func (p *namedProvider) IsAvailable(context.Context) bool { return true }

func (p *namedProvider) GetQuote(_ context.Context, from, to string, _ *big.Int) (*domain.VenueQuote, error) {
	return &domain.VenueQuote{VenueName: p.name, Path: []string{from, to}}, nil
}

// TestRegistryInsertionOrder verifies Names and Snapshot follow registration
// order.
func TestRegistryInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedProvider{name: "B"})
	r.Register(&namedProvider{name: "A"})
	r.Register(&namedProvider{name: "C"})

	want := []string{"B", "A", "C"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestRegistryHotSwap verifies re-registering a name replaces the provider
// without disturbing iteration order.
func TestRegistryHotSwap(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedProvider{name: "A", tag: "old"})
	r.Register(&namedProvider{name: "B"})
	r.Register(&namedProvider{name: "A", tag: "new"})

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	names := r.Names()
	if names[0] != "A" || names[1] != "B" {
		t.Errorf("order after hot-swap = %v, want [A B]", names)
	}

	p, ok := r.Get("A")
	if !ok {
		t.Fatal("Get(A) missing after hot-swap")
	}
	if p.(*namedProvider).tag != "new" {
		t.Errorf("Get(A) tag = %q, want new", p.(*namedProvider).tag)
	}
}

// TestRegistryDeregister covers removal and the unknown-name no-op.
func TestRegistryDeregister(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedProvider{name: "A"})
	r.Register(&namedProvider{name: "B"})

	r.Deregister("A")
	r.Deregister("missing")

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if _, ok := r.Get("A"); ok {
		t.Error("Get(A) still present after Deregister")
	}
	if names := r.Names(); len(names) != 1 || names[0] != "B" {
		t.Errorf("Names() = %v, want [B]", names)
	}
}

// TestRegistrySnapshotIsolation verifies a snapshot is unaffected by later
// registry mutations.
func TestRegistrySnapshotIsolation(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedProvider{name: "A"})

	snap := r.Snapshot()
	r.Register(&namedProvider{name: "B"})
	r.Deregister("A")

	if len(snap) != 1 || snap[0].Name() != "A" {
		t.Errorf("snapshot changed after mutation: %v", snap)
	}
}
