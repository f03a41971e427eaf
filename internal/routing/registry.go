package routing

import (
	"sync"

	"github.com/hxuan190/dex-router/internal/venues"
)

// Registry holds the active quote providers in stable insertion order. The
// order defines per-request iteration order, which in turn makes equal-score
// tie-breaks deterministic.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	providers map[string]venues.QuoteProvider
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]venues.QuoteProvider),
	}
}

// Register adds a provider under its venue name. Registering a name twice is
// last-write-wins and keeps the original position, so a provider can be
// hot-swapped without disturbing iteration order.
func (r *Registry) Register(p venues.QuoteProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
}

// Deregister removes a provider; unknown names are a no-op.
func (r *Registry) Deregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[name]; !exists {
		return
	}
	delete(r.providers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (venues.QuoteProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the venue names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Snapshot returns the providers in insertion order. Each aggregation call
// takes one snapshot up front so concurrent register calls cannot change the
// venue set mid-request.
func (r *Registry) Snapshot() []venues.QuoteProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]venues.QuoteProvider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
