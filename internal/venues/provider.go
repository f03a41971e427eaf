// Package venues defines the quote provider capability and shared helpers for
// the reference venue implementations. This interface is the seam where live
// DEX integrations replace the stub pricing models.
package venues

import (
	"context"
	"math/big"
	"math/rand"
	"sync"

	"github.com/hxuan190/dex-router/internal/domain"
)

// QuoteProvider is the contract every venue implements.
//
// GetQuote reports business failures (unsupported pair, missing data, bad
// amount) in-band via VenueQuote.Err and reserves the Go error for genuine
// faults; the aggregator converts those, and panics, into internal-fault
// quotes so one broken venue can never abort a request.
type QuoteProvider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	GetQuote(ctx context.Context, fromAsset, toAsset string, amount *big.Int) (*domain.VenueQuote, error)
}

// AvailabilityFunc lets tests and operators override a venue's liveness
// check deterministically.
type AvailabilityFunc func() bool

// AlwaysAvailable is the default liveness source.
func AlwaysAvailable() bool { return true }

// SimulatedUptime returns an availability source that is up with probability
// uptime, drawn from the given seeded generator. The generator is guarded so
// concurrent fan-out calls stay race-free.
func SimulatedUptime(uptime float64, rng *rand.Rand) AvailabilityFunc {
	var mu sync.Mutex
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		return rng.Float64() < uptime
	}
}
