package routing

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/venues"
)

// fanOutResult pairs a venue's quote with whether its task hit the deadline.
type fanOutResult struct {
	quote    *domain.VenueQuote
	timedOut bool
}

// fanOut launches one bounded quote task per provider and waits for all of
// them to settle. The returned slice has exactly one entry per provider, in
// provider order, regardless of how many venues fail.
func fanOut(ctx context.Context, providers []venues.QuoteProvider, req domain.RouteRequest, timeout time.Duration) []fanOutResult {
	results := make([]fanOutResult, len(providers))
	done := make(chan struct{}, len(providers))

	for i, p := range providers {
		go func(i int, p venues.QuoteProvider) {
			results[i] = boundedQuote(ctx, p, req.FromAsset, req.ToAsset, req.Amount, timeout)
			done <- struct{}{}
		}(i, p)
	}
	for range providers {
		<-done
	}
	return results
}

// boundedQuote races one provider call against the timeout. This is a race,
// not a cancellation: providers have no cancellation hook, so a late result
// is simply ignored while the goroutine drains into a buffered channel.
func boundedQuote(ctx context.Context, p venues.QuoteProvider, fromAsset, toAsset string, amount *big.Int, timeout time.Duration) fanOutResult {
	name := p.Name()
	ch := make(chan *domain.VenueQuote, 1)

	go func() {
		ch <- safeQuote(ctx, p, fromAsset, toAsset, amount)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case vq := <-ch:
		return fanOutResult{quote: vq}
	case <-timer.C:
		log.Warn().Str("venue", name).Dur("timeout", timeout).Msg("[routing] venue quote timed out")
		return fanOutResult{
			quote:    domain.ErrorVenueQuote(name, domain.ErrTimeout(timeout.Milliseconds())),
			timedOut: true,
		}
	}
}

// safeQuote runs the availability check and quote call, converting thrown
// faults (returned errors and panics) into in-band error quotes. A failing
// venue must never abort the whole request.
func safeQuote(ctx context.Context, p venues.QuoteProvider, fromAsset, toAsset string, amount *big.Int) (vq *domain.VenueQuote) {
	name := p.Name()
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("venue", name).Interface("panic", rec).Msg("[routing] venue provider panicked")
			vq = domain.ErrorVenueQuote(name, domain.ErrInternalFault(fmt.Sprintf("quote failed: %v", rec)))
		}
	}()

	if !p.IsAvailable(ctx) {
		return domain.ErrorVenueQuote(name, domain.ErrVenueUnavailable(name))
	}

	q, err := p.GetQuote(ctx, fromAsset, toAsset, amount)
	if err != nil {
		return domain.ErrorVenueQuote(name, domain.ErrInternalFault("quote failed: "+err.Error()))
	}
	if q == nil {
		return domain.ErrorVenueQuote(name, domain.ErrInternalFault("provider returned no quote"))
	}
	return q
}
