// Package ammpool implements the constant-depth AMM venue model. Price impact
// is extrapolated from empirically fitted reference points per pair: impact
// scales with the square root of trade size relative to the reference trade.
package ammpool

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/market"
	"github.com/hxuan190/dex-router/internal/venues"
)

const (
	VenueName = "GlacierSwap"

	baseFeePercent  = 0.2
	execSeconds     = 0.8
	minImpact       = 0.1
	hubRoutePenalty = 1.2
)

// impactPoint is one fitted observation: the measured impact for a reference
// trade size on this pair.
type impactPoint struct {
	ReferenceTradeUSD float64
	ReferenceImpact   float64
}

var fittedImpact = map[string]impactPoint{
	"ckBTC-ckUSDC": {ReferenceTradeUSD: 3462.64, ReferenceImpact: 3.85},
	"ckBTC-ckETH":  {ReferenceTradeUSD: 3462.64, ReferenceImpact: 4.08},
	"ckBTC-ckUSDT": {ReferenceTradeUSD: 3462.64, ReferenceImpact: 1.67},
	"ckETH-ckUSDC": {ReferenceTradeUSD: 223.20, ReferenceImpact: 0.61},
	"ckETH-ckUSDT": {ReferenceTradeUSD: 223.20, ReferenceImpact: 0.47},
	"ICP-ckBTC":    {ReferenceTradeUSD: 3000.00, ReferenceImpact: 0.95},
	"ICP-ckETH":    {ReferenceTradeUSD: 3000.00, ReferenceImpact: 1.10},
	"ICP-ckUSDC":   {ReferenceTradeUSD: 3000.00, ReferenceImpact: 0.72},
}

var liquidityUSD = map[string]float64{
	"ckBTC-ICP":    950000,
	"ICP-ckUSDC":   420000,
	"ckETH-ICP":    600000,
	"ckUSDT-ICP":   380000,
	"ckBTC-ckUSDC": 250000,
	"ckETH-ckUSDC": 180000,
}

var directPairs = map[string]struct{}{
	"ckBTC-ICP":  {},
	"ckETH-ICP":  {},
	"ckUSDC-ICP": {},
	"ckUSDT-ICP": {},
}

// Provider quotes swaps against the fitted AMM curves. Availability is
// injectable so tests can pin it.
type Provider struct {
	available venues.AvailabilityFunc
}

func New() *Provider {
	return &Provider{available: venues.AlwaysAvailable}
}

func (p *Provider) Name() string { return VenueName }

// SetAvailabilityFunc overrides the liveness source; nil restores the default.
func (p *Provider) SetAvailabilityFunc(f venues.AvailabilityFunc) {
	if f == nil {
		f = venues.AlwaysAvailable
	}
	p.available = f
}

func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.available()
}

func (p *Provider) GetQuote(_ context.Context, fromAsset, toAsset string, amount *big.Int) (*domain.VenueQuote, error) {
	if qerr := venues.ValidateTrade(fromAsset, toAsset, amount); qerr != nil {
		return domain.ErrorVenueQuote(VenueName, qerr), nil
	}

	point, ok := market.LookupPair(fittedImpact, fromAsset, toAsset)
	if !ok {
		// No fitted curve for this pair means the pool is unseen; reject
		// rather than guess.
		return domain.ErrorVenueQuote(VenueName,
			domain.ErrNoLiquidityData(fmt.Sprintf("%s has no liquidity data for %s/%s", VenueName, fromAsset, toAsset))), nil
	}

	tradeUSD, _ := market.USDValue(amount, fromAsset)

	// Impact scales with sqrt of trade size relative to the fitted reference.
	scale := math.Sqrt(tradeUSD / point.ReferenceTradeUSD)
	impact := math.Max(minImpact, point.ReferenceImpact*scale)

	path := p.routePath(fromAsset, toAsset)
	if len(path) > 2 {
		impact *= hubRoutePenalty
	}

	liquidity, ok := market.LookupPair(liquidityUSD, fromAsset, toAsset)
	if !ok {
		liquidity = 100000
	}

	return &domain.VenueQuote{
		VenueName:              VenueName,
		Path:                   path,
		PriceImpactPercent:     impact,
		FeePercent:             baseFeePercent,
		EstimatedExecutionTime: "0.8s",
		EstimatedSeconds:       execSeconds,
		LiquidityUSD:           liquidity,
		Rationale:              "Fast execution with optimized AMM routing",
	}, nil
}

// routePath prefers the direct pool and falls back to hub routing, two hops
// maximum.
func (p *Provider) routePath(fromAsset, toAsset string) []string {
	if _, ok := market.LookupPair(directPairs, fromAsset, toAsset); ok {
		return []string{fromAsset, toAsset}
	}
	return []string{fromAsset, market.HubAsset, toAsset}
}
