// Package orderbook implements the orderbook-depth venue model: impact is a
// monotonic step function of trade size against the thinner side of the book,
// and fees tier down with volume the way maker rebates do.
package orderbook

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/market"
	"github.com/hxuan190/dex-router/internal/venues"
)

const (
	VenueName = "Floeberg"

	minTradeUSD      = 500
	impactCapPercent = 2.5
)

type bookDepth struct {
	BidDepthUSD  float64
	AskDepthUSD  float64
	Has24hVolume bool
}

var books = map[string]bookDepth{
	"ckBTC-ckUSDC": {BidDepthUSD: 2500000, AskDepthUSD: 2300000, Has24hVolume: true},
	"ckETH-ckUSDC": {BidDepthUSD: 1800000, AskDepthUSD: 1600000, Has24hVolume: true},
	"ICP-ckUSDC":   {BidDepthUSD: 1200000, AskDepthUSD: 1000000, Has24hVolume: true},
	"ckBTC-ICP":    {BidDepthUSD: 1500000, AskDepthUSD: 1400000, Has24hVolume: true},
	"ckBTC-ckETH":  {BidDepthUSD: 900000, AskDepthUSD: 850000, Has24hVolume: true},
	// Listed but dead: book exists, no trades in 24h.
	"ckUSDC-ckUSDT": {BidDepthUSD: 120000, AskDepthUSD: 110000, Has24hVolume: false},
}

// Provider quotes against the simulated book depth tables.
type Provider struct {
	available venues.AvailabilityFunc
}

func New() *Provider {
	return &Provider{available: venues.AlwaysAvailable}
}

func (p *Provider) Name() string { return VenueName }

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

	book, ok := market.LookupPair(books, fromAsset, toAsset)
	if !ok {
		return domain.ErrorVenueQuote(VenueName, domain.ErrUnsupportedPair(VenueName, fromAsset, toAsset)), nil
	}
	if !book.Has24hVolume || book.BidDepthUSD <= 0 || book.AskDepthUSD <= 0 {
		return domain.ErrorVenueQuote(VenueName,
			domain.ErrNoLiquidityData(fmt.Sprintf("%s book for %s/%s has no recent volume", VenueName, fromAsset, toAsset))), nil
	}

	tradeUSD, _ := market.USDValue(amount, fromAsset)
	if tradeUSD < minTradeUSD {
		return domain.ErrorVenueQuote(VenueName,
			domain.ErrNoLiquidityData(fmt.Sprintf("trade below %s minimum size of $%d", VenueName, minTradeUSD))), nil
	}

	// Settlement time depends on book state, so no structured estimate:
	// EstimatedSeconds stays 0 and the scorer rates the qualitative label.
	return &domain.VenueQuote{
		VenueName:              VenueName,
		Path:                   []string{fromAsset, toAsset},
		PriceImpactPercent:     bookImpact(tradeUSD, book),
		FeePercent:             feeTier(tradeUSD),
		EstimatedExecutionTime: "On-chain orderbook execution",
		LiquidityUSD:           book.BidDepthUSD + book.AskDepthUSD,
		Rationale:              rationale(tradeUSD),
	}, nil
}

// bookImpact steps the impact up as the trade consumes a larger share of the
// thinner book side, capped at the ceiling where execution would walk the
// whole book.
func bookImpact(tradeUSD float64, book bookDepth) float64 {
	thin := book.BidDepthUSD
	if book.AskDepthUSD < thin {
		thin = book.AskDepthUSD
	}
	ratio := tradeUSD / thin
	switch {
	case ratio < 0.001:
		return 0.02
	case ratio < 0.01:
		return 0.3
	case ratio < 0.05:
		return 0.8
	case ratio < 0.2:
		return 1.5
	default:
		return impactCapPercent
	}
}

// feeTier mirrors a maker/taker volume schedule: larger trades pay less.
func feeTier(tradeUSD float64) float64 {
	switch {
	case tradeUSD > 100000:
		return 0.1
	case tradeUSD > 50000:
		return 0.15
	case tradeUSD > 10000:
		return 0.2
	default:
		return 0.25
	}
}

func rationale(tradeUSD float64) string {
	switch {
	case tradeUSD > 100000:
		return "Best execution for very large trades via deep orderbook"
	case tradeUSD > 25000:
		return "Minimal slippage through limit order execution"
	default:
		return "Professional orderbook trading with price discovery"
	}
}
