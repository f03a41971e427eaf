package domain

import (
	"math/big"
)

// Badge is a qualitative, mutually exclusive label explaining why a quote
// stands out relative to the other quotes in the same batch.
type Badge string

const (
	BadgeRecommended Badge = "RECOMMENDED"
	BadgeCheapest    Badge = "CHEAPEST"
	BadgeFastest     Badge = "FASTEST"
	BadgeAdvanced    Badge = "ADVANCED"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type Preference string

const (
	PreferenceFastest    Preference = "fastest"
	PreferenceLowestCost Preference = "lowest_cost"
	PreferenceMostLiquid Preference = "most_liquid"
)

// VenueQuote is the raw pricing result a venue provider returns. It carries
// no score and no badge on purpose: scoring is the engine's job, and keeping
// the fields off this type means a provider cannot pre-rank itself.
type VenueQuote struct {
	VenueName string
	// Path is the hop sequence: 2 assets for a direct pair, 3+ when the
	// venue routes through a hub asset.
	Path               []string
	PriceImpactPercent float64
	FeePercent         float64
	// EstimatedExecutionTime is display text ("1.5s", "On-chain orderbook
	// execution"). EstimatedSeconds is the structured estimate used for
	// scoring; 0 means unknown and the scorer falls back to text heuristics.
	EstimatedExecutionTime string
	EstimatedSeconds       float64
	LiquidityUSD           float64
	Rationale              string
	Err                    *QuoteError
}

// ErrorVenueQuote builds the uniform failure quote every provider and the
// engine use. Impact and fee stay at zero so downstream constraint checks
// never re-trip on an already failed quote.
func ErrorVenueQuote(venueName string, err *QuoteError) *VenueQuote {
	return &VenueQuote{
		VenueName:              venueName,
		Path:                   []string{},
		EstimatedExecutionTime: "N/A",
		Rationale:              venueName + " unavailable",
		Err:                    err,
	}
}

// Quote is one venue's scored answer to a route request, or a structured
// failure standing in its place. The engine guarantees one Quote per
// registered venue per request.
type Quote struct {
	VenueName              string   `json:"venueName"`
	Path                   []string `json:"path"`
	PriceImpactPercent     float64  `json:"priceImpactPercent"`
	FeePercent             float64  `json:"feePercent"`
	EstimatedExecutionTime string   `json:"estimatedExecutionTime"`
	EstimatedSeconds       float64  `json:"estimatedSeconds,omitempty"`
	LiquidityUSD           float64  `json:"liquidityUsd"`
	Score                  float64  `json:"score"`
	Badge                  Badge    `json:"badge,omitempty"`
	Rationale              string   `json:"rationale"`
	ErrorKind              string   `json:"errorKind,omitempty"`
	ErrorDetail            string   `json:"errorDetail,omitempty"`
}

// FromVenueQuote lifts a raw venue quote into the scored result shape.
// Score and badge start at their zero values; the scoring engine fills them.
func FromVenueQuote(vq *VenueQuote) Quote {
	q := Quote{
		VenueName:              vq.VenueName,
		Path:                   vq.Path,
		PriceImpactPercent:     vq.PriceImpactPercent,
		FeePercent:             vq.FeePercent,
		EstimatedExecutionTime: vq.EstimatedExecutionTime,
		EstimatedSeconds:       vq.EstimatedSeconds,
		LiquidityUSD:           vq.LiquidityUSD,
		Rationale:              vq.Rationale,
	}
	if vq.Err != nil {
		q.ErrorKind = string(vq.Err.Kind)
		q.ErrorDetail = vq.Err.Message
	}
	return q
}

// Failed reports whether this quote represents a venue failure rather than a
// usable price.
func (q *Quote) Failed() bool {
	return q.ErrorDetail != ""
}

// RouteRequest is the caller's trade intent. Amount is in the from-asset's
// smallest denomination.
type RouteRequest struct {
	FromAsset string
	ToAsset   string
	Amount    *big.Int
	// Urgency defaults to medium when empty.
	Urgency    Urgency
	Preference Preference
	// SlippageTolerancePercent rejects quotes whose price impact exceeds it.
	// 0 means no constraint.
	SlippageTolerancePercent float64
}

// ScoringWeights control the weighted combination of quote factors.
// Conventionally they sum to 1.0 but that is not enforced.
type ScoringWeights struct {
	PriceImpact    float64 `json:"priceImpact"`
	Fee            float64 `json:"fee"`
	Speed          float64 `json:"speed"`
	LiquidityDepth float64 `json:"liquidityDepth"`
	Availability   float64 `json:"availability"`
}

// DefaultScoringWeights favors price and direct cost, with speed next.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		PriceImpact:    0.35,
		Fee:            0.35,
		Speed:          0.20,
		LiquidityDepth: 0.05,
		Availability:   0.05,
	}
}

// WeightsPatch is a partial weights update; nil fields keep their prior value.
type WeightsPatch struct {
	PriceImpact    *float64 `json:"priceImpact,omitempty"`
	Fee            *float64 `json:"fee,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
	LiquidityDepth *float64 `json:"liquidityDepth,omitempty"`
	Availability   *float64 `json:"availability,omitempty"`
}

// Apply merges the patch into w, rejecting negative weights. The target is
// untouched when any patched field is invalid.
func (p *WeightsPatch) Apply(w *ScoringWeights) error {
	fields := []struct {
		src *float64
		dst *float64
	}{
		{p.PriceImpact, &w.PriceImpact},
		{p.Fee, &w.Fee},
		{p.Speed, &w.Speed},
		{p.LiquidityDepth, &w.LiquidityDepth},
		{p.Availability, &w.Availability},
	}
	for _, f := range fields {
		if f.src != nil && *f.src < 0 {
			return ErrInvalidWeights
		}
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return nil
}
