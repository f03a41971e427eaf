package routing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hxuan190/dex-router/internal/domain"
)

// Scorer is the single authority for quote scores and badges. Providers hand
// over raw metrics only; everything comparative happens here.
type Scorer struct {
	mu      sync.RWMutex
	weights domain.ScoringWeights
}

func NewScorer(weights domain.ScoringWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Weights returns the current weight configuration.
func (s *Scorer) Weights() domain.ScoringWeights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}

// UpdateWeights merges a partial patch; unspecified fields keep their value.
func (s *Scorer) UpdateWeights(patch domain.WeightsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return patch.Apply(&s.weights)
}

// SetWeights replaces the full weight set (used when loading persisted state).
func (s *Scorer) SetWeights(w domain.ScoringWeights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = w
}

// ScoreBatch scores every quote in place, assigns badges across the non-error
// subset, and sorts descending by score. The sort is stable so equal scores
// keep registry order.
func (s *Scorer) ScoreBatch(quotes []domain.Quote) {
	weights := s.Weights()

	for i := range quotes {
		q := &quotes[i]
		if q.Failed() {
			q.Score = 0
			q.Badge = ""
			continue
		}
		q.Score = scoreQuote(q, weights)
	}

	assignBadges(quotes)
	SortByScore(quotes)
}

// SortByScore orders quotes descending by score, stable.
func SortByScore(quotes []domain.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Score > quotes[j].Score
	})
}

// scoreQuote normalizes each factor to 0-100 and combines them under the
// configured weights, rounded to two decimals.
func scoreQuote(q *domain.Quote, w domain.ScoringWeights) float64 {
	priceImpactScore := math.Max(0, 100-q.PriceImpactPercent*100)
	feeScore := math.Max(0, 100-q.FeePercent*100)
	speedScore := SpeedScore(q.EstimatedSeconds, q.EstimatedExecutionTime)
	liquidityScore := LiquidityScore(q.LiquidityUSD)
	// Error quotes never reach this branch, so availability is full marks.
	availabilityScore := 100.0

	total := priceImpactScore*w.PriceImpact +
		feeScore*w.Fee +
		speedScore*w.Speed +
		liquidityScore*w.LiquidityDepth +
		availabilityScore*w.Availability

	return round2(total)
}

// SpeedScore converts a latency estimate into a 0-100 score. The structured
// estimate wins when present; the display text heuristics remain as fallback
// for venues that only report a qualitative label.
func SpeedScore(estimatedSeconds float64, displayText string) float64 {
	if estimatedSeconds > 0 {
		return math.Max(0, 100-estimatedSeconds*10)
	}

	text := strings.ToLower(displayText)
	switch {
	case strings.Contains(text, "orderbook"):
		return 85
	case strings.Contains(text, "instant"):
		return 100
	case strings.Contains(text, "fast"):
		return 90
	}
	if secs, ok := parseSeconds(text); ok {
		return math.Max(0, 100-secs*10)
	}
	return 75
}

// parseSeconds accepts "1.5s" or a bare number.
func parseSeconds(text string) (float64, bool) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(text), "s")
	secs, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return secs, true
}

// LiquidityScore maps USD depth onto 0-100; $1M depth saturates the scale.
func LiquidityScore(liquidityUSD float64) float64 {
	return math.Min(100, liquidityUSD/10000)
}

// assignBadges compares the non-error quotes of this batch against each other
// and hands out at most one badge per quote. Ties go to the quote evaluated
// first, which is deterministic because batch order follows registry order.
func assignBadges(quotes []domain.Quote) {
	minImpact := math.Inf(1)
	minFee := math.Inf(1)
	maxLiquidity := math.Inf(-1)
	valid := 0
	for i := range quotes {
		if quotes[i].Failed() {
			continue
		}
		valid++
		minImpact = math.Min(minImpact, quotes[i].PriceImpactPercent)
		minFee = math.Min(minFee, quotes[i].FeePercent)
		maxLiquidity = math.Max(maxLiquidity, quotes[i].LiquidityUSD)
	}
	if valid == 0 {
		return
	}

	for i := range quotes {
		q := &quotes[i]
		if q.Failed() {
			continue
		}
		hasMinImpact := q.PriceImpactPercent == minImpact
		hasMinFee := q.FeePercent == minFee

		switch {
		case hasMinImpact && hasMinFee:
			q.Badge = domain.BadgeRecommended
			q.Rationale = "Lowest slippage and lowest fee in this batch"
		case hasMinFee:
			q.Badge = domain.BadgeCheapest
			q.Rationale = fmt.Sprintf("Lowest fee at %.2f%%", q.FeePercent)
		case hasMinImpact:
			q.Badge = domain.BadgeCheapest
			q.Rationale = fmt.Sprintf("Lowest price impact at %.2f%%", q.PriceImpactPercent)
		case q.LiquidityUSD == maxLiquidity:
			q.Badge = domain.BadgeAdvanced
			q.Rationale = "Deepest liquidity provides reliable execution"
		case q.EstimatedSeconds > 0 && q.EstimatedSeconds < 2:
			q.Badge = domain.BadgeFastest
			q.Rationale = "Sub-2-second execution"
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
