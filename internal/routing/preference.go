package routing

import (
	"github.com/hxuan190/dex-router/internal/domain"
)

const (
	urgencySpeedBoostFactor   = 0.3
	preferenceCostBoostFactor = 0.2
	preferenceLiqBoostFactor  = 0.2
)

// AdjustForPreferences applies the caller's urgency and preference as
// additive score boosts, then re-sorts. Boosts are cumulative when several
// conditions hold and are deliberately not clamped at 100: they adjust rank,
// not the 0-100 base scale. Failed quotes stay at zero.
func AdjustForPreferences(quotes []domain.Quote, req domain.RouteRequest) {
	boosted := false

	if req.Urgency == domain.UrgencyHigh {
		for i := range quotes {
			q := &quotes[i]
			if q.Failed() {
				continue
			}
			q.Score += SpeedScore(q.EstimatedSeconds, q.EstimatedExecutionTime) * urgencySpeedBoostFactor
		}
		boosted = true
	}

	switch req.Preference {
	case domain.PreferenceLowestCost:
		for i := range quotes {
			q := &quotes[i]
			if q.Failed() {
				continue
			}
			q.Score += (100 - q.FeePercent*100) * preferenceCostBoostFactor
		}
		boosted = true
	case domain.PreferenceMostLiquid:
		for i := range quotes {
			q := &quotes[i]
			if q.Failed() {
				continue
			}
			q.Score += LiquidityScore(q.LiquidityUSD) * preferenceLiqBoostFactor
		}
		boosted = true
	}

	if boosted {
		SortByScore(quotes)
	}
}
