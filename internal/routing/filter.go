package routing

import (
	"github.com/hxuan190/dex-router/internal/domain"
)

// ApplySlippageLimit rejects quotes whose price impact exceeds the caller's
// tolerance, demoting them to zero-score error quotes instead of dropping
// them. Quotes that already failed are left untouched (their impact is zero
// and must not be overwritten with a different error). The operation is
// idempotent. Re-sorts after filtering.
func ApplySlippageLimit(quotes []domain.Quote, tolerancePercent float64) {
	if tolerancePercent <= 0 {
		return
	}
	for i := range quotes {
		q := &quotes[i]
		if q.Failed() {
			continue
		}
		if q.PriceImpactPercent > tolerancePercent {
			qerr := domain.ErrConstraintViolation(q.PriceImpactPercent, tolerancePercent)
			q.ErrorKind = string(qerr.Kind)
			q.ErrorDetail = qerr.Message
			q.Score = 0
			q.Badge = ""
		}
	}
	SortByScore(quotes)
}
