package venues

import (
	"math/big"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/market"
)

// ValidateTrade applies the checks every provider performs identically before
// pricing: positive amount and known assets on both legs. Returns nil when
// the trade is well formed.
func ValidateTrade(fromAsset, toAsset string, amount *big.Int) *domain.QuoteError {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInternalFault("invalid amount: must be positive")
	}
	if !market.Known(fromAsset) || !market.Known(toAsset) {
		return domain.ErrNoExchangeRate(fromAsset, toAsset)
	}
	return nil
}
