package ammpool

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/market"
)

// TestDirectPairQuote checks the happy path on a pair with a direct pool.
func TestDirectPairQuote(t *testing.T) {
	p := New()
	amount := big.NewInt(3000000) // 0.03 ckBTC, ~$3464

	q, err := p.GetQuote(context.Background(), "ckBTC", "ICP", amount)
	if err != nil {
		t.Fatalf("GetQuote returned error: %v", err)
	}
	if q.Err != nil {
		t.Fatalf("quote carries error: %v", q.Err)
	}

	if len(q.Path) != 2 {
		t.Errorf("Path = %v, want 2 hops for direct pair", q.Path)
	}
	if q.FeePercent != 0.2 {
		t.Errorf("FeePercent = %v, want 0.2", q.FeePercent)
	}
	if q.EstimatedSeconds != 0.8 {
		t.Errorf("EstimatedSeconds = %v, want 0.8", q.EstimatedSeconds)
	}

	tradeUSD, _ := market.USDValue(amount, "ckBTC")
	want := math.Max(0.1, 0.95*math.Sqrt(tradeUSD/3000.0))
	if math.Abs(q.PriceImpactPercent-want) > 1e-9 {
		t.Errorf("PriceImpactPercent = %v, want %v", q.PriceImpactPercent, want)
	}
}

// TestHubRoutedQuote verifies pairs without a direct pool route through the
// hub asset with the extra-hop impact penalty.
func TestHubRoutedQuote(t *testing.T) {
	p := New()
	amount := big.NewInt(3000000) // 0.03 ckBTC

	q, err := p.GetQuote(context.Background(), "ckBTC", "ckUSDC", amount)
	if err != nil {
		t.Fatalf("GetQuote returned error: %v", err)
	}
	if q.Err != nil {
		t.Fatalf("quote carries error: %v", q.Err)
	}

	wantPath := []string{"ckBTC", "ICP", "ckUSDC"}
	if len(q.Path) != 3 {
		t.Fatalf("Path = %v, want %v", q.Path, wantPath)
	}
	for i := range wantPath {
		if q.Path[i] != wantPath[i] {
			t.Errorf("Path[%d] = %q, want %q", i, q.Path[i], wantPath[i])
		}
	}

	tradeUSD, _ := market.USDValue(amount, "ckBTC")
	want := math.Max(0.1, 3.85*math.Sqrt(tradeUSD/3462.64)) * 1.2
	if math.Abs(q.PriceImpactPercent-want) > 1e-9 {
		t.Errorf("PriceImpactPercent = %v, want %v", q.PriceImpactPercent, want)
	}
}

// TestImpactFloor verifies tiny trades bottom out at the minimum impact.
func TestImpactFloor(t *testing.T) {
	p := New()
	amount := big.NewInt(100000000) // 1 ICP = $12

	q, err := p.GetQuote(context.Background(), "ICP", "ckUSDC", amount)
	if err != nil {
		t.Fatalf("GetQuote returned error: %v", err)
	}
	if q.Err != nil {
		t.Fatalf("quote carries error: %v", q.Err)
	}
	if q.PriceImpactPercent != 0.1 {
		t.Errorf("PriceImpactPercent = %v, want floor 0.1", q.PriceImpactPercent)
	}
}

// TestQuoteErrors covers the in-band error cases.
func TestQuoteErrors(t *testing.T) {
	p := New()
	tests := []struct {
		name   string
		from   string
		to     string
		amount *big.Int
		kind   domain.QuoteErrorKind
	}{
		{name: "unseen pair", from: "ckUSDC", to: "ckUSDT", amount: big.NewInt(1000000), kind: domain.ErrKindNoLiquidityData},
		{name: "unknown asset", from: "DOGE", to: "ckUSDC", amount: big.NewInt(1000000), kind: domain.ErrKindNoExchangeRate},
		{name: "zero amount", from: "ckBTC", to: "ICP", amount: big.NewInt(0), kind: domain.ErrKindInternalFault},
		{name: "nil amount", from: "ckBTC", to: "ICP", amount: nil, kind: domain.ErrKindInternalFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := p.GetQuote(context.Background(), tt.from, tt.to, tt.amount)
			if err != nil {
				t.Fatalf("GetQuote returned error: %v", err)
			}
			if q.Err == nil {
				t.Fatal("expected in-band quote error")
			}
			if q.Err.Kind != tt.kind {
				t.Errorf("Err.Kind = %q, want %q", q.Err.Kind, tt.kind)
			}
		})
	}
}

// TestAvailabilityInjection verifies the injectable liveness source and the
// nil reset.
func TestAvailabilityInjection(t *testing.T) {
	p := New()

	p.SetAvailabilityFunc(func() bool { return false })
	if p.IsAvailable(context.Background()) {
		t.Error("expected unavailable after injection")
	}

	p.SetAvailabilityFunc(nil)
	if !p.IsAvailable(context.Background()) {
		t.Error("expected available after reset")
	}
}
