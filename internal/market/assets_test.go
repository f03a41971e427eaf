package market

import (
	"math"
	"math/big"
	"testing"
)

// TestUSDValue checks decimal scaling across the asset table.
func TestUSDValue(t *testing.T) {
	tests := []struct {
		name   string
		amount *big.Int
		symbol string
		want   float64
		ok     bool
	}{
		{name: "one ckBTC", amount: big.NewInt(100000000), symbol: "ckBTC", want: 115474, ok: true},
		{name: "one ICP", amount: big.NewInt(100000000), symbol: "ICP", want: 12, ok: true},
		{name: "one ckUSDC", amount: big.NewInt(1000000), symbol: "ckUSDC", want: 1, ok: true},
		{name: "one ckETH", amount: new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), symbol: "ckETH", want: 3200, ok: true},
		{name: "unknown asset", amount: big.NewInt(1), symbol: "DOGE", want: 0, ok: false},
		{name: "nil amount", amount: nil, symbol: "ICP", want: 0, ok: true},
		{name: "zero amount", amount: big.NewInt(0), symbol: "ICP", want: 0, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := USDValue(tt.amount, tt.symbol)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("USDValue = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLookupPair verifies both directions resolve to the same table entry.
func TestLookupPair(t *testing.T) {
	table := map[string]int{"ckBTC-ckUSDC": 7}

	if v, ok := LookupPair(table, "ckBTC", "ckUSDC"); !ok || v != 7 {
		t.Errorf("forward lookup = %v, %v", v, ok)
	}
	if v, ok := LookupPair(table, "ckUSDC", "ckBTC"); !ok || v != 7 {
		t.Errorf("reverse lookup = %v, %v", v, ok)
	}
	if _, ok := LookupPair(table, "ckBTC", "ckETH"); ok {
		t.Error("missing pair resolved")
	}
}
