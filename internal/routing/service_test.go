package routing

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/hxuan190/dex-router/internal/config"
	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/venues"
)

type fakeProvider struct {
	name        string
	quote       *domain.VenueQuote
	err         error
	delay       time.Duration
	unavailable bool
	panics      bool
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) IsAvailable(context.Context) bool { return !p.unavailable }

func (p *fakeProvider) GetQuote(_ context.Context, from, to string, _ *big.Int) (*domain.VenueQuote, error) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.panics {
		panic("fake provider exploded")
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.quote != nil {
		return p.quote, nil
	}
	return &domain.VenueQuote{
		VenueName:              p.name,
		Path:                   []string{from, to},
		PriceImpactPercent:     0.5,
		FeePercent:             0.2,
		EstimatedExecutionTime: "1s",
		EstimatedSeconds:       1,
		LiquidityUSD:           100000,
	}, nil
}

func newTestService(timeoutMs int, providers ...venues.QuoteProvider) *Service {
	svc := &Service{
		registry: NewRegistry(),
		scorer:   NewScorer(domain.DefaultScoringWeights()),
		perf:     NewPerformanceMetrics(),
		conf:     &config.RoutingConfig{QuoteTimeoutMs: timeoutMs},
	}
	for _, p := range providers {
		svc.RegisterProvider(p)
	}
	return svc
}

func testRequest() domain.RouteRequest {
	return domain.RouteRequest{
		FromAsset: "ckBTC",
		ToAsset:   "ckUSDC",
		Amount:    big.NewInt(3000000),
		Urgency:   domain.UrgencyMedium,
	}
}

// TestGetBestRoutesCompleteness verifies every registered venue appears in the
// result exactly once, whether it succeeded, errored or was unavailable.
func TestGetBestRoutesCompleteness(t *testing.T) {
	svc := newTestService(3000,
		&fakeProvider{name: "Healthy"},
		&fakeProvider{name: "Down", unavailable: true},
		&fakeProvider{name: "Broken", panics: true},
	)

	quotes := svc.GetBestRoutes(context.Background(), testRequest())

	if len(quotes) != 3 {
		t.Fatalf("got %d quotes, want 3", len(quotes))
	}
	byVenue := make(map[string]domain.Quote, len(quotes))
	for _, q := range quotes {
		byVenue[q.VenueName] = q
	}

	if healthy := byVenue["Healthy"]; healthy.Failed() {
		t.Errorf("healthy venue failed: %s", byVenue["Healthy"].ErrorDetail)
	}
	if byVenue["Down"].ErrorKind != string(domain.ErrKindVenueUnavailable) {
		t.Errorf("Down ErrorKind = %q, want venue_unavailable", byVenue["Down"].ErrorKind)
	}
	if byVenue["Broken"].ErrorKind != string(domain.ErrKindInternalFault) {
		t.Errorf("Broken ErrorKind = %q, want internal_fault", byVenue["Broken"].ErrorKind)
	}
	if quotes[0].VenueName != "Healthy" {
		t.Errorf("expected Healthy first, got %q", quotes[0].VenueName)
	}
}

// TestGetBestRoutesProviderError verifies a returned Go error becomes an
// internal-fault quote carrying the fault text.
func TestGetBestRoutesProviderError(t *testing.T) {
	svc := newTestService(3000, &fakeProvider{name: "Flaky", err: context.DeadlineExceeded})

	quotes := svc.GetBestRoutes(context.Background(), testRequest())

	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(quotes))
	}
	if quotes[0].ErrorKind != string(domain.ErrKindInternalFault) {
		t.Errorf("ErrorKind = %q, want internal_fault", quotes[0].ErrorKind)
	}
}

// TestGetBestRoutesEmptyRegistry verifies an empty venue set yields an empty
// slice, not an error.
func TestGetBestRoutesEmptyRegistry(t *testing.T) {
	svc := newTestService(3000)

	quotes := svc.GetBestRoutes(context.Background(), testRequest())
	if len(quotes) != 0 {
		t.Errorf("got %d quotes, want 0", len(quotes))
	}
}

// TestGetBestRoutesTimeoutBounded verifies a slow venue is replaced by a
// timeout quote and the call returns well before the venue would have.
func TestGetBestRoutesTimeoutBounded(t *testing.T) {
	svc := newTestService(50,
		&fakeProvider{name: "Fast"},
		&fakeProvider{name: "Stuck", delay: 2 * time.Second},
	)

	start := time.Now()
	quotes := svc.GetBestRoutes(context.Background(), testRequest())
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Fatalf("call took %v, timeout not enforced", elapsed)
	}
	byVenue := make(map[string]domain.Quote, len(quotes))
	for _, q := range quotes {
		byVenue[q.VenueName] = q
	}
	if byVenue["Stuck"].ErrorKind != string(domain.ErrKindTimeout) {
		t.Errorf("Stuck ErrorKind = %q, want timeout", byVenue["Stuck"].ErrorKind)
	}
	if fast := byVenue["Fast"]; fast.Failed() {
		t.Errorf("fast venue failed: %s", byVenue["Fast"].ErrorDetail)
	}

	snap := svc.PerformanceSnapshot()
	if snap.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1", snap.TotalRequests)
	}
	if snap.TotalTimeouts != 1 {
		t.Errorf("TotalTimeouts = %d, want 1", snap.TotalTimeouts)
	}
}

// TestGetBestRoutesSlippageFilter verifies the constraint stage inside the
// full pipeline.
func TestGetBestRoutesSlippageFilter(t *testing.T) {
	impacted := &fakeProvider{name: "Impacted", quote: &domain.VenueQuote{
		VenueName:          "Impacted",
		Path:               []string{"ckBTC", "ckUSDC"},
		PriceImpactPercent: 4.0,
		FeePercent:         0.1,
		EstimatedSeconds:   1,
		LiquidityUSD:       100000,
	}}
	svc := newTestService(3000, impacted, &fakeProvider{name: "Gentle"})

	req := testRequest()
	req.SlippageTolerancePercent = 1.0
	quotes := svc.GetBestRoutes(context.Background(), req)

	byVenue := make(map[string]domain.Quote, len(quotes))
	for _, q := range quotes {
		byVenue[q.VenueName] = q
	}
	if byVenue["Impacted"].ErrorKind != string(domain.ErrKindConstraintViolation) {
		t.Errorf("Impacted ErrorKind = %q, want constraint_violation", byVenue["Impacted"].ErrorKind)
	}
	if gentle := byVenue["Gentle"]; gentle.Failed() {
		t.Error("Gentle rejected despite low impact")
	}
}

// TestGetBestRoutesWeightsReRank verifies a weight update changes the ranking
// of subsequent requests.
func TestGetBestRoutesWeightsReRank(t *testing.T) {
	cheapSlow := &fakeProvider{name: "CheapSlow", quote: &domain.VenueQuote{
		VenueName:          "CheapSlow",
		Path:               []string{"ckBTC", "ckUSDC"},
		PriceImpactPercent: 0.1,
		FeePercent:         0.05,
		EstimatedSeconds:   12,
		LiquidityUSD:       100000,
	}}
	fastPricey := &fakeProvider{name: "FastPricey", quote: &domain.VenueQuote{
		VenueName:          "FastPricey",
		Path:               []string{"ckBTC", "ckUSDC"},
		PriceImpactPercent: 0.9,
		FeePercent:         0.4,
		EstimatedSeconds:   1,
		LiquidityUSD:       100000,
	}}
	svc := newTestService(3000, cheapSlow, fastPricey)

	quotes := svc.GetBestRoutes(context.Background(), testRequest())
	if quotes[0].VenueName != "CheapSlow" {
		t.Fatalf("default weights: expected CheapSlow first, got %q", quotes[0].VenueName)
	}

	zero := 0.0
	one := 1.0
	patch := domain.WeightsPatch{
		PriceImpact:    &zero,
		Fee:            &zero,
		Speed:          &one,
		LiquidityDepth: &zero,
		Availability:   &zero,
	}
	if err := svc.UpdateScoringWeights(patch); err != nil {
		t.Fatalf("UpdateScoringWeights: %v", err)
	}

	quotes = svc.GetBestRoutes(context.Background(), testRequest())
	if quotes[0].VenueName != "FastPricey" {
		t.Errorf("speed-only weights: expected FastPricey first, got %q", quotes[0].VenueName)
	}
}

// TestGetVenueQuote covers the diagnostic path for known and unknown venues.
func TestGetVenueQuote(t *testing.T) {
	svc := newTestService(3000, &fakeProvider{name: "Solo"})

	q := svc.GetVenueQuote(context.Background(), "Solo", "ckBTC", "ckUSDC", big.NewInt(3000000))
	if q.Failed() {
		t.Errorf("Solo quote failed: %s", q.ErrorDetail)
	}
	if q.Score <= 0 {
		t.Errorf("Solo quote score = %v, want > 0", q.Score)
	}

	q = svc.GetVenueQuote(context.Background(), "Ghost", "ckBTC", "ckUSDC", big.NewInt(3000000))
	if q.ErrorKind != string(domain.ErrKindVenueNotFound) {
		t.Errorf("Ghost ErrorKind = %q, want venue_not_found", q.ErrorKind)
	}
	if q.Score != 0 {
		t.Errorf("Ghost score = %v, want 0", q.Score)
	}
}

// TestGetVenueQuoteTimeout verifies the diagnostic path is bounded by the same
// timeout as the fan-out.
func TestGetVenueQuoteTimeout(t *testing.T) {
	svc := newTestService(50, &fakeProvider{name: "Stuck", delay: 2 * time.Second})

	start := time.Now()
	q := svc.GetVenueQuote(context.Background(), "Stuck", "ckBTC", "ckUSDC", big.NewInt(3000000))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("diagnostic call took %v, timeout not enforced", elapsed)
	}
	if q.ErrorKind != string(domain.ErrKindTimeout) {
		t.Errorf("ErrorKind = %q, want timeout", q.ErrorKind)
	}
}

// TestStatus verifies the status report reflects the live registry.
func TestStatus(t *testing.T) {
	svc := newTestService(3000, &fakeProvider{name: "A"}, &fakeProvider{name: "B"})

	st := svc.Status()
	if len(st.ActiveVenues) != 2 {
		t.Errorf("ActiveVenues = %v, want 2 entries", st.ActiveVenues)
	}
	if st.QuoteTimeoutMs != 3000 {
		t.Errorf("QuoteTimeoutMs = %d, want 3000", st.QuoteTimeoutMs)
	}

	svc.DeregisterProvider("A")
	if st = svc.Status(); len(st.ActiveVenues) != 1 || st.ActiveVenues[0] != "B" {
		t.Errorf("ActiveVenues after deregister = %v, want [B]", st.ActiveVenues)
	}
}
