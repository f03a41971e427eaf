package routing

import (
	"context"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/dex-router/internal/adapters/persistence"
	"github.com/hxuan190/dex-router/internal/config"
	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/metrics"
	"github.com/hxuan190/dex-router/internal/venues"
	"github.com/hxuan190/dex-router/internal/venues/ammpool"
	"github.com/hxuan190/dex-router/internal/venues/orderbook"
	"github.com/hxuan190/dex-router/internal/venues/simpleswap"
)

const ROUTING_SERVICE = "routing-service"

// Service is the aggregation engine: it fans a route request out to every
// registered venue, scores the answers centrally and returns one quote per
// venue, failures included.
type Service struct {
	container.BaseDIInstance

	registry *Registry
	scorer   *Scorer
	perf     *PerformanceMetrics
	storage  *persistence.Storage

	conf *config.RoutingConfig
}

func (svc *Service) ID() string {
	return ROUTING_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.conf = c.GetConfig(config.ROUTING_CONFIG_KEY).(*config.RoutingConfig)

	svc.registry = NewRegistry()
	svc.scorer = NewScorer(domain.DefaultScoringWeights())
	svc.perf = NewPerformanceMetrics()

	svc.RegisterProvider(ammpool.New())
	svc.RegisterProvider(orderbook.New())
	svc.RegisterProvider(simpleswap.New())

	return nil
}

func (svc *Service) Start() error {
	if !svc.conf.PersistenceEnabled {
		log.Info().Msg("[routingService] persistence disabled")
		return nil
	}

	storage, err := persistence.NewStorage(svc.conf.DBPath)
	if err != nil {
		return err
	}
	svc.storage = storage

	if w, ok, err := storage.LoadWeights(); err != nil {
		log.Error().Err(err).Msg("[routingService] failed to load persisted weights")
	} else if ok {
		svc.scorer.SetWeights(w)
		log.Info().Msg("[routingService] restored persisted scoring weights")
	}

	if p, ok, err := storage.LoadPerf(); err != nil {
		log.Error().Err(err).Msg("[routingService] failed to load persisted perf counters")
	} else if ok {
		svc.perf.Restore(p.TotalRequests, p.TotalTimeouts, p.AvgLatencyMs)
		log.Info().
			Uint64("total_requests", p.TotalRequests).
			Msg("[routingService] restored perf counters")
	}

	return nil
}

func (svc *Service) Stop() error {
	if svc.storage == nil {
		return nil
	}
	svc.persistState()
	return svc.storage.Close()
}

func (svc *Service) persistState() {
	if svc.storage == nil {
		return
	}
	if err := svc.storage.SaveWeights(svc.scorer.Weights()); err != nil {
		log.Error().Err(err).Msg("[routingService] failed to persist weights")
	}
	snap := svc.perf.Snapshot()
	if err := svc.storage.SavePerf(persistence.StoredPerf{
		TotalRequests: snap.TotalRequests,
		TotalTimeouts: snap.TotalTimeouts,
		AvgLatencyMs:  snap.AvgLatencyMs,
	}); err != nil {
		log.Error().Err(err).Msg("[routingService] failed to persist perf counters")
	}
}

// RegisterProvider adds or hot-swaps a venue provider.
func (svc *Service) RegisterProvider(p venues.QuoteProvider) {
	svc.registry.Register(p)
	metrics.RegisteredVenues.Set(float64(svc.registry.Len()))
}

// DeregisterProvider removes a venue provider.
func (svc *Service) DeregisterProvider(name string) {
	svc.registry.Deregister(name)
	metrics.RegisteredVenues.Set(float64(svc.registry.Len()))
}

func (svc *Service) quoteTimeout() time.Duration {
	return time.Duration(svc.conf.QuoteTimeoutMs) * time.Millisecond
}

// GetBestRoutes asks every registered venue for a quote, scores the batch and
// returns it best-first. The result always has exactly one entry per venue:
// venues that fail, time out or reject the trade contribute an error quote
// instead of disappearing.
func (svc *Service) GetBestRoutes(ctx context.Context, req domain.RouteRequest) []domain.Quote {
	start := time.Now()

	providers := svc.registry.Snapshot()
	if len(providers) == 0 {
		metrics.RouteRequests.WithLabelValues("empty").Inc()
		return []domain.Quote{}
	}

	results := fanOut(ctx, providers, req, svc.quoteTimeout())

	quotes := make([]domain.Quote, 0, len(results))
	timedOut := 0
	for _, res := range results {
		if res.timedOut {
			timedOut++
			metrics.VenueTimeouts.WithLabelValues(res.quote.VenueName).Inc()
		}
		quotes = append(quotes, domain.FromVenueQuote(res.quote))
	}

	svc.scorer.ScoreBatch(quotes)
	ApplySlippageLimit(quotes, req.SlippageTolerancePercent)
	AdjustForPreferences(quotes, req)

	svc.observeBatch(quotes, timedOut, time.Since(start))
	return quotes
}

func (svc *Service) observeBatch(quotes []domain.Quote, timedOut int, elapsed time.Duration) {
	svc.perf.Record(elapsed, timedOut)
	metrics.RouteDuration.Observe(elapsed.Seconds())

	succeeded := 0
	for i := range quotes {
		q := &quotes[i]
		if q.Failed() {
			metrics.VenueErrors.WithLabelValues(q.VenueName, q.ErrorKind).Inc()
			continue
		}
		succeeded++
		metrics.PriceImpact.WithLabelValues(q.VenueName).Observe(q.PriceImpactPercent)
	}

	status := "ok"
	if succeeded == 0 {
		status = "degraded"
	}
	metrics.RouteRequests.WithLabelValues(status).Inc()
	if succeeded > 0 {
		metrics.BestScore.Observe(quotes[0].Score)
	}
}

// GetVenueQuote is the diagnostic single-venue path. It runs through the same
// bounded-call helper as the fan-out, so one venue cannot hang the caller
// longer here than it could during aggregation.
func (svc *Service) GetVenueQuote(ctx context.Context, venueName, fromAsset, toAsset string, amount *big.Int) domain.Quote {
	p, ok := svc.registry.Get(venueName)
	if !ok {
		return domain.FromVenueQuote(
			domain.ErrorVenueQuote(venueName, domain.ErrVenueNotFound(venueName)))
	}

	start := time.Now()
	res := boundedQuote(ctx, p, fromAsset, toAsset, amount, svc.quoteTimeout())
	metrics.VenueQuoteDuration.WithLabelValues(venueName).Observe(time.Since(start).Seconds())
	if res.timedOut {
		metrics.VenueTimeouts.WithLabelValues(venueName).Inc()
	}

	q := domain.FromVenueQuote(res.quote)
	if !q.Failed() {
		q.Score = scoreQuote(&q, svc.scorer.Weights())
	}
	return q
}

// AvailableVenues returns the registered venue names in registration order.
func (svc *Service) AvailableVenues() []string {
	return svc.registry.Names()
}

// ScoringWeights returns the active weight configuration.
func (svc *Service) ScoringWeights() domain.ScoringWeights {
	return svc.scorer.Weights()
}

// UpdateScoringWeights merges a partial weight update and persists the result.
func (svc *Service) UpdateScoringWeights(patch domain.WeightsPatch) error {
	if err := svc.scorer.UpdateWeights(patch); err != nil {
		return err
	}
	metrics.WeightUpdates.Inc()
	if svc.storage != nil {
		if err := svc.storage.SaveWeights(svc.scorer.Weights()); err != nil {
			log.Error().Err(err).Msg("[routingService] failed to persist updated weights")
		}
	}
	log.Info().Interface("weights", svc.scorer.Weights()).Msg("[routingService] scoring weights updated")
	return nil
}

// PerformanceSnapshot returns the cumulative aggregation counters.
func (svc *Service) PerformanceSnapshot() PerformanceSnapshot {
	return svc.perf.Snapshot()
}

// ResetPerformanceMetrics zeroes the counters. Operator-only.
func (svc *Service) ResetPerformanceMetrics() {
	svc.perf.Reset()
	svc.persistState()
	log.Info().Msg("[routingService] performance metrics reset")
}

// Status describes the engine for the status endpoint.
type Status struct {
	ActiveVenues   []string              `json:"activeVenues"`
	QuoteTimeoutMs int                   `json:"quoteTimeoutMs"`
	Weights        domain.ScoringWeights `json:"weights"`
	Performance    PerformanceSnapshot   `json:"performance"`
	Features       []string              `json:"features"`
}

func (svc *Service) Status() Status {
	return Status{
		ActiveVenues:   svc.registry.Names(),
		QuoteTimeoutMs: svc.conf.QuoteTimeoutMs,
		Weights:        svc.scorer.Weights(),
		Performance:    svc.perf.Snapshot(),
		Features: []string{
			"concurrent_venue_queries",
			"weighted_scoring",
			"slippage_constraint_filter",
			"preference_adjustment",
			"hub_routing",
		},
	}
}
