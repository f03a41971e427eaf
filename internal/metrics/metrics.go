package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Routing metrics
	RouteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexrouter_route_requests_total",
			Help: "Total number of route aggregation requests",
		},
		[]string{"status"},
	)

	RouteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dexrouter_route_duration_seconds",
		Help:    "Route aggregation duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	VenueQuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dexrouter_venue_quote_duration_seconds",
			Help:    "Per-venue quote duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"venue"},
	)

	VenueErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexrouter_venue_errors_total",
			Help: "Total number of venue quote failures by kind",
		},
		[]string{"venue", "kind"},
	)

	VenueTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexrouter_venue_timeouts_total",
			Help: "Total number of venue quote timeouts",
		},
		[]string{"venue"},
	)

	RegisteredVenues = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dexrouter_registered_venues",
		Help: "Current number of registered venue providers",
	})

	BestScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dexrouter_best_score",
		Help:    "Winning quote score per aggregation request",
		Buckets: []float64{0, 20, 40, 60, 70, 80, 85, 90, 95, 100, 120},
	})

	PriceImpact = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dexrouter_price_impact_percent",
			Help:    "Quoted price impact in percent",
			Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 3, 5, 10},
		},
		[]string{"venue"},
	)

	WeightUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dexrouter_weight_updates_total",
		Help: "Total number of scoring weight updates",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexrouter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dexrouter_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
