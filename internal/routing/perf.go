package routing

import (
	"math"
	"sync"
	"time"
)

const latencyEWMAAlpha = 0.1

// PerformanceMetrics tracks aggregation latency and venue timeout counts
// across the service lifetime. Latency is an exponentially weighted moving
// average so a single slow request cannot dominate the figure.
type PerformanceMetrics struct {
	mu            sync.Mutex
	totalRequests uint64
	totalTimeouts uint64
	avgLatencyMs  float64
	startedAt     time.Time
}

func NewPerformanceMetrics() *PerformanceMetrics {
	return &PerformanceMetrics{startedAt: time.Now()}
}

// Record folds one aggregation call into the running counters. timedOutVenues
// is how many venues hit the per-venue deadline during this call.
func (m *PerformanceMetrics) Record(latency time.Duration, timedOutVenues int) {
	latencyMs := float64(latency.Milliseconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
	m.totalTimeouts += uint64(timedOutVenues)
	if m.totalRequests == 1 {
		m.avgLatencyMs = latencyMs
		return
	}
	m.avgLatencyMs = (1-latencyEWMAAlpha)*m.avgLatencyMs + latencyEWMAAlpha*latencyMs
}

// PerformanceSnapshot is a point-in-time copy of the counters.
type PerformanceSnapshot struct {
	TotalRequests      uint64  `json:"totalRequests"`
	TotalTimeouts      uint64  `json:"totalTimeouts"`
	AvgLatencyMs       float64 `json:"avgLatencyMs"`
	TimeoutRatePercent float64 `json:"timeoutRatePercent"`
	UptimePercent      float64 `json:"uptimePercent"`
	UptimeSeconds      float64 `json:"uptimeSeconds"`
}

func (m *PerformanceMetrics) Snapshot() PerformanceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := PerformanceSnapshot{
		TotalRequests: m.totalRequests,
		TotalTimeouts: m.totalTimeouts,
		AvgLatencyMs:  m.avgLatencyMs,
		UptimeSeconds: time.Since(m.startedAt).Seconds(),
	}
	if m.totalRequests > 0 {
		snap.TimeoutRatePercent = float64(m.totalTimeouts) / float64(m.totalRequests) * 100
	}
	// Uptime is the timeout-free share of requests. Several venues can time
	// out in one request, so floor at zero.
	snap.UptimePercent = math.Max(0, 100-snap.TimeoutRatePercent)
	return snap
}

// Reset zeroes the counters and restarts the uptime clock.
func (m *PerformanceMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests = 0
	m.totalTimeouts = 0
	m.avgLatencyMs = 0
	m.startedAt = time.Now()
}

// Restore seeds the counters from persisted state, used at startup so the
// figures survive restarts. The uptime clock still starts fresh.
func (m *PerformanceMetrics) Restore(totalRequests, totalTimeouts uint64, avgLatencyMs float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests = totalRequests
	m.totalTimeouts = totalTimeouts
	m.avgLatencyMs = avgLatencyMs
}
