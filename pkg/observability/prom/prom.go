// Package prom exports sampler and cache events as Prometheus metrics.
//
// [Hooks] implements both observability.SamplerHooks and
// observability.CacheHooks. Register it at startup and serve the registry
// with [NewRouter]:
//
//	reg := prometheus.NewRegistry()
//	hooks := prom.NewHooks(reg)
//	observability.SetSamplerHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	go http.ListenAndServe(addr, prom.NewRouter(reg))
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/permsample/pkg/observability"
)

const namespace = "permsample"

// Hooks holds the Prometheus collectors fed by sampler and cache events.
type Hooks struct {
	// RunsTotal counts construction runs. Labels: algorithm.
	RunsTotal *prometheus.CounterVec

	// RunDuration measures the time of one construction run. Labels: algorithm.
	RunDuration *prometheus.HistogramVec

	// RunCost is the distribution of run costs. Labels: algorithm.
	RunCost *prometheus.HistogramVec

	// ImprovementsTotal counts improvements of the shared best. Labels: algorithm.
	ImprovementsTotal *prometheus.CounterVec

	// BestCost is the best cost seen so far. Labels: algorithm.
	BestCost *prometheus.GaugeVec

	// CacheRequests counts cache lookups. Labels: key_type, result (hit, miss).
	CacheRequests *prometheus.CounterVec

	// CacheWriteBytes measures the size of cache writes. Labels: key_type.
	CacheWriteBytes *prometheus.HistogramVec
}

// NewHooks creates the collectors and registers them with reg.
// It panics if any of them is already registered.
func NewHooks(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "runs_total",
			Help:      "Completed construction runs by algorithm",
		}, []string{"algorithm"}),
		RunDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "run_duration_seconds",
			Help:      "Duration of one construction run",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"algorithm"}),
		RunCost: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "run_cost",
			Help:      "Cost of the solution built by one construction run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 24),
		}, []string{"algorithm"}),
		ImprovementsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "improvements_total",
			Help:      "Runs that improved the best known solution",
		}, []string{"algorithm"}),
		BestCost: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "best_cost",
			Help:      "Cost of the best known solution",
		}, []string{"algorithm"}),
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache lookups by key type and result",
		}, []string{"key_type", "result"}),
		CacheWriteBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "write_bytes",
			Help:      "Size of cache writes",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}, []string{"key_type"}),
	}
}

func (h *Hooks) OnRun(algorithm string, cost float64, d time.Duration) {
	h.RunsTotal.WithLabelValues(algorithm).Inc()
	h.RunDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	h.RunCost.WithLabelValues(algorithm).Observe(cost)
}

func (h *Hooks) OnImproved(algorithm string, cost float64) {
	h.ImprovementsTotal.WithLabelValues(algorithm).Inc()
	h.BestCost.WithLabelValues(algorithm).Set(cost)
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

var (
	_ observability.SamplerHooks = (*Hooks)(nil)
	_ observability.CacheHooks   = (*Hooks)(nil)
)
