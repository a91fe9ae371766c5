// Package metrics exposes Prometheus metrics for projection runs and the
// surfaces that trigger them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "projection_"

	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics bundles projection metrics.
type Metrics struct {
	RunsTotal        *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
	ScenariosTotal   prometheus.Counter
	LastRunMonths    prometheus.Gauge
	ExportsTotal     *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	PlaybackSessions prometheus.Gauge
}

// New constructs the metrics and registers them with reg. A nil reg
// registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "runs_total",
				Help: "Total projection runs by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "run_duration_seconds",
				Help:    "Projection run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		ScenariosTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "scenarios_simulated_total",
			Help: "Total scenarios simulated by successful runs",
		}),
		LastRunMonths: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_run_months",
			Help: "Months in the most recent successful run's series",
		}),
		ExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total series exports by format and result",
			},
			[]string{"format", "result"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		PlaybackSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "playback_sessions",
			Help: "Open playback streams",
		}),
	}
	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.ScenariosTotal,
		m.LastRunMonths,
		m.ExportsTotal,
		m.CacheLookups,
		m.PlaybackSessions,
	)
	return m
}

// ObserveRun records one finished projection run.
func (m *Metrics) ObserveRun(result string, scenarios, months int, duration time.Duration) {
	if m == nil {
		return
	}
	if result == "" {
		result = ResultSuccess
	}
	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.WithLabelValues(result).Observe(duration.Seconds())
	if result == ResultSuccess {
		m.ScenariosTotal.Add(float64(scenarios))
		m.LastRunMonths.Set(float64(months))
	}
}

// ObserveExport records one export attempt.
func (m *Metrics) ObserveExport(format, result string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format, result).Inc()
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.CacheLookups.WithLabelValues(outcome).Inc()
}

// PlaybackStarted and PlaybackEnded track open playback streams.
func (m *Metrics) PlaybackStarted() {
	if m != nil {
		m.PlaybackSessions.Inc()
	}
}

func (m *Metrics) PlaybackEnded() {
	if m != nil {
		m.PlaybackSessions.Dec()
	}
}
