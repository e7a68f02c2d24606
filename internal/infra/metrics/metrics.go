package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewRegistry returns a registry with the Go runtime and process collectors.
// A private registry keeps repeated fx apps in tests from colliding on the global one.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProviderCollectors are shared by every transport decorator.
type ProviderCollectors struct {
	SendDuration *prometheus.SummaryVec
	SendTotal    *prometheus.CounterVec
	SendStatus   *prometheus.CounterVec
}

func NewProviderCollectors(reg prometheus.Registerer) *ProviderCollectors {
	c := &ProviderCollectors{
		SendDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "provider_send_duration_seconds",
				Help:       "Provider send latency in seconds",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
				MaxAge:     5 * time.Minute,
			},
			[]string{"provider", "channel", "status"},
		),
		SendTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_send_total",
				Help: "Provider send attempts",
			},
			[]string{"provider", "channel"},
		),
		SendStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_send_status_total",
				Help: "Provider send results by status",
			},
			[]string{"provider", "channel", "status"},
		),
	}
	reg.MustRegister(c.SendDuration, c.SendTotal, c.SendStatus)
	return c
}

// DispatchMetrics records dispatch cycle activity.
type DispatchMetrics struct {
	cycleDuration prometheus.Histogram
	claimed       prometheus.Counter
	outcomes      *prometheus.CounterVec
}

func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_cycle_duration_seconds",
			Help:    "Duration of one dispatch cycle",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		claimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_claimed_total",
			Help: "Reminders claimed by dispatch cycles",
		}),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_outcome_total",
				Help: "Dispatch item outcomes",
			},
			[]string{"channel", "outcome"},
		),
	}
	reg.MustRegister(m.cycleDuration, m.claimed, m.outcomes)
	return m
}

func (m *DispatchMetrics) ObserveCycle(d time.Duration, claimed int) {
	m.cycleDuration.Observe(d.Seconds())
	m.claimed.Add(float64(claimed))
}

func (m *DispatchMetrics) CountOutcome(channel, outcome string) {
	m.outcomes.WithLabelValues(channel, outcome).Inc()
}
