// Package monitor exposes prometheus metrics for the simulation loop.
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's counters and gauges. A nil *Metrics is valid
// and disables collection, so tests can pass nil.
type Metrics struct {
	WeeksSimulated     prometheus.Counter
	MatchesSimulated   prometheus.Counter
	TransfersCompleted prometheus.Counter
	NarrativeFallbacks prometheus.Counter
	PendingOffers      prometheus.Gauge
}

// NewMetrics creates and registers the metric set.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		WeeksSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weeks_simulated_total",
			Help:      "Total number of weeks advanced",
		}),
		MatchesSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_simulated_total",
			Help:      "Total number of fixtures simulated",
		}),
		TransfersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_completed_total",
			Help:      "Total number of accepted transfers",
		}),
		NarrativeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_fallbacks_total",
			Help:      "Narrative generations that fell back to fixed text",
		}),
		PendingOffers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_transfer_offers",
			Help:      "Transfer offers currently awaiting a response",
		}),
	}

	prometheus.MustRegister(
		m.WeeksSimulated,
		m.MatchesSimulated,
		m.TransfersCompleted,
		m.NarrativeFallbacks,
		m.PendingOffers,
	)

	return m
}

func (m *Metrics) IncWeeks() {
	if m != nil {
		m.WeeksSimulated.Inc()
	}
}

func (m *Metrics) AddMatches(n int) {
	if m != nil {
		m.MatchesSimulated.Add(float64(n))
	}
}

func (m *Metrics) IncTransfers() {
	if m != nil {
		m.TransfersCompleted.Inc()
	}
}

func (m *Metrics) IncNarrativeFallbacks() {
	if m != nil {
		m.NarrativeFallbacks.Inc()
	}
}

func (m *Metrics) SetPendingOffers(n int) {
	if m != nil {
		m.PendingOffers.Set(float64(n))
	}
}
