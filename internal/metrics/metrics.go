// Package metrics exposes Prometheus counters for webhook processing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeFailed    = "failed"

	KindPlan  = "plan"
	KindAddon = "addon"
)

type Metrics struct {
	WebhookEvents *prometheus.CounterVec
	Renewals      *prometheus.CounterVec
}

// New creates the billing counters and registers them with reg. A nil
// registry leaves them unregistered, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "billing",
				Name:      "webhook_events_total",
				Help:      "Renewal webhook deliveries by outcome.",
			},
			[]string{"outcome"},
		),
		Renewals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "billing",
				Name:      "renewals_total",
				Help:      "Successfully applied renewals by item kind.",
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.WebhookEvents, m.Renewals)
	}
	return m
}

func (m *Metrics) ObserveWebhook(outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRenewal(kind string) {
	if m == nil {
		return
	}
	m.Renewals.WithLabelValues(kind).Inc()
}
