// Package metrics exposes Prometheus instrumentation for the storefront.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"offer-storefront/internal/checkout"
)

// Metrics holds the storefront's collectors. Registered on a private
// registry so tests can build instances without global collisions.
type Metrics struct {
	registry *prometheus.Registry

	PurchaseSteps   *prometheus.CounterVec
	Purchases       *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
}

// New creates and registers the storefront collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "purchase_steps_total",
		Help:      "Purchase workflow steps by outcome.",
	}, []string{"step", "outcome"})

	purchases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "purchases_total",
		Help:      "Purchase requests by outcome.",
	}, []string{"outcome"})

	backend := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "backend_request_duration_seconds",
		Help:      "Commerce backend round-trip latency by operation.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"operation", "outcome"})

	registry.MustRegister(steps, purchases, backend)

	return &Metrics{
		registry:        registry,
		PurchaseSteps:   steps,
		Purchases:       purchases,
		BackendDuration: backend,
	}
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStep is the checkout workflow's Observe hook.
func (m *Metrics) ObserveStep(step checkout.Step, err error) {
	m.PurchaseSteps.WithLabelValues(string(step), outcome(err)).Inc()
}

// ObservePurchase records one finished purchase request.
func (m *Metrics) ObservePurchase(err error) {
	m.Purchases.WithLabelValues(outcome(err)).Inc()
}

// ObserveBackend is the GraphQL client's Observe hook.
func (m *Metrics) ObserveBackend(operation string, d time.Duration, err error) {
	m.BackendDuration.WithLabelValues(operation, outcome(err)).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
