package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcomes recorded per Stripe event.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeError     = "error"
)

// BookingMetrics counts the booking funnel: quotes, payment intents and
// webhook deliveries.
type BookingMetrics struct {
	quotesCreated  prometheus.Counter
	intentsCreated *prometheus.CounterVec
	webhookEvents  *prometheus.CounterVec
	eventsBooked   prometheus.Counter
}

// NewBookingMetrics registers the funnel metrics on reg. A nil registerer
// yields a no-op recorder.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	m := &BookingMetrics{
		quotesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotes_created_total",
			Help: "Wedding quotes submitted.",
		}),
		intentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_intents_created_total",
			Help: "Stripe payment intents created, by payment type.",
		}, []string{"payment_type"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stripe_webhook_events_total",
			Help: "Stripe webhook events received, by type and outcome.",
		}, []string{"type", "outcome"}),
		eventsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wedding_events_confirmed_total",
			Help: "Quotes promoted to confirmed wedding events.",
		}),
	}
	reg.MustRegister(m.quotesCreated, m.intentsCreated, m.webhookEvents, m.eventsBooked)
	return m
}

func (m *BookingMetrics) IncQuoteCreated() {
	if m == nil || m.quotesCreated == nil {
		return
	}
	m.quotesCreated.Inc()
}

func (m *BookingMetrics) IncIntentCreated(paymentType string) {
	if m == nil || m.intentsCreated == nil {
		return
	}
	m.intentsCreated.WithLabelValues(normalizeLabel(paymentType)).Inc()
}

func (m *BookingMetrics) IncWebhookEvent(eventType, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

func (m *BookingMetrics) IncEventConfirmed() {
	if m == nil || m.eventsBooked == nil {
		return
	}
	m.eventsBooked.Inc()
}

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
