package metrics

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestBookingMetricsCountsWebhookOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.IncQuoteCreated()
	m.IncIntentCreated("deposit")
	m.IncWebhookEvent("payment_intent.succeeded", OutcomeApplied)
	m.IncWebhookEvent("payment_intent.succeeded", OutcomeDuplicate)
	m.IncWebhookEvent("payment_intent.succeeded", OutcomeDuplicate)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := counterValue(mfs, "stripe_webhook_events_total", map[string]string{"outcome": OutcomeDuplicate}); err != nil || got != 2 {
		t.Fatalf("expected duplicate=2, got %f (%v)", got, err)
	}
	if got, err := counterValue(mfs, "payment_intents_created_total", map[string]string{"payment_type": "deposit"}); err != nil || got != 1 {
		t.Fatalf("expected deposit intents=1, got %f (%v)", got, err)
	}
	if got, err := counterValue(mfs, "quotes_created_total", nil); err != nil || got != 1 {
		t.Fatalf("expected quotes=1, got %f (%v)", got, err)
	}
}

func TestNilRecordersAreNoops(t *testing.T) {
	var booking *BookingMetrics
	booking.IncQuoteCreated()
	booking.IncWebhookEvent("x", OutcomeError)
	NewBookingMetrics(nil).IncIntentCreated("full")

	var outbox *OutboxMetrics
	outbox.ObserveBatch(time.Second)
	NewOutboxMetrics(nil).IncPublished("quote_created")
}

func TestOutboxMetricsAndHandler(t *testing.T) {
	reg := NewRegistry()
	m := NewOutboxMetrics(reg)
	m.ObserveBatch(250 * time.Millisecond)
	m.IncPublished("quote_created")
	m.IncFailed("")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`outbox_events_published_total{event_type="quote_created"} 1`,
		`outbox_events_failed_total{event_type="unknown"} 1`,
		"outbox_batch_duration_seconds_sum 0.25",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchesLabels(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, fmt.Errorf("metric %q with labels %v not found", name, labels)
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == name && pair.GetValue() == value {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}
