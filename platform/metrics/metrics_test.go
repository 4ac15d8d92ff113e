package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riseleads_backend/platform/events"
	"riseleads_backend/platform/logger"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type testEvent struct {
	events.BaseEvent
}

func (testEvent) EventName() string { return "leads.lead.created" }

func TestCountEvents(t *testing.T) {
	c := NewCollector("riseleads")
	bus := events.NewInMemoryBus(logger.Discard())
	c.CountEvents(bus)

	bus.Publish(context.Background(), testEvent{BaseEvent: events.NewBaseEvent()})
	bus.Publish(context.Background(), testEvent{BaseEvent: events.NewBaseEvent()})
	bus.Wait()

	if got := testutil.ToFloat64(c.DomainEvents.WithLabelValues("leads.lead.created")); got != 2 {
		t.Fatalf("expected 2 events counted, got %v", got)
	}
}

func TestHandlerExposesRequests(t *testing.T) {
	c := NewCollector("riseleads")
	c.ObserveRequest(http.MethodGet, "/api/v1/leads", http.StatusOK, 15*time.Millisecond)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `riseleads_http_requests_total{method="GET",route="/api/v1/leads",status="200"} 1`) {
		t.Fatalf("request counter missing from output:\n%s", body)
	}
}
