package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"riseleads_backend/internal/events"
	apphttp "riseleads_backend/internal/http"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetNotificationLimit() int { return 20 }

func newTestModule(t *testing.T) (*Module, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := New(testNotificationConfig{}, nil, logger.Discard())
	engine := gin.New()
	v1 := engine.Group("/api/v1")
	m.RegisterRoutes(&apphttp.RouterContext{Engine: engine, V1: v1, Protected: v1})
	t.Cleanup(m.Close)
	return m, engine
}

func TestFeedRoutes(t *testing.T) {
	m, engine := newTestModule(t)
	ctx := context.Background()

	first := m.Service().Push(ctx, "Lead Discovered", "Acme added to pipeline.", domain.AuditSuccess)
	m.Service().Push(ctx, "Sync Warning", "Duplicate lead detected: Acme", domain.AuditInfo)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+first.ID+"/read", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("mark read returned %d", w.Code)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))
	var resp listResponseBody
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 2 || resp.Unread != 1 || resp.Items[0].Title != "Sync Warning" {
		t.Fatalf("unexpected feed: %+v", resp)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/notifications/missing/read", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown notification, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/notifications", nil))
	if w.Code != http.StatusNoContent || len(m.Service().List()) != 0 {
		t.Fatalf("expected cleared feed, got %d with %d items", w.Code, len(m.Service().List()))
	}
}

type listResponseBody struct {
	Items []struct {
		Title string `json:"title"`
		Read  bool   `json:"read"`
	} `json:"items"`
	Unread int `json:"unread"`
}

func TestHandleIgnoresUnknownEvents(t *testing.T) {
	m, _ := newTestModule(t)

	err := m.Handle(context.Background(), events.NotificationPushed{BaseEvent: events.NewBaseEvent()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Handle(context.Background(), events.LeadDeleted{BaseEvent: events.NewBaseEvent(), LeadID: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
