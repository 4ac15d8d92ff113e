package scheduler

import (
	"context"
	"errors"
	"testing"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type fakeEnricher struct {
	err   error
	calls []string
}

func (f *fakeEnricher) Enrich(_ context.Context, id string) (domain.Lead, error) {
	f.calls = append(f.calls, id)
	return domain.Lead{ID: id}, f.err
}

func TestHandleEnrichLead(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{name: "success", err: nil},
		{name: "lead deleted", err: apperr.NotFound("lead not found")},
		{name: "already running", err: apperr.Conflict("enrichment already running")},
		{name: "provider failure", err: apperr.Upstream("enrichment failed", errors.New("timeout")), wantRetry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher := &fakeEnricher{err: tt.err}
			w := &Worker{enricher: enricher, log: logger.Discard()}

			task, err := NewEnrichLeadTask(EnrichLeadPayload{LeadID: "lead-1"})
			if err != nil {
				t.Fatal(err)
			}
			err = w.handleEnrichLead(context.Background(), task)
			if (err != nil) != tt.wantRetry {
				t.Fatalf("unexpected result: %v", err)
			}
			if len(enricher.calls) != 1 || enricher.calls[0] != "lead-1" {
				t.Fatalf("unexpected calls: %v", enricher.calls)
			}
		})
	}
}

func TestHandleEnrichLeadBadPayload(t *testing.T) {
	w := &Worker{enricher: &fakeEnricher{}, log: logger.Discard()}

	err := w.handleEnrichLead(context.Background(), asynq.NewTask(TaskEnrichLead, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected skip retry, got %v", err)
	}
	err = w.handleEnrichLead(context.Background(), asynq.NewTask(TaskEnrichLead, []byte(`{}`)))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected skip retry for empty id, got %v", err)
	}
}
