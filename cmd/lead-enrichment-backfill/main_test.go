package main

import (
	"context"
	"errors"
	"testing"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"
)

type fakeEnricher struct {
	calls []string
	errs  map[string]error
}

func (f *fakeEnricher) Enrich(_ context.Context, id string) (domain.Lead, error) {
	f.calls = append(f.calls, id)
	return domain.Lead{ID: id}, f.errs[id]
}

func TestBackfillSkipsEnrichedAndCountsFailures(t *testing.T) {
	all := []domain.Lead{
		{ID: "a"},
		{ID: "b", EnrichedData: &domain.EnrichedData{IsEnriched: true}},
		{ID: "c"},
		{ID: "d"},
	}
	enricher := &fakeEnricher{errs: map[string]error{
		"c": apperr.Upstream("enrichment failed", errors.New("boom")),
		"d": apperr.NotFound("lead not found"),
	}}

	processed, succeeded := backfill(context.Background(), all, enricher, 0, logger.Discard())

	if processed != 3 || succeeded != 1 {
		t.Fatalf("expected 3 processed and 1 updated, got %d and %d", processed, succeeded)
	}
	if len(enricher.calls) != 3 || enricher.calls[1] != "c" {
		t.Fatalf("unexpected calls: %v", enricher.calls)
	}
}

func TestBackfillStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enricher := &fakeEnricher{}
	processed, _ := backfill(ctx, []domain.Lead{{ID: "a"}}, enricher, 0, logger.Discard())
	if processed != 0 || len(enricher.calls) != 0 {
		t.Fatalf("expected no work after cancel, got %d", processed)
	}
}
