package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"riseleads_backend/internal/leadenrichment/client"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"
)

type stubProvider struct {
	result client.Result
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Enrich(context.Context, string, string) (client.Result, error) {
	p.calls++
	return p.result, p.err
}

func intPtr(v int) *int { return &v }

// gatedProvider blocks every call until release is closed.
type gatedProvider struct {
	mu      sync.Mutex
	calls   int
	callCtx context.Context
	started chan struct{}
	release chan struct{}
}

func (p *gatedProvider) Name() string { return "gated" }

func (p *gatedProvider) Enrich(ctx context.Context, _, _ string) (client.Result, error) {
	p.mu.Lock()
	p.calls++
	p.callCtx = ctx
	p.mu.Unlock()
	p.started <- struct{}{}
	<-p.release
	return client.Result{QualScore: intPtr(70)}, nil
}

func TestEnrichNormalizesPartialResult(t *testing.T) {
	provider := &stubProvider{result: client.Result{QualScore: intPtr(120), Industry: "Retail"}}
	svc := New(provider, time.Hour, logger.Discard())

	data, err := svc.Enrich(context.Background(), "Acme", "acme.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !data.IsEnriched {
		t.Fatal("expected isEnriched to be set")
	}
	if data.Score() != 100 || data.QualSegment != domain.SegmentVeryGood {
		t.Fatalf("expected clamped score with derived segment, got %d %q", data.Score(), data.QualSegment)
	}
}

func TestEnrichKeepsProviderSegment(t *testing.T) {
	provider := &stubProvider{result: client.Result{QualScore: intPtr(60), QualSegment: "Good"}}
	svc := New(provider, time.Hour, logger.Discard())

	data, err := svc.Enrich(context.Background(), "Acme", "")
	if err != nil {
		t.Fatal(err)
	}
	if data.QualSegment != domain.SegmentGood {
		t.Fatalf("expected provider segment to win, got %q", data.QualSegment)
	}
}

func TestEnrichCachesPerBusiness(t *testing.T) {
	provider := &stubProvider{result: client.Result{QualScore: intPtr(50)}}
	svc := New(provider, time.Hour, logger.Discard())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	first, _ := svc.Enrich(ctx, "Acme", "acme.com")
	*first.QualScore = 1
	second, _ := svc.Enrich(ctx, "ACME", "acme.com")

	if provider.calls != 1 {
		t.Fatalf("expected a cache hit, provider called %d times", provider.calls)
	}
	if second.Score() != 50 {
		t.Fatal("cached value was aliased by the caller")
	}

	now = now.Add(2 * time.Hour)
	if _, err := svc.Enrich(ctx, "Acme", "acme.com"); err != nil {
		t.Fatal(err)
	}
	if provider.calls != 2 {
		t.Fatalf("expected expiry to refetch, provider called %d times", provider.calls)
	}
}

func TestEnrichErrors(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	svc := New(provider, time.Hour, logger.Discard())

	if _, err := svc.Enrich(context.Background(), "  ", ""); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var lastErr error
	for i := 0; i < 6; i++ {
		_, lastErr = svc.Enrich(context.Background(), "Acme", "")
		if i < 5 && !apperr.Is(lastErr, apperr.KindUpstream) {
			t.Fatalf("call %d: expected upstream error, got %v", i, lastErr)
		}
	}
	if !apperr.Is(lastErr, apperr.KindUnavailable) {
		t.Fatalf("expected breaker to open, got %v", lastErr)
	}
}

func TestEnrichSharedCallSurvivesFirstCallerCancel(t *testing.T) {
	provider := &gatedProvider{started: make(chan struct{}, 1), release: make(chan struct{})}
	svc := New(provider, time.Hour, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Enrich(ctx, "Acme", "acme.com")
		firstErr <- err
	}()

	<-provider.started
	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller error = %v, want context.Canceled", err)
	}

	provider.mu.Lock()
	callCtx := provider.callCtx
	provider.mu.Unlock()
	if callCtx.Err() != nil {
		t.Fatal("shared provider call was cancelled with the first caller")
	}

	type outcome struct {
		data *domain.EnrichedData
		err  error
	}
	second := make(chan outcome, 1)
	go func() {
		data, err := svc.Enrich(context.Background(), "Acme", "acme.com")
		second <- outcome{data, err}
	}()
	close(provider.release)

	got := <-second
	if got.err != nil {
		t.Fatalf("second caller error: %v", got.err)
	}
	if got.data.Score() != 70 {
		t.Fatalf("score = %d, want 70", got.data.Score())
	}
	provider.mu.Lock()
	defer provider.mu.Unlock()
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
}
