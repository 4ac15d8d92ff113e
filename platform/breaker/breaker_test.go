package breaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestDoReturnsValue(t *testing.T) {
	b := New(DefaultConfig("test"), nil)

	got, err := Do(b, func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("Do() = %q, %v", got, err)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	cfg := Config{Name: "flaky", MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 3}
	b := New(cfg, nil)
	boom := errors.New("upstream down")

	for i := 0; i < 3; i++ {
		if _, err := Do(b, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	called := false
	_, err := Do(b, func() (int, error) {
		called = true
		return 1, nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if called {
		t.Fatal("open breaker must not invoke the function")
	}
	if b.State() != "open" {
		t.Fatalf("expected open state, got %s", b.State())
	}
}

func TestCancelledCallsDoNotOpenBreaker(t *testing.T) {
	cfg := Config{Name: "cancel", MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 3}
	b := New(cfg, nil)

	for i := 0; i < 5; i++ {
		_, err := Do(b, func() (int, error) { return 0, fmt.Errorf("call: %w", context.Canceled) })
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: expected cancellation, got %v", i, err)
		}
	}
	if b.State() != "closed" {
		t.Fatalf("expected closed state, got %s", b.State())
	}
}
