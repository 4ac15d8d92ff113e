package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientParsesPartialAndStringNumbers(t *testing.T) {
	var gotAuth, gotName, gotWebsite string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotName = r.URL.Query().Get("name")
		gotWebsite = r.URL.Query().Get("website")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"employees":"120","qualScore":77.6,"industry":"Legal Services"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", time.Second, nil)
	res, err := c.Enrich(context.Background(), "Acme Law", "acmelaw.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret" || gotName != "Acme Law" || gotWebsite != "acmelaw.com" {
		t.Fatalf("unexpected request: auth=%q name=%q website=%q", gotAuth, gotName, gotWebsite)
	}
	if res.Employees == nil || *res.Employees != 120 {
		t.Fatalf("expected 120 employees, got %v", res.Employees)
	}
	if res.QualScore == nil || *res.QualScore != 78 {
		t.Fatalf("expected rounded score 78, got %v", res.QualScore)
	}
	if res.Industry != "Legal Services" || res.Revenue != "" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestClientFailsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "", time.Second, nil).Enrich(context.Background(), "Acme", ""); err == nil {
		t.Fatal("expected error for 429")
	}
}

func TestSimulatedProfile(t *testing.T) {
	sim := NewSimulated(42)

	for i := 0; i < 50; i++ {
		res, err := sim.Enrich(context.Background(), "Blue Sky  Dental", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *res.QualScore < 40 || *res.QualScore > 99 {
			t.Fatalf("score out of range: %d", *res.QualScore)
		}
		if len(res.BuyingSignals) != 3 {
			t.Fatalf("expected 3 buying signals, got %d", len(res.BuyingSignals))
		}
		if res.LinkedIn != "https://linkedin.com/company/blue-sky-dental" {
			t.Fatalf("unexpected linkedin %q", res.LinkedIn)
		}
		if res.Facebook != "https://facebook.com/bluesky-dental" {
			t.Fatalf("unexpected facebook %q", res.Facebook)
		}
		wantFunding := "Profitable"
		if *res.QualScore > 80 {
			wantFunding = "Series B"
		}
		if res.LastFunded != wantFunding {
			t.Fatalf("score %d: lastFunded %q, want %q", *res.QualScore, res.LastFunded, wantFunding)
		}
	}
}

func TestSimulatedHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSimulated(1).Enrich(ctx, "Acme", ""); err == nil {
		t.Fatal("expected context error")
	}
}
