package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/apperr"
)

type fakeGenerator struct {
	resp gemini.Response
	err  error
	last gemini.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req gemini.Request) (gemini.Response, error) {
	f.last = req
	return f.resp, f.err
}

func TestGenerateOutreach(t *testing.T) {
	gen := &fakeGenerator{resp: gemini.Response{Text: "Subject: Growth"}}
	writer := NewOutreachWriter(gen)

	script, err := writer.GenerateOutreach(context.Background(), "Acme (Retail)", "Digital Enterprise Strategy", domain.LanguageSpanish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script != "Subject: Growth" {
		t.Fatalf("unexpected script %q", script)
	}
	if !strings.Contains(gen.last.Prompt, "Language: es.") || !strings.Contains(gen.last.Prompt, userDataBegin+"\nAcme (Retail)") {
		t.Fatalf("prompt missing language or wrapped context:\n%s", gen.last.Prompt)
	}
}

func TestGenerateOutreachEmptyIsFailure(t *testing.T) {
	writer := NewOutreachWriter(&fakeGenerator{})

	_, err := writer.GenerateOutreach(context.Background(), "Acme", "x", domain.LanguageEnglish)
	if !apperr.Is(err, apperr.KindUpstream) || !errors.Is(err, gemini.ErrEmptyResponse) {
		t.Fatalf("expected upstream empty-response error, got %v", err)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		score  int
		reason string
	}{
		{name: "valid", text: `{"score": 87.6, "reason": " Strong fit "}`, score: 88, reason: "Strong fit"},
		{name: "clamped", text: `{"score": 140, "reason": "x"}`, score: 100, reason: "x"},
		{name: "garbage", text: "not json", score: FallbackScore, reason: FallbackReason},
		{name: "missing score", text: `{"reason": "x"}`, score: FallbackScore, reason: FallbackReason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{resp: gemini.Response{Text: tt.text}}
			got, err := NewLeadScorer(gen).Score(context.Background(), domain.Lead{Name: "Acme"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Score != tt.score || got.Reason != tt.reason {
				t.Fatalf("got %+v, want %d/%q", got, tt.score, tt.reason)
			}
			if gen.last.Schema == nil {
				t.Fatal("expected a response schema")
			}
		})
	}
}

func TestScorePropagatesTransportError(t *testing.T) {
	gen := &fakeGenerator{err: apperr.Upstream("AI request failed", errors.New("boom"))}
	if _, err := NewLeadScorer(gen).Score(context.Background(), domain.Lead{}); !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestScorePromptDefaults(t *testing.T) {
	prompt := buildScorePrompt(domain.Lead{Name: "Acme", Category: "Dentist"})
	for _, want := range []string{"unrated stars / no reviews", "Unknown revenue, Unknown staff", "Awaiting segment analysis"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
