package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/breaker"

	"google.golang.org/genai"
)

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(Request{
		Prompt:            "hi",
		SystemInstruction: "be brief",
		GoogleMaps:        true,
		GoogleSearch:      true,
		Location:          &LatLng{Latitude: 40.4, Longitude: -3.7},
		Schema:            &genai.Schema{Type: genai.TypeObject},
	})

	if len(cfg.Tools) != 2 || cfg.Tools[0].GoogleMaps == nil || cfg.Tools[1].GoogleSearch == nil {
		t.Fatalf("expected maps then search tools, got %+v", cfg.Tools)
	}
	if cfg.ToolConfig == nil || *cfg.ToolConfig.RetrievalConfig.LatLng.Latitude != 40.4 {
		t.Fatal("expected retrieval lat/lng")
	}
	if cfg.ResponseMIMEType != "application/json" || cfg.SystemInstruction == nil {
		t.Fatal("expected JSON response config and system instruction")
	}

	plain := buildConfig(Request{Prompt: "hi"})
	if len(plain.Tools) != 0 || plain.ToolConfig != nil || plain.ResponseSchema != nil {
		t.Fatalf("expected empty config, got %+v", plain)
	}
}

func TestGroundingSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Maps: &genai.GroundingChunkMaps{Title: "Blue Sky Dental", URI: "https://maps.example/1"}},
					{Web: &genai.GroundingChunkWeb{Title: "Article", URI: "https://news.example"}},
					nil,
				},
			},
		}},
	}

	sources := groundingSources(resp)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Kind != SourceMaps || sources[0].Title != "Blue Sky Dental" {
		t.Fatalf("unexpected maps source: %+v", sources[0])
	}
	if sources[1].Kind != SourceWeb {
		t.Fatalf("unexpected web source: %+v", sources[1])
	}
	if groundingSources(&genai.GenerateContentResponse{}) != nil {
		t.Fatal("expected no sources without candidates")
	}
}

func TestCallErrorKeepsCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := callError(ctx, fmt.Errorf("post: %w", context.Canceled))
	if err != context.Canceled {
		t.Fatalf("cancelled call = %v, want bare context.Canceled", err)
	}
	if apperr.Is(err, apperr.KindUpstream) {
		t.Fatal("cancelled call must not be reported as upstream")
	}

	if err := callError(context.Background(), breaker.ErrOpen); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("open breaker = %v, want unavailable", err)
	}
	if err := callError(context.Background(), errors.New("500 from upstream")); !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("transport failure = %v, want upstream", err)
	}
}
