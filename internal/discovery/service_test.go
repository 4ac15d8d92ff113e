package discovery

import (
	"context"
	"errors"
	"testing"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/leads/store"
	"riseleads_backend/internal/leads/transport"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"
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

type recordingCreator struct {
	reqs []transport.CreateLeadRequest
}

func (r *recordingCreator) Create(_ context.Context, req transport.CreateLeadRequest) (store.CreateResult, error) {
	r.reqs = append(r.reqs, req)
	return store.CreateResult{Lead: domain.Lead{ID: req.ID, Name: req.Name}}, nil
}

func TestSearch(t *testing.T) {
	lat, lng := 40.41, -3.70
	gen := &fakeGenerator{resp: gemini.Response{Sources: []gemini.Source{{Kind: gemini.SourceMaps, Title: "Blue Sky Dental"}}}}
	svc := NewService(gen, "gemini-2.5-flash", &recordingCreator{}, logger.Discard())

	res, err := svc.Search(context.Background(), SearchRequest{Niche: "dentists", Location: "Madrid", Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != noResultsText || len(res.Entities) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !gen.last.GoogleMaps || !gen.last.GoogleSearch || gen.last.Model != "gemini-2.5-flash" {
		t.Fatalf("expected maps and search grounding, got %+v", gen.last)
	}
	if gen.last.Location == nil || gen.last.Location.Latitude != lat {
		t.Fatal("expected coordinates as retrieval hint")
	}
}

func TestSearchErrors(t *testing.T) {
	svc := NewService(nil, "", &recordingCreator{}, logger.Discard())
	if _, err := svc.Search(context.Background(), SearchRequest{Niche: "x", Location: "y"}); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}

	gen := &fakeGenerator{err: apperr.Upstream("AI request failed", errors.New("boom"))}
	svc = NewService(gen, "", &recordingCreator{}, logger.Discard())
	if _, err := svc.Search(context.Background(), SearchRequest{Niche: "x", Location: "y"}); !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream, got %v", err)
	}
}

func TestPromoteDefaults(t *testing.T) {
	tests := []struct {
		name     string
		req      PromoteRequest
		wantName string
		wantAddr string
		wantCat  string
	}{
		{
			name:     "full record",
			req:      PromoteRequest{Entity: Entity{Kind: gemini.SourceMaps, Title: "Blue Sky Dental", URI: "https://maps.example/1", Address: "1 Main St"}, Niche: "Dentist", Location: "Madrid"},
			wantName: "Blue Sky Dental", wantAddr: "1 Main St", wantCat: "Dentist",
		},
		{
			name:     "location fallback",
			req:      PromoteRequest{Entity: Entity{Kind: gemini.SourceMaps, URI: "https://maps.example/2"}, Location: "Madrid"},
			wantName: defaultName, wantAddr: "Madrid", wantCat: defaultCategory,
		},
		{
			name:     "regional fallback",
			req:      PromoteRequest{Entity: Entity{Kind: gemini.SourceMaps}},
			wantName: defaultName, wantAddr: defaultAddress, wantCat: defaultCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &recordingCreator{}
			svc := NewService(nil, "", creator, logger.Discard())

			if _, err := svc.Promote(context.Background(), tt.req); err != nil {
				t.Fatal(err)
			}
			got := creator.reqs[0]
			if got.Name != tt.wantName || got.Address != tt.wantAddr || got.Category != tt.wantCat {
				t.Fatalf("unexpected lead request: %+v", got)
			}
			if got.Website != tt.req.Entity.URI || got.MapsURL != tt.req.Entity.URI {
				t.Fatalf("expected website and maps url from uri, got %+v", got)
			}
			if tt.req.Entity.URI != "" && got.ID != tt.req.Entity.URI {
				t.Fatalf("expected id from uri, got %q", got.ID)
			}
			if got.ID == "" {
				t.Fatal("expected a generated id")
			}
		})
	}
}

func TestPromoteRejectsWebEntities(t *testing.T) {
	svc := NewService(nil, "", &recordingCreator{}, logger.Discard())
	_, err := svc.Promote(context.Background(), PromoteRequest{Entity: Entity{Kind: gemini.SourceWeb, URI: "https://news.example"}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
