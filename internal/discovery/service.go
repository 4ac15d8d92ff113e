package discovery

import (
	"context"
	"fmt"
	"strings"

	"riseleads_backend/internal/leads/store"
	"riseleads_backend/internal/leads/transport"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	noResultsText   = "No results found."
	defaultName     = "Local Business"
	defaultCategory = "Local Business"
	defaultAddress  = "Regional Entity"
)

// LeadCreator inserts a lead into the pipeline.
type LeadCreator interface {
	Create(ctx context.Context, req transport.CreateLeadRequest) (store.CreateResult, error)
}

type Service struct {
	gen   gemini.Generator
	model string
	leads LeadCreator
	log   *logger.Logger
}

// NewService creates the discovery service. gen may be nil, in which case
// search answers unavailable but promote still works.
func NewService(gen gemini.Generator, model string, leads LeadCreator, log *logger.Logger) *Service {
	return &Service{gen: gen, model: model, leads: leads, log: log}
}

// Search asks the maps-grounded model for businesses and returns its narrative
// with the grounding entities.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if s.gen == nil {
		return SearchResult{}, apperr.Unavailable("AI search is not configured", nil)
	}

	genReq := gemini.Request{
		Model:        s.model,
		Prompt:       buildSearchPrompt(req.Niche, req.Location),
		GoogleMaps:   true,
		GoogleSearch: true,
	}
	if req.Latitude != nil && req.Longitude != nil {
		genReq.Location = &gemini.LatLng{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	resp, err := s.gen.Generate(ctx, genReq)
	if err != nil {
		s.log.CollaboratorError("search", "", err)
		return SearchResult{}, err
	}

	text := resp.Text
	if text == "" {
		text = noResultsText
	}
	entities := resp.Sources
	if entities == nil {
		entities = []Entity{}
	}
	return SearchResult{Text: text, Entities: entities}, nil
}

// Promote creates a lead from a maps entity. A duplicate is reported in the
// result like any other insert.
func (s *Service) Promote(ctx context.Context, req PromoteRequest) (store.CreateResult, error) {
	e := req.Entity
	if e.Kind != gemini.SourceMaps {
		return store.CreateResult{}, apperr.Validation("only map entities can be promoted to leads")
	}

	id := strings.TrimSpace(e.URI)
	if id == "" {
		id = uuid.NewString()
	}

	return s.leads.Create(ctx, transport.CreateLeadRequest{
		ID:       id,
		Name:     firstNonEmpty(e.Title, defaultName),
		Address:  firstNonEmpty(e.Address, req.Location, defaultAddress),
		Website:  e.URI,
		MapsURL:  e.URI,
		Category: firstNonEmpty(req.Niche, defaultCategory),
	})
}

func buildSearchPrompt(niche, location string) string {
	return fmt.Sprintf(`Search for high-potential %s business leads in %s.
Identify entities with established physical presence.
Analyze their current digital footprint and provide recommendations for growth services.`,
		strings.TrimSpace(niche), strings.TrimSpace(location))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
