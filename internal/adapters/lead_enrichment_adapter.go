package adapters

import (
	"context"

	"riseleads_backend/internal/leadenrichment/service"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/leads/ports"
)

// LeadEnrichmentAdapter adapts the lead enrichment service for the leads domain.
type LeadEnrichmentAdapter struct {
	svc *service.Service
}

// NewLeadEnrichmentAdapter creates a new adapter that wraps the lead enrichment service.
// Returns nil if the service is nil (disabled).
func NewLeadEnrichmentAdapter(svc *service.Service) *LeadEnrichmentAdapter {
	if svc == nil {
		return nil
	}
	return &LeadEnrichmentAdapter{svc: svc}
}

// Enrich fetches firmographics for a business by name and optional website.
func (a *LeadEnrichmentAdapter) Enrich(ctx context.Context, name, website string) (*domain.EnrichedData, error) {
	return a.svc.Enrich(ctx, name, website)
}

// Compile-time check.
var _ ports.LeadEnricher = (*LeadEnrichmentAdapter)(nil)
