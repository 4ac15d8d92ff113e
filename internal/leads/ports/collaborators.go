// Package ports declares the collaborators the leads module calls out to.
package ports

import (
	"context"

	"riseleads_backend/internal/leads/domain"
)

// LeadEnricher fetches firmographics for a business.
type LeadEnricher interface {
	Enrich(ctx context.Context, name, website string) (*domain.EnrichedData, error)
}

// OutreachGenerator drafts an outreach script for a lead context line.
type OutreachGenerator interface {
	GenerateOutreach(ctx context.Context, leadContext, service string, lang domain.Language) (string, error)
}

// LeadScorer produces an AI success-probability assessment.
type LeadScorer interface {
	Score(ctx context.Context, lead domain.Lead) (domain.Assessment, error)
}

// EnrichmentScheduler queues an enrichment to run in the background. It returns
// a conflict error while the lead already has a task waiting or running.
type EnrichmentScheduler interface {
	EnqueueLeadEnrichment(ctx context.Context, leadID string) error
}
