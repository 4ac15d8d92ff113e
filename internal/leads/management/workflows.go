package management

import (
	"context"
	"errors"
	"fmt"
	"time"

	"riseleads_backend/internal/events"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/leads/transport"
	"riseleads_backend/platform/apperr"
)

// DefaultOutreachService is pitched when the request names no service.
const DefaultOutreachService = "Digital Enterprise Strategy"

const (
	workflowEnrich   = "enrichment"
	workflowOutreach = "outreach"
	workflowScore    = "scoring"
)

// Enrich fetches firmographics for the lead and merges them. A lead may have at
// most one enrichment in flight; a second request gets a conflict error. If the
// lead is deleted while the call runs, the result is dropped and NotFound returned.
func (s *Service) Enrich(ctx context.Context, id string) (domain.Lead, error) {
	if s.enricher == nil {
		return domain.Lead{}, apperr.Unavailable("enrichment is not configured", nil)
	}
	lead, err := s.GetByID(id)
	if err != nil {
		return domain.Lead{}, err
	}
	if !s.markRunning(workflowEnrich, id) {
		return domain.Lead{}, apperr.Conflict("enrichment already running for this lead")
	}
	defer s.markComplete(workflowEnrich, id)

	data, err := s.enricher.Enrich(ctx, lead.Name, lead.Website)
	if err != nil {
		return domain.Lead{}, s.collaboratorFailed(ctx, workflowEnrich, id, err)
	}
	return found(s.store.RecordEnrichment(ctx, id, data))
}

// EnqueueEnrichment schedules Enrich to run in the background.
func (s *Service) EnqueueEnrichment(ctx context.Context, id string) (transport.EnrichmentQueuedResponse, error) {
	if s.scheduler == nil {
		return transport.EnrichmentQueuedResponse{}, apperr.Unavailable("background jobs are not configured", nil)
	}
	if _, err := s.GetByID(id); err != nil {
		return transport.EnrichmentQueuedResponse{}, err
	}
	if err := s.scheduler.EnqueueLeadEnrichment(ctx, id); err != nil {
		if apperr.GetKind(err) != apperr.KindUnknown {
			return transport.EnrichmentQueuedResponse{}, err
		}
		return transport.EnrichmentQueuedResponse{}, apperr.Wrap(apperr.KindInternal, "failed to queue enrichment", err)
	}
	return transport.EnrichmentQueuedResponse{LeadID: id, Queued: true, QueuedAt: time.Now().UTC()}, nil
}

// GenerateOutreach drafts a script for the lead and records it on the timeline.
// On failure nothing is recorded.
func (s *Service) GenerateOutreach(ctx context.Context, id string, req transport.OutreachRequest) (transport.OutreachResponse, error) {
	if s.outreach == nil {
		return transport.OutreachResponse{}, apperr.Unavailable("AI generation is not configured", nil)
	}
	lead, err := s.GetByID(id)
	if err != nil {
		return transport.OutreachResponse{}, err
	}

	lang := domain.Language(req.Language)
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	if !domain.IsKnownLanguage(lang) {
		return transport.OutreachResponse{}, apperr.Validation("unsupported language").WithDetails(lang)
	}
	service := req.Service
	if service == "" {
		service = DefaultOutreachService
	}

	if !s.markRunning(workflowOutreach, id) {
		return transport.OutreachResponse{}, apperr.Conflict("outreach already being generated for this lead")
	}
	defer s.markComplete(workflowOutreach, id)

	script, err := s.outreach.GenerateOutreach(ctx, OutreachContext(lead), service, lang)
	if err != nil {
		return transport.OutreachResponse{}, s.collaboratorFailed(ctx, workflowOutreach, id, err)
	}

	updated, err := found(s.store.RecordOutreach(ctx, id, string(lang)))
	if err != nil {
		return transport.OutreachResponse{}, err
	}
	return transport.OutreachResponse{Lead: updated, Script: script}, nil
}

// Score asks the AI scorer for a success probability and stores it.
func (s *Service) Score(ctx context.Context, id string) (domain.Lead, error) {
	if s.scorer == nil {
		return domain.Lead{}, apperr.Unavailable("AI scoring is not configured", nil)
	}
	lead, err := s.GetByID(id)
	if err != nil {
		return domain.Lead{}, err
	}
	if !s.markRunning(workflowScore, id) {
		return domain.Lead{}, apperr.Conflict("scoring already running for this lead")
	}
	defer s.markComplete(workflowScore, id)

	assessment, err := s.scorer.Score(ctx, lead)
	if err != nil {
		return domain.Lead{}, s.collaboratorFailed(ctx, workflowScore, id, err)
	}
	return found(s.store.RecordScore(ctx, id, assessment.Score, assessment.Reason))
}

// OutreachContext is the one-line description of a lead handed to the writer.
func OutreachContext(lead domain.Lead) string {
	return fmt.Sprintf("%s (%s)", lead.Name, lead.Industry())
}

// collaboratorFailed logs and publishes the failure, and returns an error the
// HTTP layer maps to 502 (or 503 when the breaker is open). A cancelled caller
// is returned as is and not reported.
func (s *Service) collaboratorFailed(ctx context.Context, workflow, leadID string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	s.log.CollaboratorError(workflow, leadID, err)
	if s.bus != nil {
		s.bus.Publish(ctx, events.CollaboratorFailed{
			BaseEvent:    events.NewBaseEvent(),
			Collaborator: workflow,
			LeadID:       leadID,
			Reason:       err.Error(),
		})
	}
	if apperr.GetKind(err) == apperr.KindUnknown {
		return apperr.Upstream(workflow+" failed", err)
	}
	return err
}

// markRunning attempts to mark a workflow as active for a lead. Returns false if one is already running.
func (s *Service) markRunning(workflow, leadID string) bool {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	key := workflow + ":" + leadID
	if s.activeRuns[key] {
		return false
	}
	s.activeRuns[key] = true
	return true
}

// markComplete removes the active run marker.
func (s *Service) markComplete(workflow, leadID string) {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	delete(s.activeRuns, workflow+":"+leadID)
}
