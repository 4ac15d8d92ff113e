// Package management handles lead CRUD and the collaborator workflows.
// This is a vertically sliced feature package: the store owns state, this
// package turns requests into store operations and guards collaborator calls.
package management

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"riseleads_backend/internal/events"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/leads/ports"
	"riseleads_backend/internal/leads/store"
	"riseleads_backend/internal/leads/transport"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"
	"riseleads_backend/platform/phone"
	"riseleads_backend/platform/sanitize"
)

const leadNotFoundMsg = "lead not found"

// Service handles lead management operations.
type Service struct {
	store     *store.Store
	enricher  ports.LeadEnricher
	outreach  ports.OutreachGenerator
	scorer    ports.LeadScorer
	scheduler ports.EnrichmentScheduler
	phones    *phone.Normalizer
	bus       events.Bus
	log       *logger.Logger

	// in-flight collaborator calls keyed by workflow and lead id
	activeRuns map[string]bool
	runsMu     sync.Mutex
}

// Deps holds the collaborators. Nil collaborators disable their workflow.
type Deps struct {
	Enricher  ports.LeadEnricher
	Outreach  ports.OutreachGenerator
	Scorer    ports.LeadScorer
	Scheduler ports.EnrichmentScheduler
}

// New creates a new lead management service.
func New(st *store.Store, deps Deps, phones *phone.Normalizer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:      st,
		enricher:   deps.Enricher,
		outreach:   deps.Outreach,
		scorer:     deps.Scorer,
		scheduler:  deps.Scheduler,
		phones:     phones,
		bus:        bus,
		log:        log,
		activeRuns: make(map[string]bool),
	}
}

// SetScheduler attaches the background job scheduler once it exists.
func (s *Service) SetScheduler(scheduler ports.EnrichmentScheduler) {
	s.scheduler = scheduler
}

// List returns leads whose name or category contains query (case-insensitive),
// ranked by qualification score, highest first. Ties keep pipeline order.
func (s *Service) List(query string) []domain.Lead {
	return FilterAndRank(s.store.List(), query)
}

// FilterAndRank applies the pipeline view's search and ordering.
func FilterAndRank(leads []domain.Lead, query string) []domain.Lead {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Category), q) {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Lead) int {
		return cmp.Compare(b.QualScore(), a.QualScore())
	})
	return out
}

// GetByID retrieves a lead by ID.
func (s *Service) GetByID(id string) (domain.Lead, error) {
	lead, ok := s.store.Get(id)
	if !ok {
		return domain.Lead{}, apperr.NotFound(leadNotFoundMsg)
	}
	return lead, nil
}

// Create adds a lead. A duplicate is reported in the result, not as an error.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (store.CreateResult, error) {
	lead := domain.Lead{
		ID:       strings.TrimSpace(req.ID),
		Name:     sanitize.Line(req.Name),
		Address:  sanitize.Line(req.Address),
		Phone:    s.phones.NormalizeE164(req.Phone),
		Website:  strings.TrimSpace(req.Website),
		Rating:   req.Rating,
		Reviews:  req.Reviews,
		MapsURL:  strings.TrimSpace(req.MapsURL),
		Status:   domain.Status(req.Status),
		Category: sanitize.Line(req.Category),
		AuditLog: []domain.AuditEntry{},
	}
	if lead.Name == "" {
		return store.CreateResult{}, apperr.Validation("lead name is required")
	}
	return s.store.Create(ctx, lead)
}

// Update merges the provided descriptive fields into the lead.
func (s *Service) Update(ctx context.Context, id string, req transport.UpdateLeadRequest) (domain.Lead, error) {
	patch := domain.LeadPatch{
		Name:     sanitize.LinePtr(req.Name),
		Address:  sanitize.LinePtr(req.Address),
		Website:  trimmed(req.Website),
		Rating:   req.Rating,
		Reviews:  req.Reviews,
		MapsURL:  trimmed(req.MapsURL),
		Category: sanitize.LinePtr(req.Category),
	}
	if req.Phone != nil {
		normalized := s.phones.NormalizeE164(*req.Phone)
		patch.Phone = &normalized
	}
	if patch.Name != nil && *patch.Name == "" {
		return domain.Lead{}, apperr.Validation("lead name cannot be empty")
	}
	if patch.IsEmpty() {
		return s.GetByID(id)
	}

	res, err := s.store.Update(ctx, id, patch)
	return found(res, err)
}

// Delete removes a lead and its timeline.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := found(s.store.Delete(ctx, id))
	return err
}

// ChangeStatus moves the lead to a new workflow status.
func (s *Service) ChangeStatus(ctx context.Context, id string, status domain.Status) (domain.Lead, error) {
	return found(s.store.ChangeStatus(ctx, id, status))
}

// AddNote records an operator note on the lead's timeline.
func (s *Service) AddNote(ctx context.Context, id, body string) (domain.Lead, error) {
	return found(s.store.RecordNote(ctx, id, sanitize.Text(body)))
}

// AuditLog returns the lead's timeline, newest first.
func (s *Service) AuditLog(id string) ([]domain.AuditEntry, error) {
	lead, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return lead.AuditLog, nil
}

func found(res store.Result, err error) (domain.Lead, error) {
	if err != nil {
		return domain.Lead{}, err
	}
	if !res.Found {
		return domain.Lead{}, apperr.NotFound(leadNotFoundMsg)
	}
	return res.Lead, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
