// Package leads provides the lead pipeline bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"
	"fmt"

	"riseleads_backend/internal/events"
	apphttp "riseleads_backend/internal/http"
	"riseleads_backend/internal/leads/agent"
	"riseleads_backend/internal/leads/handler"
	"riseleads_backend/internal/leads/management"
	"riseleads_backend/internal/leads/ports"
	"riseleads_backend/internal/leads/repository"
	"riseleads_backend/internal/leads/store"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/logger"
	"riseleads_backend/platform/phone"
)

// Deps holds what the leads module needs from the composition root.
type Deps struct {
	Repository repository.Repository
	Notifier   store.Notifier
	EventBus   events.Bus
	Enricher   ports.LeadEnricher
	// Generator is nil when AI is not configured; outreach and scoring then
	// answer 503.
	Generator   gemini.Generator
	PhoneRegion string
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	store      *store.Store
	management *management.Service
	handler    *handler.Handler
}

// NewModule creates the module and loads the persisted pipeline.
func NewModule(ctx context.Context, deps Deps, log *logger.Logger) (*Module, error) {
	st := store.New(deps.Repository, deps.Notifier, deps.EventBus, log)
	if err := st.Load(ctx); err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}

	mgmtDeps := management.Deps{Enricher: deps.Enricher}
	if deps.Generator != nil {
		mgmtDeps.Outreach = agent.NewOutreachWriter(deps.Generator)
		mgmtDeps.Scorer = agent.NewLeadScorer(deps.Generator)
	}
	mgmtSvc := management.New(st, mgmtDeps, phone.NewNormalizer(deps.PhoneRegion), deps.EventBus, log)

	return &Module{
		store:      st,
		management: mgmtSvc,
		handler:    handler.New(mgmtSvc),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Store returns the lead store for read-side consumers such as the dashboard.
func (m *Module) Store() *store.Store {
	return m.store
}

// ManagementService returns the lead management service for external use.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// SetEnrichmentScheduler enables ?async=true enrichment.
func (m *Module) SetEnrichmentScheduler(scheduler ports.EnrichmentScheduler) {
	m.management.SetScheduler(scheduler)
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"), ctx.CollaboratorLimit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
