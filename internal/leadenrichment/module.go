// Package leadenrichment provides the composition root for lead enrichment.
package leadenrichment

import (
	"riseleads_backend/internal/leadenrichment/client"
	"riseleads_backend/internal/leadenrichment/service"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"
)

// Module wires the lead enrichment service.
type Module struct {
	service *service.Service
}

// NewModule selects the HTTP provider when ENRICHMENT_API_URL is set and the
// simulated provider otherwise.
func NewModule(cfg config.EnrichmentConfig, log *logger.Logger) *Module {
	var provider service.Provider
	if cfg.GetEnrichmentAPIURL() != "" {
		provider = client.New(cfg.GetEnrichmentAPIURL(), cfg.GetEnrichmentAPIKey(), cfg.GetAITimeout(), log)
	} else {
		provider = client.NewSimulated(0)
	}
	log.Info("lead enrichment provider selected", "provider", provider.Name())

	return &Module{service: service.New(provider, cfg.GetEnrichmentCacheTTL(), log)}
}

// Service returns the enrichment service.
func (m *Module) Service() *service.Service {
	return m.service
}
