// Package discovery finds businesses through a maps-grounded model and promotes
// them into the lead pipeline.
package discovery

import (
	apphttp "riseleads_backend/internal/http"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/logger"
)

// Module wires the discovery HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(gen gemini.Generator, model string, leads LeadCreator, log *logger.Logger) *Module {
	svc := NewService(gen, model, leads, log)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "discovery"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/discovery")
	group.POST("/search", ctx.CollaboratorLimit, m.handler.Search)
	group.POST("/promote", m.handler.Promote)
}

var _ apphttp.Module = (*Module)(nil)
