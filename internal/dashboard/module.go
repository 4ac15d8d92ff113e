package dashboard

import (
	apphttp "riseleads_backend/internal/http"
	"riseleads_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module serves GET /api/v1/dashboard.
type Module struct {
	leads LeadLister
}

func NewModule(leads LeadLister) *Module {
	return &Module{leads: leads}
}

func (m *Module) Name() string {
	return "dashboard"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/dashboard", m.stats)
}

func (m *Module) stats(c *gin.Context) {
	httpkit.OK(c, Compute(m.leads.List()))
}

var _ apphttp.Module = (*Module)(nil)
