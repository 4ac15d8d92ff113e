package assistant

import (
	"net/http"

	apphttp "riseleads_backend/internal/http"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/httpkit"
	"riseleads_backend/platform/logger"
	"riseleads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module wires the assistant chat endpoint.
type Module struct {
	svc *Service
}

func NewModule(gen gemini.Generator, log *logger.Logger) *Module {
	return &Module{svc: NewService(gen, log)}
}

func (m *Module) Name() string {
	return "assistant"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/assistant/chat", ctx.CollaboratorLimit, m.chat)
}

func (m *Module) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := validator.Validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.FieldErrors(err))
		return
	}

	msg, err := m.svc.Chat(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}

var _ apphttp.Module = (*Module)(nil)
