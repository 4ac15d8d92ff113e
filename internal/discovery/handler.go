package discovery

import (
	"net/http"

	"riseleads_backend/platform/httpkit"
	"riseleads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the lead discovery endpoints.
type Handler struct {
	svc *Service
}

type promoteResponse struct {
	Lead      any  `json:"lead"`
	Duplicate bool `json:"duplicate"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Search handles POST /api/v1/discovery/search
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Promote handles POST /api/v1/discovery/promote
func (h *Handler) Promote(c *gin.Context) {
	var req PromoteRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.svc.Promote(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	httpkit.JSON(c, status, promoteResponse{Lead: res.Lead, Duplicate: res.Duplicate})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return false
	}
	if err := validator.Validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.FieldErrors(err))
		return false
	}
	return true
}
