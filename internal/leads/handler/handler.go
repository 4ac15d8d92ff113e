package handler

import (
	"net/http"
	"strconv"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/leads/management"
	"riseleads_backend/internal/leads/transport"
	"riseleads_backend/platform/httpkit"
	"riseleads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *management.Service
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *management.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the lead routes. collaboratorLimit guards the routes
// that call paid collaborators.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, collaboratorLimit gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.GET("/:id/audit", h.AuditLog)
	rg.POST("/:id/notes", h.AddNote)

	ai := rg.Group("", collaboratorLimit)
	ai.POST("/:id/enrich", h.Enrich)
	ai.POST("/:id/outreach", h.GenerateOutreach)
	ai.POST("/:id/score", h.Score)
}

func (h *Handler) List(c *gin.Context) {
	items := h.svc.List(c.Query("q"))
	httpkit.OK(c, transport.LeadListResponse{Items: items, Total: len(items)})
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	httpkit.JSON(c, status, transport.CreateLeadResponse{Lead: res.Lead, Duplicate: res.Duplicate})
}

func (h *Handler) GetByID(c *gin.Context) {
	lead, err := h.svc.GetByID(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateLeadRequest
	if !bind(c, &req) {
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Delete(c *gin.Context) {
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), c.Param("id"))) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateLeadStatusRequest
	if !bind(c, &req) {
		return
	}

	lead, err := h.svc.ChangeStatus(c.Request.Context(), c.Param("id"), domain.Status(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) AuditLog(c *gin.Context) {
	id := c.Param("id")
	entries, err := h.svc.AuditLog(id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.AuditLogResponse{LeadID: id, Items: entries})
}

func (h *Handler) AddNote(c *gin.Context) {
	var req transport.CreateNoteRequest
	if !bind(c, &req) {
		return
	}

	lead, err := h.svc.AddNote(c.Request.Context(), c.Param("id"), req.Body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, lead)
}

// Enrich runs the enrichment inline, or queues it when ?async=true.
func (h *Handler) Enrich(c *gin.Context) {
	id := c.Param("id")
	if async, _ := strconv.ParseBool(c.Query("async")); async {
		resp, err := h.svc.EnqueueEnrichment(c.Request.Context(), id)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.JSON(c, http.StatusAccepted, resp)
		return
	}

	lead, err := h.svc.Enrich(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) GenerateOutreach(c *gin.Context) {
	var req transport.OutreachRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	resp, err := h.svc.GenerateOutreach(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Score(c *gin.Context) {
	lead, err := h.svc.Score(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// bind decodes and validates a JSON body, writing a 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := validator.Validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}
