package handler

import (
	"net/http"

	"riseleads_backend/internal/notification/inapp"
	"riseleads_backend/internal/notification/sse"
	"riseleads_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type HTTPHandler struct {
	svc    *inapp.Service
	stream *sse.Service
}

type listResponse struct {
	Items  []inapp.Notification `json:"items"`
	Unread int                  `json:"unread"`
}

func NewHTTPHandler(svc *inapp.Service, stream *sse.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc, stream: stream}
}

func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/stream", h.stream.Handler())
	rg.POST("/:id/read", h.MarkRead)
	rg.POST("/read-all", h.MarkAllRead)
	rg.DELETE("", h.Clear)
}

func (h *HTTPHandler) List(c *gin.Context) {
	httpkit.OK(c, listResponse{Items: h.svc.List(), Unread: h.svc.CountUnread()})
}

func (h *HTTPHandler) MarkRead(c *gin.Context) {
	if httpkit.HandleError(c, h.svc.MarkRead(c.Param("id"))) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) MarkAllRead(c *gin.Context) {
	h.svc.MarkAllRead()
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) Clear(c *gin.Context) {
	h.svc.Clear()
	c.Status(http.StatusNoContent)
}
