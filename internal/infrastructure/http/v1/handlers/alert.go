package handlers

import (
	"github.com/gin-gonic/gin"

	"prepstock/internal/domain/alert"
	"prepstock/internal/infrastructure/http/v1/dto"
)

// AlertHandler provides alert endpoints.
type AlertHandler struct {
	*BaseHandler
	service *alert.Service
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(base *BaseHandler, service *alert.Service) *AlertHandler {
	return &AlertHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers alert endpoints on the group.
func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/unread-count", h.UnreadCount)
	rg.POST("/:id/read", h.MarkRead)
}

// List retrieves a user's alerts, newest first.
// GET /api/v1/alerts
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.service.List(c.Request.Context(), h.UserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAlerts(alerts))
}

// UnreadCount returns the unread alert counter.
// GET /api/v1/alerts/unread-count
func (h *AlertHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), h.UserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.UnreadCountResponse{Count: count})
}

// MarkRead flags an alert as read.
// POST /api/v1/alerts/:id/read
func (h *AlertHandler) MarkRead(c *gin.Context) {
	alertID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), h.UserID(c), alertID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "alert marked read")
}
