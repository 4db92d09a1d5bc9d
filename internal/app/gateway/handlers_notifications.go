package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/adapters/http/mapper"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
	sharederrors "github.com/orderdesk/orderdesk/internal/shared/errors"
)

// NotificationHandlers serves the in-app notification routes.
type NotificationHandlers struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewNotificationHandlers wires the notification routes.
func NewNotificationHandlers(service ports.Service) *NotificationHandlers {
	return &NotificationHandlers{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapNotificationError),
	}
}

func mapNotificationError(err error) (sharederrors.ProblemDetail, bool) {
	if errors.Is(err, ports.ErrNotFound) {
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

// List handles GET /api/notifications, returning the records most recent
// first with the derived unread count.
func (h *NotificationHandlers) List(c *gin.Context) {
	notifications, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	unread, err := h.service.UnreadCount(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ListResponse{
		Notifications: mapper.FromDomainList(notifications),
		UnreadCount:   unread,
	})
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationHandlers) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationHandlers) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context()); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/notifications.
func (h *NotificationHandlers) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandlers) UnreadCount(c *gin.Context) {
	unread, err := h.service.UnreadCount(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": unread})
}
