package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderdesk/orderdesk/internal/domains/orders/adapters/http/mapper"
	"github.com/orderdesk/orderdesk/internal/domains/orders/application"
	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
	sharederrors "github.com/orderdesk/orderdesk/internal/shared/errors"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// OrderHandlers serves the order routes for the session actor.
type OrderHandlers struct {
	service   ports.Service
	actor     identity.Actor
	responder *sharederrors.ChainedResponder
}

// NewOrderHandlers wires the order routes.
func NewOrderHandlers(service ports.Service, actor identity.Actor) *OrderHandlers {
	return &OrderHandlers{
		service:   service,
		actor:     actor,
		responder: sharederrors.NewChainedResponder("", mapOrderError),
	}
}

func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidTransition), errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority), errors.Is(err, domain.ErrInvalidPaymentCondition):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrForbidden):
		return sharederrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteRejected):
		return sharederrors.ErrUpstreamRejected.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteUnavailable):
		return sharederrors.ErrUpstreamUnavailable.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

// List handles GET /api/orders. A truthy refresh query forces a remote
// re-fetch, the session's only reconciliation mechanism.
func (h *OrderHandlers) List(c *gin.Context) {
	var (
		orders []domain.Order
		err    error
	)
	if c.Query("refresh") == "true" {
		orders, err = h.service.Refresh(c.Request.Context(), h.actor, ports.Filter{
			Status: domain.Status(c.Query("status")),
		})
	} else {
		orders, err = h.service.List(c.Request.Context(), h.actor)
	}
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainList(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandlers) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), h.actor, c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(*order))
}

// Create handles POST /api/orders.
func (h *OrderHandlers) Create(c *gin.Context) {
	var payload mapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	draft, err := mapper.ToDraft(payload)
	if err != nil {
		h.responder.Respond(c, sharederrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	order, err := h.service.Create(c.Request.Context(), h.actor, draft)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomain(*order))
}

// Transition handles PATCH /api/orders/:id.
func (h *OrderHandlers) Transition(c *gin.Context) {
	var payload mapper.PatchOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	patch, err := mapper.ToPatch(payload)
	if err != nil {
		h.responder.Respond(c, sharederrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	order, err := h.service.Transition(c.Request.Context(), h.actor, c.Param("id"), patch)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(*order))
}

// MarkPaid handles POST /api/orders/:id/payment.
func (h *OrderHandlers) MarkPaid(c *gin.Context) {
	order, err := h.service.MarkPaid(c.Request.Context(), h.actor, c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(*order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandlers) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), h.actor, c.Param("id")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/orders/stats.
func (h *OrderHandlers) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), h.actor)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromStats(stats))
}
