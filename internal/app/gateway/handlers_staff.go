package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderdesk/orderdesk/internal/domains/staff/adapters/http/mapper"
	"github.com/orderdesk/orderdesk/internal/domains/staff/application"
	staffdomain "github.com/orderdesk/orderdesk/internal/domains/staff/domain"
	"github.com/orderdesk/orderdesk/internal/domains/staff/ports"
	sharederrors "github.com/orderdesk/orderdesk/internal/shared/errors"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// StaffHandlers serves the staff directory routes.
type StaffHandlers struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewStaffHandlers wires the staff routes.
func NewStaffHandlers(service ports.Service) *StaffHandlers {
	return &StaffHandlers{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapStaffError),
	}
}

func mapStaffError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidMember), errors.Is(err, identity.ErrInvalidRole):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteRejected):
		return sharederrors.ErrUpstreamRejected.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteUnavailable):
		return sharederrors.ErrUpstreamUnavailable.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

// List handles GET /api/staff.
func (h *StaffHandlers) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainList(members))
}

// Create handles POST /api/staff.
func (h *StaffHandlers) Create(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}
	member, err := h.service.Create(c.Request.Context(), draft)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomain(*member))
}

// Update handles PUT /api/staff/:id.
func (h *StaffHandlers) Update(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}
	member, err := h.service.Update(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(*member))
}

// Delete handles DELETE /api/staff/:id.
func (h *StaffHandlers) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StaffHandlers) bindDraft(c *gin.Context) (draft staffdomain.Draft, ok bool) {
	var payload mapper.MutationMember
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return draft, false
	}
	parsed, err := mapper.ToDraft(payload)
	if err != nil {
		h.responder.Respond(c, sharederrors.ErrValidation.WithDetail(err.Error()))
		return draft, false
	}
	return parsed, true
}
