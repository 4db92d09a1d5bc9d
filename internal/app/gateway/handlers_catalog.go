package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/adapters/http/mapper"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/application"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
	sharederrors "github.com/orderdesk/orderdesk/internal/shared/errors"
)

// CatalogHandlers serves the product routes.
type CatalogHandlers struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewCatalogHandlers wires the product routes.
func NewCatalogHandlers(service ports.Service) *CatalogHandlers {
	return &CatalogHandlers{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapCatalogError),
	}
}

func mapCatalogError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidProduct):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteRejected):
		return sharederrors.ErrUpstreamRejected.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrRemoteUnavailable):
		return sharederrors.ErrUpstreamUnavailable.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

// List handles GET /api/products.
func (h *CatalogHandlers) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainList(products))
}

// Create handles POST /api/products.
func (h *CatalogHandlers) Create(c *gin.Context) {
	var payload mapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := h.service.Create(c.Request.Context(), mapper.ToDraft(payload))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomain(*product))
}

// Update handles PUT /api/products/:id.
func (h *CatalogHandlers) Update(c *gin.Context) {
	var payload mapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := h.service.Update(c.Request.Context(), c.Param("id"), mapper.ToDraft(payload))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(*product))
}

// Delete handles DELETE /api/products/:id.
func (h *CatalogHandlers) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sweep handles POST /api/products/lowstock-sweep, one on-demand detection
// pass in addition to the daemon's background ticker.
func (h *CatalogHandlers) Sweep(c *gin.Context) {
	report, err := h.service.SweepLowStock(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSweepReport(report))
}
