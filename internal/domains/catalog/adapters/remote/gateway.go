// Package remote adapts the fulfillment client to the catalog gateway port.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orderdesk/orderdesk/internal/clients/http/fulfillment"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway maps wire DTOs to catalog products and classifies failures.
type Gateway struct {
	client *fulfillment.Client
}

// NewGateway wraps the fulfillment client.
func NewGateway(client *fulfillment.Client) *Gateway {
	return &Gateway{client: client}
}

// ListProducts fetches and parses the remote catalog.
func (g *Gateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	dtos, err := g.client.ListProducts(ctx)
	if err != nil {
		return nil, classify(err)
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		product, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// GetProduct fetches one product.
func (g *Gateway) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	dto, err := g.client.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, classify(err)
	}
	return toDomain(dto)
}

// CreateProduct persists a new product remotely.
func (g *Gateway) CreateProduct(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	dto, err := g.client.CreateProduct(ctx, toDraftDTO(draft))
	if err != nil {
		return domain.Product{}, classify(err)
	}
	return toDomain(dto)
}

// UpdateProduct replaces a product remotely.
func (g *Gateway) UpdateProduct(ctx context.Context, id string, draft domain.Draft) (domain.Product, error) {
	dto, err := g.client.UpdateProduct(ctx, id, toDraftDTO(draft))
	if err != nil {
		return domain.Product{}, classify(err)
	}
	return toDomain(dto)
}

// DeleteProduct removes a product remotely.
func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	if err := g.client.DeleteProduct(ctx, id); err != nil {
		return classify(err)
	}
	return nil
}

// AdjustStock shifts a product's stock by a signed delta.
func (g *Gateway) AdjustStock(ctx context.Context, id string, delta int64) (domain.Product, error) {
	dto, err := g.client.AdjustStock(ctx, id, delta)
	if err != nil {
		return domain.Product{}, classify(err)
	}
	return toDomain(dto)
}

func classify(err error) error {
	switch {
	case errors.Is(err, fulfillment.ErrNotFound):
		return fmt.Errorf("%w: %v", ports.ErrNotFound, err)
	case errors.Is(err, fulfillment.ErrRejected):
		return fmt.Errorf("%w: %v", ports.ErrRemoteRejected, err)
	default:
		return fmt.Errorf("%w: %v", ports.ErrRemoteUnavailable, err)
	}
}

func toDomain(dto fulfillment.ProductDTO) (domain.Product, error) {
	if dto.ID == "" {
		return domain.Product{}, invalidPayload("product id missing")
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, dto.UpdatedAt)
	if err != nil {
		return domain.Product{}, invalidPayload("updatedAt %q", dto.UpdatedAt)
	}
	return domain.Product{
		ID:        dto.ID,
		Name:      dto.Name,
		Stock:     dto.Stock,
		Dimension: dto.Dimension,
		Threshold: dto.Threshold,
		UnitPrice: dto.UnitPrice,
		UpdatedAt: updatedAt,
	}, nil
}

func toDraftDTO(draft domain.Draft) fulfillment.ProductDraftDTO {
	return fulfillment.ProductDraftDTO{
		Name:      draft.Name,
		Stock:     draft.Stock,
		Dimension: draft.Dimension,
		Threshold: draft.Threshold,
		UnitPrice: draft.UnitPrice,
	}
}

func invalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: invalid product payload: %s", ports.ErrRemoteUnavailable, fmt.Sprintf(format, args...))
}
