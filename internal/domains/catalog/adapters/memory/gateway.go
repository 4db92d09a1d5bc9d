// Package memory provides an in-memory catalog gateway for tests and
// offline development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway is a thread-safe in-memory stand-in for the remote catalog.
type Gateway struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	now      func() time.Time
}

// NewGateway builds an empty in-memory catalog.
func NewGateway() *Gateway {
	return &Gateway{
		products: map[string]domain.Product{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (g *Gateway) WithClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Seed inserts products directly, bypassing validation.
func (g *Gateway) Seed(products ...domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, product := range products {
		g.products[product.ID] = product
	}
}

// ListProducts returns all stored products.
func (g *Gateway) ListProducts(_ context.Context) ([]domain.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	products := make([]domain.Product, 0, len(g.products))
	for _, product := range g.products {
		products = append(products, product)
	}
	return products, nil
}

// GetProduct returns one product.
func (g *Gateway) GetProduct(_ context.Context, id string) (domain.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	product, ok := g.products[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	return product, nil
}

// CreateProduct stores a new product with a generated identity.
func (g *Gateway) CreateProduct(_ context.Context, draft domain.Draft) (domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	product := domain.Product{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		Stock:     draft.Stock,
		Dimension: draft.Dimension,
		Threshold: draft.Threshold,
		UnitPrice: draft.UnitPrice,
		UpdatedAt: g.now(),
	}
	g.products[product.ID] = product
	return product, nil
}

// UpdateProduct replaces a stored product.
func (g *Gateway) UpdateProduct(_ context.Context, id string, draft domain.Draft) (domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	product, ok := g.products[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	product.Name = draft.Name
	product.Stock = draft.Stock
	product.Dimension = draft.Dimension
	product.Threshold = draft.Threshold
	product.UnitPrice = draft.UnitPrice
	product.UpdatedAt = g.now()
	g.products[id] = product
	return product, nil
}

// DeleteProduct removes a stored product.
func (g *Gateway) DeleteProduct(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.products, id)
	return nil
}

// AdjustStock shifts a product's stock by a signed delta. The remote service
// rejects adjustments that would take stock negative; the fake does the same.
func (g *Gateway) AdjustStock(_ context.Context, id string, delta int64) (domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	product, ok := g.products[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	if product.Stock+delta < 0 {
		return domain.Product{}, ports.ErrRemoteRejected
	}
	product.Stock += delta
	product.UpdatedAt = g.now()
	g.products[id] = product
	return product, nil
}
