// Package memory fakes the remote order service for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway implements the remote contract against an in-process map.
type Gateway struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	seq    int
	now    func() time.Time
}

// NewGateway constructs an empty in-memory gateway.
func NewGateway() *Gateway {
	return &Gateway{
		orders: map[string]domain.Order{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (g *Gateway) WithClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Seed loads pre-existing orders, as if the remote store already held them.
func (g *Gateway) Seed(orders ...domain.Order) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, order := range orders {
		g.orders[order.ID] = order
	}
}

// ListOrders returns matching orders.
func (g *Gateway) ListOrders(_ context.Context, filter ports.Filter) ([]domain.Order, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var result []domain.Order
	for _, order := range g.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.AssignedTo != "" && order.AssignedTo != filter.AssignedTo {
			continue
		}
		if filter.CreatedBy != "" && order.CreatedBy != filter.CreatedBy {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

// CreateOrder assigns identity and persists the order.
func (g *Gateway) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	order.ID = uuid.NewString()
	if order.Number == "" {
		order.Number = fmt.Sprintf("%04d", g.seq)
	}
	order.Status = domain.StatusPending
	order.CreatedAt = g.now()
	order.Total = order.ComputeTotal()
	g.orders[order.ID] = order
	return order, nil
}

// UpdateOrder applies the patch with full transition semantics, echoing the
// resulting record the way the real service does.
func (g *Gateway) UpdateOrder(_ context.Context, id string, patch domain.Patch) (domain.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	if err := order.Apply(patch, g.now()); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ports.ErrRemoteRejected, err)
	}
	g.orders[id] = order
	return order, nil
}

// MarkOrderPaid flags the order as paid.
func (g *Gateway) MarkOrderPaid(_ context.Context, id string) (domain.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	paid := true
	if err := order.Apply(domain.Patch{Paid: &paid}, g.now()); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ports.ErrRemoteRejected, err)
	}
	g.orders[id] = order
	return order, nil
}

// DeleteOrder removes the order.
func (g *Gateway) DeleteOrder(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.orders, id)
	return nil
}
