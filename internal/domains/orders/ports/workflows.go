package ports

import (
	"context"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
)

// StockAdjuster shifts product stock as a side effect of order creation.
// Owned by the catalog context; the orchestrator drives it per line item.
// Restock undoes an earlier Decrement during compensation.
type StockAdjuster interface {
	Decrement(ctx context.Context, productID string, quantity int64) error
	Restock(ctx context.Context, productID string, quantity int64) error
}

// CreationOrchestrator runs the create-order-then-decrement-stock sequence.
// A partial stock decrement must not survive: implementations compensate by
// restocking already-decremented lines, deleting the just-created remote
// order, and reporting the failure.
type CreationOrchestrator interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}
