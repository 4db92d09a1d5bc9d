package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	ordersports "github.com/orderdesk/orderdesk/internal/domains/orders/ports"
)

const (
	// CreateRemoteOrderActivityName persists a new order on the remote service.
	CreateRemoteOrderActivityName = "orders.activities.CreateRemoteOrder"
	// DecrementStockActivityName decrements one product's stock.
	DecrementStockActivityName = "orders.activities.DecrementStock"
	// RestockActivityName reverses one stock decrement after a failed sequence.
	RestockActivityName = "orders.activities.Restock"
	// CompensateDeleteActivityName removes a remote order after a failed sequence.
	CompensateDeleteActivityName = "orders.activities.CompensateDelete"
)

// StockDecrement is the per-item activity input.
type StockDecrement struct {
	ProductID string
	Quantity  int64
}

// Activities groups activities that operate on the order-creation sequence.
type Activities struct {
	gateway ordersports.Gateway
	stock   ordersports.StockAdjuster
}

// NewActivities wires the orders collaborators into the Temporal activities bundle.
func NewActivities(gateway ordersports.Gateway, stock ordersports.StockAdjuster) *Activities {
	return &Activities{gateway: gateway, stock: stock}
}

// CreateRemoteOrder persists the order and returns the authoritative record.
func (a *Activities) CreateRemoteOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.gateway == nil {
		logger.Error("order creation activity not initialized")
		return nil, errors.New("order creation activity not initialized")
	}
	logger.Info("CreateRemoteOrder activity started", "customer", order.CustomerName)
	created, err := a.gateway.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("CreateRemoteOrder activity failed", "error", err)
		return nil, err
	}
	logger.Info("CreateRemoteOrder activity completed", "orderId", created.ID)
	return &created, nil
}

// DecrementStock shifts one product's stock down by the ordered quantity.
func (a *Activities) DecrementStock(ctx context.Context, input StockDecrement) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.stock == nil {
		logger.Error("stock decrement activity not initialized", "productId", input.ProductID)
		return errors.New("stock decrement activity not initialized")
	}
	logger.Info("DecrementStock activity started", "productId", input.ProductID, "quantity", input.Quantity)
	if err := a.stock.Decrement(ctx, input.ProductID, input.Quantity); err != nil {
		logger.Error("DecrementStock activity failed", "productId", input.ProductID, "error", err)
		return err
	}
	logger.Info("DecrementStock activity completed", "productId", input.ProductID)
	return nil
}

// Restock reverses one decrement from earlier in a failed sequence.
func (a *Activities) Restock(ctx context.Context, input StockDecrement) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.stock == nil {
		logger.Error("restock activity not initialized", "productId", input.ProductID)
		return errors.New("restock activity not initialized")
	}
	logger.Info("Restock activity started", "productId", input.ProductID, "quantity", input.Quantity)
	if err := a.stock.Restock(ctx, input.ProductID, input.Quantity); err != nil {
		logger.Error("Restock activity failed", "productId", input.ProductID, "error", err)
		return err
	}
	logger.Info("Restock activity completed", "productId", input.ProductID)
	return nil
}

// CompensateDelete removes the order created earlier in a failed sequence.
func (a *Activities) CompensateDelete(ctx context.Context, orderID string) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.gateway == nil {
		logger.Error("compensate delete activity not initialized", "orderId", orderID)
		return errors.New("compensate delete activity not initialized")
	}
	logger.Info("CompensateDelete activity started", "orderId", orderID)
	if err := a.gateway.DeleteOrder(ctx, orderID); err != nil {
		logger.Error("CompensateDelete activity failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("CompensateDelete activity completed", "orderId", orderID)
	return nil
}
