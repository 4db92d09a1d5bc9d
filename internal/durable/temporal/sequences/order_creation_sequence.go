package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	orderactivities "github.com/orderdesk/orderdesk/internal/platform/temporal/activities/orders"
)

// RunOrderCreationSequence executes the ordered activities that provision a
// new order: remote create, then one stock decrement per line item. If any
// decrement cannot complete after retries, the earlier decrements are
// reversed and the just-created order is deleted so no partially-applied
// creation survives.
func RunOrderCreationSequence(ctx workflow.Context, order domain.Order) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order creation sequence started", "customer", order.CustomerName)

	createOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	decrementOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}
	compensateOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var created domain.Order
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, createOptions),
		orderactivities.CreateRemoteOrderActivityName, order,
	).Get(ctx, &created)
	if err != nil {
		logger.Error("order creation sequence failed to create order", "error", err)
		return nil, err
	}
	logger.Info("order creation sequence created order", "orderId", created.ID)

	for i, item := range created.Items {
		decrement := orderactivities.StockDecrement{ProductID: item.ProductID, Quantity: item.Quantity}
		if err := workflow.ExecuteActivity(
			workflow.WithActivityOptions(ctx, decrementOptions),
			orderactivities.DecrementStockActivityName, decrement,
		).Get(ctx, nil); err != nil {
			logger.Error("order creation sequence stock decrement failed, compensating",
				"orderId", created.ID, "productId", item.ProductID, "error", err)
			// Reverse the decrements that already landed before deleting the order.
			for _, done := range created.Items[:i] {
				restock := orderactivities.StockDecrement{ProductID: done.ProductID, Quantity: done.Quantity}
				if restockErr := workflow.ExecuteActivity(
					workflow.WithActivityOptions(ctx, compensateOptions),
					orderactivities.RestockActivityName, restock,
				).Get(ctx, nil); restockErr != nil {
					logger.Error("order creation sequence restock failed",
						"orderId", created.ID, "productId", done.ProductID, "error", restockErr)
				}
			}
			if compErr := workflow.ExecuteActivity(
				workflow.WithActivityOptions(ctx, compensateOptions),
				orderactivities.CompensateDeleteActivityName, created.ID,
			).Get(ctx, nil); compErr != nil {
				logger.Error("order creation sequence compensation failed", "orderId", created.ID, "error", compErr)
			}
			return nil, err
		}
	}

	logger.Info("order creation sequence completed", "orderId", created.ID)
	return &created, nil
}
