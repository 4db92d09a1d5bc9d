// Package workflows provides the inline and Temporal implementations of the
// order-creation orchestration.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
	orderworkflows "github.com/orderdesk/orderdesk/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.CreationOrchestrator = (*TemporalOrderCreation)(nil)
	_ ports.CreationOrchestrator = (*InlineOrderCreation)(nil)
)

// TemporalOrderCreation starts order-creation workflows on a Temporal cluster.
type TemporalOrderCreation struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderCreation wires a Temporal client into the orchestrator.
func NewTemporalOrderCreation(c client.Client) *TemporalOrderCreation {
	return &TemporalOrderCreation{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue}
}

// CreateOrder runs the durable creation sequence and waits for its result.
func (o *TemporalOrderCreation) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if o == nil || o.client == nil {
		return domain.Order{}, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-creation-%s", traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflow,
		orderworkflows.OrderCreationWorkflowInput{Order: order, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var created domain.Order
			if err := existingRun.Get(ctx, &created); err != nil {
				return domain.Order{}, err
			}
			return created, nil
		}
		return domain.Order{}, err
	}
	var created domain.Order
	if err := run.Get(ctx, &created); err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

// InlineOrderCreation executes the creation sequence in-process, the default
// when no Temporal cluster is configured. The compensating delete keeps the
// remote store free of half-created orders.
type InlineOrderCreation struct {
	gateway ports.Gateway
	stock   ports.StockAdjuster
	logger  *slog.Logger
}

// Option configures the inline orchestrator.
type Option func(*InlineOrderCreation)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *InlineOrderCreation) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewInlineOrderCreation wires the in-process creation sequence.
func NewInlineOrderCreation(gateway ports.Gateway, stock ports.StockAdjuster, opts ...Option) *InlineOrderCreation {
	o := &InlineOrderCreation{
		gateway: gateway,
		stock:   stock,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// CreateOrder creates the order remotely, decrements stock per line item, and
// compensates with a delete if any decrement fails.
func (o *InlineOrderCreation) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if o == nil || o.gateway == nil {
		return domain.Order{}, errors.New("inline order creation not configured")
	}
	created, err := o.gateway.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	if o.stock == nil {
		return created, nil
	}
	decremented := make([]domain.LineItem, 0, len(created.Items))
	for _, item := range created.Items {
		if err := o.stock.Decrement(ctx, item.ProductID, item.Quantity); err != nil {
			o.logger.Error("stock decrement failed, compensating order creation",
				slog.String("order.id", created.ID),
				slog.String("product.id", item.ProductID),
				slog.String("error", err.Error()))
			o.restock(ctx, created.ID, decremented)
			if delErr := o.gateway.DeleteOrder(ctx, created.ID); delErr != nil {
				o.logger.Error("compensating delete failed, order may be orphaned",
					slog.String("order.id", created.ID),
					slog.String("error", delErr.Error()))
				return domain.Order{}, errors.Join(err, delErr)
			}
			return domain.Order{}, fmt.Errorf("stock decrement for product %s: %w", item.ProductID, err)
		}
		decremented = append(decremented, item)
	}
	return created, nil
}

// restock reverses the decrements that landed before the sequence failed.
// Best effort: a line that cannot be restocked is logged and skipped so the
// compensating delete still runs.
func (o *InlineOrderCreation) restock(ctx context.Context, orderID string, items []domain.LineItem) {
	for _, item := range items {
		if err := o.stock.Restock(ctx, item.ProductID, item.Quantity); err != nil {
			o.logger.Error("compensating restock failed",
				slog.String("order.id", orderID),
				slog.String("product.id", item.ProductID),
				slog.String("error", err.Error()))
		}
	}
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
