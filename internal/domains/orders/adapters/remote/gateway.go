// Package remote adapts the fulfillment client to the orders gateway port,
// validating every payload at the boundary before it reaches the domain.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orderdesk/orderdesk/internal/clients/http/fulfillment"
	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway maps wire DTOs to strongly-typed orders and classifies failures.
type Gateway struct {
	client *fulfillment.Client
}

// NewGateway wraps the fulfillment client.
func NewGateway(client *fulfillment.Client) *Gateway {
	return &Gateway{client: client}
}

// ListOrders fetches and parses the remote order collection.
func (g *Gateway) ListOrders(ctx context.Context, filter ports.Filter) ([]domain.Order, error) {
	dtos, err := g.client.ListOrders(ctx, fulfillment.OrderFilter{
		Status:     string(filter.Status),
		AssignedTo: filter.AssignedTo,
		CreatedBy:  filter.CreatedBy,
	})
	if err != nil {
		return nil, classify(err)
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CreateOrder persists a new order remotely.
func (g *Gateway) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	draft := fulfillment.OrderDraftDTO{
		Number:           order.Number,
		CustomerName:     order.CustomerName,
		PaymentCondition: string(order.PaymentCondition),
		Priority:         string(order.Priority),
		CreatedBy:        order.CreatedBy,
		Items:            toItemDTOs(order.Items),
		Total:            order.ComputeTotal(),
	}
	if order.AssignedTo != "" {
		assigned := order.AssignedTo
		draft.AssignedTo = &assigned
	}
	dto, err := g.client.CreateOrder(ctx, draft)
	if err != nil {
		return domain.Order{}, classify(err)
	}
	return toDomain(dto)
}

// UpdateOrder applies a lifecycle patch remotely.
func (g *Gateway) UpdateOrder(ctx context.Context, id string, patch domain.Patch) (domain.Order, error) {
	dto, err := g.client.UpdateOrder(ctx, id, toPatchDTO(patch))
	if err != nil {
		return domain.Order{}, classify(err)
	}
	return toDomain(dto)
}

// MarkOrderPaid flags the order as paid remotely.
func (g *Gateway) MarkOrderPaid(ctx context.Context, id string) (domain.Order, error) {
	dto, err := g.client.MarkOrderPaid(ctx, id)
	if err != nil {
		return domain.Order{}, classify(err)
	}
	return toDomain(dto)
}

// DeleteOrder removes the order remotely.
func (g *Gateway) DeleteOrder(ctx context.Context, id string) error {
	if err := g.client.DeleteOrder(ctx, id); err != nil {
		return classify(err)
	}
	return nil
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

// toDomain parses one wire order. An invalid payload classifies as a
// transport failure so undefined fields never leak into the state machine.
func toDomain(dto fulfillment.OrderDTO) (domain.Order, error) {
	if dto.ID == "" {
		return domain.Order{}, invalidPayload("order id missing")
	}
	status, err := domain.ParseStatus(dto.Status)
	if err != nil {
		return domain.Order{}, invalidPayload("status %q", dto.Status)
	}
	priority, err := domain.ParsePriority(dto.Priority)
	if err != nil {
		return domain.Order{}, invalidPayload("priority %q", dto.Priority)
	}
	condition, err := domain.ParsePaymentCondition(dto.PaymentCondition)
	if err != nil {
		return domain.Order{}, invalidPayload("payment condition %q", dto.PaymentCondition)
	}
	createdAt, err := parseTime(dto.CreatedAt)
	if err != nil {
		return domain.Order{}, invalidPayload("createdAt %q", dto.CreatedAt)
	}
	paidAt, err := parseOptionalTime(dto.PaidAt)
	if err != nil {
		return domain.Order{}, invalidPayload("paidAt %q", deref(dto.PaidAt))
	}
	dispatchDate, err := parseOptionalTime(dto.DispatchDate)
	if err != nil {
		return domain.Order{}, invalidPayload("dispatchDate %q", deref(dto.DispatchDate))
	}

	items := make([]domain.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, domain.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	order := domain.Order{
		ID:               dto.ID,
		Number:           dto.Number,
		CustomerName:     dto.CustomerName,
		Status:           status,
		Paid:             dto.Paid,
		PaidAt:           paidAt,
		PaymentCondition: condition,
		Priority:         priority,
		AssignedTo:       deref(dto.AssignedTo),
		CreatedBy:        deref(dto.CreatedBy),
		DispatchDate:     dispatchDate,
		Items:            items,
		CreatedAt:        createdAt,
	}
	order.Total = order.ComputeTotal()
	return order, nil
}

func toItemDTOs(items []domain.LineItem) []fulfillment.LineItemDTO {
	dtos := make([]fulfillment.LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, fulfillment.LineItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dtos
}

func toPatchDTO(patch domain.Patch) fulfillment.OrderPatchDTO {
	dto := fulfillment.OrderPatchDTO{
		Paid:       patch.Paid,
		AssignedTo: patch.AssignedTo,
	}
	if patch.Status != nil {
		status := string(*patch.Status)
		dto.Status = &status
	}
	if patch.Priority != nil {
		priority := string(*patch.Priority)
		dto.Priority = &priority
	}
	if patch.PaymentCondition != nil {
		condition := string(*patch.PaymentCondition)
		dto.PaymentCondition = &condition
	}
	return dto
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}

func parseOptionalTime(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := parseTime(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func invalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: invalid order payload: %s", ports.ErrRemoteUnavailable, fmt.Sprintf(format, args...))
}
