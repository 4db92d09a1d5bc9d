// Package mapper translates between the dashboard's order JSON surface and
// the domain model, preserving field presence on patch payloads.
package mapper

import (
	"time"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
)

// LineItem is the HTTP representation of one order line.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID               string     `json:"id"`
	Number           string     `json:"orderNumber,omitempty"`
	CustomerName     string     `json:"customerName"`
	Status           string     `json:"status"`
	Paid             bool       `json:"isPaid"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	PaymentCondition string     `json:"paymentCondition"`
	Priority         string     `json:"priority"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	DispatchDate     *time.Time `json:"dispatchDate,omitempty"`
	Items            []LineItem `json:"items"`
	Total            int64      `json:"total"`
	CreatedAt        time.Time  `json:"createdAt,omitempty"`
}

// CreateOrder captures the inbound creation payload.
type CreateOrder struct {
	Number           string     `json:"orderNumber,omitempty"`
	CustomerName     string     `json:"customerName"`
	PaymentCondition string     `json:"paymentCondition"`
	Priority         string     `json:"priority,omitempty"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	Items            []LineItem `json:"items"`
}

// PatchOrder captures an inbound transition, pointer fields preserving
// which lifecycle fields the caller actually supplied.
type PatchOrder struct {
	Status           *string `json:"status,omitempty"`
	Paid             *bool   `json:"isPaid,omitempty"`
	AssignedTo       *string `json:"assignedTo,omitempty"`
	Priority         *string `json:"priority,omitempty"`
	PaymentCondition *string `json:"paymentCondition,omitempty"`
}

// Stats is the HTTP representation of the dashboard aggregates.
type Stats struct {
	Count       int            `json:"count"`
	ByStatus    map[string]int `json:"byStatus"`
	PaidTotal   int64          `json:"paidTotal"`
	UnpaidTotal int64          `json:"unpaidTotal"`
}

// ToDraft maps the creation payload into the application draft. Enumeration
// text is validated here so free text never reaches the service.
func ToDraft(input CreateOrder) (ports.Draft, error) {
	condition, err := domain.ParsePaymentCondition(input.PaymentCondition)
	if err != nil {
		return ports.Draft{}, err
	}
	draft := ports.Draft{
		Number:           input.Number,
		CustomerName:     input.CustomerName,
		PaymentCondition: condition,
		AssignedTo:       input.AssignedTo,
		Items:            toDomainItems(input.Items),
	}
	if input.Priority != "" {
		priority, err := domain.ParsePriority(input.Priority)
		if err != nil {
			return ports.Draft{}, err
		}
		draft.Priority = priority
	}
	return draft, nil
}

// ToPatch maps the transition payload into a domain patch.
func ToPatch(input PatchOrder) (domain.Patch, error) {
	patch := domain.Patch{
		Paid:       input.Paid,
		AssignedTo: input.AssignedTo,
	}
	if input.Status != nil {
		status, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return domain.Patch{}, err
		}
		patch.Status = &status
	}
	if input.Priority != nil {
		priority, err := domain.ParsePriority(*input.Priority)
		if err != nil {
			return domain.Patch{}, err
		}
		patch.Priority = &priority
	}
	if input.PaymentCondition != nil {
		condition, err := domain.ParsePaymentCondition(*input.PaymentCondition)
		if err != nil {
			return domain.Patch{}, err
		}
		patch.PaymentCondition = &condition
	}
	return patch, nil
}

// FromDomain maps a domain order into its HTTP representation.
func FromDomain(order domain.Order) Order {
	items := make([]LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return Order{
		ID:               order.ID,
		Number:           order.Number,
		CustomerName:     order.CustomerName,
		Status:           string(order.Status),
		Paid:             order.Paid,
		PaidAt:           order.PaidAt,
		PaymentCondition: string(order.PaymentCondition),
		Priority:         string(order.Priority),
		AssignedTo:       order.AssignedTo,
		CreatedBy:        order.CreatedBy,
		DispatchDate:     order.DispatchDate,
		Items:            items,
		Total:            order.Total,
		CreatedAt:        order.CreatedAt,
	}
}

// FromDomainList maps a slice of domain orders.
func FromDomainList(orders []domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomain(order))
	}
	return result
}

// FromStats maps the aggregate view.
func FromStats(stats ports.Stats) Stats {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	return Stats{
		Count:       stats.Count,
		ByStatus:    byStatus,
		PaidTotal:   stats.PaidTotal,
		UnpaidTotal: stats.UnpaidTotal,
	}
}

func toDomainItems(items []LineItem) []domain.LineItem {
	result := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return result
}
