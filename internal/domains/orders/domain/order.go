package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates the fulfillment stages of an order. Progression is
// forward-moving in normal operation but any stage may be set directly;
// only membership in the closed set is enforced.
type Status string

const (
	StatusPending    Status = "pending"
	StatusDC         Status = "dc"
	StatusInvoice    Status = "invoice"
	StatusDispatched Status = "dispatched"
)

// Priority ranks an order independently of its status.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PaymentCondition is recorded at creation and never altered by lifecycle transitions.
type PaymentCondition string

const (
	PaymentImmediate PaymentCondition = "immediate"
	PaymentNet15     PaymentCondition = "net-15"
	PaymentNet30     PaymentCondition = "net-30"
)

var (
	ErrInvalidStatus           = errors.New("order status is invalid")
	ErrInvalidPriority         = errors.New("order priority is invalid")
	ErrInvalidPaymentCondition = errors.New("payment condition is invalid")
	ErrEmptyCustomer           = errors.New("customer name is required")
	ErrNoItems                 = errors.New("at least one line item is required")
	ErrInvalidLineItem         = errors.New("line item quantity and price must be positive")
)

// LineItem is one ordered product with its price snapshot in minor currency
// units. The snapshot is immutable after creation even if the live product
// price changes.
type LineItem struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice int64
}

// Order models one customer purchase.
type Order struct {
	ID               string
	Number           string
	CustomerName     string
	Status           Status
	Paid             bool
	PaidAt           *time.Time
	PaymentCondition PaymentCondition
	Priority         Priority
	AssignedTo       string
	CreatedBy        string
	DispatchDate     *time.Time
	Items            []LineItem
	Total            int64
	CreatedAt        time.Time
}

// NewOrder validates the invariants and builds a new order in its initial state.
func NewOrder(customerName string, condition PaymentCondition, priority Priority, items []LineItem) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomer
	}
	if !isValidPaymentCondition(condition) {
		return nil, ErrInvalidPaymentCondition
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !isValidPriority(priority) {
		return nil, ErrInvalidPriority
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, ErrInvalidLineItem
		}
	}
	order := &Order{
		CustomerName:     customerName,
		Status:           StatusPending,
		PaymentCondition: condition,
		Priority:         priority,
		Items:            append([]LineItem{}, items...),
	}
	order.Total = order.ComputeTotal()
	return order, nil
}

// ComputeTotal recomputes the order total from its line items. Callers must
// never trust a stored figure over this.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity * item.UnitPrice
	}
	return total
}

// Patch is the subset of lifecycle fields a transition may set.
type Patch struct {
	Status           *Status
	Paid             *bool
	AssignedTo       *string
	Priority         *Priority
	PaymentCondition *PaymentCondition
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.Paid == nil && p.AssignedTo == nil && p.Priority == nil && p.PaymentCondition == nil
}

// Validate checks every supplied field against its closed enumeration.
// Free text is rejected, never coerced.
func (p Patch) Validate() error {
	if p.Status != nil && !isValidStatus(*p.Status) {
		return ErrInvalidStatus
	}
	if p.Priority != nil && !isValidPriority(*p.Priority) {
		return ErrInvalidPriority
	}
	if p.PaymentCondition != nil && !isValidPaymentCondition(*p.PaymentCondition) {
		return ErrInvalidPaymentCondition
	}
	return nil
}

// Apply executes a lifecycle transition, stamping derived timestamps.
// The order is left unmodified when validation fails. Line items and the
// total are never touched here; item mutation is a distinct full-edit
// operation, not a transition.
func (o *Order) Apply(patch Patch, now time.Time) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.Status != nil {
		if *patch.Status == StatusDispatched && o.Status != StatusDispatched && o.DispatchDate == nil {
			stamp := now
			o.DispatchDate = &stamp
		}
		o.Status = *patch.Status
	}
	if patch.Paid != nil && *patch.Paid && !o.Paid {
		stamp := now
		o.Paid = true
		o.PaidAt = &stamp
	}
	if patch.AssignedTo != nil {
		o.AssignedTo = *patch.AssignedTo
	}
	if patch.Priority != nil {
		o.Priority = *patch.Priority
	}
	if patch.PaymentCondition != nil {
		o.PaymentCondition = *patch.PaymentCondition
	}
	return nil
}

// Reconcile merges the remote echo with a locally computed transition result.
// The remote record wins everywhere; the derived timestamps are backfilled
// from the local result only when the remote did not echo them.
func Reconcile(remote, local Order) Order {
	merged := remote
	if merged.DispatchDate == nil && local.DispatchDate != nil {
		merged.DispatchDate = local.DispatchDate
	}
	if merged.Paid && merged.PaidAt == nil && local.PaidAt != nil {
		merged.PaidAt = local.PaidAt
	}
	return merged
}

// ParseStatus validates raw status text against the closed set.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParsePriority validates raw priority text against the closed set.
func ParsePriority(raw string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !isValidPriority(priority) {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// ParsePaymentCondition validates raw payment condition text against the closed set.
func ParsePaymentCondition(raw string) (PaymentCondition, error) {
	condition := PaymentCondition(strings.ToLower(strings.TrimSpace(raw)))
	if !isValidPaymentCondition(condition) {
		return "", ErrInvalidPaymentCondition
	}
	return condition, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusDC, StatusInvoice, StatusDispatched:
		return true
	default:
		return false
	}
}

func isValidPriority(priority Priority) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func isValidPaymentCondition(condition PaymentCondition) bool {
	switch condition {
	case PaymentImmediate, PaymentNet15, PaymentNet30:
		return true
	default:
		return false
	}
}
