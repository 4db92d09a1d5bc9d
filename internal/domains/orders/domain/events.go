package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderCreated is raised after the remote service confirms a new order.
type OrderCreated struct {
	BaseEvent
	OrderID      string
	Number       string
	CustomerName string
	Total        int64
}

// EventName returns the event type identifier.
func (e OrderCreated) EventName() string {
	return "orders.order.created"
}

// OrderTransitioned is raised after a confirmed lifecycle change. Summary is
// the user-facing description of what changed, never the raw patch.
type OrderTransitioned struct {
	BaseEvent
	OrderID string
	Number  string
	Summary string
	Status  Status
}

// EventName returns the event type identifier.
func (e OrderTransitioned) EventName() string {
	return "orders.order.transitioned"
}

// OrderPaid is raised after the remote service confirms payment.
type OrderPaid struct {
	BaseEvent
	OrderID string
	Number  string
	PaidAt  time.Time
	Actor   string
}

// EventName returns the event type identifier.
func (e OrderPaid) EventName() string {
	return "orders.order.paid"
}

// OrderDeleted is raised after a confirmed delete. Notification records that
// referenced the order keep existing; only their target is gone.
type OrderDeleted struct {
	BaseEvent
	OrderID      string
	Number       string
	CustomerName string
	Actor        string
}

// EventName returns the event type identifier.
func (e OrderDeleted) EventName() string {
	return "orders.order.deleted"
}
