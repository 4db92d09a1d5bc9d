package ports

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals the referenced order no longer exists.
	ErrNotFound = errors.New("order not found")
	// ErrRemoteUnavailable signals the request may never have reached the
	// remote service (transport failure or undecodable payload).
	ErrRemoteUnavailable = errors.New("order service unavailable")
	// ErrRemoteRejected signals the remote service explicitly refused the
	// mutation; its message is safe to surface verbatim.
	ErrRemoteRejected = errors.New("order mutation rejected")
)

// Filter narrows a remote order listing.
type Filter struct {
	Status     domain.Status
	AssignedTo string
	CreatedBy  string
}

// Gateway is the outbound contract against the remote order service. Every
// mutation returns the full authoritative post-update record.
type Gateway interface {
	ListOrders(ctx context.Context, filter Filter) ([]domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	UpdateOrder(ctx context.Context, id string, patch domain.Patch) (domain.Order, error)
	MarkOrderPaid(ctx context.Context, id string) (domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}
