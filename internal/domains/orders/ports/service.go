package ports

import (
	"context"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// Draft carries a new order request before identity is assigned remotely.
type Draft struct {
	Number           string
	CustomerName     string
	PaymentCondition domain.PaymentCondition
	Priority         domain.Priority
	AssignedTo       string
	Items            []domain.LineItem
}

// Stats aggregates the actor-visible orders for the admin dashboard.
type Stats struct {
	Count       int
	ByStatus    map[domain.Status]int
	PaidTotal   int64
	UnpaidTotal int64
}

// Service defines the order use cases exposed to adapters (inbound/driving port).
// Every operation evaluates the visibility policy for the supplied actor.
type Service interface {
	Refresh(ctx context.Context, actor identity.Actor, filter Filter) ([]domain.Order, error)
	List(ctx context.Context, actor identity.Actor) ([]domain.Order, error)
	Get(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error)
	Create(ctx context.Context, actor identity.Actor, draft Draft) (*domain.Order, error)
	Transition(ctx context.Context, actor identity.Actor, id string, patch domain.Patch) (*domain.Order, error)
	MarkPaid(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
	Stats(ctx context.Context, actor identity.Actor) (Stats, error)
}
