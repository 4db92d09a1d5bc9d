package ports

import (
	"context"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
)

// Notifier is the minimal dispatch surface the other bounded contexts depend on.
type Notifier interface {
	Notify(ctx context.Context, draft domain.Draft) (*domain.Notification, error)
}

// Service defines the notification use cases exposed to adapters (inbound/driving port).
type Service interface {
	Notifier
	List(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Clear(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}
