package ports

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
)

var ErrNotFound = errors.New("notification not found")

// Store is the capacity-bounded, durable notification log.
//
// Append assigns the id and timestamp itself; the record list is ordered most
// recent first and never exceeds the store's capacity. UnreadCount is always
// derived from the live set, never tracked as separate mutable state.
type Store interface {
	Append(ctx context.Context, draft domain.Draft) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Clear(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}
