package ports

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk/internal/domains/staff/domain"
)

var (
	// ErrNotFound signals the referenced member no longer exists.
	ErrNotFound = errors.New("staff member not found")
	// ErrRemoteUnavailable signals the request may never have reached the
	// remote service.
	ErrRemoteUnavailable = errors.New("staff service unavailable")
	// ErrRemoteRejected signals the remote service explicitly refused the
	// mutation.
	ErrRemoteRejected = errors.New("staff mutation rejected")
)

// Gateway is the outbound contract against the remote staff directory.
type Gateway interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	CreateMember(ctx context.Context, draft domain.Draft) (domain.Member, error)
	UpdateMember(ctx context.Context, id string, draft domain.Draft) (domain.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// Service defines the staff directory use cases (inbound/driving port).
type Service interface {
	List(ctx context.Context) ([]domain.Member, error)
	Get(ctx context.Context, id string) (*domain.Member, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Member, error)
	Update(ctx context.Context, id string, draft domain.Draft) (*domain.Member, error)
	Delete(ctx context.Context, id string) error
}
