package ports

import (
	"context"
	"errors"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
)

var (
	// ErrNotFound signals the referenced product no longer exists.
	ErrNotFound = errors.New("product not found")
	// ErrRemoteUnavailable signals the request may never have reached the
	// remote service.
	ErrRemoteUnavailable = errors.New("catalog service unavailable")
	// ErrRemoteRejected signals the remote service explicitly refused the
	// mutation.
	ErrRemoteRejected = errors.New("product mutation rejected")
)

// Gateway is the outbound contract against the remote catalog. AdjustStock
// shifts stock by a signed delta and returns the authoritative record.
type Gateway interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, draft domain.Draft) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, draft domain.Draft) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int64) (domain.Product, error)
}
