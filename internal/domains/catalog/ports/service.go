package ports

import (
	"context"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
)

// SweepReport is the outcome of one low-stock detection pass.
type SweepReport struct {
	Scanned  int
	Low      []domain.Product
	Notified bool
}

// Service defines the catalog use cases (inbound/driving port).
type Service interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Product, error)
	Update(ctx context.Context, id string, draft domain.Draft) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Decrement(ctx context.Context, productID string, quantity int64) error
	Restock(ctx context.Context, productID string, quantity int64) error
	SweepLowStock(ctx context.Context) (SweepReport, error)
}
