// Package mapper translates between the dashboard's product JSON surface and
// the domain model.
package mapper

import (
	"time"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
)

// Product is the HTTP representation of one inventory item.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stock     int64     `json:"stock"`
	Dimension string    `json:"dimension,omitempty"`
	Threshold *int64    `json:"threshold,omitempty"`
	UnitPrice int64     `json:"unitPrice"`
	LowStock  bool      `json:"lowStock"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// MutationProduct captures inbound create/update payloads.
type MutationProduct struct {
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	Dimension string `json:"dimension,omitempty"`
	Threshold *int64 `json:"threshold,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
}

// SweepReport is the HTTP representation of a low-stock pass.
type SweepReport struct {
	Scanned  int       `json:"scanned"`
	Low      []Product `json:"low"`
	Notified bool      `json:"notified"`
}

// ToDraft maps the mutation payload into the domain draft.
func ToDraft(input MutationProduct) domain.Draft {
	return domain.Draft{
		Name:      input.Name,
		Stock:     input.Stock,
		Dimension: input.Dimension,
		Threshold: input.Threshold,
		UnitPrice: input.UnitPrice,
	}
}

// FromDomain maps a domain product into its HTTP representation.
func FromDomain(product domain.Product) Product {
	return Product{
		ID:        product.ID,
		Name:      product.Name,
		Stock:     product.Stock,
		Dimension: product.Dimension,
		Threshold: product.Threshold,
		UnitPrice: product.UnitPrice,
		LowStock:  product.LowStock(),
		UpdatedAt: product.UpdatedAt,
	}
}

// FromDomainList maps a slice of domain products.
func FromDomainList(products []domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomain(product))
	}
	return result
}

// FromSweepReport maps a low-stock pass outcome.
func FromSweepReport(report ports.SweepReport) SweepReport {
	return SweepReport{
		Scanned:  report.Scanned,
		Low:      FromDomainList(report.Low),
		Notified: report.Notified,
	}
}
