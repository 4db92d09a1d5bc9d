package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativeStock    = errors.New("product stock must not be negative")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrInvalidThreshold = errors.New("reorder threshold must be positive")
)

// Product is one inventory item. The threshold is optional; products without
// one never count as low on stock. Prices are minor currency units.
type Product struct {
	ID        string
	Name      string
	Stock     int64
	Dimension string
	Threshold *int64
	UnitPrice int64
	UpdatedAt time.Time
}

// Draft carries a new or replacement product before remote identity exists.
type Draft struct {
	Name      string
	Stock     int64
	Dimension string
	Threshold *int64
	UnitPrice int64
}

// Validate checks the product invariants.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Stock < 0 {
		return ErrNegativeStock
	}
	if d.UnitPrice < 0 {
		return ErrNegativePrice
	}
	if d.Threshold != nil && *d.Threshold <= 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// LowStock reports whether the product sits below its reorder threshold.
// Products without a threshold are never low.
func (p Product) LowStock() bool {
	return p.Threshold != nil && p.Stock < *p.Threshold
}
