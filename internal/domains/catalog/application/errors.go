package application

import (
	"errors"
	"fmt"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
)

// ErrInvalidProduct signals a draft that violates the product invariants.
var ErrInvalidProduct = errors.New("invalid product")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidThreshold) {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	return err
}
