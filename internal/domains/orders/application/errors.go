package application

import (
	"errors"
	"fmt"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
)

var (
	// ErrInvalidTransition signals an out-of-enumeration value at the call
	// site. The operation is rejected, never coerced to a default.
	ErrInvalidTransition = errors.New("invalid order transition")
	// ErrForbidden signals the visibility policy denied the edit. The remote
	// mutation is refused locally, saving the round trip.
	ErrForbidden = errors.New("actor may not edit this order")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPriority) ||
		errors.Is(err, domain.ErrInvalidPaymentCondition) ||
		errors.Is(err, domain.ErrEmptyCustomer) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidLineItem) {
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	return err
}
