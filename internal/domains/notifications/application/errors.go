package application

import (
	"errors"
	"fmt"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
)

// ErrInvalidNotice signals the draft violated a domain invariant.
var ErrInvalidNotice = errors.New("invalid notification draft")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrEmptyMessage) {
		return fmt.Errorf("%w: %w", ErrInvalidNotice, err)
	}
	return err
}
