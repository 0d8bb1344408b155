package application

import (
	"errors"
	"fmt"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
)

var (
	// ErrValidation signals malformed input: empty or duplicate lines,
	// non-positive quantities, or unknown/inactive products.
	ErrValidation = errors.New("invalid order input")
	// ErrBusinessRule signals a well-formed request the current order state
	// disallows, such as an illegal status transition.
	ErrBusinessRule = errors.New("order business rule violated")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrBusinessRule) {
		return err
	}
	if errors.Is(err, domain.ErrEmptyLines) ||
		errors.Is(err, domain.ErrDuplicateProduct) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if errors.Is(err, domain.ErrNotEditable) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrPaymentNotPending) ||
		errors.Is(err, domain.ErrAlreadyPaid) {
		return fmt.Errorf("%w: %w", ErrBusinessRule, err)
	}
	return err
}
