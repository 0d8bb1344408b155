package application

import (
	"errors"
	"fmt"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
)

// ErrValidation signals malformed menu input.
var ErrValidation = errors.New("invalid menu input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidDateRange) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrDuplicateProduct) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
