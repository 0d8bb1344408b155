package application

import (
	"errors"
	"fmt"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
)

// ErrValidation signals malformed catalog input.
var ErrValidation = errors.New("invalid catalog input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrUnknownCategory) ||
		errors.Is(err, ports.ErrInvalidSortKey) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
