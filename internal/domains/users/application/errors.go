package application

import (
	"errors"
	"fmt"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
)

var (
	// ErrValidation signals malformed registration input.
	ErrValidation = errors.New("invalid user input")
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken covers unknown, revoked, and expired tokens.
	ErrInvalidRefreshToken = errors.New("refresh token is not usable")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if errors.Is(err, domain.ErrTokenRevoked) || errors.Is(err, domain.ErrTokenExpired) {
		return fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	return err
}
