package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrTokenNotFound  = errors.New("refresh token not found")
)

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenStore persists refresh tokens and their revocation state.
type TokenStore interface {
	Save(ctx context.Context, token *domain.RefreshToken) error
	Get(ctx context.Context, token string) (*domain.RefreshToken, error)
	Update(ctx context.Context, token *domain.RefreshToken) error
	// RevokeAllForUser marks every live token of the user revoked.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, now time.Time, reason string) error
	// DeleteExpired removes tokens past their expiry and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
