package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// Credentials is an email/password login attempt.
type Credentials struct {
	Email    string
	Password string
}

// TokenPair is an access token plus the refresh token that can renew it.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// Service exposes the account and token use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, credentials Credentials) (*domain.User, *TokenPair, error)
	// Refresh rotates the given refresh token: the old token is revoked with
	// a link to its replacement and a fresh pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	RevokeToken(ctx context.Context, refreshToken string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	// CleanupExpiredTokens purges expired refresh tokens and reports the count.
	CleanupExpiredTokens(ctx context.Context) (int64, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
