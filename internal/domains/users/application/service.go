package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
	"github.com/brewlabs/coffee-store-api/internal/platform/auth"
)

const defaultRefreshTTL = 7 * 24 * time.Hour

// Service exposes the account and refresh-token use cases.
type Service struct {
	repo       ports.Repository
	tokens     ports.TokenStore
	issuer     *auth.Manager
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithRefreshTTL overrides the refresh token lifetime.
func WithRefreshTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.refreshTTL = ttl
		}
	}
}

func NewService(repo ports.Repository, tokens ports.TokenStore, issuer *auth.Manager, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		tokens:     tokens,
		issuer:     issuer,
		refreshTTL: defaultRefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates an account. The email must be unused.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Email, input.Password, input.FullName, input.Role, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, credentials ports.Credentials) (*domain.User, *ports.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(credentials.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.CheckPassword(credentials.Password) {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the refresh token. The old token is revoked with a link to
// its replacement before the new pair is returned.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return nil, fmt.Errorf("%w: unknown token", ErrInvalidRefreshToken)
		}
		return nil, err
	}
	now := s.now().UTC()
	if err := stored.Validate(now); err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	pair, replacement, err := s.mintPair(ctx, user)
	if err != nil {
		return nil, err
	}
	stored.Revoke(now, domain.RevokeReasonReplaced, replacement.Token)
	if err := s.tokens.Update(ctx, stored); err != nil {
		return nil, err
	}
	return pair, nil
}

// RevokeToken invalidates one refresh token without replacement.
func (s *Service) RevokeToken(ctx context.Context, refreshToken string) error {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return fmt.Errorf("%w: unknown token", ErrInvalidRefreshToken)
		}
		return err
	}
	if stored.RevokedAt != nil {
		return nil
	}
	stored.Revoke(s.now().UTC(), domain.RevokeReasonManual, "")
	return s.tokens.Update(ctx, stored)
}

// RevokeAllUserTokens invalidates every live token of the user, ending all
// its sessions.
func (s *Service) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeAllForUser(ctx, userID, s.now().UTC(), domain.RevokeReasonAllUser)
}

// CleanupExpiredTokens purges expired tokens; revoked rows inside their
// expiry window are kept for audit.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now().UTC())
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	pair, _, err := s.mintPair(ctx, user)
	return pair, err
}

func (s *Service) mintPair(ctx context.Context, user *domain.User) (*ports.TokenPair, *domain.RefreshToken, error) {
	now := s.now().UTC()
	access, err := s.issuer.Issue(user.ID, user.Email, string(user.Role), now)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := domain.NewRefreshToken(user.ID, s.refreshTTL, now)
	if err != nil {
		return nil, nil, err
	}
	if err := s.tokens.Save(ctx, refresh); err != nil {
		return nil, nil, err
	}
	return &ports.TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  now.Add(s.issuer.AccessTTL()),
		RefreshToken:          refresh.Token,
		RefreshTokenExpiresAt: refresh.ExpiresAt,
	}, refresh, nil
}

var _ ports.Service = (*Service)(nil)
