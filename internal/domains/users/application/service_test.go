package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/adapters/memory"
	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
	"github.com/brewlabs/coffee-store-api/internal/platform/auth"
)

func newUserService(t *testing.T, opts ...Option) (*Service, *auth.Manager) {
	t.Helper()
	issuer, err := auth.NewManager([]byte("test-secret-test-secret"), "coffee-store", "coffee-store-clients", 15*time.Minute)
	require.NoError(t, err)
	return NewService(memory.NewRepository(), memory.NewTokenStore(), issuer, opts...), issuer
}

func register(t *testing.T, svc *Service, email string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    email,
		Password: "s3cret-pass",
		FullName: "Alice Doe",
		Role:     domain.RoleCustomer,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPasswordAndLowercasesEmail(t *testing.T) {
	svc, _ := newUserService(t)

	user := register(t, svc, "Alice@Example.COM")
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)
	require.True(t, user.CheckPassword("s3cret-pass"))
	require.False(t, user.CheckPassword("wrong"))
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	register(t, svc, "alice@example.com")

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "other-pass-123",
		Role:     domain.RoleAdmin,
	})
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRegister_ValidatesInput(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "not-an-email",
		Password: "s3cret-pass",
		Role:     domain.RoleCustomer,
	})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "short",
		Role:     domain.RoleCustomer,
	})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     domain.Role("barista"),
	})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestLogin_IssuesVerifiableAccessToken(t *testing.T) {
	svc, issuer := newUserService(t)
	user := register(t, svc, "alice@example.com")

	loggedIn, pair, err := svc.Login(context.Background(), ports.Credentials{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := issuer.Parse(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "customer", claims.Role)
	require.NotEmpty(t, claims.TokenID)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService(t)
	register(t, svc, "alice@example.com")

	_, _, wrongPassword := svc.Login(context.Background(), ports.Credentials{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)

	_, _, unknownEmail := svc.Login(context.Background(), ports.Credentials{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newUserService(t)
	register(t, svc, "alice@example.com")

	_, pair, err := svc.Login(context.Background(), ports.Credentials{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)

	// The old token is revoked and cannot be replayed.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The replacement keeps working.
	_, err = svc.Refresh(context.Background(), renewed.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_RejectsUnknownAndExpiredTokens(t *testing.T) {
	svc, _ := newUserService(t, WithRefreshTTL(time.Nanosecond))
	register(t, svc, "alice@example.com")

	_, err := svc.Refresh(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, pair, err := svc.Login(context.Background(), ports.Credentials{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestRevokeToken_IsIdempotent(t *testing.T) {
	svc, _ := newUserService(t)
	register(t, svc, "alice@example.com")

	_, pair, err := svc.Login(context.Background(), ports.Credentials{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), pair.RefreshToken))
	require.NoError(t, svc.RevokeToken(context.Background(), pair.RefreshToken))

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestRevokeAllUserTokens_EndsEverySession(t *testing.T) {
	svc, _ := newUserService(t)
	user := register(t, svc, "alice@example.com")

	var pairs []*ports.TokenPair
	for i := 0; i < 3; i++ {
		_, pair, err := svc.Login(context.Background(), ports.Credentials{
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		pairs = append(pairs, pair)
	}

	require.NoError(t, svc.RevokeAllUserTokens(context.Background(), user.ID))

	for _, pair := range pairs {
		_, err := svc.Refresh(context.Background(), pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	}
}

func TestCleanupExpiredTokens_PurgesOnlyExpired(t *testing.T) {
	svc, _ := newUserService(t, WithRefreshTTL(time.Nanosecond))
	register(t, svc, "alice@example.com")

	_, _, err := svc.Login(context.Background(), ports.Credentials{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	purged, err := svc.CleanupExpiredTokens(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	purged, err = svc.CleanupExpiredTokens(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 0, purged)
}
