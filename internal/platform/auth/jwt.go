package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("access token is invalid")
	ErrTokenExpired = errors.New("access token is expired")
)

// Claims is the verified content of an access token.
type Claims struct {
	UserID  uuid.UUID
	Email   string
	Role    string
	TokenID string
}

// Manager issues and verifies HMAC-SHA256 access tokens.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewManager builds a token manager. TTL must be positive.
func NewManager(secret []byte, issuer, audience string, ttl time.Duration) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &Manager{secret: secret, issuer: issuer, audience: audience, ttl: ttl}, nil
}

// AccessTTL is the lifetime of issued tokens.
func (m *Manager) AccessTTL() time.Duration {
	return m.ttl
}

// Issue signs an access token for the user.
func (m *Manager) Issue(userID uuid.UUID, email, role string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  role,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
		"iss":   m.issuer,
		"aud":   m.audience,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies signature, expiry, issuer, and audience, and returns the
// claims.
func (m *Manager) Parse(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}
	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	tokenID, _ := mapClaims["jti"].(string)
	return Claims{UserID: userID, Email: email, Role: role, TokenID: tokenID}, nil
}
