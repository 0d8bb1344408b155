package domain

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenRevoked = errors.New("refresh token is revoked")
	ErrTokenExpired = errors.New("refresh token is expired")
)

// Revocation reasons stored alongside the token for audit.
const (
	RevokeReasonReplaced = "replaced by new token"
	RevokeReasonManual   = "revoked without replacement"
	RevokeReasonAllUser  = "all user tokens revoked"
)

// RefreshToken is one link in a rotation chain. Tokens are opaque random
// values; rotation revokes the old token and records its replacement so a
// reused token can be traced.
type RefreshToken struct {
	Token           string
	UserID          uuid.UUID
	ExpiresAt       time.Time
	RevokedAt       *time.Time
	RevokedReason   string
	ReplacedByToken string
	CreatedAt       time.Time
}

// NewRefreshToken mints a token from 64 bytes of CSPRNG output.
func NewRefreshToken(userID uuid.UUID, ttl time.Duration, now time.Time) (*RefreshToken, error) {
	raw := make([]byte, 64)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	return &RefreshToken{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// Revoke marks the token unusable. replacedBy is empty unless the revocation
// is part of a rotation.
func (t *RefreshToken) Revoke(now time.Time, reason, replacedBy string) {
	t.RevokedAt = &now
	t.RevokedReason = reason
	t.ReplacedByToken = replacedBy
}

// Validate returns the reason the token cannot be used, or nil.
func (t *RefreshToken) Validate(now time.Time) error {
	if t.RevokedAt != nil {
		return ErrTokenRevoked
	}
	if now.After(t.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}
