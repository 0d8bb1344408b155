package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
)

type refreshTokenRecord struct {
	Token           string     `gorm:"primaryKey;column:token;size:512"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;index"`
	ExpiresAt       time.Time  `gorm:"column:expires_at;index"`
	RevokedAt       *time.Time `gorm:"column:revoked_at"`
	RevokedReason   string     `gorm:"column:revoked_reason"`
	ReplacedByToken string     `gorm:"column:replaced_by_token"`
	CreatedAt       time.Time  `gorm:"column:created_at;index"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (refreshTokenRecord) TableName() string { return "refresh_tokens" }

// TokenStore is the PostgreSQL refresh-token store.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Save(ctx context.Context, token *domain.RefreshToken) error {
	record := toTokenRecord(token)
	return s.db.WithContext(ctx).Create(&record).Error
}

func (s *TokenStore) Get(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record refreshTokenRecord
	err := s.db.WithContext(ctx).First(&record, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrTokenNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (s *TokenStore) Update(ctx context.Context, token *domain.RefreshToken) error {
	record := toTokenRecord(token)
	result := s.db.WithContext(ctx).Model(&refreshTokenRecord{}).
		Where("token = ?", token.Token).
		Updates(map[string]any{
			"revoked_at":        record.RevokedAt,
			"revoked_reason":    record.RevokedReason,
			"replaced_by_token": record.ReplacedByToken,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrTokenNotFound
	}
	return nil
}

func (s *TokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID, now time.Time, reason string) error {
	return s.db.WithContext(ctx).Model(&refreshTokenRecord{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Updates(map[string]any{
			"revoked_at":     now,
			"revoked_reason": reason,
			"updated_at":     now,
		}).Error
}

func (s *TokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&refreshTokenRecord{})
	return result.RowsAffected, result.Error
}

func toTokenRecord(token *domain.RefreshToken) refreshTokenRecord {
	return refreshTokenRecord{
		Token:           token.Token,
		UserID:          token.UserID,
		ExpiresAt:       token.ExpiresAt,
		RevokedAt:       token.RevokedAt,
		RevokedReason:   token.RevokedReason,
		ReplacedByToken: token.ReplacedByToken,
		CreatedAt:       token.CreatedAt,
		UpdatedAt:       token.CreatedAt,
	}
}

func (r refreshTokenRecord) toDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		Token:           r.Token,
		UserID:          r.UserID,
		ExpiresAt:       r.ExpiresAt,
		RevokedAt:       r.RevokedAt,
		RevokedReason:   r.RevokedReason,
		ReplacedByToken: r.ReplacedByToken,
		CreatedAt:       r.CreatedAt,
	}
}
