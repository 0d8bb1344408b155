package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.TokenStore = (*TokenStore)(nil)
)

type userRecord struct {
	ID           uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	Email        string     `gorm:"column:email;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash"`
	FullName     string     `gorm:"column:full_name"`
	Role         string     `gorm:"column:role;type:varchar(16);index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index"`
}

func (userRecord) TableName() string { return "users" }

// Repository is the PostgreSQL account persistence adapter.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	record := toUserRecord(user)
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrDuplicateEmail
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&record, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func toUserRecord(user *domain.User) userRecord {
	return userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		DeletedAt:    user.DeletedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    r.DeletedAt,
	}
}
