package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// Filter narrows the order listing. Nil fields impose no constraint.
type Filter struct {
	UserID   string
	Status   *domain.Status
	FromDate *time.Time
	ToDate   *time.Time
}

// Repository persists order aggregates. Soft-deleted orders are invisible to
// every method. Each mutating call commits atomically; Mutate serializes
// concurrent writers on the same order id at the storage layer.
type Repository interface {
	// Create persists a new order together with its lines in one transaction.
	Create(ctx context.Context, order *domain.Order) error
	// GetByID loads an order with its lines and payment.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// Mutate loads the order under a write lock, applies fn, and persists the
	// resulting aggregate (status, lines, payment) in the same transaction.
	// fn errors abort the transaction and are returned unchanged.
	Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Order) error) error
	// List returns one page ordered by OrderDate descending with id as the
	// unique tie-breaker, plus the total match count.
	List(ctx context.Context, filter Filter, page pagination.Request) ([]*domain.Order, int64, error)
}
