package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("menu not found")

// Filter narrows menu listings. ActiveOn keeps menus whose date range covers
// the given day.
type Filter struct {
	Name     string
	ActiveOn *time.Time
}

// Repository persists menus with their items. Soft-deleted menus are excluded
// from every read.
type Repository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	Update(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	List(ctx context.Context, filter Filter, page pagination.Request) ([]*domain.Menu, int64, error)
}
