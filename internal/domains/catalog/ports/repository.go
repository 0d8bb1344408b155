package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when a category name is already taken.
	ErrDuplicateName = errors.New("name already exists")
	// ErrInvalidSortKey rejects sort keys outside the allow-list.
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// SortKey is a whitelisted product ordering column.
type SortKey string

const (
	SortKeyName      SortKey = "name"
	SortKeyPrice     SortKey = "price"
	SortKeyCreatedAt SortKey = "createdAt"
	SortKeyUpdatedAt SortKey = "updatedAt"
)

// Sort pairs a whitelisted key with a direction.
type Sort struct {
	Key  SortKey
	Desc bool
}

// DefaultSort orders newest products first.
var DefaultSort = Sort{Key: SortKeyCreatedAt, Desc: true}

// ParseSort resolves a raw query value like "price" or "-name" against the
// allow-list. The empty string yields the default ordering; anything outside
// the allow-list fails naming the offending key.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort, nil
	}
	desc := false
	if strings.HasPrefix(raw, "-") {
		desc = true
		raw = raw[1:]
	}
	key := SortKey(raw)
	switch key {
	case SortKeyName, SortKeyPrice, SortKeyCreatedAt, SortKeyUpdatedAt:
		return Sort{Key: key, Desc: desc}, nil
	default:
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortKey, raw)
	}
}

// ProductFilter narrows product listings. Search matches name and description.
type ProductFilter struct {
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// ProductRepository persists products. Implementations exclude soft-deleted
// rows from every read.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, sort Sort, page pagination.Request) ([]*domain.Product, int64, error)
	// ResolveActive returns the subset of ids that exist and are sellable.
	ResolveActive(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}
