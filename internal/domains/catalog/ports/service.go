package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// ProductInput carries the mutable product fields.
type ProductInput struct {
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	Active      bool
}

// ListProductsInput combines filter, sort, and page.
type ListProductsInput struct {
	Filter ProductFilter
	Sort   Sort
	Page   pagination.Request
}

// CategoryInput carries the mutable category fields.
type CategoryInput struct {
	Name        string
	Description string
}

// Service exposes the catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (pagination.Page[*domain.Product], error)

	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
