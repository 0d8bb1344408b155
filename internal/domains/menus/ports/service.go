package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// ProductSnapshot is the slice of catalog data menus need.
type ProductSnapshot struct {
	Name  string
	Price decimal.Decimal
}

// Catalog resolves sellable products for menu composition. Unknown or
// inactive ids are absent from the result.
type Catalog interface {
	ResolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductSnapshot, error)
}

// ItemInput is one requested product/quantity pair.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// MenuInput carries the mutable menu fields.
type MenuInput struct {
	Name        string
	Description string
	FromDate    time.Time
	ToDate      time.Time
	Items       []ItemInput
}

// ListMenusInput combines the filter with the requested page.
type ListMenusInput struct {
	Filter Filter
	Page   pagination.Request
}

// ItemDetails is a menu item joined with current product data.
type ItemDetails struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// MenuDetails is a menu with its items resolved against the catalog.
type MenuDetails struct {
	Menu  *domain.Menu
	Items []ItemDetails
}

// Service exposes the menu use cases to adapters.
type Service interface {
	CreateMenu(ctx context.Context, input MenuInput) (*domain.Menu, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, input MenuInput) (*domain.Menu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) error
	GetMenuByID(ctx context.Context, id uuid.UUID) (*MenuDetails, error)
	ListMenus(ctx context.Context, input ListMenusInput) (pagination.Page[*domain.Menu], error)
}
