package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInfo is the slice of catalog state the order core captures at order
// creation or edit time.
type ProductInfo struct {
	Name  string
	Price decimal.Decimal
}

// Catalog is the read-only oracle for product existence and current price.
// Products absent from the result are missing or inactive.
type Catalog interface {
	ResolveActiveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductInfo, error)
}
