package catalog

import (
	"context"

	"github.com/google/uuid"

	catalogports "github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	menusports "github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
)

var _ menusports.Catalog = (*Resolver)(nil)

// Resolver bridges the menus context to the catalog product store.
type Resolver struct {
	products catalogports.ProductRepository
}

func NewResolver(products catalogports.ProductRepository) *Resolver {
	return &Resolver{products: products}
}

// ResolveProducts returns snapshots for the sellable subset of ids.
func (r *Resolver) ResolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]menusports.ProductSnapshot, error) {
	products, err := r.products.ResolveActive(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make(map[uuid.UUID]menusports.ProductSnapshot, len(products))
	for _, product := range products {
		resolved[product.ID] = menusports.ProductSnapshot{Name: product.Name, Price: product.Price}
	}
	return resolved, nil
}
