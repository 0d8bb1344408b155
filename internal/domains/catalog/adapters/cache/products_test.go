package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/memory"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// countingRepo tracks how many reads reach the real store.
type countingRepo struct {
	ports.ProductRepository
	gets     int
	resolves int
}

func (c *countingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	c.gets++
	return c.ProductRepository.GetByID(ctx, id)
}

func (c *countingRepo) ResolveActive(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	c.resolves++
	return c.ProductRepository.ResolveActive(ctx, ids)
}

func newCachedRepo(t *testing.T) (*ProductRepository, *countingRepo, *domain.Product) {
	t.Helper()
	inner := &countingRepo{ProductRepository: memory.NewProductRepository()}
	cached := NewProductRepository(inner, WithTTL(time.Minute))

	product, err := domain.NewProduct("Espresso", "double shot", "", decimal.RequireFromString("3.50"), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, cached.Create(context.Background(), product))
	return cached, inner, product
}

func TestGetByID_ServesSecondReadFromCache(t *testing.T) {
	cached, inner, product := newCachedRepo(t)

	first, err := cached.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	second, err := cached.GetByID(context.Background(), product.ID)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, inner.gets)
}

func TestUpdate_InvalidatesCachedEntry(t *testing.T) {
	cached, inner, product := newCachedRepo(t)

	_, err := cached.GetByID(context.Background(), product.ID)
	require.NoError(t, err)

	require.NoError(t, product.Update("Espresso", "single shot", "", decimal.RequireFromString("3.00"), product.CategoryID, true, time.Now().UTC()))
	require.NoError(t, cached.Update(context.Background(), product))

	fresh, err := cached.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.True(t, fresh.Price.Equal(decimal.RequireFromString("3.00")))
	require.Equal(t, 2, inner.gets)
}

func TestResolveActive_BatchesOnlyMisses(t *testing.T) {
	cached, inner, product := newCachedRepo(t)

	_, err := cached.GetByID(context.Background(), product.ID)
	require.NoError(t, err)

	resolved, err := cached.ResolveActive(context.Background(), []uuid.UUID{product.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.Equal(t, 0, inner.resolves)

	other, err := domain.NewProduct("Latte", "", "", decimal.RequireFromString("4.00"), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, cached.Create(context.Background(), other))

	resolved, err = cached.ResolveActive(context.Background(), []uuid.UUID{product.ID, other.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	require.Equal(t, 1, inner.resolves)
}

func TestResolveActive_SkipsCachedInactiveProduct(t *testing.T) {
	cached, _, product := newCachedRepo(t)

	require.NoError(t, product.Update(product.Name, product.Description, "", product.Price, product.CategoryID, false, time.Now().UTC()))
	require.NoError(t, cached.Update(context.Background(), product))

	_, err := cached.GetByID(context.Background(), product.ID)
	require.NoError(t, err)

	resolved, err := cached.ResolveActive(context.Background(), []uuid.UUID{product.ID})
	require.NoError(t, err)
	require.Empty(t, resolved)
}

func TestList_PassesThrough(t *testing.T) {
	cached, _, _ := newCachedRepo(t)

	products, total, err := cached.List(context.Background(), ports.ProductFilter{}, ports.DefaultSort, pagination.Request{PageSize: 10}.Normalize())
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, products, 1)
}
