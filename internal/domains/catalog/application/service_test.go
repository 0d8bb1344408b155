package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/memory"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

func newCatalogService(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()
	svc := NewService(memory.NewProductRepository(), memory.NewCategoryRepository())
	category, err := svc.CreateCategory(context.Background(), ports.CategoryInput{Name: "Coffee"})
	require.NoError(t, err)
	return svc, category.ID
}

func productInput(name, price string, categoryID uuid.UUID) ports.ProductInput {
	return ports.ProductInput{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
		Active:     true,
	}
}

func TestCreateProduct_RequiresExistingCategory(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), productInput("Espresso", "3.50", uuid.New()))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestCreateProduct_RejectsNegativePrice(t *testing.T) {
	svc, categoryID := newCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), productInput("Espresso", "-1.00", categoryID))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdateProduct_AppliesFields(t *testing.T) {
	svc, categoryID := newCatalogService(t)

	created, err := svc.CreateProduct(context.Background(), productInput("Espresso", "3.50", categoryID))
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, productInput("Double Espresso", "4.20", categoryID))
	require.NoError(t, err)
	require.Equal(t, "Double Espresso", updated.Name)
	require.True(t, updated.Price.Equal(decimal.RequireFromString("4.20")))
}

func TestDeleteProduct_HidesFromReadsAndResolution(t *testing.T) {
	svc, categoryID := newCatalogService(t)

	created, err := svc.CreateProduct(context.Background(), productInput("Espresso", "3.50", categoryID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	_, err = svc.GetProductByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	resolved, err := svc.ResolveActiveProducts(context.Background(), []uuid.UUID{created.ID})
	require.NoError(t, err)
	require.Empty(t, resolved)
}

func TestResolveActiveProducts_OmitsInactive(t *testing.T) {
	svc, categoryID := newCatalogService(t)

	active, err := svc.CreateProduct(context.Background(), productInput("Espresso", "3.50", categoryID))
	require.NoError(t, err)
	inactive, err := svc.CreateProduct(context.Background(), productInput("Latte", "4.00", categoryID))
	require.NoError(t, err)
	input := productInput("Latte", "4.00", categoryID)
	input.Active = false
	_, err = svc.UpdateProduct(context.Background(), inactive.ID, input)
	require.NoError(t, err)

	resolved, err := svc.ResolveActiveProducts(context.Background(), []uuid.UUID{active.ID, inactive.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	info, ok := resolved[active.ID]
	require.True(t, ok)
	require.Equal(t, "Espresso", info.Name)
	require.True(t, info.Price.Equal(decimal.RequireFromString("3.50")))
}

func TestListProducts_SortAllowList(t *testing.T) {
	svc, categoryID := newCatalogService(t)

	for _, item := range []struct{ name, price string }{
		{"Mocha", "5.00"},
		{"Americano", "3.00"},
		{"Latte", "4.00"},
	} {
		_, err := svc.CreateProduct(context.Background(), productInput(item.name, item.price, categoryID))
		require.NoError(t, err)
	}

	sortBy, err := ports.ParseSort("-price")
	require.NoError(t, err)
	page, err := svc.ListProducts(context.Background(), ports.ListProductsInput{
		Sort: sortBy,
		Page: pagination.Request{PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	require.Equal(t, "Mocha", page.Results[0].Name)
	require.Equal(t, "Americano", page.Results[2].Name)

	_, err = ports.ParseSort("stockLevel")
	require.ErrorIs(t, err, ports.ErrInvalidSortKey)
	require.Contains(t, err.Error(), "stockLevel")
}

func TestListProducts_SearchMatchesNameAndDescription(t *testing.T) {
	svc, categoryID := newCatalogService(t)

	input := productInput("Espresso", "3.50", categoryID)
	input.Description = "strong and short"
	_, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), productInput("Latte", "4.00", categoryID))
	require.NoError(t, err)

	page, err := svc.ListProducts(context.Background(), ports.ListProductsInput{
		Filter: ports.ProductFilter{Search: "strong"},
		Page:   pagination.Request{PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, "Espresso", page.Results[0].Name)
}

func TestCreateCategory_RejectsDuplicateName(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.CreateCategory(context.Background(), ports.CategoryInput{Name: "coffee"})
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}
