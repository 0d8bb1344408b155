package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/adapters/memory"
	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

type fakeCatalog struct {
	products map[uuid.UUID]ports.ProductSnapshot
}

func (f *fakeCatalog) ResolveProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]ports.ProductSnapshot, error) {
	resolved := make(map[uuid.UUID]ports.ProductSnapshot, len(ids))
	for _, id := range ids {
		if snapshot, ok := f.products[id]; ok {
			resolved[id] = snapshot
		}
	}
	return resolved, nil
}

func newMenuService() (*Service, *fakeCatalog) {
	catalog := &fakeCatalog{products: map[uuid.UUID]ports.ProductSnapshot{}}
	return NewService(memory.NewRepository(), catalog), catalog
}

func seedSnapshot(catalog *fakeCatalog, name, price string) uuid.UUID {
	id := uuid.New()
	catalog.products[id] = ports.ProductSnapshot{Name: name, Price: decimal.RequireFromString(price)}
	return id
}

func menuInput(name string, from, to time.Time, items ...ports.ItemInput) ports.MenuInput {
	return ports.MenuInput{Name: name, FromDate: from, ToDate: to, Items: items}
}

func TestCreateMenu_PersistsValidMenu(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")

	from := time.Now().UTC()
	menu, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 3, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 1}))
	require.NoError(t, err)
	require.Equal(t, "Winter Menu", menu.Name)
	require.Len(t, menu.Items, 1)
}

func TestCreateMenu_RejectsUnknownProducts(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")
	ghost := uuid.New()

	from := time.Now().UTC()
	_, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 3, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 1},
		ports.ItemInput{ProductID: ghost, Quantity: 1}))
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), ghost.String())
}

func TestCreateMenu_RejectsInvertedDateRange(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")

	from := time.Now().UTC()
	_, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 0, -1),
		ports.ItemInput{ProductID: espresso, Quantity: 1}))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestCreateMenu_RejectsEmptyItems(t *testing.T) {
	svc, _ := newMenuService()

	from := time.Now().UTC()
	_, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 3, 0)))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrNoItems)
}

func TestUpdateMenu_ReplacesItems(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")
	latte := seedSnapshot(catalog, "Latte", "4.00")

	from := time.Now().UTC()
	menu, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 3, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 1}))
	require.NoError(t, err)

	updated, err := svc.UpdateMenu(context.Background(), menu.ID, menuInput("Spring Menu", from, from.AddDate(0, 6, 0),
		ports.ItemInput{ProductID: latte, Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, "Spring Menu", updated.Name)
	require.Len(t, updated.Items, 1)
	require.Equal(t, latte, updated.Items[0].ProductID)
}

func TestGetMenuByID_ResolvesProductDetails(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")

	from := time.Now().UTC()
	menu, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 3, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 2}))
	require.NoError(t, err)

	details, err := svc.GetMenuByID(context.Background(), menu.ID)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	require.Equal(t, "Espresso", details.Items[0].ProductName)
	require.True(t, details.Items[0].UnitPrice.Equal(decimal.RequireFromString("3.50")))

	// A retired product keeps its slot with an empty snapshot.
	delete(catalog.products, espresso)
	details, err = svc.GetMenuByID(context.Background(), menu.ID)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	require.Empty(t, details.Items[0].ProductName)
}

func TestDeleteMenu_HidesFromReads(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")

	from := time.Now().UTC()
	menu, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", from, from.AddDate(0, 3, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 1}))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMenu(context.Background(), menu.ID))

	_, err = svc.GetMenuByID(context.Background(), menu.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListMenus_FiltersByNameAndDate(t *testing.T) {
	svc, catalog := newMenuService()
	espresso := seedSnapshot(catalog, "Espresso", "3.50")

	now := time.Now().UTC()
	_, err := svc.CreateMenu(context.Background(), menuInput("Winter Menu", now.AddDate(0, -1, 0), now.AddDate(0, 1, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.CreateMenu(context.Background(), menuInput("Summer Menu", now.AddDate(0, 2, 0), now.AddDate(0, 4, 0),
		ports.ItemInput{ProductID: espresso, Quantity: 1}))
	require.NoError(t, err)

	byName, err := svc.ListMenus(context.Background(), ports.ListMenusInput{
		Filter: ports.Filter{Name: "winter"},
		Page:   pagination.Request{PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, byName.Results, 1)
	require.Equal(t, "Winter Menu", byName.Results[0].Name)

	active, err := svc.ListMenus(context.Background(), ports.ListMenusInput{
		Filter: ports.Filter{ActiveOn: &now},
		Page:   pagination.Request{PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, active.Results, 1)
	require.Equal(t, "Winter Menu", active.Results[0].Name)
}
