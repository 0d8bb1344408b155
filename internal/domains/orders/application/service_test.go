package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	copy := *order
	f.orders[order.ID] = &copy
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		copy := *o
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) Mutate(_ context.Context, id uuid.UUID, fn func(*domain.Order) error) error {
	o, ok := f.orders[id]
	if !ok {
		return ports.ErrNotFound
	}
	copy := *o
	if err := fn(&copy); err != nil {
		return err
	}
	f.orders[id] = &copy
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter ports.Filter, page pagination.Request) ([]*domain.Order, int64, error) {
	var list []*domain.Order
	for _, o := range f.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		copy := *o
		list = append(list, &copy)
	}
	return list, int64(len(list)), nil
}

type fakeCatalog struct {
	products map[uuid.UUID]ports.ProductInfo
}

func (f *fakeCatalog) ResolveActiveProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]ports.ProductInfo, error) {
	resolved := make(map[uuid.UUID]ports.ProductInfo, len(ids))
	for _, id := range ids {
		if info, ok := f.products[id]; ok {
			resolved[id] = info
		}
	}
	return resolved, nil
}

func newTestService() (*Service, *fakeOrderRepo, *fakeCatalog) {
	repo := newFakeOrderRepo()
	catalog := &fakeCatalog{products: map[uuid.UUID]ports.ProductInfo{}}
	svc := NewService(repo, catalog)
	return svc, repo, catalog
}

func seedProduct(catalog *fakeCatalog, name, price string) uuid.UUID {
	id := uuid.New()
	catalog.products[id] = ports.ProductInfo{Name: name, Price: decimal.RequireFromString(price)}
	return id
}

func TestCreateOrder_CapturesPricesAndTotals(t *testing.T) {
	svc, repo, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")
	muffin := seedProduct(catalog, "Muffin", "5.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items: []ports.LineInput{
			{ProductID: espresso, Quantity: 2},
			{ProductID: muffin, Quantity: 1},
		},
	})
	require.NoError(t, err)

	order, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEditing, order.Status)
	require.Len(t, order.Lines, 2)
	require.True(t, order.TotalAmount().Equal(decimal.RequireFromString("25.00")))
	require.Equal(t, 3, order.TotalItems())
	for _, line := range order.Lines {
		if line.ProductID == espresso {
			require.Equal(t, "Espresso", line.ProductName)
			require.True(t, line.UnitPrice.Equal(decimal.RequireFromString("10.00")))
		}
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "alice"})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrEmptyLines)
}

func TestCreateOrder_MissingUserID(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "   ",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrder_UnknownProductsNamedInError(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")
	ghost := uuid.New()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items: []ports.LineInput{
			{ProductID: espresso, Quantity: 1},
			{ProductID: ghost, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "products not found or inactive")
	require.Contains(t, err.Error(), ghost.String())
	require.NotContains(t, err.Error(), espresso.String())
}

func TestCreateOrder_DuplicateProduct(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items: []ports.LineInput{
			{ProductID: espresso, Quantity: 1},
			{ProductID: espresso, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrDuplicateProduct)
}

func TestCreateOrder_NonPositiveQuantity(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateOrder_ReplacesLinesWithFreshPrices(t *testing.T) {
	svc, repo, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")
	latte := seedProduct(catalog, "Latte", "6.50")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.UpdateOrder(context.Background(), id, []ports.LineInput{{ProductID: latte, Quantity: 3}})
	require.NoError(t, err)

	order, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	require.Equal(t, latte, order.Lines[0].ProductID)
	require.Equal(t, "Latte", order.Lines[0].ProductName)
	require.True(t, order.TotalAmount().Equal(decimal.RequireFromString("19.50")))
}

func TestUpdateOrder_RejectedOncePending(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusPending))

	err = svc.UpdateOrder(context.Background(), id, []ports.LineInput{{ProductID: espresso, Quantity: 2}})
	require.ErrorIs(t, err, ErrBusinessRule)
	require.ErrorIs(t, err, domain.ErrNotEditable)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	err := svc.UpdateOrder(context.Background(), uuid.New(), []ports.LineInput{{ProductID: espresso, Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateOrder_StateCheckedBeforeItemValidation(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusPending))

	err = svc.UpdateOrder(context.Background(), id, []ports.LineInput{{ProductID: uuid.New(), Quantity: 1}})
	require.ErrorIs(t, err, ErrBusinessRule)
	require.ErrorIs(t, err, domain.ErrNotEditable)
	require.NotErrorIs(t, err, ErrValidation)
}

func TestUpdateOrder_NotFoundBeforeItemValidation(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.UpdateOrder(context.Background(), uuid.New(), []ports.LineInput{{ProductID: uuid.New(), Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.NotErrorIs(t, err, ErrValidation)

	err = svc.UpdateOrder(context.Background(), uuid.New(), nil)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSetOrderStatus_FullLifecycle(t *testing.T) {
	svc, repo, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusPending))
	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusCompleted))

	order, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, order.Status)
}

func TestSetOrderStatus_IllegalTransitions(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.SetOrderStatus(context.Background(), id, domain.StatusCompleted)
	require.ErrorIs(t, err, ErrBusinessRule)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusCancelled))

	err = svc.SetOrderStatus(context.Background(), id, domain.StatusPending)
	require.ErrorIs(t, err, ErrBusinessRule)
}

func TestSetOrderStatus_InvalidStatusValue(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.SetOrderStatus(context.Background(), id, domain.Status("shipped"))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCompletePayment_CompletesPendingOrder(t *testing.T) {
	svc, repo, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusPending))

	paidAt := time.Now().UTC()
	err = svc.CompletePayment(context.Background(), ports.CompletePaymentInput{
		OrderID: id,
		Amount:  decimal.RequireFromString("20.00"),
		PaidAt:  paidAt,
		Method:  domain.PaymentMethodVNPay,
	})
	require.NoError(t, err)

	order, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, order.Status)
	require.NotNil(t, order.Payment)
	require.Equal(t, id, order.Payment.OrderID)
	require.True(t, order.Payment.Amount.Equal(decimal.RequireFromString("20.00")))
}

func TestCompletePayment_RequiresPendingOrder(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.CompletePayment(context.Background(), ports.CompletePaymentInput{
		OrderID: id,
		Amount:  decimal.RequireFromString("10.00"),
		PaidAt:  time.Now().UTC(),
		Method:  domain.PaymentMethodVNPay,
	})
	require.ErrorIs(t, err, ErrBusinessRule)
	require.ErrorIs(t, err, domain.ErrPaymentNotPending)
}

func TestCompletePayment_RejectsDoublePayment(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	id, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "alice",
		Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetOrderStatus(context.Background(), id, domain.StatusPending))

	input := ports.CompletePaymentInput{
		OrderID: id,
		Amount:  decimal.RequireFromString("10.00"),
		PaidAt:  time.Now().UTC(),
		Method:  domain.PaymentMethodVNPay,
	}
	require.NoError(t, svc.CompletePayment(context.Background(), input))

	err = svc.CompletePayment(context.Background(), input)
	require.ErrorIs(t, err, ErrBusinessRule)
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestListOrders_FiltersAndSummaries(t *testing.T) {
	svc, _, catalog := newTestService()
	espresso := seedProduct(catalog, "Espresso", "10.00")

	for _, user := range []string{"alice", "alice", "bob"} {
		_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
			UserID: user,
			Items:  []ports.LineInput{{ProductID: espresso, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(context.Background(), ports.ListOrdersInput{
		Filter: ports.Filter{UserID: "alice"},
		Page:   pagination.Request{PageSize: 10},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.TotalResults)
	require.Len(t, page.Results, 2)
	for _, summary := range page.Results {
		require.Equal(t, "alice", summary.UserID)
		require.Equal(t, domain.StatusEditing, summary.Status)
		require.Equal(t, 1, summary.TotalItems)
	}
}
