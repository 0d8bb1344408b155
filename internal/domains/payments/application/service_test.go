package application

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewlabs/coffee-store-api/internal/clients/vnpay"
	ordersdomain "github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

type fakeOrders struct {
	order     *ordersdomain.Order
	completed []ordersports.CompletePaymentInput
}

func (f *fakeOrders) CreateOrder(context.Context, ordersports.CreateOrderInput) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeOrders) UpdateOrder(context.Context, uuid.UUID, []ordersports.LineInput) error {
	return nil
}

func (f *fakeOrders) SetOrderStatus(context.Context, uuid.UUID, ordersdomain.Status) error {
	return nil
}

func (f *fakeOrders) CompletePayment(_ context.Context, input ordersports.CompletePaymentInput) error {
	f.completed = append(f.completed, input)
	return nil
}

func (f *fakeOrders) ListOrders(context.Context, ordersports.ListOrdersInput) (pagination.Page[ordersports.OrderSummary], error) {
	return pagination.Page[ordersports.OrderSummary]{}, nil
}

func (f *fakeOrders) GetOrderByID(_ context.Context, orderID uuid.UUID) (*ordersdomain.Order, error) {
	if f.order == nil || f.order.ID != orderID {
		return nil, ordersports.ErrNotFound
	}
	return f.order, nil
}

type fakeGateway struct {
	requests []vnpay.PaymentRequest
	result   *vnpay.IPNResult
	err      error
}

func (f *fakeGateway) PaymentURL(request vnpay.PaymentRequest) (string, error) {
	f.requests = append(f.requests, request)
	return "https://gateway.example.com/pay?vnp_TxnRef=" + request.TxnRef, nil
}

func (f *fakeGateway) VerifyIPN(url.Values) (*vnpay.IPNResult, error) {
	return f.result, f.err
}

func pendingOrder(t *testing.T) *ordersdomain.Order {
	t.Helper()
	now := time.Now().UTC()
	order, err := ordersdomain.NewOrder("user-1", []ordersdomain.Line{{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Espresso",
		UnitPrice:   decimal.RequireFromString("12.25"),
		Quantity:    2,
	}}, now)
	require.NoError(t, err)
	require.NoError(t, order.Transition(ordersdomain.StatusPending, now))
	return order
}

func TestGetPaymentURLForPendingOrder(t *testing.T) {
	orders := &fakeOrders{order: pendingOrder(t)}
	gateway := &fakeGateway{}
	service := NewService(orders, gateway, inlineOrchestrator{orders: orders})

	raw, err := service.GetPaymentURL(context.Background(), orders.order.ID, "203.0.113.9")
	require.NoError(t, err)
	require.Contains(t, raw, orders.order.ID.String())

	require.Len(t, gateway.requests, 1)
	request := gateway.requests[0]
	require.Equal(t, orders.order.ID.String(), request.TxnRef)
	require.Equal(t, orders.order.ID.String(), request.OrderInfo)
	require.Equal(t, "203.0.113.9", request.IPAddress)
	require.True(t, request.Amount.Equal(decimal.RequireFromString("24.50")), "amount %s", request.Amount)
}

func TestGetPaymentURLRejectsNonPendingOrders(t *testing.T) {
	now := time.Now().UTC()
	order, err := ordersdomain.NewOrder("user-1", []ordersdomain.Line{{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Espresso",
		UnitPrice:   decimal.NewFromInt(3),
		Quantity:    1,
	}}, now)
	require.NoError(t, err)

	orders := &fakeOrders{order: order}
	service := NewService(orders, &fakeGateway{}, inlineOrchestrator{orders: orders})

	_, err = service.GetPaymentURL(context.Background(), order.ID, "203.0.113.9")
	require.ErrorIs(t, err, ErrOrderNotPayable)
}

func TestGetPaymentURLReportsUnknownOrders(t *testing.T) {
	orders := &fakeOrders{}
	service := NewService(orders, &fakeGateway{}, inlineOrchestrator{orders: orders})

	_, err := service.GetPaymentURL(context.Background(), uuid.New(), "203.0.113.9")
	require.ErrorIs(t, err, ErrOrderNotPayable)
}

func TestProcessIPNCompletesTheOrder(t *testing.T) {
	orders := &fakeOrders{order: pendingOrder(t)}
	paidAt := time.Date(2024, 3, 1, 10, 32, 17, 0, time.UTC)
	gateway := &fakeGateway{result: &vnpay.IPNResult{
		OrderInfo: orders.order.ID.String(),
		TxnRef:    orders.order.ID.String(),
		Amount:    decimal.RequireFromString("24.50"),
		PaidAt:    paidAt,
	}}
	service := NewService(orders, gateway, inlineOrchestrator{orders: orders})

	require.NoError(t, service.ProcessIPN(context.Background(), url.Values{}))

	require.Len(t, orders.completed, 1)
	completed := orders.completed[0]
	require.Equal(t, orders.order.ID, completed.OrderID)
	require.Equal(t, ordersdomain.PaymentMethodVNPay, completed.Method)
	require.Equal(t, paidAt, completed.PaidAt)
	require.True(t, completed.Amount.Equal(decimal.RequireFromString("24.50")), "amount %s", completed.Amount)
}

func TestProcessIPNRejectsBadSignatures(t *testing.T) {
	orders := &fakeOrders{order: pendingOrder(t)}
	gateway := &fakeGateway{err: vnpay.ErrBadSignature}
	service := NewService(orders, gateway, inlineOrchestrator{orders: orders})

	err := service.ProcessIPN(context.Background(), url.Values{})
	require.ErrorIs(t, err, ErrInvalidCallback)
	require.ErrorIs(t, err, vnpay.ErrBadSignature)
	require.Empty(t, orders.completed)
}

func TestProcessIPNRejectsUnparsableOrderReferences(t *testing.T) {
	orders := &fakeOrders{order: pendingOrder(t)}
	gateway := &fakeGateway{result: &vnpay.IPNResult{OrderInfo: "not-a-uuid"}}
	service := NewService(orders, gateway, inlineOrchestrator{orders: orders})

	err := service.ProcessIPN(context.Background(), url.Values{})
	require.ErrorIs(t, err, ErrInvalidCallback)
	require.Empty(t, orders.completed)
}

type inlineOrchestrator struct {
	orders ordersports.Service
}

func (o inlineOrchestrator) CompletePayment(ctx context.Context, input ordersports.CompletePaymentInput) error {
	return o.orders.CompletePayment(ctx, input)
}
