package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// LineInput is one requested product/quantity pair.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries everything needed to open a new order.
type CreateOrderInput struct {
	UserID string
	Items  []LineInput
}

// CompletePaymentInput is raised by the payment notifier after a successful
// gateway callback.
type CompletePaymentInput struct {
	OrderID uuid.UUID
	Amount  decimal.Decimal
	PaidAt  time.Time
	Method  domain.PaymentMethod
}

// ListOrdersInput combines the filter with the requested page.
type ListOrdersInput struct {
	Filter Filter
	Page   pagination.Request
}

// OrderSummary is the listing projection of an order.
type OrderSummary struct {
	ID          uuid.UUID
	UserID      string
	OrderDate   time.Time
	Status      domain.Status
	TotalAmount decimal.Decimal
	TotalItems  int
	PaymentID   *uuid.UUID
}

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (uuid.UUID, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, items []LineInput) error
	SetOrderStatus(ctx context.Context, orderID uuid.UUID, target domain.Status) error
	CompletePayment(ctx context.Context, input CompletePaymentInput) error
	ListOrders(ctx context.Context, input ListOrdersInput) (pagination.Page[OrderSummary], error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}
