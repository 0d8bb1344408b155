package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersdomain "github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
)

// OrderItem is the transport shape of one requested product/quantity pair.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// OrderLine is the transport shape of a priced order line.
type OrderLine struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Payment is the transport shape of a completed payment.
type Payment struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	PaidAt time.Time       `json:"paidAt"`
	Method string          `json:"method"`
}

// Order is the detailed transport shape of an order.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Lines       []OrderLine     `json:"lines"`
	Payment     *Payment        `json:"payment,omitempty"`
}

// OrderSummary is the listing projection returned by the orders index.
type OrderSummary struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	PaymentID   *uuid.UUID      `json:"paymentId,omitempty"`
}

// ToLineInputs converts transport items into the service input shape.
func ToLineInputs(items []OrderItem) []ordersports.LineInput {
	inputs := make([]ordersports.LineInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, ordersports.LineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return inputs
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLine{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal(),
		})
	}
	result := Order{
		ID:          order.ID,
		UserID:      order.UserID,
		OrderDate:   order.OrderDate,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount(),
		TotalItems:  order.TotalItems(),
		Lines:       lines,
	}
	if order.Payment != nil {
		result.Payment = &Payment{
			ID:     order.Payment.ID,
			Amount: order.Payment.Amount,
			PaidAt: order.Payment.PaidAt,
			Method: string(order.Payment.Method),
		}
	}
	return result
}

// FromSummary converts the service listing projection to transport.
func FromSummary(summary ordersports.OrderSummary) OrderSummary {
	return OrderSummary{
		ID:          summary.ID,
		UserID:      summary.UserID,
		OrderDate:   summary.OrderDate,
		Status:      string(summary.Status),
		TotalAmount: summary.TotalAmount,
		TotalItems:  summary.TotalItems,
		PaymentID:   summary.PaymentID,
	}
}

// FromSummaryList converts a page of summaries.
func FromSummaryList(summaries []ordersports.OrderSummary) []OrderSummary {
	result := make([]OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, FromSummary(summary))
	}
	return result
}
