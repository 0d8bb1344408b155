package payments

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
)

// CompleteOrderPaymentActivityName records a verified payment against its order.
const CompleteOrderPaymentActivityName = "payments.activities.CompleteOrderPayment"

// Activities groups activities that operate on the payments bounded context.
type Activities struct {
	orders ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(orders ordersports.Service) *Activities {
	return &Activities{orders: orders}
}

// CompleteOrderPayment attaches a payment to a pending order and completes it.
func (a *Activities) CompleteOrderPayment(ctx context.Context, input ordersports.CompletePaymentInput) error {
	logger := activity.GetLogger(ctx)
	orderID := input.OrderID.String()
	if a == nil || a.orders == nil {
		logger.Error("payment completion activity not initialized", "orderId", orderID)
		return errors.New("payment completion activity not initialized")
	}
	logger.Info("CompleteOrderPayment activity started", "orderId", orderID)
	if err := a.orders.CompletePayment(ctx, input); err != nil {
		logger.Error("CompleteOrderPayment activity failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("CompleteOrderPayment activity completed", "orderId", orderID)
	return nil
}
