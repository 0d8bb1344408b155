package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/clients/vnpay"
	ordersdomain "github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/domains/payments/ports"
)

var _ ports.Service = (*Service)(nil)

// Service builds gateway payment URLs for pending orders and turns verified
// gateway callbacks into completed order payments.
type Service struct {
	orders       ordersports.Service
	gateway      ports.Gateway
	orchestrator ports.CompletionOrchestrator
}

func NewService(orders ordersports.Service, gateway ports.Gateway, orchestrator ports.CompletionOrchestrator) *Service {
	return &Service{orders: orders, gateway: gateway, orchestrator: orchestrator}
}

func (s *Service) GetPaymentURL(ctx context.Context, orderID uuid.UUID, clientIP string) (string, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			return "", ErrOrderNotPayable
		}
		return "", fmt.Errorf("load order %s: %w", orderID, err)
	}
	if order.Status != ordersdomain.StatusPending {
		return "", ErrOrderNotPayable
	}

	paymentURL, err := s.gateway.PaymentURL(vnpay.PaymentRequest{
		TxnRef:    orderID.String(),
		Amount:    order.TotalAmount(),
		OrderInfo: orderID.String(),
		IPAddress: clientIP,
	})
	if err != nil {
		return "", fmt.Errorf("build payment url for order %s: %w", orderID, err)
	}
	return paymentURL, nil
}

func (s *Service) ProcessIPN(ctx context.Context, query url.Values) error {
	result, err := s.gateway.VerifyIPN(query)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCallback, err)
	}

	orderID, err := uuid.Parse(result.OrderInfo)
	if err != nil {
		return fmt.Errorf("%w: order reference %q is not a valid id", ErrInvalidCallback, result.OrderInfo)
	}

	if err := s.orchestrator.CompletePayment(ctx, ordersports.CompletePaymentInput{
		OrderID: orderID,
		Amount:  result.Amount,
		PaidAt:  result.PaidAt,
		Method:  ordersdomain.PaymentMethodVNPay,
	}); err != nil {
		return fmt.Errorf("complete payment for order %s: %w", orderID, err)
	}
	return nil
}
