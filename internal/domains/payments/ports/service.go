package ports

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/clients/vnpay"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
)

// Gateway abstracts the payment provider client.
type Gateway interface {
	PaymentURL(request vnpay.PaymentRequest) (string, error)
	VerifyIPN(query url.Values) (*vnpay.IPNResult, error)
}

// CompletionOrchestrator runs the order payment completion, durably when a
// workflow engine is available and inline otherwise.
type CompletionOrchestrator interface {
	CompletePayment(ctx context.Context, input ordersports.CompletePaymentInput) error
}

// Service exposes the payment use cases to adapters.
type Service interface {
	// GetPaymentURL builds a signed gateway URL for a pending order.
	GetPaymentURL(ctx context.Context, orderID uuid.UUID, clientIP string) (string, error)
	// ProcessIPN verifies a gateway callback and completes the order payment.
	ProcessIPN(ctx context.Context, query url.Values) error
}
