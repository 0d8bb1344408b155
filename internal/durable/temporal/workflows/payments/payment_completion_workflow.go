package payments

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	paymentactivities "github.com/brewlabs/coffee-store-api/internal/platform/temporal/activities/payments"
)

const (
	// PaymentCompletionWorkflowName is the public identifier for registering the workflow.
	PaymentCompletionWorkflowName = "payments.workflows.Completion"
	// PaymentCompletionTaskQueue is the queue consumed by the worker processing payment workflows.
	PaymentCompletionTaskQueue = "PAYMENT_COMPLETION"
)

// PaymentCompletionWorkflowInput captures a verified gateway callback headed
// for order completion.
type PaymentCompletionWorkflowInput struct {
	Command ordersports.CompletePaymentInput
	TraceID string
}

// PaymentCompletionWorkflow records a gateway payment against its order.
func PaymentCompletionWorkflow(ctx workflow.Context, input PaymentCompletionWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := input.Command.OrderID.String()
	logger.Info("PaymentCompletionWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, paymentactivities.CompleteOrderPaymentActivityName, input.Command).Get(ctx, nil); err != nil {
		logger.Error("PaymentCompletionWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("PaymentCompletionWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
