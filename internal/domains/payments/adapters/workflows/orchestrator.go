package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/domains/payments/ports"
	paymentworkflows "github.com/brewlabs/coffee-store-api/internal/durable/temporal/workflows/payments"
)

var (
	_ ports.CompletionOrchestrator = (*TemporalPaymentWorkflows)(nil)
	_ ports.CompletionOrchestrator = (*InlinePaymentWorkflows)(nil)
)

// TemporalPaymentWorkflows starts payment workflows on a Temporal cluster.
type TemporalPaymentWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPaymentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPaymentWorkflows(c client.Client) *TemporalPaymentWorkflows {
	return &TemporalPaymentWorkflows{client: c, taskQueue: paymentworkflows.PaymentCompletionTaskQueue}
}

// CompletePayment starts the workflow that records a payment against its order.
// The workflow ID is keyed on the order so duplicate gateway callbacks reuse
// the already-started run instead of paying the order twice.
func (o *TemporalPaymentWorkflows) CompletePayment(ctx context.Context, input ordersports.CompletePaymentInput) error {
	if o == nil || o.client == nil {
		return errors.New("temporal payment workflows not configured")
	}
	workflowID := fmt.Sprintf("payment-completion-%s", input.OrderID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		paymentworkflows.PaymentCompletionWorkflow,
		paymentworkflows.PaymentCompletionWorkflowInput{Command: input, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			return existingRun.Get(ctx, nil)
		}
		return err
	}
	return run.Get(ctx, nil)
}

// InlinePaymentWorkflows completes the payment directly without Temporal,
// useful for tests or dev fallbacks.
type InlinePaymentWorkflows struct {
	orders ordersports.Service
}

// NewInlinePaymentWorkflows wraps the orders service for synchronous execution.
func NewInlinePaymentWorkflows(orders ordersports.Service) *InlinePaymentWorkflows {
	return &InlinePaymentWorkflows{orders: orders}
}

// CompletePayment delegates to the orders service without durable orchestration.
func (o *InlinePaymentWorkflows) CompletePayment(ctx context.Context, input ordersports.CompletePaymentInput) error {
	if o == nil || o.orders == nil {
		return errors.New("inline payment workflows not configured")
	}
	return o.orders.CompletePayment(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
