package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

const tracerName = "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ordersports.CreateOrderInput) (uuid.UUID, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.String("order.user_id", input.UserID), attribute.Int("order.items", len(input.Items))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("user.id", input.UserID), slog.Int("order.items", len(input.Items)))
	id, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return uuid.Nil, s.handleError(ctx, span, err, "failed to create order", slog.String("user.id", input.UserID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created", slog.String("order.id", id.String()))
	return id, nil
}

func (s *Service) UpdateOrder(ctx context.Context, orderID uuid.UUID, items []ordersports.LineInput) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder",
		trace.WithAttributes(attribute.String("order.id", orderID.String()), attribute.Int("order.items", len(items))))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", orderID.String()), slog.Int("order.items", len(items)))
	if err := s.inner.UpdateOrder(ctx, orderID, items); err != nil {
		return s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", orderID.String()))
	}
	s.logInfo(ctx, "order updated", slog.String("order.id", orderID.String()))
	return nil
}

func (s *Service) SetOrderStatus(ctx context.Context, orderID uuid.UUID, target ordersdomain.Status) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.SetOrderStatus",
		trace.WithAttributes(attribute.String("order.id", orderID.String()), attribute.String("order.target_status", string(target))))
	defer span.End()

	s.logInfo(ctx, "changing order status", slog.String("order.id", orderID.String()), slog.String("target", string(target)))
	if err := s.inner.SetOrderStatus(ctx, orderID, target); err != nil {
		return s.handleError(ctx, span, err, "failed to change order status", slog.String("order.id", orderID.String()))
	}
	s.metrics.recordTransition(ctx, target)
	s.logInfo(ctx, "order status changed", slog.String("order.id", orderID.String()), slog.String("status", string(target)))
	return nil
}

func (s *Service) CompletePayment(ctx context.Context, input ordersports.CompletePaymentInput) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.CompletePayment",
		trace.WithAttributes(attribute.String("order.id", input.OrderID.String()), attribute.String("payment.method", string(input.Method))))
	defer span.End()

	s.logInfo(ctx, "completing payment", slog.String("order.id", input.OrderID.String()), slog.String("payment.amount", input.Amount.String()))
	if err := s.inner.CompletePayment(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to complete payment", slog.String("order.id", input.OrderID.String()))
	}
	s.metrics.recordPaid(ctx, input.Method)
	s.logInfo(ctx, "payment completed", slog.String("order.id", input.OrderID.String()))
	return nil
}

func (s *Service) ListOrders(ctx context.Context, input ordersports.ListOrdersInput) (pagination.Page[ordersports.OrderSummary], error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.Int("page", input.Page.Page), attribute.Int("page.size", input.Page.PageSize)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, input)
	if err != nil {
		return pagination.Page[ordersports.OrderSummary]{}, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.page_count", result.TotalCurrentResults))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID",
		trace.WithAttributes(attribute.String("order.id", orderID.String())))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", orderID.String()))
	}
	span.SetAttributes(attribute.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated     metric.Int64Counter
	statusTransitions metric.Int64Counter
	paymentsCompleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	statusTransitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of order status transitions"))
	paymentsCompleted, _ := m.Int64Counter("orders.service.payments_completed", metric.WithDescription("Number of payments completed"))
	return serviceMetrics{ordersCreated: ordersCreated, statusTransitions: statusTransitions, paymentsCompleted: paymentsCompleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, target ordersdomain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(target))))
	}
}

func (m serviceMetrics) recordPaid(ctx context.Context, method ordersdomain.PaymentMethod) {
	if m.paymentsCompleted != nil {
		m.paymentsCompleted.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", string(method))))
	}
}

var _ ordersports.Service = (*Service)(nil)
