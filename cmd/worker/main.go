package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/brewlabs/coffee-store-api/internal/domains/catalog/application"
	ordersmemory "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/brewlabs/coffee-store-api/internal/domains/orders/application"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	paymentworkflows "github.com/brewlabs/coffee-store-api/internal/durable/temporal/workflows/payments"
	platformobservability "github.com/brewlabs/coffee-store-api/internal/platform/observability"
	platformpostgres "github.com/brewlabs/coffee-store-api/internal/platform/postgres"
	paymentactivities "github.com/brewlabs/coffee-store-api/internal/platform/temporal/activities/payments"
)

func main() {
	ctx := context.Background()
	const serviceName = "coffee-store-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanupRepos := buildOrderService(ctx, logger, instruments)
	defer cleanupRepos()
	activities := paymentactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, paymentworkflows.PaymentCompletionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(paymentworkflows.PaymentCompletionWorkflow, workflow.RegisterOptions{Name: paymentworkflows.PaymentCompletionWorkflowName})
	w.RegisterActivityWithOptions(activities.CompleteOrderPayment, activity.RegisterOptions{Name: paymentactivities.CompleteOrderPaymentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", paymentworkflows.PaymentCompletionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildOrderService wires the orders stack against postgres when available
// and memory otherwise, mirroring the API process.
func buildOrderService(ctx context.Context, logger *slog.Logger, instruments *platformobservability.Instruments) (ordersports.Service, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)

	var orderRepo ordersports.Repository
	var catalogService *catalogapp.Service
	if db != nil {
		orderRepo = orderspostgres.NewRepository(db)
		catalogService = catalogapp.NewService(catalogpostgres.NewProductRepository(db), catalogpostgres.NewCategoryRepository(db))
	} else {
		orderRepo = ordersmemory.NewRepository()
		catalogService = catalogapp.NewService(catalogmemory.NewProductRepository(), catalogmemory.NewCategoryRepository())
	}
	service := ordersobs.New(
		ordersapp.NewService(orderRepo, catalogService),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return service, cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
