package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/brewlabs/coffee-store-api/internal/clients/vnpay"
	catalogcache "github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/cache"
	catalogmemory "github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/brewlabs/coffee-store-api/internal/domains/catalog/application"
	catalogports "github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	menuscatalog "github.com/brewlabs/coffee-store-api/internal/domains/menus/adapters/catalog"
	menusmemory "github.com/brewlabs/coffee-store-api/internal/domains/menus/adapters/memory"
	menuspostgres "github.com/brewlabs/coffee-store-api/internal/domains/menus/adapters/persistence/postgres"
	menusapp "github.com/brewlabs/coffee-store-api/internal/domains/menus/application"
	menusports "github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
	ordersmemory "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/brewlabs/coffee-store-api/internal/domains/orders/application"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	paymentsworkflows "github.com/brewlabs/coffee-store-api/internal/domains/payments/adapters/workflows"
	paymentsapp "github.com/brewlabs/coffee-store-api/internal/domains/payments/application"
	paymentsports "github.com/brewlabs/coffee-store-api/internal/domains/payments/ports"
	usersmemory "github.com/brewlabs/coffee-store-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/brewlabs/coffee-store-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/brewlabs/coffee-store-api/internal/domains/users/application"
	usersports "github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
	"github.com/brewlabs/coffee-store-api/internal/httpapi"
	"github.com/brewlabs/coffee-store-api/internal/platform/auth"
	"github.com/brewlabs/coffee-store-api/internal/platform/migrations"
	platformobservability "github.com/brewlabs/coffee-store-api/internal/platform/observability"
	platformpostgres "github.com/brewlabs/coffee-store-api/internal/platform/postgres"
	platformredis "github.com/brewlabs/coffee-store-api/internal/platform/redis"
)

// Run boots the coffee-store HTTP API with observability, repositories,
// caching, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "coffee-store-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	manager, err := auth.NewManager([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure token manager: %w", err)
	}

	db, cleanupDB := platformpostgres.ConnectWithFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	redisClient, cleanupRedis := platformredis.ConnectWithFallback(ctx, cfg.RedisAddr, logger)
	defer cleanupRedis()

	var productRepo catalogports.ProductRepository
	var categoryRepo catalogports.CategoryRepository
	if db != nil {
		productRepo = catalogpostgres.NewProductRepository(db)
		categoryRepo = catalogpostgres.NewCategoryRepository(db)
	} else {
		productRepo = catalogmemory.NewProductRepository()
		categoryRepo = catalogmemory.NewCategoryRepository()
	}
	cacheOpts := []catalogcache.Option{catalogcache.WithLogger(logger)}
	if redisClient != nil {
		cacheOpts = append(cacheOpts, catalogcache.WithRedis(redisClient))
	}
	cachedProducts := catalogcache.NewProductRepository(productRepo, cacheOpts...)
	catalogService := catalogapp.NewService(cachedProducts, categoryRepo)

	var orderRepo ordersports.Repository
	if db != nil {
		orderRepo = orderspostgres.NewRepository(db)
	} else {
		orderRepo = ordersmemory.NewRepository()
	}
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, catalogService),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var menuRepo menusports.Repository
	if db != nil {
		menuRepo = menuspostgres.NewRepository(db)
	} else {
		menuRepo = menusmemory.NewRepository()
	}
	menuService := menusapp.NewService(menuRepo, menuscatalog.NewResolver(cachedProducts))

	var userRepo usersports.Repository
	var tokenStore usersports.TokenStore
	if db != nil {
		userRepo = userspostgres.NewRepository(db)
		tokenStore = userspostgres.NewTokenStore(db)
	} else {
		userRepo = usersmemory.NewRepository()
		tokenStore = usersmemory.NewTokenStore()
	}
	userService := usersapp.NewService(userRepo, tokenStore, manager, usersapp.WithRefreshTTL(cfg.RefreshTokenTTL))

	var gateway paymentsports.Gateway = (*vnpay.Client)(nil)
	if gatewayClient, err := vnpay.NewClient(cfg.VNPayTmnCode, cfg.VNPayHashSecret, cfg.VNPayBaseURL, cfg.VNPayReturnURL); err != nil {
		logger.Warn("VNPay gateway not configured, payment URLs disabled", slog.String("error", err.Error()))
	} else {
		gateway = gatewayClient
	}

	var orchestrator paymentsports.CompletionOrchestrator = paymentsworkflows.NewInlinePaymentWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, completing payments inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = paymentsworkflows.NewTemporalPaymentWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	paymentService := paymentsapp.NewService(orderService, gateway, orchestrator)

	handlers := httpapi.ApiHandleFunctions{
		OrderAPI:   httpapi.NewOrderAPI(orderService),
		ProductAPI: httpapi.NewProductAPI(catalogService),
		MenuAPI:    httpapi.NewMenuAPI(menuService),
		UserAPI:    httpapi.NewUserAPI(userService),
		PaymentAPI: httpapi.NewPaymentAPI(paymentService),
	}
	router := httpapi.NewRouter(handlers, manager, otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("coffee-store API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("coffee-store API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
