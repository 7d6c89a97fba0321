// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/catering-ops/backend/config"
	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/application/usecase/auth"
	"github.com/catering-ops/backend/internal/application/usecase/order"
	"github.com/catering-ops/backend/internal/application/usecase/product"
	"github.com/catering-ops/backend/internal/application/usecase/report"
	"github.com/catering-ops/backend/internal/infra/db"
	"github.com/catering-ops/backend/internal/infra/server/router"
	"github.com/catering-ops/backend/internal/integration/adapters"
	"github.com/catering-ops/backend/internal/integration/cache"
	"github.com/catering-ops/backend/internal/integration/email"
	"github.com/catering-ops/backend/internal/integration/email/templates"
	"github.com/catering-ops/backend/internal/integration/entrypoint/controller"
	"github.com/catering-ops/backend/internal/integration/entrypoint/middleware"
	"github.com/catering-ops/backend/internal/integration/export"
	"github.com/catering-ops/backend/internal/integration/messaging"
	"github.com/catering-ops/backend/internal/integration/persistence"
)

// Dependencies are the external connections the application runs on.
// Only DB is required; the others fall back to in-process implementations.
type Dependencies struct {
	DB *gorm.DB
	// Redis backs the summary cache, the selection sequencer and the login rate limiter.
	Redis *redis.Client
	// Publisher receives order events. Nil discards them.
	Publisher adapter.EventPublisher
	// EmailSender delivers summaries. Nil picks Resend or the log sender from config.
	EmailSender adapter.EmailSender
	// OrderSource overrides the configured report source.
	OrderSource adapter.OrderSource
	// Clock overrides the wall clock in the configured time zone.
	Clock report.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	// Worker is nil when the daily summary is disabled.
	Worker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, deps Dependencies) (*Injector, error) {
	loc, err := cfg.Report.Location()
	if err != nil {
		return nil, err
	}

	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().In(loc) }
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(deps.DB)
	productRepo := persistence.NewProductRepository(deps.DB)
	orderRepo := persistence.NewOrderRepository(deps.DB)

	// Create cache-backed services
	var (
		summaryCache     adapter.Cache
		sequencer        adapter.RequestSequencer
		loginRateLimiter *middleware.RateLimiter
	)
	if deps.Redis != nil {
		summaryCache = cache.NewRedisCache(deps.Redis)
		sequencer = cache.NewRedisSequencer(deps.Redis)
	} else {
		slog.Warn("Redis not configured, using in-memory cache and sequencer")
		summaryCache = cache.NewMemoryCache()
		sequencer = cache.NewMemorySequencer()
	}
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig("login", 1000, time.Minute, deps.Redis)
	} else {
		loginRateLimiter = middleware.NewRateLimiterWithConfig("login", 5, 15*time.Minute, deps.Redis)
	}

	publisher := deps.Publisher
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}

	source := deps.OrderSource
	if source == nil {
		source, err = newOrderSource(cfg.OrderSource, orderRepo)
		if err != nil {
			return nil, err
		}
	}

	sender := deps.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ReplyTo)
		} else {
			slog.Warn("RESEND_API_KEY not set, summary emails will only be logged")
			sender = email.NewLogSender()
		}
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:               cfg.JWT.Secret,
		AccessTokenDuration:  cfg.JWT.AccessTokenExpiry,
		RefreshTokenDuration: cfg.JWT.RefreshTokenExpiry,
	}, summaryCache)

	exporter := export.NewExporter(export.Config{
		CompanyName:    cfg.Report.CompanyName,
		Locale:         cfg.Report.Locale,
		CurrencySymbol: cfg.Report.CurrencySymbol,
		Location:       loc,
	})
	emailTemplates, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	summaryRenderer := email.NewSummaryRenderer(
		emailTemplates,
		exporter,
		export.NewFormatter(cfg.Report.Locale, cfg.Report.CurrencySymbol),
		cfg.Report.CompanyName,
	)

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	createUserUseCase := auth.NewCreateUserUseCase(userRepo, passwordService)

	// Create product use cases
	listProductsUseCase := product.NewListProductsUseCase(productRepo)
	getProductUseCase := product.NewGetProductUseCase(productRepo)
	createProductUseCase := product.NewCreateProductUseCase(productRepo)
	setProductActiveUseCase := product.NewSetProductActiveUseCase(productRepo)

	// Create order use cases
	listOrdersUseCase := order.NewListOrdersUseCase(orderRepo)
	getOrderUseCase := order.NewGetOrderUseCase(orderRepo)
	createOrderUseCase := order.NewCreateOrderUseCase(orderRepo, productRepo, publisher, cfg.Report.TaxRate)
	updateOrderStatusUseCase := order.NewUpdateOrderStatusUseCase(orderRepo, publisher)

	// Create report use cases
	guard := report.NewSelectionGuard(sequencer)
	ordersSummaryUseCase := report.NewGetOrdersSummaryUseCase(source, guard, summaryCache, cfg.Report.CacheTTL, clock)
	lastSummaryUseCase := report.NewGetLastSummaryUseCase(summaryCache)
	financialsUseCase := report.NewGetFinancialsUseCase(source, guard, clock)
	dailySummaryUseCase := report.NewGetDailySummaryUseCase(source, clock)
	exportOrdersUseCase := report.NewExportOrdersUseCase(source, exporter, clock)
	sendDailySummaryUseCase := report.NewSendDailySummaryUseCase(dailySummaryUseCase, summaryRenderer, sender)

	// Create controllers
	checks := map[string]controller.Checker{
		"database": func(ctx context.Context) bool {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		},
	}
	if deps.Redis != nil {
		checks["redis"] = db.RedisHealthCheck(deps.Redis)
	}
	healthController := controller.NewHealthController(checks)

	authController := controller.NewAuthController(
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		createUserUseCase,
	)

	productController := controller.NewProductController(
		listProductsUseCase,
		getProductUseCase,
		createProductUseCase,
		setProductActiveUseCase,
	)

	orderController := controller.NewOrderController(
		listOrdersUseCase,
		getOrderUseCase,
		createOrderUseCase,
		updateOrderStatusUseCase,
	)

	reportController := controller.NewReportController(
		ordersSummaryUseCase,
		lastSummaryUseCase,
		financialsUseCase,
		dailySummaryUseCase,
		exportOrdersUseCase,
		sendDailySummaryUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		productController,
		orderController,
		reportController,
		loginRateLimiter,
		authMiddleware,
		cfg.Server.AllowedOrigins,
	)

	var worker *email.Worker
	if cfg.Email.WorkerEnabled && len(cfg.Email.Recipients) > 0 {
		worker, err = email.NewWorker(sendDailySummaryUseCase, email.WorkerConfig{
			Recipients: cfg.Email.Recipients,
			SendAt:     cfg.Email.SendAt,
			Location:   loc,
			AuthToken:  cfg.OrderSource.ServiceToken,
			MaxRetries: cfg.Email.MaxRetries,
			RetryDelay: cfg.Email.RetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create daily summary worker: %w", err)
		}
	}

	return &Injector{
		Config: cfg,
		DB:     deps.DB,
		Router: r,
		Worker: worker,
	}, nil
}

// newOrderSource picks where reports read orders from.
func newOrderSource(cfg config.OrderSourceConfig, orderRepo adapter.OrderRepository) (adapter.OrderSource, error) {
	switch cfg.Kind {
	case config.OrderSourceDatabase, "":
		return orderRepo, nil
	case config.OrderSourceRemote:
		if cfg.UpstreamURL == "" {
			return nil, fmt.Errorf("UPSTREAM_ORDERS_URL is required when ORDER_SOURCE=%s", config.OrderSourceRemote)
		}
		slog.Info("Reports read orders from the upstream order service", "url", cfg.UpstreamURL)
		return adapters.NewOrderServiceClient(cfg.UpstreamURL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown ORDER_SOURCE %q", cfg.Kind)
	}
}
