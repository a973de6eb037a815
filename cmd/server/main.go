package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/gestion/backend/internal/application/billing"
	catalogapp "github.com/gestion/backend/internal/application/catalog"
	identityapp "github.com/gestion/backend/internal/application/identity"
	inventoryapp "github.com/gestion/backend/internal/application/inventory"
	notificationapp "github.com/gestion/backend/internal/application/notification"
	partnerapp "github.com/gestion/backend/internal/application/partner"
	receivableapp "github.com/gestion/backend/internal/application/receivable"
	restaurantapp "github.com/gestion/backend/internal/application/restaurant"
	"github.com/gestion/backend/internal/infrastructure/auth"
	"github.com/gestion/backend/internal/infrastructure/config"
	"github.com/gestion/backend/internal/infrastructure/event"
	"github.com/gestion/backend/internal/infrastructure/logger"
	"github.com/gestion/backend/internal/infrastructure/notify"
	"github.com/gestion/backend/internal/infrastructure/persistence"
	"github.com/gestion/backend/internal/infrastructure/storage"
	"github.com/gestion/backend/internal/infrastructure/telemetry"
	"github.com/gestion/backend/internal/interfaces/http/handler"
	"github.com/gestion/backend/internal/interfaces/http/middleware"
	"github.com/gestion/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/gestion/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

//	@title			Gestion Backend API
//	@version		1.0
//	@description	Business management backend: billing, inventory, receivables, restaurant floor and notifications.

//	@contact.name	API Support
//	@contact.url	https://github.com/gestion/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		logger.Sync(log)
	}()

	log.Info("Starting Gestion Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Telemetry providers. Each is a no-op when telemetry is disabled,
	// so the rest of the wiring does not branch on the flag.
	ctx := context.Background()
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		log = telemetry.BridgeLogger(log, telemetry.NewZapOTELCore(loggerProvider, zapcore.InfoLevel))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingEndpoint,
		ApplicationName: cfg.App.Name,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Error("Failed to link spans to profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(
		fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	classificationRepo := persistence.NewGormClassificationRepository(db.DB)
	priceListRepo := persistence.NewGormPriceListRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	sequenceRepo := persistence.NewGormDocumentSequenceRepository(db.DB)
	termRepo := persistence.NewGormPaymentTermRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	collectionLogRepo := persistence.NewGormCollectionLogRepository(db.DB)
	disputeRepo := persistence.NewGormDisputeRepository(db.DB)
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	channelRepo := persistence.NewGormChannelRepository(db.DB)
	deliveryLogRepo := persistence.NewGormDeliveryLogRepository(db.DB)

	billingTx := persistence.NewGormBillingTransactionScope(db.DB)
	stockTx := persistence.NewGormStockTransactionScope(db.DB)
	receivableTx := persistence.NewGormReceivableTransactionScope(db.DB)
	restaurantTx := persistence.NewGormRestaurantTransactionScope(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Attachment storage
	var attachmentStorage receivableapp.AttachmentStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3AttachmentStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize attachment storage", zap.Error(err))
		}
		attachmentStorage = s3Storage
		log.Info("S3 attachment storage connected", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		attachmentStorage = storage.NewStubAttachmentStorage("")
		log.Info("Attachment storage disabled, using stub")
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, blacklist, eventBus, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, eventBus, log)
	roleService := identityapp.NewRoleService(roleRepo, userRepo, log)

	articleService := catalogapp.NewArticleService(articleRepo, unitRepo, classificationRepo, eventBus, log)
	unitService := catalogapp.NewUnitService(unitRepo)
	classificationService := catalogapp.NewClassificationService(classificationRepo)
	priceListService := catalogapp.NewPriceListService(priceListRepo, articleRepo, log)

	customerService := partnerapp.NewCustomerService(customerRepo, termRepo, documentRepo, eventBus, log)

	stockService := inventoryapp.NewStockService(stockTx, articleRepo, warehouseRepo, stockItemRepo, movementRepo, eventBus, log)
	warehouseService := inventoryapp.NewWarehouseService(warehouseRepo, stockItemRepo, log)

	invoiceService := billingapp.NewInvoiceService(
		billingTx, invoiceRepo, sequenceRepo, termRepo, rateRepo,
		customerRepo, articleRepo, warehouseRepo, documentRepo,
		priceListService, eventBus, log,
	)
	paymentTermService := billingapp.NewPaymentTermService(termRepo, log)
	exchangeRateService := billingapp.NewExchangeRateService(rateRepo, log)

	documentService := receivableapp.NewDocumentService(receivableTx, documentRepo, customerRepo, eventBus, log)
	collectionService := receivableapp.NewCollectionService(collectionLogRepo, documentRepo, customerRepo, log)
	disputeService := receivableapp.NewDisputeService(disputeRepo, documentRepo, attachmentStorage, eventBus, log)

	orderService := restaurantapp.NewOrderService(
		restaurantTx, orderRepo, tableRepo, reservationRepo,
		articleRepo, warehouseRepo,
		priceListService, stockService, invoiceService,
		eventBus, log,
	)
	reservationService := restaurantapp.NewReservationService(reservationRepo, tableRepo, eventBus, log)
	tableService := restaurantapp.NewTableService(tableRepo, zoneRepo, log)
	zoneService := restaurantapp.NewZoneService(zoneRepo, log)

	channelService := notificationapp.NewChannelService(channelRepo, deliveryLogRepo, log)

	// Credit invoices settle when their receivable does
	eventBus.Subscribe(billingapp.NewSettlementHandler(invoiceRepo, documentRepo, eventBus, log))

	// Business metrics from domain events
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("business"))
		if err != nil {
			log.Fatal("Failed to create business metrics", zap.Error(err))
		}
		eventBus.Subscribe(businessMetrics)
	}

	// Notification delivery: relay bus events to subscribed channels and
	// retry failed deliveries in the background
	var retryWorker *notificationapp.RetryWorker
	if cfg.Notify.Enabled {
		emailSender, err := notify.NewSMTPEmailSender(&cfg.Notify, log)
		if err != nil {
			log.Fatal("Failed to initialize email sender", zap.Error(err))
		}
		webhookSender := notify.NewWebhookSender(&cfg.Notify, log)
		dispatcher := notify.NewDispatcher(emailSender, webhookSender)

		relay := notificationapp.NewEventRelay(channelRepo, deliveryLogRepo, dispatcher, log)
		eventBus.Subscribe(relay)

		retryWorker = notificationapp.NewRetryWorker(cfg.Notify.RetryInterval, channelRepo, deliveryLogRepo, dispatcher, log)
		log.Info("Notification delivery enabled", zap.Duration("retry_interval", cfg.Notify.RetryInterval))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if retryWorker != nil {
		if err := retryWorker.Start(ctx); err != nil {
			log.Fatal("Failed to start notification retry worker", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := retryWorker.Stop(stopCtx); err != nil {
				log.Error("Error stopping notification retry worker", zap.Error(err))
			}
		}()
	}

	// Overdue sweep marks past-due receivables and emits events for the
	// collections workflow
	if cfg.Collector.SweepEnabled {
		sweep := receivableapp.NewOverdueSweep(cfg.Collector.SweepInterval, documentRepo, eventBus, log)
		if err := sweep.Start(ctx); err != nil {
			log.Fatal("Failed to start overdue sweep", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sweep.Stop(stopCtx); err != nil {
				log.Error("Error stopping overdue sweep", zap.Error(err))
			}
		}()
		log.Info("Overdue sweep enabled", zap.Duration("interval", cfg.Collector.SweepInterval))
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	articleHandler := handler.NewArticleHandler(articleService)
	unitHandler := handler.NewUnitHandler(unitService)
	classificationHandler := handler.NewClassificationHandler(classificationService)
	priceListHandler := handler.NewPriceListHandler(priceListService)
	customerHandler := handler.NewCustomerHandler(customerService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	stockHandler := handler.NewStockHandler(stockService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentTermHandler := handler.NewPaymentTermHandler(paymentTermService)
	exchangeRateHandler := handler.NewExchangeRateHandler(exchangeRateService)
	documentHandler := handler.NewDocumentHandler(documentService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	disputeHandler := handler.NewDisputeHandler(disputeService)
	zoneHandler := handler.NewZoneHandler(zoneService)
	tableHandler := handler.NewTableHandler(tableService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	orderHandler := handler.NewOrderHandler(orderService)
	channelHandler := handler.NewChannelHandler(channelService)
	systemHandler := handler.NewSystemHandler(db, version)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Probes outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuth(jwtConfig))
	r.Use(middleware.TracingAttributeInjector())

	// Identity domain
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(middleware.RequirePermission("identity:user:manage"))
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.PUT("/:id/roles", userHandler.AssignRoles)
	userRoutes.POST("/:id/reset-password", userHandler.ResetPassword)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.DELETE("/:id", userHandler.Delete)

	roleRoutes := router.NewDomainGroup("roles", "/roles")
	roleRoutes.Use(middleware.RequirePermission("identity:role:manage"))
	roleRoutes.POST("", roleHandler.Create)
	roleRoutes.GET("", roleHandler.List)
	roleRoutes.GET("/:id", roleHandler.GetByID)
	roleRoutes.PUT("/:id", roleHandler.Update)
	roleRoutes.PUT("/:id/permissions", roleHandler.SetPermissions)
	roleRoutes.DELETE("/:id", roleHandler.Delete)

	// Catalog domain
	articleManage := middleware.RequirePermission("catalog:article:manage")
	articleRead := middleware.RequireAnyPermission("catalog:article:read", "catalog:article:manage")
	priceListManage := middleware.RequirePermission("catalog:price_list:manage")

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/articles", articleManage, articleHandler.Create)
	catalogRoutes.GET("/articles", articleRead, articleHandler.List)
	catalogRoutes.GET("/articles/:id", articleRead, articleHandler.GetByID)
	catalogRoutes.GET("/articles/code/:code", articleRead, articleHandler.GetByCode)
	catalogRoutes.GET("/articles/barcode/:barcode", articleRead, articleHandler.GetByBarcode)
	catalogRoutes.PUT("/articles/:id", articleManage, articleHandler.Update)
	catalogRoutes.POST("/articles/:id/components", articleManage, articleHandler.AddComponent)
	catalogRoutes.DELETE("/articles/:id/components/:componentId", articleManage, articleHandler.RemoveComponent)
	catalogRoutes.POST("/articles/:id/discontinue", articleManage, articleHandler.Discontinue)
	catalogRoutes.POST("/articles/:id/reactivate", articleManage, articleHandler.Reactivate)
	catalogRoutes.DELETE("/articles/:id", articleManage, articleHandler.Delete)

	catalogRoutes.POST("/units", articleManage, unitHandler.Create)
	catalogRoutes.GET("/units", articleRead, unitHandler.List)
	catalogRoutes.GET("/units/:code", articleRead, unitHandler.GetByCode)
	catalogRoutes.PUT("/units/:id", articleManage, unitHandler.Update)
	catalogRoutes.DELETE("/units/:id", articleManage, unitHandler.Delete)

	catalogRoutes.POST("/classifications", articleManage, classificationHandler.Create)
	catalogRoutes.GET("/classifications", articleRead, classificationHandler.List)
	catalogRoutes.GET("/classifications/:id", articleRead, classificationHandler.GetByID)
	catalogRoutes.GET("/classifications/:id/children", articleRead, classificationHandler.GetChildren)
	catalogRoutes.PUT("/classifications/:id", articleManage, classificationHandler.Update)
	catalogRoutes.DELETE("/classifications/:id", articleManage, classificationHandler.Delete)

	catalogRoutes.POST("/price-lists", priceListManage, priceListHandler.Create)
	catalogRoutes.GET("/price-lists", articleRead, priceListHandler.List)
	catalogRoutes.GET("/price-lists/:id", articleRead, priceListHandler.GetByID)
	catalogRoutes.PUT("/price-lists/:id/prices", priceListManage, priceListHandler.SetPrice)
	catalogRoutes.DELETE("/price-lists/:id/prices/:articleId", priceListManage, priceListHandler.RemovePrice)
	catalogRoutes.POST("/price-lists/:id/activate", priceListManage, priceListHandler.Activate)
	catalogRoutes.POST("/price-lists/:id/deactivate", priceListManage, priceListHandler.Deactivate)
	catalogRoutes.DELETE("/price-lists/:id", priceListManage, priceListHandler.Delete)
	catalogRoutes.GET("/prices/:articleId", articleRead, priceListHandler.ResolvePrice)

	// Partner domain
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.Use(middleware.RequirePermission("partner:customer:manage"))
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.GET("/customers/code/:code", customerHandler.GetByCode)
	partnerRoutes.GET("/customers/tax-id/:taxId", customerHandler.GetByTaxID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.PUT("/customers/:id/credit-terms", customerHandler.SetCreditTerms)
	partnerRoutes.PUT("/customers/:id/price-list", customerHandler.SetPriceList)
	partnerRoutes.POST("/customers/:id/block", customerHandler.Block)
	partnerRoutes.POST("/customers/:id/unblock", customerHandler.Unblock)
	partnerRoutes.POST("/customers/:id/activate", customerHandler.Activate)
	partnerRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)
	partnerRoutes.DELETE("/customers/:id", customerHandler.Delete)

	// Inventory domain
	movementCreate := middleware.RequirePermission("inventory:movement:create")
	movementRead := middleware.RequireAnyPermission("inventory:movement:read", "inventory:movement:create")
	warehouseManage := middleware.RequirePermission("inventory:warehouse:manage")

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/warehouses", warehouseManage, warehouseHandler.Create)
	inventoryRoutes.GET("/warehouses", movementRead, warehouseHandler.List)
	inventoryRoutes.GET("/warehouses/:id", movementRead, warehouseHandler.GetByID)
	inventoryRoutes.PUT("/warehouses/:id", warehouseManage, warehouseHandler.Update)
	inventoryRoutes.POST("/warehouses/:id/default", warehouseManage, warehouseHandler.SetDefault)
	inventoryRoutes.POST("/warehouses/:id/activate", warehouseManage, warehouseHandler.Activate)
	inventoryRoutes.POST("/warehouses/:id/deactivate", warehouseManage, warehouseHandler.Deactivate)
	inventoryRoutes.DELETE("/warehouses/:id", warehouseManage, warehouseHandler.Delete)
	inventoryRoutes.GET("/warehouses/:id/stock", movementRead, stockHandler.ListWarehouseStock)

	inventoryRoutes.POST("/stock/entries", movementCreate, stockHandler.RegisterEntry)
	inventoryRoutes.POST("/stock/exits", movementCreate, stockHandler.RegisterExit)
	inventoryRoutes.POST("/stock/adjustments", movementCreate, stockHandler.RegisterAdjustment)
	inventoryRoutes.POST("/stock/transfers", movementCreate, stockHandler.RegisterTransfer)
	inventoryRoutes.POST("/stock/reservations", movementCreate, stockHandler.Reserve)
	inventoryRoutes.POST("/stock/reservations/release", movementCreate, stockHandler.Release)
	inventoryRoutes.GET("/stock/:articleId", movementRead, stockHandler.GetArticleStock)
	inventoryRoutes.GET("/stock/:articleId/warehouse/:warehouseId", movementRead, stockHandler.GetStock)
	inventoryRoutes.GET("/kardex", movementRead, stockHandler.Kardex)

	// Billing domain
	invoiceCreate := middleware.RequirePermission("billing:invoice:create")
	invoiceIssue := middleware.RequirePermission("billing:invoice:issue")
	invoiceCancel := middleware.RequirePermission("billing:invoice:cancel")
	paymentRegister := middleware.RequirePermission("billing:payment:register")
	billingRead := middleware.RequireAnyPermission(
		"billing:invoice:create", "billing:invoice:issue", "billing:payment:register",
		"billing:config:manage",
	)
	billingConfig := middleware.RequirePermission("billing:config:manage")

	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.POST("/invoices", invoiceCreate, invoiceHandler.Create)
	billingRoutes.GET("/invoices", billingRead, invoiceHandler.List)
	billingRoutes.GET("/invoices/next-number", billingRead, invoiceHandler.NextNumber)
	billingRoutes.GET("/invoices/number/:number", billingRead, invoiceHandler.GetByNumber)
	billingRoutes.GET("/invoices/:id", billingRead, invoiceHandler.GetByID)
	billingRoutes.POST("/invoices/:id/items", invoiceCreate, invoiceHandler.AddItem)
	billingRoutes.PUT("/invoices/:id/items/:itemId", invoiceCreate, invoiceHandler.UpdateItem)
	billingRoutes.DELETE("/invoices/:id/items/:itemId", invoiceCreate, invoiceHandler.RemoveItem)
	billingRoutes.POST("/invoices/:id/issue", invoiceIssue, invoiceHandler.Issue)
	billingRoutes.POST("/invoices/:id/payments", paymentRegister, invoiceHandler.RegisterPayment)
	billingRoutes.POST("/invoices/:id/cancel", invoiceCancel, invoiceHandler.Cancel)
	billingRoutes.DELETE("/invoices/:id", invoiceCreate, invoiceHandler.DeleteDraft)

	billingRoutes.POST("/payment-terms", billingConfig, paymentTermHandler.Create)
	billingRoutes.GET("/payment-terms", billingRead, paymentTermHandler.List)
	billingRoutes.GET("/payment-terms/:id", billingRead, paymentTermHandler.GetByID)
	billingRoutes.PUT("/payment-terms/:id", billingConfig, paymentTermHandler.Update)
	billingRoutes.POST("/payment-terms/:id/activate", billingConfig, paymentTermHandler.Activate)
	billingRoutes.POST("/payment-terms/:id/deactivate", billingConfig, paymentTermHandler.Deactivate)

	billingRoutes.POST("/exchange-rates", billingConfig, exchangeRateHandler.Register)
	billingRoutes.GET("/exchange-rates/:currency", billingRead, exchangeRateHandler.History)
	billingRoutes.GET("/exchange-rates/:currency/latest", billingRead, exchangeRateHandler.Latest)
	billingRoutes.GET("/exchange-rates/:currency/at", billingRead, exchangeRateHandler.At)
	billingRoutes.GET("/exchange-rates/:currency/convert", billingRead, exchangeRateHandler.Convert)

	// Receivables domain
	documentRead := middleware.RequirePermission("receivable:document:read")
	noteCreate := middleware.RequirePermission("receivable:document:create")
	applicationCreate := middleware.RequirePermission("receivable:application:create")
	applicationReverse := middleware.RequirePermission("receivable:application:reverse")
	documentCancel := middleware.RequirePermission("receivable:document:cancel")
	collectionManage := middleware.RequirePermission("receivable:collection:manage")
	disputeManage := middleware.RequirePermission("receivable:dispute:manage")

	receivableRoutes := router.NewDomainGroup("receivables", "/receivables")
	receivableRoutes.POST("/documents", noteCreate, documentHandler.CreateNote)
	receivableRoutes.GET("/documents", documentRead, documentHandler.List)
	receivableRoutes.GET("/documents/number/:number", documentRead, documentHandler.GetByNumber)
	receivableRoutes.GET("/documents/:id", documentRead, documentHandler.GetByID)
	receivableRoutes.POST("/documents/:id/applications", applicationCreate, documentHandler.Apply)
	receivableRoutes.POST("/documents/:id/applications/:applicationId/reverse", applicationReverse, documentHandler.ReverseApplication)
	receivableRoutes.POST("/documents/:id/cancel", documentCancel, documentHandler.Cancel)
	receivableRoutes.GET("/documents/:id/collections", documentRead, collectionHandler.ListByDocument)
	receivableRoutes.GET("/documents/:id/disputes", documentRead, disputeHandler.ListByDocument)
	receivableRoutes.GET("/customers/:customerId/statement", documentRead, documentHandler.Statement)
	receivableRoutes.GET("/customers/:customerId/collections", documentRead, collectionHandler.ListByCustomer)
	receivableRoutes.GET("/aging", documentRead, documentHandler.AgingReport)

	receivableRoutes.POST("/collections", collectionManage, collectionHandler.LogContact)
	receivableRoutes.GET("/collections/pending", collectionManage, collectionHandler.PendingActions)

	receivableRoutes.POST("/disputes", disputeManage, disputeHandler.Open)
	receivableRoutes.GET("/disputes", disputeManage, disputeHandler.List)
	receivableRoutes.GET("/disputes/:id", disputeManage, disputeHandler.GetByID)
	receivableRoutes.POST("/disputes/:id/resolve", disputeManage, disputeHandler.Resolve)
	receivableRoutes.POST("/disputes/:id/attachments", disputeManage, disputeHandler.AddAttachment)
	receivableRoutes.GET("/disputes/:id/attachments/:attachmentId/url", disputeManage, disputeHandler.GetAttachmentURL)

	// Restaurant domain
	tableManage := middleware.RequirePermission("restaurant:table:manage")
	tableRead := middleware.RequireAnyPermission("restaurant:table:read", "restaurant:table:manage")
	reservationManage := middleware.RequirePermission("restaurant:reservation:manage")
	orderTake := middleware.RequireAnyPermission("restaurant:order:take", "restaurant:order:manage")
	orderClose := middleware.RequireAnyPermission("restaurant:order:close", "restaurant:order:manage")
	orderRead := middleware.RequireAnyPermission(
		"restaurant:order:take", "restaurant:order:close", "restaurant:order:manage",
	)

	restaurantRoutes := router.NewDomainGroup("restaurant", "/restaurant")
	restaurantRoutes.POST("/zones", tableManage, zoneHandler.Create)
	restaurantRoutes.GET("/zones", tableRead, zoneHandler.List)
	restaurantRoutes.GET("/zones/:id", tableRead, zoneHandler.GetByID)
	restaurantRoutes.PUT("/zones/:id", tableManage, zoneHandler.Update)
	restaurantRoutes.POST("/zones/:id/activate", tableManage, zoneHandler.Activate)
	restaurantRoutes.POST("/zones/:id/deactivate", tableManage, zoneHandler.Deactivate)
	restaurantRoutes.DELETE("/zones/:id", tableManage, zoneHandler.Delete)

	restaurantRoutes.POST("/tables", tableManage, tableHandler.Create)
	restaurantRoutes.GET("/tables", tableRead, tableHandler.List)
	restaurantRoutes.GET("/tables/:id", tableRead, tableHandler.GetByID)
	restaurantRoutes.PUT("/tables/:id", tableManage, tableHandler.Update)
	restaurantRoutes.POST("/tables/:id/out-of-service", tableManage, tableHandler.TakeOutOfService)
	restaurantRoutes.POST("/tables/:id/return-to-service", tableManage, tableHandler.ReturnToService)
	restaurantRoutes.DELETE("/tables/:id", tableManage, tableHandler.Delete)

	restaurantRoutes.POST("/reservations", reservationManage, reservationHandler.Create)
	restaurantRoutes.GET("/reservations", reservationManage, reservationHandler.List)
	restaurantRoutes.GET("/reservations/:id", reservationManage, reservationHandler.GetByID)
	restaurantRoutes.POST("/reservations/:id/confirm", reservationManage, reservationHandler.Confirm)
	restaurantRoutes.POST("/reservations/:id/cancel", reservationManage, reservationHandler.Cancel)
	restaurantRoutes.POST("/reservations/:id/no-show", reservationManage, reservationHandler.MarkNoShow)

	restaurantRoutes.POST("/orders", orderTake, orderHandler.Open)
	restaurantRoutes.GET("/orders", orderRead, orderHandler.List)
	restaurantRoutes.GET("/orders/:id", orderRead, orderHandler.GetByID)
	restaurantRoutes.POST("/orders/:id/items", orderTake, orderHandler.AddItem)
	restaurantRoutes.POST("/orders/:id/items/:itemId/cancel", orderTake, orderHandler.CancelItem)
	restaurantRoutes.POST("/orders/:id/items/:itemId/preparing", orderTake, orderHandler.MarkItemPreparing)
	restaurantRoutes.POST("/orders/:id/items/:itemId/served", orderTake, orderHandler.MarkItemServed)
	restaurantRoutes.POST("/orders/:id/close", orderClose, orderHandler.Close)
	restaurantRoutes.POST("/orders/:id/cancel", orderTake, orderHandler.Cancel)

	// Notification domain
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.Use(middleware.RequirePermission("notification:channel:manage"))
	notificationRoutes.POST("/channels", channelHandler.Create)
	notificationRoutes.GET("/channels", channelHandler.List)
	notificationRoutes.GET("/channels/:id", channelHandler.GetByID)
	notificationRoutes.PUT("/channels/:id", channelHandler.Update)
	notificationRoutes.POST("/channels/:id/subscriptions", channelHandler.Subscribe)
	notificationRoutes.POST("/channels/:id/subscriptions/remove", channelHandler.Unsubscribe)
	notificationRoutes.POST("/channels/:id/activate", channelHandler.Activate)
	notificationRoutes.POST("/channels/:id/deactivate", channelHandler.Deactivate)
	notificationRoutes.DELETE("/channels/:id", channelHandler.Delete)
	notificationRoutes.GET("/channels/:id/deliveries", channelHandler.Deliveries)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(roleRoutes).
		Register(catalogRoutes).
		Register(partnerRoutes).
		Register(inventoryRoutes).
		Register(billingRoutes).
		Register(receivableRoutes).
		Register(restaurantRoutes).
		Register(notificationRoutes)
	r.Setup()

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
