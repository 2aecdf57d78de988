package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	identityapp "github.com/orc/backend/internal/application/identity"
	appregistry "github.com/orc/backend/internal/application/registry"
	apptariff "github.com/orc/backend/internal/application/tariff"
	"github.com/orc/backend/internal/domain/tariff"
	"github.com/orc/backend/internal/infrastructure/auth"
	"github.com/orc/backend/internal/infrastructure/cache"
	"github.com/orc/backend/internal/infrastructure/config"
	"github.com/orc/backend/internal/infrastructure/event"
	"github.com/orc/backend/internal/infrastructure/logger"
	"github.com/orc/backend/internal/infrastructure/persistence"
	"github.com/orc/backend/internal/infrastructure/storage"
	"github.com/orc/backend/internal/infrastructure/telemetry"
	"github.com/orc/backend/internal/interfaces/http/handler"
	"github.com/orc/backend/internal/interfaces/http/middleware"
	"github.com/orc/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/orc/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Revenue Checkpoint API
//	@version		1.0
//	@description	Checkpoint sequencing and incremental tax collection for trucks and walk-in taxpayers moving through ordered station paths.

//	@contact.name	API Support
//	@contact.url	https://github.com/orc/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-Api-Key
//	@description				Static API key for weighbridge device endpoints

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.Telemetry.ServiceName,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting checkpoint backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// OpenTelemetry providers. Disabled configs return no-op providers,
	// so the rest of the wiring does not care whether telemetry is on.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		DeploymentSite:    cfg.Telemetry.DeploymentSite,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	profilerTags := map[string]string{}
	if cfg.Telemetry.DeploymentSite != "" {
		profilerTags["site"] = cfg.Telemetry.DeploymentSite
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServer,
		ApplicationName:   cfg.App.Name,
		Tags:              profilerTags,
		ProfileCPU:        true,
		ProfileInuseSpace: true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Warn("Continuous profiling unavailable", zap.Error(err))
	} else if profiler != nil {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing and metrics
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(ctx)
		defer dbMetrics.Stop()
	}

	// Initialize repositories
	stationRepo := persistence.NewGormStationRepository(db.DB)
	checkinRepo := persistence.NewGormCheckinRepository(db.DB)
	truckRepo := persistence.NewGormTruckRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	exporterRepo := persistence.NewGormExporterRepository(db.DB)
	commodityRepo := persistence.NewGormCommodityRepository(db.DB)
	taxPayerTypeRepo := persistence.NewGormTaxPayerTypeRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)

	// Tiered tax rate cache: per-process L1 over Redis L2, invalidated
	// across instances via pub/sub. Rate lookups sit on the hot ingest
	// path so a Redis outage falls back to the in-memory tier.
	var taxRateCache tariff.RateCache
	var tokenBlacklist auth.TokenBlacklist
	l1Cache := cache.NewInMemoryTaxRateCache(cache.WithInMemoryLogger(log))
	l2Cache, err := cache.NewRedisTaxRateCache(cfg.Redis, cache.WithCacheLogger(log))
	if err != nil {
		log.Warn("Redis rate cache unavailable, using in-memory cache only", zap.Error(err))
		taxRateCache = l1Cache
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = auth.NewRedisTokenBlacklistWithClient(l2Cache.GetClient())
		invalidator, err := cache.NewRedisRateCacheInvalidator(cfg.Redis, cache.WithInvalidatorLogger(log))
		if err != nil {
			log.Warn("Rate cache invalidator unavailable", zap.Error(err))
			taxRateCache = cache.NewTieredTaxRateCache(l1Cache, l2Cache, nil, cache.WithTieredLogger(log))
		} else {
			taxRateCache = cache.NewTieredTaxRateCache(l1Cache, l2Cache, invalidator, cache.WithTieredLogger(log))
		}
	}
	cachedTaxRepo := cache.NewCachedTaxRepository(taxRepo, taxRateCache, log)

	// Idempotency store for weighbridge replays. Falls back to in-memory
	// when Redis is unreachable; single-instance deployments lose nothing.
	idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	idempotencyStore, err := idempotencyFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Object storage for plate images
	var objectStorage appcheckpoint.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Info("Object storage disabled, plate image URLs are stubbed")
	}

	// Transaction scope shared by every checkpoint use case. The verdict
	// and the writes it justifies commit or roll back as one unit.
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	weighbridgeService := appcheckpoint.NewWeighbridgeService(txScope, idempotencyStore)
	journeyService := appcheckpoint.NewJourneyService(txScope)
	changeTruckService := appcheckpoint.NewChangeTruckService(txScope)
	pathService := appcheckpoint.NewPathService(txScope)
	paymentService := appcheckpoint.NewPaymentService(txScope)
	stateService := appcheckpoint.NewStateService(txScope)
	plateImageService := appcheckpoint.NewPlateImageService(stationRepo, checkinRepo, objectStorage)
	if cfg.Storage.PresignExpiration > 0 {
		plateImageService.SetConfig(appcheckpoint.PlateImageServiceConfig{
			UploadURLExpiry:   cfg.Storage.PresignExpiration,
			DownloadURLExpiry: cfg.Storage.PresignExpiration,
		})
	}
	taxService := apptariff.NewTaxService(cachedTaxRepo, taxPayerTypeRepo)
	truckService := appregistry.NewTruckService(truckRepo)
	driverService := appregistry.NewDriverService(driverRepo)
	exporterService := appregistry.NewExporterService(exporterRepo, taxPayerTypeRepo)
	commodityService := appregistry.NewCommodityService(commodityRepo)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, identityapp.DefaultAuthServiceConfig(), log)
	authService.SetTokenBlacklist(tokenBlacklist)
	userService := identityapp.NewUserService(userRepo, roleRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, userRepo, log)

	// Event bus for the audit trail. Settlement events are notifications
	// after commit, not part of the transaction.
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewIdempotentHandler(
		appcheckpoint.NewCheckpointAuditHandler(log),
		idempotencyStore,
		log,
	)
	if err := eventBus.Subscribe(auditHandler); err != nil {
		log.Fatal("Failed to subscribe audit handler", zap.Error(err))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	weighbridgeService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)

	// Checkpoint business metrics with periodic state collection
	checkpointMetrics, err := telemetry.NewCheckpointMetrics(telemetry.CheckpointMetricsConfig{
		Meter:         meterProvider.Meter("checkpoint"),
		Logger:        log,
		StateProvider: telemetry.NewGormCheckpointStateProvider(db.DB),
	})
	if err != nil {
		log.Warn("Checkpoint metrics unavailable", zap.Error(err))
	} else if meterProvider.IsEnabled() {
		checkpointMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
		defer checkpointMetrics.Stop()
	}

	// Initialize HTTP handlers
	weighbridgeHandler := handler.NewWeighbridgeHandler(weighbridgeService, plateImageService)
	checkpointHandler := handler.NewCheckpointHandler(stateService, plateImageService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	journeyHandler := handler.NewJourneyHandler(journeyService, changeTruckService)
	pathHandler := handler.NewPathHandler(pathService)
	tariffHandler := handler.NewTariffHandler(taxService)
	truckHandler := handler.NewTruckHandler(truckService)
	driverHandler := handler.NewDriverHandler(driverService)
	exporterHandler := handler.NewExporterHandler(exporterService)
	commodityHandler := handler.NewCommodityHandler(commodityService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics - Observability
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Payment gateway callback endpoint (no authentication required).
	// The gateway calls this directly; the handler verifies its reference.
	engine.POST("/api/v1/payments/gateway/callback", paymentHandler.GatewayCallback)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Weighbridge devices skip JWT and are guarded by the API key below.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/payments/gateway",
			"/api/v1/weighbridge",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Route-level permission checks for administrative surfaces.
	// Unlisted routes only require a valid token.
	r.Use(middleware.RoutePermissionMiddleware(middleware.RoutePermissionConfig{
		Routes: []middleware.RoutePermission{
			{Method: "POST", Path: "/api/v1/stations", Permissions: []string{"path:manage"}},
			{Method: "POST", Path: "/api/v1/paths", Permissions: []string{"path:manage"}},
			{Method: "DELETE", Path: "/api/v1/paths/:id", Permissions: []string{"path:manage"}},
			{Method: "POST", Path: "/api/v1/paths/:id/stations", Permissions: []string{"path:manage"}},
			{Method: "DELETE", Path: "/api/v1/paths/:id/stations/:stationId", Permissions: []string{"path:manage"}},
			{Method: "PUT", Path: "/api/v1/paths/:id/stations/reorder", Permissions: []string{"path:manage"}},
			{Method: "POST", Path: "/api/v1/taxes", Permissions: []string{"tariff:manage"}},
			{Method: "PUT", Path: "/api/v1/taxes/:id/rate", Permissions: []string{"tariff:manage"}},
			{Method: "DELETE", Path: "/api/v1/taxes/:id", Permissions: []string{"tariff:manage"}},
			{Method: "POST", Path: "/api/v1/tax-payer-types", Permissions: []string{"tariff:manage"}},
			{Method: "POST", Path: "/api/v1/payments/manual", Permissions: []string{"payment:collect"}},
			{Method: "POST", Path: "/api/v1/journeys/truck-changes", Permissions: []string{"journey:manage"}},
			{Method: "POST", Path: "/api/v1/journeys/trucks/:id/cancel", Permissions: []string{"journey:manage"}},
			{Method: "POST", Path: "/api/v1/journeys/walk-ins/:id/cancel", Permissions: []string{"journey:manage"}},
			{Method: "*", Path: "/api/v1/identity/*", Permissions: []string{"identity:manage"}},
		},
		Logger: log,
	}))

	// Weighbridge device ingestion, authenticated by API key
	weighbridgeRoutes := router.NewDomainGroup("weighbridge", "/weighbridge")
	weighbridgeRoutes.Use(middleware.APIKeyAuth(middleware.APIKeyConfig{
		Keys:   []string{cfg.Weighbridge.APIKey},
		Logger: log,
	}))
	weighbridgeRoutes.POST("/trucks", weighbridgeHandler.IngestTruck)
	weighbridgeRoutes.POST("/walk-ins", weighbridgeHandler.IngestWalkIn)
	weighbridgeRoutes.POST("/plate-images", weighbridgeHandler.InitiatePlateUpload)

	// Checkpoint state reads for station controllers
	checkpointRoutes := router.NewDomainGroup("checkpoint", "/checkpoints")
	checkpointRoutes.GET("/trucks/:plate", checkpointHandler.GetTruckState)
	checkpointRoutes.GET("/walk-ins/:uniqueId", checkpointHandler.GetWalkInState)
	checkpointRoutes.GET("/checkins/:id/plate-image", checkpointHandler.GetPlateImage)

	// Manual settlement at the station counter
	paymentRoutes := router.NewDomainGroup("payment", "/payments")
	paymentRoutes.POST("/manual", paymentHandler.PayManual)

	// Journey lifecycle
	journeyRoutes := router.NewDomainGroup("journey", "/journeys")
	journeyRoutes.POST("/truck-changes", journeyHandler.ChangeTruck)
	journeyRoutes.GET("/trucks", journeyHandler.ListTruckJourneys)
	journeyRoutes.PUT("/trucks/:id", journeyHandler.CompleteTruckDeclaration)
	journeyRoutes.GET("/trucks/:id", journeyHandler.GetTruckJourney)
	journeyRoutes.GET("/trucks/number/:number", journeyHandler.GetTruckJourneyByNumber)
	journeyRoutes.POST("/trucks/:id/cancel", journeyHandler.CancelTruckJourney)
	journeyRoutes.GET("/walk-ins", journeyHandler.ListWalkInJourneys)
	journeyRoutes.PUT("/walk-ins/:id", journeyHandler.CompleteWalkInJourney)
	journeyRoutes.POST("/walk-ins/:id/cancel", journeyHandler.CancelWalkInJourney)

	// Stations and ordered paths
	stationRoutes := router.NewDomainGroup("station", "/stations")
	stationRoutes.POST("", pathHandler.CreateStation)
	stationRoutes.GET("", pathHandler.ListStations)
	stationRoutes.GET("/:stationId/taxes", tariffHandler.ListTaxesByStation)

	pathRoutes := router.NewDomainGroup("path", "/paths")
	pathRoutes.POST("", pathHandler.CreatePath)
	pathRoutes.GET("", pathHandler.ListPaths)
	pathRoutes.GET("/:id", pathHandler.GetPath)
	pathRoutes.DELETE("/:id", pathHandler.DeletePath)
	pathRoutes.POST("/:id/stations", pathHandler.AppendStation)
	pathRoutes.DELETE("/:id/stations/:stationId", pathHandler.RemoveStation)
	pathRoutes.PUT("/:id/stations/reorder", pathHandler.ReorderStations)

	// Tariff configuration
	taxRoutes := router.NewDomainGroup("tax", "/taxes")
	taxRoutes.POST("", tariffHandler.CreateTax)
	taxRoutes.GET("/applicable", tariffHandler.GetApplicableTax)
	taxRoutes.PUT("/:id/rate", tariffHandler.UpdateTaxRate)
	taxRoutes.DELETE("/:id", tariffHandler.DeleteTax)

	taxPayerTypeRoutes := router.NewDomainGroup("tax-payer-type", "/tax-payer-types")
	taxPayerTypeRoutes.POST("", tariffHandler.CreateTaxPayerType)
	taxPayerTypeRoutes.GET("", tariffHandler.ListTaxPayerTypes)

	// Registry aggregates
	truckRoutes := router.NewDomainGroup("truck", "/trucks")
	truckRoutes.POST("", truckHandler.Register)
	truckRoutes.GET("", truckHandler.List)
	truckRoutes.GET("/:id", truckHandler.Get)
	truckRoutes.PUT("/:id", truckHandler.Update)
	truckRoutes.PUT("/:id/plate", truckHandler.ChangePlate)
	truckRoutes.GET("/plate/:plate", truckHandler.GetByPlate)
	truckRoutes.POST("/:id/activate", truckHandler.Activate)
	truckRoutes.POST("/:id/deactivate", truckHandler.Deactivate)

	driverRoutes := router.NewDomainGroup("driver", "/drivers")
	driverRoutes.POST("", driverHandler.Register)
	driverRoutes.GET("", driverHandler.List)
	driverRoutes.GET("/:id", driverHandler.Get)
	driverRoutes.DELETE("/:id", driverHandler.Delete)

	exporterRoutes := router.NewDomainGroup("exporter", "/exporters")
	exporterRoutes.POST("", exporterHandler.Register)
	exporterRoutes.GET("", exporterHandler.List)
	exporterRoutes.GET("/:id", exporterHandler.Get)
	exporterRoutes.GET("/unique/:uniqueId", exporterHandler.GetByUniqueID)
	exporterRoutes.PUT("/:id/classification", exporterHandler.Classify)

	commodityRoutes := router.NewDomainGroup("commodity", "/commodities")
	commodityRoutes.POST("", commodityHandler.Create)
	commodityRoutes.GET("", commodityHandler.List)
	commodityRoutes.GET("/:id", commodityHandler.Get)
	commodityRoutes.PUT("/:id/price", commodityHandler.UpdatePrice)
	commodityRoutes.DELETE("/:id", commodityHandler.Delete)

	// Authentication. Credential endpoints get their own tight limiter
	// against brute forcing, separate from the global one.
	loginLimiter := middleware.AuthRateLimit(middleware.NewRateLimiter(10, time.Minute))
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", loginLimiter, authHandler.Login)
	authRoutes.POST("/refresh", loginLimiter, authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Identity administration
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.POST("/users", userHandler.Create)
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.GET("/users/stats/count", userHandler.Count)
	identityRoutes.GET("/users/:id", userHandler.GetByID)
	identityRoutes.PUT("/users/:id", userHandler.Update)
	identityRoutes.DELETE("/users/:id", userHandler.Delete)
	identityRoutes.POST("/users/:id/activate", userHandler.Activate)
	identityRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)
	identityRoutes.POST("/users/:id/lock", userHandler.Lock)
	identityRoutes.POST("/users/:id/unlock", userHandler.Unlock)
	identityRoutes.POST("/users/:id/reset-password", userHandler.ResetPassword)
	identityRoutes.PUT("/users/:id/roles", userHandler.AssignRoles)
	identityRoutes.POST("/roles", roleHandler.Create)
	identityRoutes.GET("/roles", roleHandler.List)
	identityRoutes.GET("/roles/system", roleHandler.GetSystemRoles)
	identityRoutes.GET("/roles/stats/count", roleHandler.Count)
	identityRoutes.GET("/roles/code/:code", roleHandler.GetByCode)
	identityRoutes.GET("/roles/:id", roleHandler.GetByID)
	identityRoutes.PUT("/roles/:id", roleHandler.Update)
	identityRoutes.DELETE("/roles/:id", roleHandler.Delete)
	identityRoutes.POST("/roles/:id/enable", roleHandler.Enable)
	identityRoutes.POST("/roles/:id/disable", roleHandler.Disable)
	identityRoutes.PUT("/roles/:id/permissions", roleHandler.SetPermissions)
	identityRoutes.GET("/permissions", roleHandler.GetPermissions)

	// Register all domain groups
	r.Register(weighbridgeRoutes).
		Register(checkpointRoutes).
		Register(paymentRoutes).
		Register(journeyRoutes).
		Register(stationRoutes).
		Register(pathRoutes).
		Register(taxRoutes).
		Register(taxPayerTypeRoutes).
		Register(truckRoutes).
		Register(driverRoutes).
		Register(exporterRoutes).
		Register(commodityRoutes).
		Register(authRoutes).
		Register(identityRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
