package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/cache"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/database"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/events"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/payments"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/search"
	"github.com/sokebat/barber-frontend-sub000/internal/api/handlers"
	"github.com/sokebat/barber-frontend-sub000/internal/api/middleware"
	"github.com/sokebat/barber-frontend-sub000/internal/api/routes"
	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/redis"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/typesense"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/migrations"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/scheduler"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// OpenTelemetry
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			observability.EnableOTelLogs()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// PostgreSQL is required
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if cfg.Database.Migrate {
		if err := migrations.Apply(ctx, pgClient.DB()); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	// Redis backs the cache and the event bus; the API runs without both when it is down
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable; running without cache and event bus")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	var kafkaPublisher *events.KafkaPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		if eventBus != nil {
			eventBus = events.NewTeeBus(eventBus, kafkaPublisher)
		}
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka event sink enabled")
	}

	var publisher providers.EventPublisher
	switch {
	case eventBus != nil:
		publisher = eventBus
	case kafkaPublisher != nil:
		publisher = kafkaPublisher
	}

	// Typesense is optional; product search falls back to the database
	var (
		productSearch repositories.ProductSearchRepository
		tsClient      *typesense.Client
	)
	tsClient, err = typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable; product search uses the database")
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		productSearch = adapter
	}

	// Repositories
	var (
		productRepo  = database.NewProductAdapter(pgClient)
		categoryRepo = database.NewCategoryAdapter(pgClient)
		serviceRepo  = database.NewServiceCategoryAdapter(pgClient)
		teamRepo     = database.NewTeamAdapter(pgClient)
	)
	if cacheProvider != nil {
		productRepo = database.NewCachedProductAdapter(productRepo, cacheProvider)
		categoryRepo = database.NewCachedCategoryAdapter(categoryRepo, cacheProvider)
		serviceRepo = database.NewCachedServiceCategoryAdapter(serviceRepo, cacheProvider)
		teamRepo = database.NewCachedTeamAdapter(teamRepo, cacheProvider)
	}
	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	orderRepo := database.NewOrderAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	var paymentProvider providers.PaymentProvider
	if cfg.Stripe.SecretKey != "" {
		paymentProvider = payments.NewStripeAdapter(&cfg.Stripe)
		log.Info().Msg("Stripe payments enabled")
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	appointmentService := services.NewAppointmentService(appointmentRepo, publisher, metrics)
	productService := services.NewProductService(productRepo, productSearch, publisher)
	categoryService := services.NewCategoryService(categoryRepo, publisher)
	catalogService := services.NewServiceCatalogService(serviceRepo, publisher)
	teamService := services.NewTeamService(teamRepo, publisher)
	checkoutService := services.NewCheckoutService(orderRepo, productRepo, paymentProvider, publisher, metrics, cfg.Checkout.TaxRate)

	var invalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation")
			invalidation = nil
		}
	}

	// Background jobs
	jobs := scheduler.New(2 * time.Minute)
	if productSearch != nil {
		reindex := func(ctx context.Context) error {
			count, err := productService.Reindex(ctx)
			if err != nil {
				return err
			}
			log.Info().Int("products", count).Msg("catalog reindexed")
			return nil
		}
		if err := jobs.Add("catalog-reindex", cfg.Scheduler.CatalogReindexSpec, reindex); err != nil {
			log.Fatal().Err(err).Msg("failed to schedule catalog reindex")
		}
	}
	if cacheProvider != nil {
		warming := services.NewCacheWarmingService(productRepo, categoryRepo, serviceRepo, teamRepo, cacheProvider)
		if err := jobs.Add("cache-warm", cfg.Scheduler.CacheWarmSpec, warming.WarmCache); err != nil {
			log.Fatal().Err(err).Msg("failed to schedule cache warming")
		}
		go jobs.RunNow("cache-warm", warming.WarmCache)
	}
	jobs.Start()

	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go authLimiter.Run(ctx)

	// Handlers
	checks := map[string]handlers.HealthCheck{"postgres": pgClient.Ping}
	if redisClient != nil {
		checks["redis"] = redisClient.Ping
	}
	if productSearch != nil {
		checks["typesense"] = tsClient.Ping
	}

	router := routes.NewRouter(routes.Handlers{
		Auth:           handlers.NewAuthHandler(authService),
		Appointment:    handlers.NewAppointmentHandler(appointmentService),
		Category:       handlers.NewCategoryHandler(categoryService),
		Product:        handlers.NewProductHandler(productService),
		ServiceCatalog: handlers.NewServiceCatalogHandler(catalogService),
		Team:           handlers.NewTeamHandler(teamService),
		Checkout:       handlers.NewCheckoutHandler(checkoutService),
		SSE:            handlers.NewSSEHandler(eventBus),
		Health:         handlers.NewHealthHandler(checks),
	}, cacheMiddlewareFor(cacheProvider, metrics), authLimiter)

	handler := middleware.Chain(router.SetupRoutes(),
		middleware.RequestID,
		middleware.LoggingMiddleware,
		middleware.ObservabilityMiddleware(metrics),
		observability.InstrumentHandler,
		middleware.CORSMiddleware(cfg.CORS.AllowedOrigins),
		middleware.Compression,
		middleware.Authenticate(tokens),
		middleware.LoadersMiddleware(productRepo),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	jobs.Stop(shutdownCtx)
	if invalidation != nil {
		invalidation.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}

func cacheMiddlewareFor(cacheProvider providers.CacheProvider, metrics *observability.Metrics) *middleware.CacheMiddleware {
	if cacheProvider == nil {
		return nil
	}
	return middleware.NewCacheMiddleware(cacheProvider, metrics)
}
