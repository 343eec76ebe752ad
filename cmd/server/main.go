package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"complianceconnect.backend/internal/config"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/datasources"
	"complianceconnect.backend/internal/infrastructure/jobs"
	"complianceconnect.backend/internal/infrastructure/seed"
	"complianceconnect.backend/internal/interfaces/http/handlers"
	"complianceconnect.backend/internal/interfaces/http/middleware"
	"complianceconnect.backend/internal/usecases"
	"complianceconnect.backend/pkg/cache"
	"complianceconnect.backend/pkg/jwt"
	"complianceconnect.backend/pkg/logger"
	"complianceconnect.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv  = godotenv.Load
	loadCfg     = config.Load
	initLog     = logger.Init
	openStorage = datasources.OpenStorage
	newRedis    = redis.NewClient
	runServer   = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	storage, closeStorage, err := openStorage(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = closeStorage() }()
	logger.Info(ctx, "Storage ready", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.SeedOnStart {
		seeded, err := seed.Run(ctx, storage)
		if err != nil {
			return fmt.Errorf("failed to seed storage: %w", err)
		}
		logger.Info(ctx, "Seed checked", zap.Bool("seeded", seeded))
	}

	store, closeCache, err := openCache(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer func() { _ = closeCache() }()

	r := buildRouter(cfg, storage, store)

	expiryJob := jobs.NewBookingExpiryJob(storage, cfg.Jobs.BookingExpirySchedule, cfg.Jobs.BookingExpiryGrace)
	if err := expiryJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start booking expiry job: %w", err)
	}
	defer expiryJob.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "ComplianceConnect backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api"),
		zap.String("health", "/health"),
	)
	return serve(ctx, srv)
}

// openCache picks redis when configured and the in-process cache otherwise.
func openCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, func() error, error) {
	if cfg.URL == "" {
		logger.Info(ctx, "REDIS_URL not set, using in-process cache")
		return cache.NewMemory(time.Minute), func() error { return nil }, nil
	}
	client, err := newRedis(ctx, cfg.URL, cfg.Password)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "Redis initialized")
	return redis.NewStore(client, "complianceconnect:"), client.Close, nil
}

func buildRouter(cfg *config.Config, storage repositories.Storage, store cache.Cache) *gin.Engine {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	users := storage.Users()
	authUsecase := usecases.NewAuthUsecase(users, jwtService)
	professionalUsecase := usecases.NewProfessionalUsecase(storage.Professionals(), users)
	serviceUsecase := usecases.NewServiceUsecase(storage.Services(), storage.Professionals(), users)
	bookingUsecase := usecases.NewBookingUsecase(storage)
	messageUsecase := usecases.NewMessageUsecase(storage, store, cfg.Cache.MessageTTL)
	requirementUsecase := usecases.NewRequirementUsecase(storage.Requirements(), users)

	if err := middleware.RegisterValidators(); err != nil {
		logger.Error(context.Background(), "Failed to register validators", zap.Error(err))
	}

	r := gin.New()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	r.GET("/metrics", middleware.MetricsHandler())
	registerAPIRoutes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		userHandler:         handlers.NewUserHandler(authUsecase),
		professionalHandler: handlers.NewProfessionalHandler(professionalUsecase),
		serviceHandler:      handlers.NewServiceHandler(serviceUsecase),
		bookingHandler:      handlers.NewBookingHandler(bookingUsecase),
		messageHandler:      handlers.NewMessageHandler(messageUsecase),
		requirementHandler:  handlers.NewRequirementHandler(requirementUsecase),
		authMiddleware:      middleware.AuthMiddleware(jwtService),
		authRateLimit:       middleware.RateLimit(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),
		idempotency:         middleware.IdempotencyMiddleware(store),
	})

	for _, route := range r.Routes() {
		logger.Debug(context.Background(), "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}
	return r
}

// serve runs srv until it fails or ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- runServer(srv) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
