package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/supplier-directory/internal/api/http"
	"github.com/spec-kit/supplier-directory/internal/api/http/handlers"
	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/blob"
	"github.com/spec-kit/supplier-directory/internal/config"
	"github.com/spec-kit/supplier-directory/internal/events"
	"github.com/spec-kit/supplier-directory/internal/observability"
	"github.com/spec-kit/supplier-directory/internal/repository"
	"github.com/spec-kit/supplier-directory/internal/service"
	"github.com/spec-kit/supplier-directory/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pingers := map[string]handlers.Pinger{}

	var backing store.RecordStore
	if cfg.Postgres.DSN != "" {
		pool, err := store.NewPostgresPool(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		pg := store.NewPostgresStore(pool)
		defer pg.Close()
		if cfg.Postgres.EnsureSchema {
			if err := pg.EnsureSchema(ctx); err != nil {
				logger.Fatal("failed to ensure schema", zap.Error(err))
			}
		}
		pingers["postgres"] = pg
		backing = pg
	} else {
		logger.Warn("POSTGRES_DSN not provided; using in-memory store")
		backing = store.NewMemoryStore()
	}

	var cache store.Cache
	if cfg.Redis.UseCache {
		client := store.NewRedisClient(cfg.Redis, logger)
		defer client.Close()
		pingers["redis"] = redisPinger{client: client}
		cache = store.NewRedisCache(client, cfg.Directory.CacheTTL(), logger)
	} else {
		cache = store.NewMemoryCache(cfg.Directory.CacheTTL())
	}
	recordStore := store.NewCachedStore(backing, cache)

	uploader, err := blob.NewLocalUploader(cfg.Blob)
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(recordStore)
	supplierRepo := repository.NewSupplierRepository(recordStore)
	settingsRepo := repository.NewSettingsRepository(recordStore)
	presenceRepo := repository.NewPresenceRepository(recordStore)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifications := service.NewNotificationService(dispatcher, logger)
	notifications.RegisterHandlers()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	workflowService := service.NewWorkflowService(service.WorkflowDependencies{
		SupplierRepo:      supplierRepo,
		UserRepo:          userRepo,
		SettingsRepo:      settingsRepo,
		Uploader:          uploader,
		Dispatcher:        dispatcher,
		RequiredDocuments: cfg.Directory.RequiredDocuments,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	settingsService := service.NewSettingsService(settingsRepo)
	presenceService := service.NewPresenceService(presenceRepo, userRepo,
		cfg.Directory.PresenceThrottle(), cfg.Directory.PresenceWindow())

	if err := settingsService.Seed(ctx); err != nil {
		logger.Warn("failed to seed settings lists", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Auth:           handlers.NewAuthHandler(authService),
		Suppliers:      handlers.NewSuppliersHandler(workflowService),
		AdminSuppliers: handlers.NewAdminSuppliersHandler(workflowService, cfg.Directory.DeleteConfirmPhrase),
		AdminUsers:     handlers.NewAdminUsersHandler(workflowService, userService),
		Settings:       handlers.NewSettingsHandler(settingsService),
		Presence:       handlers.NewPresenceHandler(presenceService),
		AuthMiddleware: authMiddleware,
		UploadsDir:     uploader.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
