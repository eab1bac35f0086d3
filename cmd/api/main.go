package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shop-admin-service/internal/api/http"
	"github.com/spec-kit/shop-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/cache"
	"github.com/spec-kit/shop-admin-service/internal/config"
	"github.com/spec-kit/shop-admin-service/internal/events"
	"github.com/spec-kit/shop-admin-service/internal/observability"
	"github.com/spec-kit/shop-admin-service/internal/persistence"
	"github.com/spec-kit/shop-admin-service/internal/repository"
	"github.com/spec-kit/shop-admin-service/internal/service"
	"github.com/spec-kit/shop-admin-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	listings := cache.NewListingCache(redis.Client, cfg.Redis.ListingTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartCacheInvalidator(dispatcher, listings)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		Listings:     listings,
		Dispatcher:   dispatcher,
	})
	orderService := service.NewOrderService(orderRepo, listings)
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		UserRepo:   userRepo,
		Listings:   listings,
		Dispatcher: dispatcher,
	})
	statsService := service.NewStatsService(service.StatsDependencies{
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		OrderRepo:    orderRepo,
		UserRepo:     userRepo,
		Listings:     listings,
	})

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Products:       handlers.NewProductsHandler(catalogService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Admins:         handlers.NewAdminsHandler(adminService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
