package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/refcatalog-service/internal/api/http"
	"github.com/spec-kit/refcatalog-service/internal/api/http/handlers"
	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/config"
	"github.com/spec-kit/refcatalog-service/internal/events"
	"github.com/spec-kit/refcatalog-service/internal/observability"
	"github.com/spec-kit/refcatalog-service/internal/persistence"
	"github.com/spec-kit/refcatalog-service/internal/repository"
	"github.com/spec-kit/refcatalog-service/internal/service"
	"github.com/spec-kit/refcatalog-service/internal/worker"
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
	tokenRepo := repository.NewTokenRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	fileRepo := repository.NewFileRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	auditService := service.NewAuditService(dispatcher, logger)
	auditService.RegisterHandlers()

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), cfg.Auth.Issuer, cfg.Auth.Audience)
	limiter := persistence.NewLoginLimiter(redis, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow())
	credService := service.NewCredentialService(userRepo, limiter, cfg.Auth.RequireVerifiedMail)
	sessionService := service.NewSessionService(tokenMgr, tokenRepo, credService, dispatcher, metrics, logger)
	accountService := service.NewAccountService(userRepo, dispatcher, cfg.Auth.BcryptCost)
	catalogService := service.NewCatalogService(catalogRepo, fileRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, catalogService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(sessionService, userRepo)

	sweeper := worker.NewSweepWorker(tokenRepo, dispatcher, metrics, logger, cfg.Auth.SweepInterval())
	go sweeper.Run(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.CORSAllowOrigins, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(accountService, sessionService),
		Catalogs:       handlers.NewCatalogsHandler(catalogService),
		Files:          handlers.NewFilesHandler(catalogService),
		Favorites:      handlers.NewFavoritesHandler(favoriteService),
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
