package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/supportstack/helpdesk/internal/api/http"
	"github.com/supportstack/helpdesk/internal/api/http/handlers"
	"github.com/supportstack/helpdesk/internal/auth"
	"github.com/supportstack/helpdesk/internal/config"
	"github.com/supportstack/helpdesk/internal/events"
	"github.com/supportstack/helpdesk/internal/observability"
	"github.com/supportstack/helpdesk/internal/persistence"
	"github.com/supportstack/helpdesk/internal/repository"
	"github.com/supportstack/helpdesk/internal/service"
	"github.com/supportstack/helpdesk/internal/worker"
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

	dbPool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(dbPool)
	ticketRepo := repository.NewTicketRepository(dbPool)
	articleRepo := repository.NewArticleRepository(dbPool)
	suggestionRepo := repository.NewSuggestionRepository(dbPool)
	auditRepo := repository.NewAuditRepository(dbPool)
	settingsRepo := repository.NewSettingsRepository(dbPool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	kbService := service.NewKBService(articleRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo)

	triageDeps := service.TriageDependencies{
		TicketRepo:         ticketRepo,
		SuggestionRepo:     suggestionRepo,
		AuditRepo:          auditRepo,
		SettingsRepo:       settingsRepo,
		Retriever:          kbService,
		Dispatcher:         dispatcher,
		Metrics:            metrics,
		Logger:             logger,
		DraftPreviewLength: cfg.Triage.DraftPreviewLength,
	}
	if lock := persistence.NewRedisRunLock(redis.Client, cfg.Triage.RunLockTTL()); lock != nil {
		triageDeps.RunLock = lock
	}
	triageService := service.NewTriageService(triageDeps)

	triagePool := worker.NewTriagePool(triageService, cfg.Triage.Workers, cfg.Triage.QueueSize, logger)
	triagePool.Start(ctx)
	defer triagePool.Stop()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		AuditRepo:  auditRepo,
		Queue:      triagePool,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	sweeper := worker.NewSweeper(ticketRepo, triagePool, cfg.Triage.SweepInterval(), cfg.Triage.StuckAfter(), logger)
	go sweeper.Run(ctx)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Agent:          handlers.NewAgentHandler(triageService),
		KB:             handlers.NewKBHandler(kbService),
		Config:         handlers.NewConfigHandler(settingsService),
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
