package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-tracker/internal/api/http"
	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/service"
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
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	statusLogRepo := repository.NewStatusLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	subscribeEventLogger(dispatcher, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		UserRepo:      userRepo,
		StatusLogRepo: statusLogRepo,
		Dispatcher:    dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		TicketRepo:  ticketRepo,
		Dispatcher:  dispatcher,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
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

// subscribeEventLogger wires the only event consumer: a structured audit
// log of domain events.
func subscribeEventLogger(dispatcher events.Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event events.Event) error {
		logger.Info("domain event",
			zap.String("type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.String("actor_id", event.ActorID),
			zap.String("actor_role", string(event.ActorRole)),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketAssigned,
		events.EventTicketStatusChanged,
		events.EventTicketDeleted,
		events.EventCommentAdded,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
