// Command seed provisions the default MANAGER account. Roles are a
// closed enum, so the only bootstrap step is creating one manager that
// can provision everyone else through the API.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

const (
	defaultManagerName     = "Default Manager"
	defaultManagerEmail    = "manager@example.com"
	defaultManagerPassword = "Manager123!"
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

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	users := repository.NewUserRepository(pg.PoolHandle())

	if _, err := users.GetByEmail(ctx, defaultManagerEmail); err == nil {
		logger.Info("default manager already exists", zap.String("email", defaultManagerEmail))
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		logger.Fatal("failed to check for default manager", zap.Error(err))
	}

	hash, err := auth.HashPassword(defaultManagerPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	manager := &domain.User{
		Name:         defaultManagerName,
		Email:        defaultManagerEmail,
		PasswordHash: hash,
		Role:         domain.RoleManager,
	}
	if err := users.Create(ctx, manager); err != nil {
		logger.Fatal("failed to create default manager", zap.Error(err))
	}

	logger.Info("default manager created",
		zap.String("id", manager.ID),
		zap.String("email", manager.Email),
	)
}
