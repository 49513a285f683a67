package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/observability"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

// Seeds the admin account and the default about profile. Accounts are only
// ever created here; the API has no sign-up route.
func main() {
	cfg := config.LoadSeed()

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.AdminEmail == "" || len(cfg.AdminPassword) < 8 {
		logger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD (at least 8 characters) must be set")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.Migrate(gormDB, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	seedService := service.NewSeedService(repository.NewUserRepository(gormDB), logger)
	user, created, err := seedService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	if created {
		logger.Info("admin created", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	} else {
		logger.Info("admin already exists", zap.String("user_id", user.ID.String()))
	}

	aboutService := service.NewAboutService(repository.NewAboutRepository(gormDB), nil, logger)
	if _, err := aboutService.Get(ctx); err != nil {
		logger.Fatal("failed to seed about profile", zap.Error(err))
	}

	logger.Info("seed completed")
}
