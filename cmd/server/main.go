package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/events"
	"portfolio/internal/handler"
	"portfolio/internal/observability"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// @title Portfolio CMS API
// @version 1.0
// @description Blog, projects, about profile and contact form for a personal portfolio.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("tracing init", zap.Error(err))
	}

	codec, err := auth.NewTokenCodec([]byte(cfg.JWTSecret), auth.TokenTTL)
	if err != nil {
		logger.Fatal("token codec", zap.Error(err))
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}
	if err := db.Migrate(gormDB, logger); err != nil {
		logger.Fatal("database migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, serving without cache", zap.Error(err))
	}
	defer cacheClient.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	aboutRepo := repository.NewAboutRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, codec, logger)
	blogService := service.NewBlogService(blogRepo, cacheClient, publisher, cfg.KafkaBlogTopic, logger)
	projectService := service.NewProjectService(projectRepo, cacheClient, logger)
	aboutService := service.NewAboutService(aboutRepo, cacheClient, logger)
	contactService := service.NewContactService(contactRepo, publisher, cfg.KafkaContactTopic, logger)

	gate := validation.New()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, codec, gate, logger, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.CookieSecure),
		Blog:    handler.NewBlogHandler(blogService, gate),
		Project: handler.NewProjectHandler(projectService, gate),
		About:   handler.NewAboutHandler(aboutService, gate),
		Contact: handler.NewContactHandler(contactService, gate),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}
