package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scanlens-api/api/routes"
	"scanlens-api/internal/account"
	"scanlens-api/internal/config"
	"scanlens-api/internal/database"
	"scanlens-api/internal/events"
	"scanlens-api/internal/identity"
	"scanlens-api/internal/scan"
	"scanlens-api/internal/vision"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := logger.New()
	defer logger.Sync()

	zapLogger := logger.Desugared()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := account.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run account migrations", "error", err)
	}
	if err := scan.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run scan migrations", "error", err)
	}

	eventBus := events.NewEventBus(zapLogger)
	if err := events.RegisterAuditSubscribers(eventBus, zapLogger); err != nil {
		logger.Fatal("Failed to register audit subscribers", "error", err)
	}

	userRepository := account.NewGormRepository(db, zapLogger)
	scanRepository := scan.NewGormRepository(db, zapLogger)
	classifier := vision.NewOpenAIProvider(cfg.Vision, zapLogger)
	yandexProvider := identity.NewYandexProvider(cfg.Yandex, zapLogger)

	accountService := account.NewService(eventBus, zapLogger, userRepository)
	scanService := scan.NewService(eventBus, zapLogger, scanRepository, userRepository, classifier)
	identityService := identity.NewService(eventBus, zapLogger, yandexProvider, userRepository)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, logger, accountService, scanService, identityService)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if err := eventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
