package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/handlers"
	"github.com/mediatrail/backend/internal/middleware"
	"github.com/mediatrail/backend/internal/router"
	"github.com/mediatrail/backend/internal/validators"
	"github.com/mediatrail/backend/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set; all bearer tokens will be rejected")
	}
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database connection
	db, err := config.InitDB(logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Setup global middleware
	router.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, cfg, logger); err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
