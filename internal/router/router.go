package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/mediatrail/backend/internal/feed"
	"github.com/mediatrail/backend/internal/handlers"
	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
	"github.com/mediatrail/backend/pkg/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MediaItem{},
		&models.Follow{},
		&models.Activity{},
		&models.Like{},
		&models.Comment{},
		&models.Rating{},
		&models.Review{},
		&models.WatchlistItem{},
		&models.CustomList{},
		&models.CustomListItem{},
	)
	if err != nil {
		return err
	}
	logger.Info("PostgreSQL auto-migrations completed")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	mediaRepo := repositories.NewPostgresMediaRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	activityRepo := repositories.NewPostgresActivityRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	ratingRepo := repositories.NewPostgresRatingRepository(db, activityRepo)
	reviewRepo := repositories.NewPostgresReviewRepository(db, activityRepo)
	watchlistRepo := repositories.NewPostgresWatchlistRepository(db, activityRepo)
	listRepo := repositories.NewPostgresListRepository(db, activityRepo)

	// --- Feed assembly ---
	enricher := feed.NewEnricher(ratingRepo, reviewRepo, watchlistRepo, listRepo, likeRepo, commentRepo)
	assembler := feed.NewAssembler(activityRepo, followRepo, enricher, cfg.EnrichGlobalFeed)

	api := e.Group("/api/v1")

	activityHandler := handlers.NewActivityHandler(assembler, activityRepo, userRepo)
	activityHandler.RegisterActivityRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, activityRepo, commentRepo, reviewRepo)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, activityRepo)
	commentHandler.RegisterCommentRoutes(api)

	recordHandler := handlers.NewRecordHandler(ratingRepo, reviewRepo, watchlistRepo, listRepo, mediaRepo)
	recordHandler.RegisterRecordRoutes(api)

	logger.Info("all routes configured",
		zap.Bool("enrich_global_feed", cfg.EnrichGlobalFeed),
	)
	return nil
}
