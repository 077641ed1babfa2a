package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/autocloud/autocloud-api/api/swagger"
	"github.com/autocloud/autocloud-api/internal/google"
	"github.com/autocloud/autocloud-api/internal/handler"
	"github.com/autocloud/autocloud-api/internal/middleware"
	"github.com/autocloud/autocloud-api/internal/repository"
	"github.com/autocloud/autocloud-api/internal/service"
	"github.com/autocloud/autocloud-api/pkg/cache"
	"github.com/autocloud/autocloud-api/pkg/config"
	"github.com/autocloud/autocloud-api/pkg/database"
	"github.com/autocloud/autocloud-api/pkg/logger"
	corsmiddleware "github.com/autocloud/autocloud-api/pkg/middleware/cors"
	reqidmiddleware "github.com/autocloud/autocloud-api/pkg/middleware/requestid"
)

// @title AutoCloud API
// @version 1.0.0
// @description Storage cleanup dashboard backend for Google Drive accounts
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	trashRepo := repository.NewTrashRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Outbound Google client and core services.
	googleClient := google.NewClient(cfg.Google, logr)
	metricsSvc := service.NewMetricsService()
	googleClient.SetObserver(metricsSvc.ObserveGoogleCall)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cleanup.CacheTTL, logr)
	authSvc := service.NewAuthService(userRepo, googleClient, nil, logr, service.AuthServiceConfig{
		JWTSecret:     cfg.JWT.Secret,
		JWTExpiration: cfg.JWT.Expiration,
	})
	cleanupSvc := service.NewCleanupService(service.CleanupServiceParams{
		Drive:   googleClient,
		Cache:   cacheSvc,
		Trash:   trashRepo,
		Metrics: metricsSvc,
		Logger:  logr,
		Config: service.CleanupServiceConfig{
			CacheTTL:       cfg.Cleanup.CacheTTL,
			TrashRetention: cfg.Cleanup.TrashRetention,
		},
	})
	trashSvc := service.NewTrashService(trashRepo, googleClient, logr)
	dashboardSvc := service.NewDashboardService(googleClient, logr, service.DashboardServiceConfig{
		MediaPageSize: cfg.Dashboard.MediaPageSize,
	})
	suggestionSvc := service.NewSuggestionService(googleClient, cacheSvc, logr, service.SuggestionServiceConfig{
		LargeFileMinBytes: cfg.Suggestions.LargeFileMinBytes,
		StaleAfterDays:    cfg.Suggestions.StaleAfterDays,
		MaxPerCategory:    cfg.Suggestions.MaxPerCategory,
	})

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(authSvc)
	cleanupHandler := handler.NewCleanupHandler(cleanupSvc)
	trashHandler := handler.NewTrashHandler(trashSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	suggestionHandler := handler.NewSuggestionHandler(suggestionSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/google", authHandler.Google)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		if cfg.Auth.RequireJWT {
			users.Use(middleware.JWT(authSvc))
		}
		users.GET("/:email", userHandler.Get)

		cleanup := api.Group("/cleanup")
		{
			cleanup.POST("/drive", cleanupHandler.Run)
			cleanup.POST("/history", trashHandler.History)
			cleanup.GET("/history/export", trashHandler.Export)
			cleanup.POST("/restore", trashHandler.Restore)
		}

		api.POST("/dashboard", dashboardHandler.Overview)
		api.POST("/suggestions", suggestionHandler.Analyze)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
