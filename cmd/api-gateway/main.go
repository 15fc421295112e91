package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-credit-api/api/swagger"
	"github.com/noah-isme/campus-credit-api/internal/handler"
	internalmiddleware "github.com/noah-isme/campus-credit-api/internal/middleware"
	"github.com/noah-isme/campus-credit-api/internal/repository"
	"github.com/noah-isme/campus-credit-api/internal/service"
	"github.com/noah-isme/campus-credit-api/pkg/cache"
	"github.com/noah-isme/campus-credit-api/pkg/config"
	"github.com/noah-isme/campus-credit-api/pkg/database"
	"github.com/noah-isme/campus-credit-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-credit-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-credit-api/pkg/middleware/requestid"
)

// @title Campus Credit API
// @version 1.0.0
// @description Campus activity and credit dashboard with cross-filtering view sessions
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	metricsSvc := service.NewMetricsService()
	validate := validator.New()
	checks := map[string]handler.ReadinessCheck{}

	var datasetRepo service.DatasetRepository = repository.NewStaticDatasetRepository()
	if cfg.Dataset.Source == config.DatasetSourcePostgres {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer db.Close()
		datasetRepo = repository.NewSQLDatasetRepository(db)
		checks["postgres"] = db.PingContext
	}

	var redisClient *redis.Client
	if cfg.Sessions.Store == config.SessionStoreRedis || cfg.Dataset.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisClient.Close()
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var cacheSvc *service.CacheService
	if cfg.Dataset.CacheEnabled {
		cacheSvc = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metricsSvc, cfg.Dataset.CacheTTL, logr, true)
		if err := cacheSvc.InvalidateDatasets(ctx); err != nil {
			logr.Warn("failed to clear stale dataset cache", zap.Error(err))
		}
	}

	var sessionRepo service.SessionRepository = repository.NewMemorySessionRepository(cfg.Sessions.TTL)
	if cfg.Sessions.Store == config.SessionStoreRedis {
		sessionRepo = repository.NewRedisSessionRepository(redisClient, cfg.Sessions.TTL)
	}

	datasets := service.NewDatasetService(datasetRepo, cacheSvc, metricsSvc, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{Datasets: datasets, Metrics: metricsSvc, Logger: logr})
	activitySvc := service.NewActivityService(datasets, metricsSvc, validate, logr, cfg.Views.DefaultPageSize)
	creditSvc := service.NewCreditService(datasets, metricsSvc, validate, logr, cfg.Views.DefaultPageSize)
	userSvc := service.NewUserAdminService(datasets, metricsSvc, validate, logr, cfg.Views.DefaultPageSize)
	notificationSvc := service.NewNotificationService(datasets, metricsSvc, validate, logr)
	sessionSvc := service.NewSessionService(service.SessionServiceParams{
		Repository:    sessionRepo,
		Datasets:      datasets,
		Dashboard:     dashboardSvc,
		Activities:    activitySvc,
		Credits:       creditSvc,
		Users:         userSvc,
		Notifications: notificationSvc,
		Metrics:       metricsSvc,
		Validator:     validate,
		Logger:        logr,
	})

	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	creditHandler := handler.NewCreditHandler(creditSvc)
	userHandler := handler.NewUserHandler(userSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())
	r.Use(internalmiddleware.Locale(cfg.Views.DefaultLocale))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/dashboard", dashboardHandler.Overview)
	api.GET("/dashboard/report", dashboardHandler.Report)
	api.GET("/activities", activityHandler.List)
	api.GET("/activities/filters", activityHandler.Filters)
	api.GET("/credits/overview", creditHandler.Overview)
	api.GET("/credits/students", creditHandler.Students)
	api.GET("/users", userHandler.List)
	api.GET("/notifications", notificationHandler.List)
	api.GET("/system/metrics", metricsHandler.System)

	sessions := api.Group("/sessions")
	sessions.POST("", sessionHandler.Open)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.DELETE("/:id", sessionHandler.Close)
	sessions.PATCH("/:id/filters", sessionHandler.UpdateFilters)
	sessions.POST("/:id/segments/:index", sessionHandler.SelectSegment)
	sessions.DELETE("/:id/segments", sessionHandler.ClearSegment)
	sessions.POST("/:id/notifications/:notificationId/toggle-read", sessionHandler.ToggleRead)
	sessions.POST("/:id/notifications/read-all", sessionHandler.MarkAllRead)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.String("session_store", cfg.Sessions.Store),
		zap.Duration("session_ttl", cfg.Sessions.TTL.Round(time.Second)),
	)
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
