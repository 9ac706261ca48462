package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cash-advance-monitoring/cam-api/api/swagger"
	"github.com/cash-advance-monitoring/cam-api/internal/handler"
	appmiddleware "github.com/cash-advance-monitoring/cam-api/internal/middleware"
	"github.com/cash-advance-monitoring/cam-api/internal/repository"
	"github.com/cash-advance-monitoring/cam-api/internal/service"
	"github.com/cash-advance-monitoring/cam-api/pkg/cache"
	"github.com/cash-advance-monitoring/cam-api/pkg/config"
	"github.com/cash-advance-monitoring/cam-api/pkg/database"
	"github.com/cash-advance-monitoring/cam-api/pkg/logger"
	corsmiddleware "github.com/cash-advance-monitoring/cam-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cash-advance-monitoring/cam-api/pkg/middleware/requestid"
)

// @title Cash Advance Monitoring API
// @version 1.0.0
// @description Staff registration and cash advance request/approval service
// @BasePath /
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
	sugar := logr.Sugar()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	cacheEnabled := cfg.StatsCache.Enabled
	if cacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			sugar.Warnw("redis unavailable, stats caching disabled", "error", err)
			cacheEnabled = false
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.StatsCache.TTL, logr, cacheEnabled)
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.StatsCache.TTL, logr, false)
	}

	validate := validator.New()
	tokenSvc := service.NewTokenService(cfg.Token)

	staffRepo := repository.NewStaffRepository(db)
	advanceRepo := repository.NewCashAdvanceRepository(db)

	staffSvc := service.NewStaffService(staffRepo, tokenSvc, validate, logr)
	advanceSvc := service.NewCashAdvanceService(advanceRepo, staffRepo, cacheSvc, metricsSvc, validate, logr)

	staffHandler := handler.NewStaffHandler(staffSvc)
	advanceHandler := handler.NewCashAdvanceHandler(advanceSvc)
	healthHandler := handler.NewHealthHandler(db)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		sugar.Errorw("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appmiddleware.Identity(tokenSvc))
	r.Use(appmiddleware.Metrics(metricsSvc))

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", healthHandler.Check)

	staff := api.Group("/staff")
	staff.POST("/register", staffHandler.Register)
	staff.GET("", staffHandler.List)
	staff.GET("/search/:query", staffHandler.Search)
	staff.GET("/:id", staffHandler.Get)
	staff.PUT("/:id", staffHandler.Update)
	staff.DELETE("/:id", staffHandler.Delete)

	advances := api.Group("/cash-advance")
	advances.POST("", advanceHandler.Create)
	advances.GET("", advanceHandler.List)
	advances.GET("/stats/overview", advanceHandler.Stats)
	advances.GET("/export", advanceHandler.Export)
	advances.GET("/staff/:staffId", advanceHandler.ListForStaff)
	advances.GET("/:id", advanceHandler.Get)
	advances.PUT("/:id/status", advanceHandler.UpdateStatus)
	advances.PUT("/:id/retirement", advanceHandler.AddRetirementNotes)

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	sugar.Infow("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("forced shutdown", "error", err)
	}
	sugar.Infow("server stopped")
}
