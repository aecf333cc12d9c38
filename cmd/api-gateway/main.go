package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lab-portal-api/api/swagger"
	"github.com/noah-isme/lab-portal-api/internal/handler"
	"github.com/noah-isme/lab-portal-api/internal/repository"
	"github.com/noah-isme/lab-portal-api/internal/router"
	"github.com/noah-isme/lab-portal-api/internal/service"
	"github.com/noah-isme/lab-portal-api/pkg/cache"
	"github.com/noah-isme/lab-portal-api/pkg/config"
	"github.com/noah-isme/lab-portal-api/pkg/database"
	"github.com/noah-isme/lab-portal-api/pkg/logger"
	"github.com/noah-isme/lab-portal-api/pkg/validation"
)

// @title Lab Portal API
// @version 1.0.0
// @description Lab registry, weekly lab timetables and user/admin authentication.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
	if cfg.JWT.Secret == "" {
		logr.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database, logr)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	probes := map[string]handler.Probe{"postgres": db.PingContext}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		rdb, err := cache.NewRedis(ctx, cfg.Redis, logr)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			cacheRepo = repository.NewCacheRepository(rdb, cfg.Cache.Namespace)
			probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	labRepo := repository.NewLabRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)

	validate := validation.New()
	exporter := service.NewExportService()

	var federated service.IdentityVerifier
	if cfg.Auth.GoogleClientID != "" {
		federated = service.NewGoogleVerifier(cfg.Auth.GoogleClientID, logr)
	} else {
		logr.Warn("GOOGLE_CLIENT_ID not set, federated sign-in disabled")
	}

	authSvc := service.NewAuthService(userRepo, adminRepo, federated, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
		AdminSecret: cfg.Auth.SuperAdminKey,
	})
	labSvc := service.NewLabService(labRepo, timetableRepo, cacheSvc, exporter, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, labRepo, cacheSvc, exporter, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(userRepo, labRepo, timetableRepo, logr)

	r := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, metrics),
		Lab:       handler.NewLabHandler(labSvc),
		Timetable: handler.NewTimetableHandler(timetableSvc),
		User:      handler.NewUserHandler(userSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Metrics:   handler.NewMetricsHandler(metrics, probes),
	}, router.Options{
		Config:   cfg,
		Logger:   logr,
		Verifier: authSvc,
		Metrics:  metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
}
