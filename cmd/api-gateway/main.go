package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	_ "github.com/noah-isme/athlete-load-api/api/swagger"
	"github.com/noah-isme/athlete-load-api/internal/handler"
	"github.com/noah-isme/athlete-load-api/internal/middleware"
	"github.com/noah-isme/athlete-load-api/internal/repository"
	"github.com/noah-isme/athlete-load-api/internal/service"
	"github.com/noah-isme/athlete-load-api/pkg/cache"
	"github.com/noah-isme/athlete-load-api/pkg/config"
	"github.com/noah-isme/athlete-load-api/pkg/database"
	"github.com/noah-isme/athlete-load-api/pkg/export"
	"github.com/noah-isme/athlete-load-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/athlete-load-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/athlete-load-api/pkg/middleware/requestid"
	"github.com/noah-isme/athlete-load-api/pkg/response"
)

const shutdownTimeout = 15 * time.Second

// @title Athlete Load API
// @version 1.0.0
// @description Wellness check-in/check-out workflow and training-load monitoring
// @BasePath /api/v1
// @schemes http
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

	if err := run(cfg, logr); err != nil {
		logr.Error("server stopped with error", zap.Error(err))
		_ = logr.Sync()
		log.Fatal(err)
	}
	_ = logr.Sync()
}

func run(cfg *config.Config, logr *zap.Logger) (err error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db.DB, database.MigrateUp, logr); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer func() { err = multierr.Append(err, redisClient.Close()) }()
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	router := buildRouter(cfg, logr, db, redisClient, metrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildRouter(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, metrics *service.MetricsService) *gin.Engine {
	location := cfg.Wellness.Location()
	clock := func() time.Time { return time.Now().In(location) }
	validate := service.NewValidator()

	wellnessRepo := repository.NewWellnessRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)

	var (
		cacheRepo  service.CacheRepository
		redisStore *repository.CacheRepository
	)
	if redisClient != nil {
		redisStore = repository.NewCacheRepository(redisClient, logr)
		cacheRepo = redisStore
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ReportTTL, logr, cfg.Cache.Enabled && redisClient != nil)

	authSvc := service.NewAuthService(logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		DevTokenTTL: cfg.JWT.DevTokenTTL,
	})
	referenceSvc := service.NewReferenceService(referenceRepo, cacheSvc, cfg.Cache.ReferenceTTL, logr)
	wellnessSvc := service.NewWellnessService(service.WellnessServiceParams{
		Store:             wellnessRepo,
		Roster:            referenceSvc,
		Cache:             cacheSvc,
		Metrics:           metrics,
		Validator:         validate,
		Logger:            logr,
		Clock:             clock,
		RehabStimulusName: cfg.Wellness.RehabStimulusName,
	})
	loadSvc := service.NewLoadService(service.LoadServiceParams{
		Store:     wellnessRepo,
		Roster:    referenceSvc,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		CacheTTL:  cfg.Cache.ReportTTL,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Store:     wellnessRepo,
		Roster:    referenceSvc,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		Clock:     clock,
		CacheTTL:  cfg.Cache.ReportTTL,
	})
	exportSvc := service.NewExportService(wellnessSvc, dashboardSvc, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Exports.Title, logr)

	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisStore != nil {
		checks["redis"] = redisStore.Ping
	}
	metricsHandler := handler.NewMetricsHandler(metrics, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(response.Timing())

	handler.RegisterProbes(r, metricsHandler)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Wellness:  handler.NewWellnessHandler(wellnessSvc, exportSvc),
		Load:      handler.NewLoadHandler(loadSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc, exportSvc),
		Reference: handler.NewReferenceHandler(referenceSvc),
		Metrics:   metricsHandler,
	}, middleware.JWT(authSvc))

	return r
}
