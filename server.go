package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/api"
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/middlewares"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/reports"
	"github.com/mmdatafocus/workshop_backend/store"
	"github.com/mmdatafocus/workshop_backend/workflow"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	corsCfg, err := corsConfig()
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "cors"}).Fatal(err.Error())
	}

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start listening immediately: until the database is ready only /healthz
	// answers and everything else is 503.
	var current atomic.Value
	current.Store(bootstrapEngine())
	srv := &http.Server{
		Addr: ":" + port,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current.Load().(http.Handler).ServeHTTP(w, r)
		}),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	db := config.ConnectDatabaseWithRetry()
	defer config.CloseDatabase(db)
	config.ConnectRedisWithRetry(sigCtx)

	// AutoMigrate can block tables with DDL; run it as a separate job instead
	// with SKIP_MIGRATIONS=true.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		if err := models.MigrateTable(db); err != nil {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Fatal(err.Error())
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	opts := []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithTracer(otel.Tracer("workshop-ledger")),
		ledger.WithOrderLocks(config.RedisLockEnabled()),
	}
	if config.ReportCacheEnabled() && config.GetRedisDB() != nil {
		opts = append(opts, ledger.WithReportCache(reports.NewRedisCache(config.ReportCacheTTL(), logger)))
	}
	l := ledger.New(store.New(db), opts...)

	var draining atomic.Bool
	current.Store(appEngine(db, l, logger, corsCfg, func() bool { return !draining.Load() }))

	// Publishes ledger events after commit.
	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()
	if config.OutboxEnabled() {
		go workflow.NewOutboxDispatcher(db, logger).Run(dispatcherCtx)
	}

	logger.WithFields(logrus.Fields{"port": port, "driver": config.DatabaseDriver()}).Info("server started")

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Stop background workers first so they don't start new work while we're draining.
	draining.Store(true)
	cancelDispatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	config.ClosePubSub()
	config.CloseRedis()
}

func bootstrapEngine() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.ReadinessGate(func() bool { return false }))
	return r
}

func appEngine(db *gorm.DB, l *ledger.Ledger, logger *logrus.Logger, corsCfg cors.Config, ready func() bool) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(middlewares.ReadinessGate(ready))
	r.Use(cors.New(corsCfg))

	// Optional rate limiting (recommended for production).
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		if client := config.GetRedisDB(); client != nil {
			limit := int64FromEnv("RATE_LIMIT_MAX_REQUESTS", 600)
			windowSec := int64FromEnv("RATE_LIMIT_WINDOW_SECONDS", 60)
			r.Use(middlewares.NewRateLimiter(client, limit, time.Duration(windowSec)*time.Second).RateLimitMiddleware)
		} else {
			logger.WithFields(logrus.Fields{"field": "rate-limit"}).Warn("RATE_LIMIT_ENABLED but redis is not connected; rate limiting disabled")
		}
	}

	r.Use(middlewares.AuthMiddleware())
	r.Use(middlewares.LoaderMiddleware(db))
	r.Use(middlewares.ErrorLogger(logger))
	r.Use(gin.Recovery())

	api.RegisterRoutes(r, api.NewHandler(l), config.AuthEnabled())
	r.NoRoute(api.NotFound)
	return r
}

// corsConfig requires an explicit allowlist in production via
// CORS_ALLOWED_ORIGINS (comma-separated) and allows all origins elsewhere.
// A configuration cors.New would refuse is reported here, before startup.
func corsConfig() (cors.Config, error) {
	corsConfig := cors.DefaultConfig()
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		corsConfig.AllowOrigins = splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS"))
		if len(corsConfig.AllowOrigins) == 0 {
			return cors.Config{}, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin when GO_ENV=production")
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", middlewares.CorrelationHeader)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", middlewares.CorrelationHeader)
	corsConfig.AllowCredentials = true
	if err := corsConfig.Validate(); err != nil {
		return cors.Config{}, fmt.Errorf("cors: %w", err)
	}
	return corsConfig, nil
}

func int64FromEnv(key string, def int64) int64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
