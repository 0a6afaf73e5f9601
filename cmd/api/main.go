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

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/telemetry"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	shutdownTracing := telemetry.Setup(cfg, zlog)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	clock := timezone.NewSystemClock(cfg.BusinessTimezone)

	// ======================================================
	// Cache de disponibilidade: Redis ou memória + cron
	// ======================================================
	var availabilityCache domain.AvailabilityCache
	sched := cron.New(cron.WithLocation(clock.Location()))

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			zlog.Fatal("redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		availabilityCache = cache.NewRedisAvailabilityCache(client, cfg.AvailabilityTTL)
		zlog.Info("availability cache: redis")
	} else {
		memory := cache.NewMemoryAvailabilityCache(cfg.AvailabilityTTL)
		if err := memory.ScheduleSweep(sched, cfg.CacheSweepSchedule, zlog); err != nil {
			zlog.Fatal("cache sweep schedule", zap.Error(err))
		}
		availabilityCache = memory
		zlog.Info("availability cache: memory")
	}
	sched.Start()

	auditDispatcher := audit.NewDispatcher(audit.New(db), zlog)

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:    db,
		Cfg:   cfg,
		Log:   zlog,
		Cache: availabilityCache,
		Audit: auditDispatcher,
		Clock: clock,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	<-sched.Stop().Done()
	auditDispatcher.Close()
	if err := shutdownTracing(shutdownCtx); err != nil {
		zlog.Warn("tracing shutdown", zap.Error(err))
	}
}
