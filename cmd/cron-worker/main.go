package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/framehouse-studio/booking-backend/internal/cron"
	"github.com/framehouse-studio/booking-backend/pkg/config"
	"github.com/framehouse-studio/booking-backend/pkg/db"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
	"github.com/framehouse-studio/booking-backend/pkg/migrate"
	"github.com/framehouse-studio/booking-backend/pkg/outbox"
	"github.com/framehouse-studio/booking-backend/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single maintenance cycle and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg, *once); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(context.Background(), "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger, once bool) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": "cron-worker",
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("maintenance:"+cfg.App.Env), cfg.Maintenance.LockTTL)
	if err != nil {
		return err
	}

	retention, err := cron.NewOutboxRetentionJob(cron.OutboxRetentionJobParams{
		Logger:           logg,
		DB:               dbClient,
		Repository:       outbox.NewRepository(dbClient.DB()),
		RetentionDays:    cfg.Maintenance.OutboxRetentionDays,
		TerminalAttempts: cfg.Outbox.MaxAttempts,
	})
	if err != nil {
		return err
	}
	registry := cron.NewRegistry()
	if err := registry.Register(retention); err != nil {
		return err
	}

	metricsRegistry := metrics.NewRegistry()
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(metricsRegistry),
		Interval: cfg.Maintenance.Interval,
	})
	if err != nil {
		return err
	}

	if once {
		return service.RunOnce(ctx)
	}
	if cfg.Metrics.Enabled {
		serveMetrics(ctx, logg, ":"+cfg.App.Port, cfg.Metrics.Path, metricsRegistry)
	}
	logg.Info(ctx, "starting cron worker")
	return service.Run(ctx)
}

func serveMetrics(ctx context.Context, logg *logger.Logger, addr, path string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler(reg))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "metrics server stopped", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
