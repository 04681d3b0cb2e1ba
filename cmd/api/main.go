package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/framehouse-studio/booking-backend/api/routes"
	"github.com/framehouse-studio/booking-backend/internal/auth"
	"github.com/framehouse-studio/booking-backend/internal/bookings"
	"github.com/framehouse-studio/booking-backend/internal/catalog"
	"github.com/framehouse-studio/booking-backend/internal/payments"
	"github.com/framehouse-studio/booking-backend/internal/quotes"
	"github.com/framehouse-studio/booking-backend/internal/reporting"
	"github.com/framehouse-studio/booking-backend/internal/users"
	stripewebhook "github.com/framehouse-studio/booking-backend/internal/webhooks/stripe"
	"github.com/framehouse-studio/booking-backend/pkg/auth/session"
	"github.com/framehouse-studio/booking-backend/pkg/config"
	"github.com/framehouse-studio/booking-backend/pkg/db"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
	"github.com/framehouse-studio/booking-backend/pkg/migrate"
	"github.com/framehouse-studio/booking-backend/pkg/outbox"
	"github.com/framehouse-studio/booking-backend/pkg/redis"
	"github.com/framehouse-studio/booking-backend/pkg/security"
	pkgstripe "github.com/framehouse-studio/booking-backend/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx := context.Background()

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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	stripeClient, err := pkgstripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)
	emitter := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	userRepo := users.NewRepository(dbClient.DB())
	quoteRepo := quotes.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		Users:          userRepo,
		Hasher:         security.NewHasher(cfg.Password),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		Logger:         logg,
	})
	if err != nil {
		return err
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Repo:           quoteRepo,
		Tx:             dbClient,
		Catalog:        catalogService,
		Customers:      userRepo,
		Outbox:         emitter,
		Metrics:        bookingMetrics,
		Logger:         logg,
		DepositPercent: cfg.Booking.DepositPercent,
	})
	if err != nil {
		return err
	}

	paymentService, err := payments.NewService(payments.ServiceParams{
		Quotes:         quoteRepo,
		Provider:       payments.NewStripeProvider(stripeClient),
		Metrics:        bookingMetrics,
		Logger:         logg,
		Currency:       cfg.Booking.Currency,
		DepositPercent: cfg.Booking.DepositPercent,
	})
	if err != nil {
		return err
	}

	bookingService, err := bookings.NewService(bookings.ServiceParams{
		Repo:          bookings.NewRepository(dbClient.DB()),
		Packages:      catalogService,
		SlotStartHour: cfg.Booking.SlotStartHour,
		SlotEndHour:   cfg.Booking.SlotEndHour,
	})
	if err != nil {
		return err
	}

	reportingService, err := reporting.NewService(reporting.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Quotes:            quoteRepo,
		Bookings:          bookingService,
		Outbox:            emitter,
		TransactionRunner: dbClient,
		Metrics:           bookingMetrics,
		Logger:            logg,
	})
	if err != nil {
		return err
	}

	webhookGuard, err := stripewebhook.NewEventGuard(redisClient, cfg.Eventing.WebhookIdempotencyTTL, stripewebhook.DefaultGuardScope)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Sessions:       sessionManager,
			Metrics:        registry,
			Auth:           authService,
			Catalog:        catalogService,
			Quotes:         quoteService,
			Payments:       paymentService,
			Bookings:       bookingService,
			Reporting:      reportingService,
			StripeWebhooks: webhookService,
			StripeVerifier: stripeClient,
			StripeGuard:    webhookGuard,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCtx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
