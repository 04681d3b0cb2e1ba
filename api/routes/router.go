package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/framehouse-studio/booking-backend/api/controllers"
	webhookcontrollers "github.com/framehouse-studio/booking-backend/api/controllers/webhooks"
	"github.com/framehouse-studio/booking-backend/api/middleware"
	"github.com/framehouse-studio/booking-backend/internal/auth"
	"github.com/framehouse-studio/booking-backend/internal/bookings"
	"github.com/framehouse-studio/booking-backend/internal/catalog"
	"github.com/framehouse-studio/booking-backend/internal/payments"
	"github.com/framehouse-studio/booking-backend/internal/quotes"
	"github.com/framehouse-studio/booking-backend/internal/reporting"
	stripewebhook "github.com/framehouse-studio/booking-backend/internal/webhooks/stripe"
	"github.com/framehouse-studio/booking-backend/pkg/auth/session"
	"github.com/framehouse-studio/booking-backend/pkg/config"
	"github.com/framehouse-studio/booking-backend/pkg/db"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
	"github.com/framehouse-studio/booking-backend/pkg/redis"
	pkgstripe "github.com/framehouse-studio/booking-backend/pkg/stripe"
)

// Deps carries everything the HTTP surface is wired against.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  *prometheus.Registry

	Auth      auth.Service
	Catalog   catalog.Service
	Quotes    quotes.Service
	Payments  payments.Service
	Bookings  bookings.Service
	Reporting reporting.Service

	StripeWebhooks *stripewebhook.Service
	StripeVerifier *pkgstripe.Client
	StripeGuard    *stripewebhook.EventGuard
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["database"] = deps.DB
	}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, readiness, logg))
	})

	if cfg.Metrics.Enabled && deps.Metrics != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, metrics.Handler(deps.Metrics))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/packages", controllers.ListPackages(deps.Catalog, logg))
		r.Get("/addons", controllers.ListAddons(deps.Catalog, logg))
		r.Get("/venues", controllers.ListVenues(deps.Catalog, logg))
	})
	r.Get("/api/v1/calendar/availability", controllers.CalendarAvailability(deps.Bookings, logg))

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(webhookService(deps), verifier(deps), guard(deps), logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AdminAuthLogin(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Post("/quotes", controllers.CreateQuote(deps.Quotes, logg))
		r.Get("/quotes", controllers.ListQuotes(deps.Quotes, logg))
		r.Get("/quotes/{quoteId}", controllers.GetQuote(deps.Quotes, logg))
		r.With(middleware.Idempotency(deps.Redis, cfg.Eventing.HTTPIdempotencyTTL, logg)).
			Post("/payments/intents", controllers.CreatePaymentIntent(deps.Payments, logg))
		r.Get("/events", controllers.ListMyEvents(deps.Bookings, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

		r.Get("/quotes", controllers.ListQuotes(deps.Quotes, logg))
		r.Post("/quotes/{quoteId}/decision", controllers.AdminDecideQuote(deps.Quotes, logg))
		r.Get("/events", controllers.AdminListEvents(deps.Bookings, logg))
		r.Get("/reporting/dashboard", controllers.AdminDashboard(deps.Reporting, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/packages", controllers.AdminCreatePackage(deps.Catalog, logg))
			r.Patch("/packages/{packageId}", controllers.AdminUpdatePackage(deps.Catalog, logg))
			r.Post("/addons", controllers.AdminCreateAddon(deps.Catalog, logg))
			r.Patch("/addons/{addonId}", controllers.AdminUpdateAddon(deps.Catalog, logg))
			r.Post("/venues", controllers.AdminCreateVenue(deps.Catalog, logg))
			r.Patch("/venues/{venueId}", controllers.AdminUpdateVenue(deps.Catalog, logg))
		})
	})

	return r
}

// The webhook controller treats a nil interface as "not configured"; typed nil
// pointers must not leak through.
func webhookService(deps Deps) webhookcontrollers.StripeWebhookService {
	if deps.StripeWebhooks == nil {
		return nil
	}
	return deps.StripeWebhooks
}

func verifier(deps Deps) webhookcontrollers.StripeVerifier {
	if deps.StripeVerifier == nil {
		return nil
	}
	return deps.StripeVerifier
}

func guard(deps Deps) webhookcontrollers.StripeEventGuard {
	if deps.StripeGuard == nil {
		return nil
	}
	return deps.StripeGuard
}
