package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/agisfl/agisfl/internal/api/handlers"
	"github.com/agisfl/agisfl/internal/api/middleware"
	"github.com/agisfl/agisfl/internal/config"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/metrics"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Incident   *handlers.IncidentHandler
	Threat     *handlers.ThreatHandler
	System     *handlers.SystemHandler
	Insight    *handlers.InsightHandler
	AttackPath *handlers.AttackPathHandler
	Dashboard  *handlers.DashboardHandler
	FL         *handlers.FLHandler
	WS         *handlers.WSHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks and Prometheus metrics
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Auth endpoints
		r.Post("/api/auth/register", h.Auth.Register)
		r.Post("/api/auth/login", h.Auth.Login)
		r.Post("/api/auth/refresh", h.Auth.Refresh)

		// Aliases for frontend compatibility
		r.Post("/api/login", h.Auth.Login)
		r.Post("/api/register", h.Auth.Register)
	})

	// Protected routes (require authentication, or demo mode)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.DemoMode))

		// Auth
		r.Get("/api/auth/me", h.Auth.Me)

		// WebSocket dashboard feed
		r.Get("/ws", h.WS.Serve)

		// Incidents
		r.Route("/api/incidents", func(r chi.Router) {
			r.Get("/", h.Incident.List)
			r.Post("/", h.Incident.Create)
			r.Get("/{id}", h.Incident.Get)
			r.Patch("/{id}", h.Incident.Patch)
		})

		// Threats
		r.Route("/api/threats", func(r chi.Router) {
			r.Get("/", h.Threat.List)
			r.Post("/", h.Threat.Create)
			r.Get("/{id}", h.Threat.Get)
			r.Post("/{id}/mitigate", h.Threat.Mitigate)
		})

		// System telemetry
		r.Route("/api/system", func(r chi.Router) {
			r.Get("/metrics", h.System.Metrics)
			r.Get("/health", h.System.Health)
		})

		// AI insights
		r.Route("/api/ai/insights", func(r chi.Router) {
			r.Get("/", h.Insight.List)
			r.Post("/{id}/dismiss", h.Insight.Dismiss)
		})

		// Attack paths
		r.Route("/api/attack-paths", func(r chi.Router) {
			r.Get("/", h.AttackPath.List)
			r.Get("/{id}", h.AttackPath.Get)
		})

		// Dashboard aggregates
		r.Get("/api/dashboard/metrics", h.Dashboard.Metrics)

		// Federated learning coordinator
		r.Route("/api/fl", func(r chi.Router) {
			r.Get("/status", h.FL.Status)
			r.Get("/nodes", h.FL.Nodes)
			r.Get("/performance", h.FL.Performance)
			r.Post("/start", h.FL.Start)
			r.Post("/pause", h.FL.Pause)
			r.Post("/reset", h.FL.Reset)
		})
	})

	return r
}
