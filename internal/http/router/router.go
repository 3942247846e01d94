package router

import (
	"encoding/json"
	"net/http"

	"github.com/abtweb/studio-api/internal/auth"
	"github.com/abtweb/studio-api/internal/config"
	"github.com/abtweb/studio-api/internal/http/handler"
	"github.com/abtweb/studio-api/internal/http/middleware"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	store            *recordstore.Store
	gate             *auth.Gate
	rateLimiter      *middleware.RateLimiter
	quoteHandler     *handler.QuoteHandler
	customerHandler  *handler.CustomerHandler
	projectHandler   *handler.ProjectHandler
	dashboardHandler *handler.DashboardHandler
	authHandler      *handler.AuthHandler
	settingsHandler  *handler.SettingsHandler
	exportHandler    *handler.ExportHandler
	seedHandler      *handler.SeedHandler
	catalogHandler   *handler.CatalogHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	store *recordstore.Store,
	gate *auth.Gate,
	rateLimiter *middleware.RateLimiter,
	quoteHandler *handler.QuoteHandler,
	customerHandler *handler.CustomerHandler,
	projectHandler *handler.ProjectHandler,
	dashboardHandler *handler.DashboardHandler,
	authHandler *handler.AuthHandler,
	settingsHandler *handler.SettingsHandler,
	exportHandler *handler.ExportHandler,
	seedHandler *handler.SeedHandler,
	catalogHandler *handler.CatalogHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		store:            store,
		gate:             gate,
		rateLimiter:      rateLimiter,
		quoteHandler:     quoteHandler,
		customerHandler:  customerHandler,
		projectHandler:   projectHandler,
		dashboardHandler: dashboardHandler,
		authHandler:      authHandler,
		settingsHandler:  settingsHandler,
		exportHandler:    exportHandler,
		seedHandler:      seedHandler,
		catalogHandler:   catalogHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Record store health check (readiness probe)
	r.Get("/health/store", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.store.Ping(r.Context()); err != nil {
			rt.logger.Error("Record store health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "recordstore",
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "recordstore",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (checkout and login)
		r.Post("/quotes", rt.quoteHandler.Create)
		r.Get("/packages", rt.catalogHandler.Catalog)
		r.Post("/auth/login", rt.authHandler.Login)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(rt.gate, rt.logger))

			r.Get("/auth/session", rt.authHandler.Session)
			r.Post("/auth/logout", rt.authHandler.Logout)

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", rt.quoteHandler.List)
				r.Get("/{id}", rt.quoteHandler.Get)
				r.Put("/{id}/status", rt.quoteHandler.UpdateStatus)
				r.Delete("/{id}", rt.quoteHandler.Delete)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Get("/stats", rt.customerHandler.Stats)
				r.Get("/{id}", rt.customerHandler.Get)
				r.Get("/{id}/quotes", rt.customerHandler.Quotes)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Post("/", rt.projectHandler.Create)
				r.Get("/candidates", rt.projectHandler.Candidates)
				r.Get("/{id}", rt.projectHandler.Get)
			})

			r.Get("/dashboard/metrics", rt.dashboardHandler.Metrics)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", rt.settingsHandler.Get)
				r.Put("/", rt.settingsHandler.Update)
				r.Post("/reset", rt.settingsHandler.Reset)
			})

			r.Route("/exports", func(r chi.Router) {
				r.Get("/quotes", rt.exportHandler.Quotes)
				r.Get("/customers", rt.exportHandler.Customers)
			})

			r.Route("/data", func(r chi.Router) {
				r.Post("/restore-samples", rt.seedHandler.Restore)
				r.Delete("/test-data", rt.seedHandler.RemoveTestData)
				r.Delete("/all", rt.seedHandler.ResetAll)
			})
		})
	})

	return r
}
