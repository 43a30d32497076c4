package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/handler"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/middleware"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	AuthHandler      *handler.AuthHandler
	ProjectHandler   *handler.ProjectHandler
	DashboardHandler *handler.DashboardHandler
	PricingHandler   *handler.PricingHandler
	AdminHandler     *handler.AdminHandler
	AuthMiddleware   func(http.Handler) http.Handler
	AllowedOrigins   []string
}

// projectEditors may create, update and delete projects.
var projectEditors = []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-API-Key", "X-Token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// AUTHENTICATED routes; the middleware lets health, ready and login through
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		r.Route("/api/v1", func(r chi.Router) {
			if cfg.Handler != nil {
				r.Get("/health", cfg.Handler.Health)
				r.Get("/ready", cfg.Handler.Ready)
			}

			if cfg.AuthHandler != nil {
				r.Route("/auth", func(r chi.Router) {
					r.Post("/login", cfg.AuthHandler.Login)
					r.Post("/logout", cfg.AuthHandler.Logout)
					r.Post("/refresh", cfg.AuthHandler.Refresh)
				})
			}

			if cfg.DashboardHandler != nil {
				r.Route("/dashboard", func(r chi.Router) {
					r.Get("/stats", cfg.DashboardHandler.Stats)
					r.Get("/quick-access", cfg.DashboardHandler.QuickAccess)
				})
			}

			if cfg.ProjectHandler != nil {
				r.Route("/projetos", func(r chi.Router) {
					r.Get("/", cfg.ProjectHandler.List)
					r.Get("/{id}", cfg.ProjectHandler.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRole(projectEditors...))
						r.Post("/", cfg.ProjectHandler.Create)
						r.Put("/{id}", cfg.ProjectHandler.Update)
						r.Delete("/{id}", cfg.ProjectHandler.Delete)
					})
				})
			}

			if cfg.PricingHandler != nil {
				r.Post("/move-cost/estimate", cfg.PricingHandler.Estimate)
			}

			if cfg.AdminHandler != nil {
				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin))
					r.Get("/stats", cfg.AdminHandler.GetStats)
					r.Post("/cache/invalidate", cfg.AdminHandler.InvalidateCache)
				})
			}
		})
	})

	return r
}
