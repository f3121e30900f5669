// Package server provides the HTTP server and route table
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/infrastructure/config"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/handlers"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/internal/infrastructure/security"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// Handlers groups the handler sets mounted on the router
type Handlers struct {
	Auth         *handlers.AuthHandlers
	Recipes      *handlers.RecipeHandlers
	ShoppingList *handlers.ShoppingListHandlers
	Social       *handlers.SocialHandlers
	Allergies    *handlers.AllergyHandlers
	AI           *handlers.AIHandlers
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	auth *security.AuthService,
	users outbound.UserRepository,
	h Handlers,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}
	s.router = s.setupRouter(auth, users, h)
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return s
}

// Handler returns the configured router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter(auth *security.AuthService, users outbound.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := middleware.NewMetrics(registry)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.RateLimit(s.config.Server.RateLimitPerMin, s.config.Server.RateLimitBurst))
	r.Use(metrics.Instrument())
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.Auth.Signup)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(auth, users, s.logger))

			r.Get("/me", h.Auth.Me)
			r.Put("/me/password", h.Auth.ChangePassword)

			r.Post("/recipes", h.Recipes.Create)
			r.Get("/recipes", h.Recipes.List)
			r.Post("/recipes/generate", h.AI.Generate)
			r.Get("/recipes/{id}", h.Recipes.Get)
			r.Put("/recipes/{id}", h.Recipes.Update)
			r.Delete("/recipes/{id}", h.Recipes.Delete)

			r.Get("/shopping-list", h.ShoppingList.List)
			r.Put("/shopping-list", h.ShoppingList.Replace)
			r.Get("/shopping-list/export", h.ShoppingList.Export)
			r.Post("/shopping-list/recipes/{recipeID}", h.ShoppingList.AddRecipe)

			r.Post("/posts", h.Social.Publish)
			r.Get("/posts", h.Social.Feed)
			r.Post("/posts/{id}/like", h.Social.Like)
			r.Post("/posts/{id}/unlike", h.Social.Unlike)
			r.Post("/posts/{id}/comments", h.Social.Comment)
			r.Get("/posts/{id}/comments", h.Social.ListComments)

			r.Post("/bookmarks", h.Social.Bookmark)
			r.Get("/bookmarks", h.Social.ListBookmarks)

			r.Post("/allergies", h.Allergies.Add)
			r.Get("/allergies", h.Allergies.List)
			r.Delete("/allergies/{id}", h.Allergies.Delete)
		})
	})

	return r
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","version":%q}`, s.config.App.Version)
}

// Start begins listening and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
