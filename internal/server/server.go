// Package server assembles the development API server: an in-memory
// implementation of the UBUNTOO API used for local work and tests.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ubuntoo-net/ubuntoo/config"
	"github.com/ubuntoo-net/ubuntoo/internal/handlers"
	"github.com/ubuntoo-net/ubuntoo/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	store      *store.Memory
}

// NewRouter builds the full API router over the given store. The API
// lives under /api; /healthz answers at the root.
func NewRouter(st *store.Memory, jwtSecret string) *chi.Mux {
	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, st, jwtSecret)
		})
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Route("/users", func(r chi.Router) {
				handlers.UserRouter(r, st)
			})
			r.Route("/posts", func(r chi.Router) {
				handlers.PostRouter(r, st)
			})
			r.Route("/challenges", func(r chi.Router) {
				handlers.ChallengeRouter(r, st)
			})
			r.Route("/badges", func(r chi.Router) {
				handlers.BadgeRouter(r, st)
			})
		})
	})
	return router
}

// New constructs a Server with basic middleware and defaults.
func New(cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	st := store.NewMemory()
	router := NewRouter(st, cfg.JWTSecret)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		store:      st,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}
