package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/marewang/final-bnn/config"
	"github.com/marewang/final-bnn/internal/auth"
	"github.com/marewang/final-bnn/internal/db"
	"github.com/marewang/final-bnn/internal/handlers"
	"github.com/marewang/final-bnn/internal/services"
	"github.com/marewang/final-bnn/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
// A missing signing secret is a fatal configuration error here, not a
// runtime fallback; only ENV=dev gets the documented dev secret.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	signer, err := auth.NewSigner(cfg.Auth.Secret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("AUTH_SECRET is required: %w", err)
	}
	if cfg.Env == "dev" && cfg.Auth.Secret == config.DevSecret {
		slog.Warn("running with the dev signing secret; do not deploy this configuration")
	}

	hasher := auth.Hasher{AllowLegacyPlaintext: cfg.Auth.AllowLegacyPlaintext}
	if hasher.AllowLegacyPlaintext {
		slog.Warn("legacy plaintext password fallback is enabled; migrate stored credentials to scrypt")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	asnRepo := store.NewASNRepository(dbConn)

	userService := services.NewUserService(userRepo)
	asnService := services.NewASNService(asnRepo)
	reminderService := services.NewReminderService(asnRepo)

	sessionMiddleware := handlers.RequireSession(signer)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, signer, hasher)
	})
	router.Route("/asn", func(r chi.Router) {
		r.Use(sessionMiddleware)
		handlers.ASNRouter(r, asnService)
	})
	router.Route("/reminders", func(r chi.Router) {
		r.Use(sessionMiddleware)
		handlers.ReminderRouter(r, reminderService)
	})

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
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
