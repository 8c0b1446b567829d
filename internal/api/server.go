// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/silo/internal/auth"
	"github.com/taibuivan/silo/internal/core/comment"
	"github.com/taibuivan/silo/internal/core/document"
	"github.com/taibuivan/silo/internal/core/item"
	"github.com/taibuivan/silo/internal/core/storage"
	"github.com/taibuivan/silo/internal/core/tag"
	"github.com/taibuivan/silo/internal/platform/config"
	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/middleware"
	"github.com/taibuivan/silo/internal/users/role"
	"github.com/taibuivan/silo/internal/users/user"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, token refresh, and logout.
	Auth *auth.Handler

	// User manages local accounts and role assignments.
	User *user.Handler

	// Role manages roles and their permission grants.
	Role *role.Handler

	// Item handles the inventory catalogue and item types.
	Item *item.Handler

	// Tag manages the item label vocabulary.
	Tag *tag.Handler

	// Storage manages rooms, pools, storage types, furniture, and areas.
	Storage *storage.Handler

	// Comment handles per-item discussion threads.
	Comment *comment.Handler

	// Document handles file uploads and downloads.
	Document *document.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// CORS runs before authentication so pre-flight OPTIONS requests, which
// never carry a bearer token, are answered instead of rejected.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	resolver middleware.PrincipalResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Health probes for container orchestration, registered outside the
	// authenticated group: orchestrators probe without credentials.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under the versioned prefix.
	// Permission grants and public-path patterns are matched against
	// these paths with the prefix stripped.
	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticate(verifier, resolver, cfg.PublicPaths))

		authed.Route(constants.APIPrefix, func(api chi.Router) {
			api.Get("/version", versionHandler)
			api.Mount("/auth", h.Auth.Routes())

			api.Mount("/user", h.User.Routes())
			api.Mount("/role", h.Role.Routes())

			api.Mount("/item", h.Item.Routes())
			api.Mount("/item_type", h.Item.TypeRoutes())
			api.Mount("/tag", h.Tag.Routes())

			api.Mount("/room", h.Storage.RoomRoutes())
			api.Mount("/pool", h.Storage.PoolRoutes())
			api.Mount("/storage_type", h.Storage.StorageTypeRoutes())
			api.Mount("/storage_furniture", h.Storage.FurnitureRoutes())
			api.Mount("/storage_area", h.Storage.AreaRoutes())

			api.Mount("/comment", h.Comment.Routes())
			api.Mount("/document", h.Document.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
