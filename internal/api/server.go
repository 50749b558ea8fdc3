// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the galleryinfo HTTP surface.

Routes:

	GET    /health                                     liveness
	GET    /ready                                      postgres + redis
	GET    /metrics                                    prometheus
	GET    /api/v1/galleries                           paginated list
	GET    /api/v1/galleries/{id}                      one stored record
	PUT    /api/v1/galleries/{id}                      admin import
	GET    /api/v1/galleries/{id}/comicinfo.xml        rendered document
	DELETE /api/v1/galleries/{id}/comicinfo.xml        admin cache drop
	POST   /api/v1/comicinfo                           stateless conversion

Every /api/v1 request passes through [middleware.Authenticate]; only the import
and cache-drop routes require a token.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yomira-galleryinfo/internal/core/comicinfo"
	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/config"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/middleware"
)

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     chi.Router
	log        *slog.Logger
}

// Handlers carries the already-constructed endpoint handlers into [NewServer].
// Metrics may be nil, which leaves /metrics unrouted.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Metrics   http.Handler
	Gallery   *hentai.Handler
	ComicInfo *comicinfo.Handler
}

/*
NewServer builds the router and the server around it.

Parameters:
  - context: lifetime of background middleware work (rate limiter sweeps)
  - cfg: listen port and CORS policy
  - log: base logger enriched per request
  - verifier: checks bearer tokens on /api/v1
  - h: endpoint handlers
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(context),
		middleware.PanicRecovery(log),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.Authenticate(verifier))
		h.Gallery.RegisterRoutes(v1)
		h.ComicInfo.RegisterRoutes(v1)
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the routed handler without a listener, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server stops. [http.ErrServerClosed] follows a Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownContext)
}
