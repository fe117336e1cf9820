// Package server exposes the comparison engine over HTTP with gin.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/tspcompare/config"
	"github.com/katalvlaran/tspcompare/engine"
	"github.com/katalvlaran/tspcompare/metrics"
)

// NewRouter builds the gin engine with the middleware chain and routes:
// POST /run_aco, GET /metrics, GET /healthz.
func NewRouter(h *Handler, m *metrics.Metrics, logger *slog.Logger, maxBodyBytes int64) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger), HTTPMetrics(m))

	r.POST("/run_aco", MaxBodyBytes(maxBodyBytes), h.RunACO)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	return r
}

// Server runs the router on an http.Server with graceful shutdown.
type Server struct {
	srv    *http.Server
	cfg    config.ServerConfig
	logger *slog.Logger
}

// New assembles the handler, router and http.Server from cfg.
func New(cfg *config.Config, eng *engine.Engine, m *metrics.Metrics, logger *slog.Logger) *Server {
	h := NewHandler(eng, cfg.Engine, cfg.Server.RequestTimeout, logger)
	router := NewRouter(h, m, logger, cfg.Server.MaxBodyBytes)

	return &Server{
		srv: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		cfg:    cfg.Server,
		logger: logger,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start serves until ctx is cancelled, then shuts down within
// ShutdownTimeout. It blocks.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", "addr", s.cfg.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server stopping due to context cancellation")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
