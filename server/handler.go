package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/tspcompare/config"
	"github.com/katalvlaran/tspcompare/engine"
	"github.com/katalvlaran/tspcompare/tsp"
)

// runRequest is the POST /run_aco body. Pointers tell a missing field apart
// from an explicit zero.
type runRequest struct {
	NumCities     *int   `json:"num_cities" binding:"required"`
	NumAnts       *int   `json:"num_ants" binding:"required"`
	NumIterations *int   `json:"num_iterations" binding:"required"`
	Seed          *int64 `json:"seed"`
}

// Handler serves the comparison endpoint.
type Handler struct {
	engine  *engine.Engine
	limits  config.EngineConfig
	timeout time.Duration
	logger  *slog.Logger
}

// NewHandler wires the engine with per-request limits.
func NewHandler(eng *engine.Engine, limits config.EngineConfig, timeout time.Duration, logger *slog.Logger) *Handler {
	return &Handler{engine: eng, limits: limits, timeout: timeout, logger: logger}
}

// RunACO handles POST /run_aco: it runs one comparison on fresh random
// cities and returns the report. Invalid input is a 400.
func (h *Handler) RunACO(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	p := engine.Params{
		NumCities:       *req.NumCities,
		NumAnts:         *req.NumAnts,
		NumIterations:   *req.NumIterations,
		ExhaustiveLimit: h.limits.ExhaustiveLimit,
		Workers:         h.limits.Workers,
	}
	if req.Seed != nil {
		p.Seed = *req.Seed
	} else {
		p.Seed = randomSeed()
	}
	if err := h.checkLimits(p); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rep, err := h.engine.Run(ctx, p)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, rep)
	case errors.Is(err, tsp.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, errorBody("comparison timed out"))
	default:
		h.logger.ErrorContext(ctx, "run_aco failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
}

// checkLimits enforces the per-request caps the engine does not know about.
func (h *Handler) checkLimits(p engine.Params) error {
	if h.limits.MaxAnts > 0 && p.NumAnts > h.limits.MaxAnts {
		return fmt.Errorf("num_ants=%d exceeds %d: %w", p.NumAnts, h.limits.MaxAnts, tsp.ErrInvalidParameter)
	}
	if h.limits.MaxIterations > 0 && p.NumIterations > h.limits.MaxIterations {
		return fmt.Errorf("num_iterations=%d exceeds %d: %w", p.NumIterations, h.limits.MaxIterations, tsp.ErrInvalidParameter)
	}
	return nil
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// randomSeed picks a non-zero seed so that every request without one gets
// new cities; the seed is echoed back for replay.
func randomSeed() int64 {
	for {
		if s := rand.Int63(); s != 0 {
			return s
		}
	}
}
