// Package engine runs one full comparison: it places seeded random cities,
// builds the distance matrix once, runs ACO, nearest neighbour and exhaustive
// search concurrently over it and picks the shortest tour.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tspcompare/tsp"
)

// Observer receives solver and run outcomes. Implementations must be safe for
// concurrent use; ObserveSolver is called from the solver goroutines.
type Observer interface {
	ObserveSolver(method tsp.Method, d time.Duration, computed bool, err error)
	ObserveRun(r *Report)
}

type nopObserver struct{}

func (nopObserver) ObserveSolver(tsp.Method, time.Duration, bool, error) {}
func (nopObserver) ObserveRun(*Report)                                    {}

// Engine is safe for concurrent Run calls; runs share no mutable state.
type Engine struct {
	logger    *slog.Logger
	observer  Observer
	maxCities int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver installs an outcome observer such as the metrics collector.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithMaxCities rejects runs above n cities. 0 disables the cap.
func WithMaxCities(n int) Option {
	return func(e *Engine) { e.maxCities = n }
}

// New returns an Engine with the given options applied.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one comparison.
//
// Parameters are validated before anything is allocated. The three solvers
// share the read-only distance matrix; the first solver error cancels the
// others and is returned. Exhaustive search above its limit and a colony with
// zero iterations are reported as not computed rather than as errors.
//
// Errors: tsp.ErrInvalidParameter, tsp.ErrComputationOverflow, ctx errors.
func (e *Engine) Run(ctx context.Context, p Params) (*Report, error) {
	// Stage 1 - validate.
	if err := p.Validate(e.maxCities); err != nil {
		return nil, err
	}

	// Stage 2 - instance. The colony derives its ant streams from the same
	// RNG right after the cities, so one seed fixes the whole run. The report
	// echoes the resolved seed.
	p.Seed = tsp.ResolveSeed(p.Seed)
	rng := tsp.NewRand(p.Seed)
	cities, err := tsp.RandomCities(p.NumCities, rng)
	if err != nil {
		return nil, err
	}
	dist, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		return nil, err
	}
	colony, err := tsp.NewAntColony(dist, p.acoConfig(), rng)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Seed:            p.Seed,
		Cities:          cities,
		ACO:             tsp.Candidate{Method: tsp.MethodACO},
		NearestNeighbor: tsp.Candidate{Method: tsp.MethodNearestNeighbor},
		Exhaustive:      tsp.Candidate{Method: tsp.MethodExhaustive},
		Durations:       make(map[tsp.Method]time.Duration, 3),
	}
	var mu sync.Mutex
	timed := func(m tsp.Method, start time.Time, computed bool, err error) {
		d := time.Since(start)
		mu.Lock()
		rep.Durations[m] = d
		mu.Unlock()
		e.observer.ObserveSolver(m, d, computed, err)
	}

	// Stage 3 - fan out. Each goroutine writes only its own candidate.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		res, err := colony.Solve(gctx)
		timed(tsp.MethodACO, start, res.Computed, err)
		if err != nil {
			return fmt.Errorf("%s: %w", tsp.MethodACO, err)
		}
		rep.ACO.TSResult, rep.ACO.Computed = res.TSResult, res.Computed
		rep.ACOBestIteration, rep.ACOEvaluations = res.BestIteration, res.Evaluations
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		res, err := tsp.NearestNeighbor(dist, 0)
		timed(tsp.MethodNearestNeighbor, start, err == nil, err)
		if err != nil {
			return fmt.Errorf("%s: %w", tsp.MethodNearestNeighbor, err)
		}
		rep.NearestNeighbor.TSResult, rep.NearestNeighbor.Computed = res, true
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		res, err := tsp.Exhaustive(gctx, dist, p.ExhaustiveLimit)
		if errors.Is(err, tsp.ErrInstanceTooLarge) {
			timed(tsp.MethodExhaustive, start, false, nil)
			return nil
		}
		timed(tsp.MethodExhaustive, start, err == nil, err)
		if err != nil {
			return fmt.Errorf("%s: %w", tsp.MethodExhaustive, err)
		}
		rep.Exhaustive.TSResult, rep.Exhaustive.Computed = res, true
		return nil
	})
	if err = g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "tsp run failed", "cities", p.NumCities, "seed", p.Seed, "error", err)
		return nil, err
	}

	// Stage 4 - aggregate.
	if rep.Shortest, err = tsp.SelectBest(rep.Candidates()...); err != nil {
		return nil, err
	}
	e.observer.ObserveRun(rep)
	e.logger.InfoContext(ctx, "tsp run completed",
		"cities", p.NumCities,
		"ants", p.NumAnts,
		"iterations", p.NumIterations,
		"seed", p.Seed,
		"shortest_method", rep.Shortest.Method,
		"shortest_length", rep.Shortest.Length,
		"exhaustive_computed", rep.Exhaustive.Computed,
	)
	e.logger.DebugContext(ctx, "tsp shortest tour", "tour", tsp.DebugString(rep.Shortest.Tour))
	return rep, nil
}
