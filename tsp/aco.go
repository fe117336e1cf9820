package tsp

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/katalvlaran/tspcompare/matrix"
)

// Default colony constants.
const (
	DefaultEvaporation      = 0.1
	DefaultAlpha            = 1.0
	DefaultBeta             = 2.0
	DefaultEpsilon          = 1e-10
	DefaultInitialPheromone = 1.0
)

// ACOConfig parameterizes an ant colony.
type ACOConfig struct {
	// Ants is the number of tours constructed per round (≥ 1).
	Ants int

	// Iterations is the number of rounds (≥ 0). Zero rounds produce no tour.
	Iterations int

	// Evaporation is the fraction of every trail removed per round, in [0,1).
	Evaporation float64

	// Weighting controls the transition rule.
	Weighting Weighting

	// InitialPheromone seeds every trail entry (> 0).
	InitialPheromone float64

	// Workers bounds the goroutines constructing tours within a round.
	// Values ≤ 1 construct sequentially. Results do not depend on Workers.
	Workers int
}

// DefaultACOConfig returns the standard colony: ρ=0.1, α=1, β=2, ε=1e-10,
// all trails starting at 1, sequential construction.
func DefaultACOConfig(numAnts, iterations int) ACOConfig {
	return ACOConfig{
		Ants:        numAnts,
		Iterations:  iterations,
		Evaporation: DefaultEvaporation,
		Weighting: Weighting{
			Alpha:   DefaultAlpha,
			Beta:    DefaultBeta,
			Epsilon: DefaultEpsilon,
		},
		InitialPheromone: DefaultInitialPheromone,
		Workers:          1,
	}
}

// Validate reports the first out-of-range field as ErrInvalidParameter.
func (c ACOConfig) Validate() error {
	if c.Ants < 1 {
		return fmt.Errorf("aco: ants=%d: %w", c.Ants, ErrInvalidParameter)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("aco: iterations=%d: %w", c.Iterations, ErrInvalidParameter)
	}
	if !finite(c.Evaporation) || c.Evaporation < 0 || c.Evaporation >= 1 {
		return fmt.Errorf("aco: evaporation=%v: %w", c.Evaporation, ErrInvalidParameter)
	}
	if !finite(c.InitialPheromone) || c.InitialPheromone <= 0 {
		return fmt.Errorf("aco: initial pheromone=%v: %w", c.InitialPheromone, ErrInvalidParameter)
	}
	if err := c.Weighting.validate(); err != nil {
		return fmt.Errorf("aco: %w", err)
	}
	return nil
}

// ACOResult is the outcome of AntColony.Solve.
type ACOResult struct {
	TSResult

	// Computed is false when no round ran (Iterations == 0).
	Computed bool

	// BestIteration is the 0-based round that produced Tour.
	BestIteration int

	// Evaluations counts the tours constructed and measured.
	Evaluations int
}

// AntColony is a single-use ant colony optimizer over a fixed distance
// matrix. Build it with NewAntColony and call Solve once.
type AntColony struct {
	cfg   ACOConfig
	n     int
	rows  [][]float64
	field *PheromoneField
	ants  []*antWorkspace
}

// NewAntColony validates dist and cfg and prepares the colony. Each ant gets
// its own RNG stream derived from rng, so a given seed yields the same result
// for any Workers value. A nil rng falls back to the default seed.
//
// Errors: ErrInvalidParameter (bad config or distance matrix).
//
// Complexity: O(n² + Ants·n).
func NewAntColony(dist *matrix.Dense, cfg ACOConfig, rng *rand.Rand) (*AntColony, error) {
	// Stage 1 - validate before any allocation.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewAntColony: %w", err)
	}
	n, rows, err := validateDistance(dist)
	if err != nil {
		return nil, fmt.Errorf("NewAntColony: %w", err)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	// Stage 2 - shared trail state and per-ant workspaces.
	field, err := NewPheromoneField(n, cfg.InitialPheromone)
	if err != nil {
		return nil, fmt.Errorf("NewAntColony: %w", err)
	}
	ws := make([]*antWorkspace, cfg.Ants)
	var k int
	for k = 0; k < cfg.Ants; k++ {
		ws[k] = newAntWorkspace(n, deriveRNG(rng, uint64(k)))
	}

	return &AntColony{cfg: cfg, n: n, rows: rows, field: field, ants: ws}, nil
}

// Pheromones exposes the colony's trail field.
func (c *AntColony) Pheromones() *PheromoneField { return c.field }

// Solve runs cfg.Iterations rounds. Each round constructs every ant's tour,
// measures them in ant order keeping the first strictly shorter tour as the
// global best, then evaporates and deposits 1/L along every ant's tour
// (skipped for L == 0). The best tour is returned rotated to begin at city 0.
//
// Cancellation is checked between rounds; on cancel Solve returns ctx.Err().
//
// Errors: ErrComputationOverflow from tour construction, context errors.
//
// Complexity: O(Iterations · Ants · n²).
func (c *AntColony) Solve(ctx context.Context) (ACOResult, error) {
	if c.cfg.Iterations == 0 {
		return ACOResult{}, nil
	}

	var pool *ants.Pool
	if c.cfg.Workers > 1 && len(c.ants) > 1 {
		var err error
		pool, err = ants.NewPool(c.cfg.Workers)
		if err != nil {
			return ACOResult{}, fmt.Errorf("aco: worker pool: %w", err)
		}
		defer pool.Release()
	}

	var (
		best    = ACOResult{Computed: true}
		found   bool
		iter, k int
		ws      *antWorkspace
		err     error
	)
	best.Tour = make([]int, c.n)

	for iter = 0; iter < c.cfg.Iterations; iter++ {
		if err = ctx.Err(); err != nil {
			return ACOResult{}, err
		}

		// Stage 1 - construct all tours.
		if err = c.constructRound(pool); err != nil {
			return ACOResult{}, err
		}

		// Stage 2 - evaluate in ant order; strict < keeps the earliest best.
		for k = 0; k < len(c.ants); k++ {
			ws = c.ants[k]
			ws.length = cycleLength(c.rows, ws.tour)
			best.Evaluations++
			if !found || ws.length < best.Length {
				found = true
				copy(best.Tour, ws.tour)
				best.Length = ws.length
				best.BestIteration = iter
			}
		}

		// Stage 3 - single-writer pheromone update.
		if err = c.field.Evaporate(c.cfg.Evaporation); err != nil {
			return ACOResult{}, fmt.Errorf("aco: %w", err)
		}
		for k = 0; k < len(c.ants); k++ {
			ws = c.ants[k]
			if ws.length <= 0 {
				continue
			}
			if err = c.field.Deposit(ws.tour, 1/ws.length); err != nil {
				return ACOResult{}, fmt.Errorf("aco: %w", err)
			}
		}
	}

	// Stage 4 - report the cycle from city 0, like the other solvers.
	if best.Tour, err = RotateToStart(best.Tour, 0); err != nil {
		return ACOResult{}, fmt.Errorf("aco: %w", err)
	}
	return best, nil
}

// constructRound fills every ant's tour, on the pool when one is given.
// The WaitGroup is the round barrier.
func (c *AntColony) constructRound(pool *ants.Pool) error {
	var k int
	if pool == nil {
		for k = 0; k < len(c.ants); k++ {
			if err := c.field.constructTour(c.rows, c.cfg.Weighting, c.ants[k]); err != nil {
				return fmt.Errorf("aco: ant %d: %w", k, err)
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	for k = 0; k < len(c.ants); k++ {
		ws := c.ants[k]
		ws.err = nil
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			ws.err = c.field.constructTour(c.rows, c.cfg.Weighting, ws)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("aco: submit ant %d: %w", k, err)
		}
	}
	wg.Wait()

	for k = 0; k < len(c.ants); k++ {
		if c.ants[k].err != nil {
			return fmt.Errorf("aco: ant %d: %w", k, c.ants[k].err)
		}
	}
	return nil
}
