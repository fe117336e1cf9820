package tsp

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/tspcompare/matrix"
)

// MinPheromone is the floor applied on evaporation. Unused edges decay
// geometrically; the floor keeps every entry strictly positive and normal.
const MinPheromone = 1e-300

// Weighting holds the exponents of the transition rule
//
//	w(i→j) = τ[i][j]^Alpha · (1 / (D[i][j] + Epsilon))^Beta
//
// Epsilon keeps the heuristic finite for coincident cities.
type Weighting struct {
	Alpha   float64
	Beta    float64
	Epsilon float64
}

func (w Weighting) validate() error {
	if !finite(w.Alpha) || w.Alpha < 0 {
		return fmt.Errorf("weighting: alpha=%v: %w", w.Alpha, ErrInvalidParameter)
	}
	if !finite(w.Beta) || w.Beta < 0 {
		return fmt.Errorf("weighting: beta=%v: %w", w.Beta, ErrInvalidParameter)
	}
	if !finite(w.Epsilon) || w.Epsilon <= 0 {
		return fmt.Errorf("weighting: epsilon=%v: %w", w.Epsilon, ErrInvalidParameter)
	}
	return nil
}

// PheromoneField is the n×n trail-intensity matrix of an ant colony.
//
// Readers (Probabilities, At, Snapshot) take the read lock; Evaporate and
// Deposit take the write lock. Entries are strictly positive at all times.
type PheromoneField struct {
	mu  sync.RWMutex
	tau *matrix.Dense
	n   int
}

// NewPheromoneField returns an n×n field with every entry set to initial.
//
// Errors: ErrInvalidParameter when n < 1 or initial is not finite and positive.
//
// Complexity: O(n²).
func NewPheromoneField(n int, initial float64) (*PheromoneField, error) {
	if n < 1 {
		return nil, fmt.Errorf("NewPheromoneField: n=%d: %w", n, ErrInvalidParameter)
	}
	if !finite(initial) || initial <= 0 {
		return nil, fmt.Errorf("NewPheromoneField: initial=%v: %w", initial, ErrInvalidParameter)
	}
	tau, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}
	if err = tau.Fill(initial); err != nil {
		return nil, err
	}

	return &PheromoneField{tau: tau, n: n}, nil
}

// Size returns n.
func (p *PheromoneField) Size() int { return p.n }

// At returns τ[i][j].
func (p *PheromoneField) At(i, j int) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.tau.At(i, j)
}

// Snapshot returns an independent copy of the current trail matrix.
func (p *PheromoneField) Snapshot() *matrix.Dense {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.tau.CloneDense()
}

// Evaporate multiplies every entry by (1-rate). Entries never drop below
// MinPheromone: a product smaller than the floor is stored as MinPheromone,
// so the field stays strictly positive after any number of rounds.
//
// Errors: ErrInvalidParameter unless 0 ≤ rate < 1.
//
// Complexity: O(n²).
func (p *PheromoneField) Evaporate(rate float64) error {
	if !finite(rate) || rate < 0 || rate >= 1 {
		return fmt.Errorf("Evaporate: rate=%v: %w", rate, ErrInvalidParameter)
	}
	keep := 1 - rate

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.tau.Apply(func(_, _ int, v float64) float64 {
		return math.Max(v*keep, MinPheromone)
	})
}

// Deposit adds amount to both directions of every edge of the closed tour,
// wrap edge included.
//
// Errors:
//   - ErrInvalidParameter when amount is not finite and positive,
//   - ErrInvalidTour when tour is not a permutation of 0..n-1.
//
// Complexity: O(n).
func (p *PheromoneField) Deposit(tour []int, amount float64) error {
	if !finite(amount) || amount <= 0 {
		return fmt.Errorf("Deposit: amount=%v: %w", amount, ErrInvalidParameter)
	}
	if err := ValidatePermutation(tour, p.n); err != nil {
		return fmt.Errorf("Deposit: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		i, a, b int
		err     error
	)
	for i = 0; i < p.n; i++ {
		a = tour[i]
		b = tour[(i+1)%p.n]
		if err = p.tau.Add(a, b, amount); err != nil {
			return fmt.Errorf("Deposit: %w", err)
		}
		if a == b {
			continue
		}
		if err = p.tau.Add(b, a, amount); err != nil {
			return fmt.Errorf("Deposit: %w", err)
		}
	}
	return nil
}

// Probabilities writes into dst the transition distribution out of current.
// Visited cities get probability 0; the rest are proportional to their
// Weighting score and sum to 1.
//
// Errors:
//   - ErrInvalidParameter for a bad weighting, out-of-range current or
//     mismatched slice lengths,
//   - ErrComputationOverflow when the unvisited mass is zero or not finite.
//
// Complexity: O(n).
func (p *PheromoneField) Probabilities(dist *matrix.Dense, w Weighting, current int, visited []bool, dst []float64) error {
	if dist == nil || dist.Rows() != p.n || dist.Cols() != p.n {
		return fmt.Errorf("Probabilities: distance shape: %w", ErrInvalidParameter)
	}
	if err := w.validate(); err != nil {
		return fmt.Errorf("Probabilities: %w", err)
	}
	if current < 0 || current >= p.n || len(visited) != p.n || len(dst) != p.n {
		return fmt.Errorf("Probabilities: current=%d len(visited)=%d len(dst)=%d: %w",
			current, len(visited), len(dst), ErrInvalidParameter)
	}
	row, err := dist.Row(current)
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.probabilities(row, w, current, visited, dst)
}

// probabilities is the unchecked kernel behind Probabilities.
// The caller holds at least the read lock.
func (p *PheromoneField) probabilities(distRow []float64, w Weighting, current int, visited []bool, dst []float64) error {
	tauRow, err := p.tau.Row(current)
	if err != nil {
		return err
	}

	var j int
	for j = 0; j < p.n; j++ {
		if visited[j] {
			dst[j] = 0
			continue
		}
		dst[j] = fastPow(tauRow[j], w.Alpha) * fastPow(1/(distRow[j]+w.Epsilon), w.Beta)
	}

	sum := floats.Sum(dst)
	if sum <= 0 || !finite(sum) {
		return fmt.Errorf("probabilities from %d: sum=%v: %w", current, sum, ErrComputationOverflow)
	}
	floats.Scale(1/sum, dst)

	return nil
}

// fastPow skips math.Pow for the exponents the default weighting uses.
func fastPow(x, p float64) float64 {
	switch p {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	}
	return math.Pow(x, p)
}
