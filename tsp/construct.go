package tsp

import (
	"math/rand"
)

// antWorkspace is one ant's private state: its RNG stream and the scratch
// buffers reused across rounds. A workspace is touched by one goroutine at a
// time.
type antWorkspace struct {
	rng     *rand.Rand
	tour    []int
	visited []bool
	probs   []float64
	length  float64
	err     error
}

func newAntWorkspace(n int, rng *rand.Rand) *antWorkspace {
	return &antWorkspace{
		rng:     rng,
		tour:    make([]int, n),
		visited: make([]bool, n),
		probs:   make([]float64, n),
	}
}

// constructTour builds one stochastic tour into ws.tour: a uniform random
// start, then n-1 roulette-wheel draws over the transition distribution.
// The field must not be written while tours are being constructed.
//
// Complexity: O(n²).
func (p *PheromoneField) constructTour(rows [][]float64, w Weighting, ws *antWorkspace) error {
	var (
		n       = p.n
		current int
		next    int
		step    int
		err     error
	)
	for step = 0; step < n; step++ {
		ws.visited[step] = false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	current = ws.rng.Intn(n)
	ws.tour[0] = current
	ws.visited[current] = true

	for step = 1; step < n; step++ {
		if err = p.probabilities(rows[current], w, current, ws.visited, ws.probs); err != nil {
			return err
		}
		next = sampleIndex(ws.probs, ws.visited, ws.rng)
		ws.tour[step] = next
		ws.visited[next] = true
		current = next
	}
	return nil
}

// sampleIndex draws an index from the normalized distribution probs by
// roulette wheel. Rounding can leave the cumulative sum a hair under 1; the
// draw then falls back to the last unvisited index.
//
// Complexity: O(n).
func sampleIndex(probs []float64, visited []bool, rng *rand.Rand) int {
	var (
		r    = rng.Float64()
		acc  float64
		last = -1
		j    int
	)
	for j = range probs {
		if visited[j] {
			continue
		}
		last = j
		acc += probs[j]
		if r < acc {
			return j
		}
	}
	return last
}
