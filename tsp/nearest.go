package tsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/tspcompare/matrix"
)

// NearestNeighbor builds a greedy tour from start: at every step it moves to
// the closest unvisited city, breaking distance ties toward the lowest index.
// The result is fully deterministic.
//
// Errors: ErrInvalidParameter (bad matrix or start out of range).
//
// Complexity: O(n²) time, O(n) space.
func NearestNeighbor(dist *matrix.Dense, start int) (TSResult, error) {
	n, rows, err := validateDistance(dist)
	if err != nil {
		return TSResult{}, fmt.Errorf("NearestNeighbor: %w", err)
	}
	if start < 0 || start >= n {
		return TSResult{}, fmt.Errorf("NearestNeighbor: start=%d n=%d: %w", start, n, ErrInvalidParameter)
	}

	var (
		tour    = make([]int, 0, n)
		visited = make([]bool, n)
		masked  = make([]float64, n)
		current = start
		step, j int
	)
	tour = append(tour, current)
	visited[current] = true

	for step = 1; step < n; step++ {
		// Visited cities are pushed to +Inf; MinIdx returns the first minimum.
		copy(masked, rows[current])
		for j = 0; j < n; j++ {
			if visited[j] {
				masked[j] = math.Inf(1)
			}
		}
		current = floats.MinIdx(masked)
		tour = append(tour, current)
		visited[current] = true
	}

	return TSResult{Tour: tour, Length: cycleLength(rows, tour)}, nil
}
