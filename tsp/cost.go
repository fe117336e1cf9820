// Package tsp - tour evaluation shared by every solver.
//
// TourLength is the public, fully validated evaluator. Solvers validate the
// distance matrix once up front and then call cycleLength on pre-fetched rows
// in their inner loops.
//
// Stable summation: every length is rounded to 1e-9 so that the same cycle
// evaluated from a different starting city or direction compares equal.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tspcompare/matrix"
)

// roundScale controls final length stabilization precision (1e-9).
const roundScale = 1e9

// TourLength returns the length of the closed cycle described by tour:
// the sum of dist[tour[i]][tour[i+1]] plus the closing edge back to tour[0].
// A single-city tour has length 0.
//
// Errors:
//   - matrix sentinels when dist is nil or not square,
//   - ErrInvalidTour when tour is not a permutation of 0..n-1.
//
// Complexity: O(n).
func TourLength(dist *matrix.Dense, tour []int) (float64, error) {
	if dist == nil {
		return 0, fmt.Errorf("TourLength: %w", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, fmt.Errorf("TourLength: %w", err)
	}
	if err := ValidatePermutation(tour, dist.Rows()); err != nil {
		return 0, fmt.Errorf("TourLength: %w", err)
	}

	rows, err := distRows(dist)
	if err != nil {
		return 0, err
	}
	return cycleLength(rows, tour), nil
}

// cycleLength sums the closed cycle over pre-fetched rows without checks.
// Callers guarantee tour is a permutation matching rows.
//
// Complexity: O(n).
func cycleLength(rows [][]float64, tour []int) float64 {
	var (
		n   = len(tour)
		sum float64
		i   int
	)
	if n < 2 {
		return 0
	}
	for i = 0; i < n-1; i++ {
		sum += rows[tour[i]][tour[i+1]]
	}
	sum += rows[tour[n-1]][tour[0]]
	return round1e9(sum)
}

// distRows fetches every row view of a square matrix once.
func distRows(dist *matrix.Dense) ([][]float64, error) {
	var (
		n    = dist.Rows()
		rows = make([][]float64, n)
		i    int
		err  error
	)
	for i = 0; i < n; i++ {
		rows[i], err = dist.Row(i)
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
