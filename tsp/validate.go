// Package tsp - validation shared by all solvers.
//
// Every solver entry point runs validateDistance once; inner loops then work
// on raw row views without per-access checks.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/tspcompare/matrix"
)

// symTol is the structural tolerance for symmetry/diagonal checks.
// NewDistanceMatrix mirrors every pair, so real inputs are exactly symmetric.
const symTol = 1e-12

// validateDistance enforces the distance-matrix contract (non-nil, square,
// finite, non-negative, zero diagonal, symmetric) and returns n together with
// the row views.
//
// Complexity: O(n²).
func validateDistance(dist *matrix.Dense) (int, [][]float64, error) {
	if dist == nil {
		return 0, nil, fmt.Errorf("distance matrix: %w: %w", ErrInvalidParameter, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateMetric(dist, symTol); err != nil {
		return 0, nil, fmt.Errorf("distance matrix: %w: %w", ErrInvalidParameter, err)
	}
	rows, err := distRows(dist)
	if err != nil {
		return 0, nil, err
	}
	return dist.Rows(), rows, nil
}
