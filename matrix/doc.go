// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage used by the TSP engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors that
//     return sentinel errors instead of panicking.
//   - Row views for allocation-free inner loops.
//   - In-place Fill / Apply / Add used by pheromone bookkeeping.
//   - Validators for the distance-matrix contract (square, finite,
//     non-negative, zero diagonal, symmetric).
//
// Matrices are O(n²) memory; they are intended for the small-to-medium
// instances the solvers in package tsp can handle.
package matrix
