// Package tsp - tour utilities shared by all solvers.
//
// A tour is an open permutation of 0..n-1 (length n); the closing edge
// tour[n-1]→tour[0] is implicit. Helpers here operate on structure only and
// never touch distances.
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
// It allocates a single O(n) marker slice.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 || len(perm) != n {
		return fmt.Errorf("ValidatePermutation: len=%d n=%d: %w", len(perm), n, ErrInvalidTour)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return fmt.Errorf("ValidatePermutation: perm[%d]=%d out of range: %w", i, v, ErrInvalidTour)
		}
		if seen[v] {
			return fmt.Errorf("ValidatePermutation: duplicate %d: %w", v, ErrInvalidTour)
		}
		seen[v] = true
	}
	return nil
}

// CopyTour returns an independent copy of the input tour slice.
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}
	out := make([]int, len(tour))
	copy(out, tour)
	return out
}

// RotateToStart returns a copy of the cyclic tour shifted so that it begins at
// start. Direction is preserved.
//
// Errors: ErrInvalidTour when start does not occur in tour.
//
// Complexity: O(n).
func RotateToStart(tour []int, start int) ([]int, error) {
	var (
		n     = len(tour)
		pivot = -1
		i     int
	)
	for i = 0; i < n; i++ {
		if tour[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, fmt.Errorf("RotateToStart: %d not in tour: %w", start, ErrInvalidTour)
	}

	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = tour[(pivot+i)%n]
	}
	return out, nil
}

// DebugString renders a tour with its closing vertex, e.g. "[0 3 1 2 | 0]".
func DebugString(tour []int) string {
	if len(tour) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[")
	for i, v := range tour {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteString(" | ")
	b.WriteString(strconv.Itoa(tour[0]))
	b.WriteString("]")
	return b.String()
}
