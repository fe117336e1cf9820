package tsp

import "errors"

// Sentinel errors. Callers match them with errors.Is; solvers wrap them with
// call-site context via fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidParameter is returned for out-of-range inputs: city/ant counts
	// below one, negative iteration counts, malformed configs or matrices.
	// It is always reported before any matrix allocation.
	ErrInvalidParameter = errors.New("tsp: invalid parameter")

	// ErrComputationOverflow signals that a probability row could not be
	// normalized (all-zero, NaN or +Inf mass over the unvisited cities).
	ErrComputationOverflow = errors.New("tsp: probability normalization failed")

	// ErrInstanceTooLarge is returned by Exhaustive when n exceeds its limit.
	ErrInstanceTooLarge = errors.New("tsp: instance exceeds exhaustive search limit")

	// ErrInvalidTour is returned when a tour is not a permutation of 0..n-1
	// or its size does not match the distance matrix.
	ErrInvalidTour = errors.New("tsp: tour is not a permutation of the cities")

	// ErrNoCandidate is returned by SelectBest when nothing was computed.
	ErrNoCandidate = errors.New("tsp: no computed candidate to select from")
)

// Method names a solver. The string values are the labels reported to callers.
type Method string

const (
	MethodACO             Method = "ACO"
	MethodNearestNeighbor Method = "Nearest Neighbor"
	MethodExhaustive      Method = "Exhaustive Search"
)

// methodPriority is the tie-break order used by SelectBest: on equal lengths
// the method listed first keeps the win.
var methodPriority = [...]Method{MethodACO, MethodNearestNeighbor, MethodExhaustive}

// TSResult holds the outcome of a TSP solver.
type TSResult struct {
	// Tour is a permutation of 0..n-1, read as a cycle: the edge from
	// Tour[n-1] back to Tour[0] closes the loop.
	Tour []int

	// Length is the total distance of the closed cycle.
	Length float64
}

// Candidate is one solver's contribution to a comparison.
// Computed is false when the method did not run (exhaustive above its limit,
// ACO with zero iterations); Tour and Length are then meaningless.
type Candidate struct {
	Method Method
	TSResult
	Computed bool
}
