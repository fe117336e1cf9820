package tsp

import (
	"fmt"
	"math"
)

// SelectBest returns the computed candidate with the smallest length.
//
// Candidates are considered in the fixed order ACO, Nearest Neighbor,
// Exhaustive Search regardless of argument order, and the holder is replaced
// only by a strictly shorter length, so ties go to the earlier method.
// Non-computed candidates and methods outside that order are skipped. The
// returned tour is a copy and does not alias the winning candidate's.
//
// Errors: ErrNoCandidate when nothing computed is left; ErrInvalidParameter
// for a computed candidate with a NaN length.
//
// Complexity: O(len(cands)).
func SelectBest(cands ...Candidate) (Candidate, error) {
	var (
		best  Candidate
		found bool
	)
	for _, m := range methodPriority {
		for _, c := range cands {
			if c.Method != m || !c.Computed {
				continue
			}
			if math.IsNaN(c.Length) {
				return Candidate{}, fmt.Errorf("SelectBest: %s length is NaN: %w", c.Method, ErrInvalidParameter)
			}
			if !found || c.Length < best.Length {
				best = c
				found = true
			}
		}
	}
	if !found {
		return Candidate{}, ErrNoCandidate
	}
	best.Tour = CopyTour(best.Tour)
	return best, nil
}
