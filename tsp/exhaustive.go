package tsp

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/tspcompare/matrix"
)

// DefaultExhaustiveLimit is the largest instance Exhaustive accepts by default.
// 10 cities means 9! = 362 880 cycles.
const DefaultExhaustiveLimit = 10

// exhaustivePollEvery is how many permutations run between ctx checks.
const exhaustivePollEvery = 4096

// Exhaustive returns an optimal tour by brute force. City 0 is fixed as the
// start and the (n-1)! orderings of the remaining cities are enumerated; every
// cycle has a rotation starting at 0, so the optimum is unchanged. Among
// equal lengths the first permutation generated wins.
//
// limit ≤ 0 selects DefaultExhaustiveLimit.
//
// Errors:
//   - ErrInvalidParameter for a bad matrix,
//   - ErrInstanceTooLarge when n > limit,
//   - ctx.Err() when cancelled mid-enumeration.
//
// Complexity: O((n-1)! · n) time, O(n) space.
func Exhaustive(ctx context.Context, dist *matrix.Dense, limit int) (TSResult, error) {
	n, rows, err := validateDistance(dist)
	if err != nil {
		return TSResult{}, fmt.Errorf("Exhaustive: %w", err)
	}
	if limit <= 0 {
		limit = DefaultExhaustiveLimit
	}
	if n > limit {
		return TSResult{}, fmt.Errorf("Exhaustive: n=%d limit=%d: %w", n, limit, ErrInstanceTooLarge)
	}
	if n <= 2 {
		// One cycle only.
		tour := make([]int, n)
		var i int
		for i = range tour {
			tour[i] = i
		}
		return TSResult{Tour: tour, Length: cycleLength(rows, tour)}, nil
	}

	var (
		m      = n - 1
		gen    = combin.NewPermutationGenerator(m, m)
		perm   = make([]int, m)
		tour   = make([]int, n)
		best   = make([]int, n)
		bestL  float64
		length float64
		count  int
		found  bool
		i      int
	)
	tour[0] = 0

	for gen.Next() {
		if count%exhaustivePollEvery == 0 {
			if err = ctx.Err(); err != nil {
				return TSResult{}, err
			}
		}
		count++

		gen.Permutation(perm)
		for i = 0; i < m; i++ {
			tour[i+1] = perm[i] + 1
		}
		length = cycleLength(rows, tour)
		if !found || length < bestL {
			found = true
			bestL = length
			copy(best, tour)
		}
	}

	return TSResult{Tour: best, Length: bestL}, nil
}
