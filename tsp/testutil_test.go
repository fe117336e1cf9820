// Package tsp_test provides lightweight helpers shared across *_test.go files
// in this package.
package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspcompare/matrix"
	"github.com/katalvlaran/tspcompare/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// seedDet is a deterministic seed for RNG-based components.
	seedDet = int64(42)

	// squarePerimeter is the optimal tour of squareCities.
	squarePerimeter = 40.0

	// epsLoose tolerates summation order noise in hand-computed lengths.
	epsLoose = 1e-9
)

// -----------------------------------------------------------------------------
// Instance generators
// -----------------------------------------------------------------------------

// squareCities returns the corners of a 10×10 square in boundary order.
func squareCities() []tsp.City {
	return []tsp.City{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
}

// circleCities places n cities evenly on a circle of radius r; the optimal tour
// visits them in index order.
func circleCities(n int, r float64) []tsp.City {
	out := make([]tsp.City, n)
	var (
		i  int
		th float64
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		out[i] = tsp.City{X: r * math.Cos(th), Y: r * math.Sin(th)}
	}
	return out
}

// mustDist builds the Euclidean matrix of cities or fails the test.
func mustDist(t testing.TB, cities []tsp.City) *matrix.Dense {
	t.Helper()
	d, err := tsp.NewDistanceMatrix(cities)
	require.NoError(t, err)
	return d
}

// randomInstance draws n seeded cities and their matrix.
func randomInstance(t testing.TB, n int, seed int64) ([]tsp.City, *matrix.Dense) {
	t.Helper()
	cities, err := tsp.RandomCities(n, tsp.NewRand(seed))
	require.NoError(t, err)
	return cities, mustDist(t, cities)
}

// -----------------------------------------------------------------------------
// Generic helpers
// -----------------------------------------------------------------------------

// Repeat runs fn n times. Useful for determinism checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// requireTour asserts tour is a permutation of 0..n-1 whose closed length
// matches length.
func requireTour(t testing.TB, dist *matrix.Dense, tour []int, length float64) {
	t.Helper()
	require.NoError(t, tsp.ValidatePermutation(tour, dist.Rows()))
	got, err := tsp.TourLength(dist, tour)
	require.NoError(t, err)
	require.Equal(t, got, length)
}

// mustACO runs a seeded default colony.
func mustACO(t testing.TB, dist *matrix.Dense, ants, iters, workers int, seed int64) tsp.ACOResult {
	t.Helper()
	cfg := tsp.DefaultACOConfig(ants, iters)
	cfg.Workers = workers
	colony, err := tsp.NewAntColony(dist, cfg, tsp.NewRand(seed))
	require.NoError(t, err)
	res, err := colony.Solve(t.Context())
	require.NoError(t, err)
	return res
}
