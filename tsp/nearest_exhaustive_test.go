package tsp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspcompare/tsp"
)

func TestNearestNeighbor_Square(t *testing.T) {
	dist := mustDist(t, squareCities())

	res, err := tsp.NearestNeighbor(dist, 0)
	require.NoError(t, err)
	// 1 and 3 are both 10 away from 0; the lower index wins.
	require.Equal(t, []int{0, 1, 2, 3}, res.Tour)
	require.Equal(t, squarePerimeter, res.Length)
}

func TestNearestNeighbor_Deterministic(t *testing.T) {
	_, dist := randomInstance(t, 30, seedDet)

	var base tsp.TSResult
	Repeat(t, 5, func(t *testing.T) {
		res, err := tsp.NearestNeighbor(dist, 0)
		require.NoError(t, err)
		requireTour(t, dist, res.Tour, res.Length)
		require.Equal(t, 0, res.Tour[0])
		if base.Tour == nil {
			base = res
			return
		}
		require.Equal(t, base, res)
	})
}

func TestNearestNeighbor_Circle(t *testing.T) {
	const n, r = 12, 10.0
	dist := mustDist(t, circleCities(n, r))

	res, err := tsp.NearestNeighbor(dist, 0)
	require.NoError(t, err)
	requireTour(t, dist, res.Tour, res.Length)
	// Walking to an adjacent city at every step traces the polygon.
	require.InDelta(t, n*2*r*math.Sin(math.Pi/n), res.Length, epsLoose)
}

func TestNearestNeighbor_InvalidStart(t *testing.T) {
	dist := mustDist(t, squareCities())
	_, err := tsp.NearestNeighbor(dist, 4)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
	_, err = tsp.NearestNeighbor(dist, -1)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
}

func TestExhaustive_Square(t *testing.T) {
	dist := mustDist(t, squareCities())

	res, err := tsp.Exhaustive(t.Context(), dist, 0)
	require.NoError(t, err)
	require.Equal(t, squarePerimeter, res.Length)
	requireTour(t, dist, res.Tour, res.Length)
	require.Equal(t, 0, res.Tour[0])
}

// TestExhaustive_NotWorseThanHeuristics checks the optimum bounds the other
// solvers on random instances.
func TestExhaustive_NotWorseThanHeuristics(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8} {
		_, dist := randomInstance(t, n, int64(n))

		opt, err := tsp.Exhaustive(t.Context(), dist, 0)
		require.NoError(t, err)
		requireTour(t, dist, opt.Tour, opt.Length)

		nn, err := tsp.NearestNeighbor(dist, 0)
		require.NoError(t, err)
		require.LessOrEqual(t, opt.Length, nn.Length, "n=%d", n)

		aco := mustACO(t, dist, 5, 10, 1, seedDet)
		require.LessOrEqual(t, opt.Length, aco.Length, "n=%d", n)
	}
}

func TestExhaustive_Limit(t *testing.T) {
	_, dist := randomInstance(t, tsp.DefaultExhaustiveLimit+1, seedDet)
	_, err := tsp.Exhaustive(t.Context(), dist, 0)
	require.ErrorIs(t, err, tsp.ErrInstanceTooLarge)

	_, small := randomInstance(t, 6, seedDet)
	_, err = tsp.Exhaustive(t.Context(), small, 5)
	require.ErrorIs(t, err, tsp.ErrInstanceTooLarge)
}

func TestExhaustive_Cancelled(t *testing.T) {
	_, dist := randomInstance(t, 9, seedDet)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := tsp.Exhaustive(ctx, dist, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolvers_SingleCity(t *testing.T) {
	dist := mustDist(t, []tsp.City{{X: 50, Y: 50}})

	nn, err := tsp.NearestNeighbor(dist, 0)
	require.NoError(t, err)
	require.Equal(t, tsp.TSResult{Tour: []int{0}, Length: 0}, nn)

	ex, err := tsp.Exhaustive(t.Context(), dist, 0)
	require.NoError(t, err)
	require.Equal(t, tsp.TSResult{Tour: []int{0}, Length: 0}, ex)
}
