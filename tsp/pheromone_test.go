package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/tspcompare/matrix"
	"github.com/katalvlaran/tspcompare/tsp"
)

func defaultWeighting() tsp.Weighting {
	return tsp.DefaultACOConfig(1, 1).Weighting
}

// requirePositive asserts every trail entry is finite and strictly positive.
func requirePositive(t *testing.T, m *matrix.Dense) {
	t.Helper()
	m.Do(func(i, j int, v float64) bool {
		require.Truef(t, v > 0 && !math.IsInf(v, 0), "tau[%d][%d]=%v", i, j, v)
		return true
	})
}

func TestNewPheromoneField(t *testing.T) {
	p, err := tsp.NewPheromoneField(3, 1)
	require.NoError(t, err)
	require.Equal(t, 3, p.Size())
	v, err := p.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	_, err = tsp.NewPheromoneField(0, 1)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
	_, err = tsp.NewPheromoneField(2, 0)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
}

func TestPheromoneField_EvaporateDeposit(t *testing.T) {
	p, err := tsp.NewPheromoneField(4, 1)
	require.NoError(t, err)

	require.NoError(t, p.Evaporate(0.1))
	require.NoError(t, p.Deposit([]int{0, 2, 1, 3}, 0.5))

	// Tour edges in both directions, wrap edge 3→0 included.
	for _, e := range [][2]int{{0, 2}, {2, 0}, {2, 1}, {1, 2}, {1, 3}, {3, 1}, {3, 0}, {0, 3}} {
		v, err := p.At(e[0], e[1])
		require.NoError(t, err)
		require.InDelta(t, 1.4, v, 1e-12, "edge %v", e)
	}
	// Off-tour edge only evaporated.
	v, err := p.At(0, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.9, v, 1e-12)
}

func TestPheromoneField_InvalidUpdates(t *testing.T) {
	p, err := tsp.NewPheromoneField(3, 1)
	require.NoError(t, err)

	require.ErrorIs(t, p.Evaporate(1), tsp.ErrInvalidParameter)
	require.ErrorIs(t, p.Evaporate(-0.1), tsp.ErrInvalidParameter)
	require.ErrorIs(t, p.Deposit([]int{0, 1, 2}, 0), tsp.ErrInvalidParameter)
	require.ErrorIs(t, p.Deposit([]int{0, 1, 2}, math.Inf(1)), tsp.ErrInvalidParameter)
	require.ErrorIs(t, p.Deposit([]int{0, 1, 1}, 1), tsp.ErrInvalidTour)
	require.ErrorIs(t, p.Deposit([]int{0, 1}, 1), tsp.ErrInvalidTour)
}

// TestPheromoneField_PositiveAfterLongDecay drives many evaporation rounds with
// no deposits and checks entries never reach zero.
func TestPheromoneField_PositiveAfterLongDecay(t *testing.T) {
	p, err := tsp.NewPheromoneField(3, 1)
	require.NoError(t, err)

	var i int
	for i = 0; i < 10000; i++ {
		require.NoError(t, p.Evaporate(0.5))
	}
	requirePositive(t, p.Snapshot())

	v, err := p.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, tsp.MinPheromone, v, "decay stops at the floor")
}

func TestPheromoneField_Probabilities(t *testing.T) {
	dist := mustDist(t, squareCities())
	p, err := tsp.NewPheromoneField(4, 1)
	require.NoError(t, err)

	visited := []bool{true, false, false, false}
	probs := make([]float64, 4)
	require.NoError(t, p.Probabilities(dist, defaultWeighting(), 0, visited, probs))

	require.Zero(t, probs[0])
	require.InDelta(t, 1.0, floats.Sum(probs), 1e-12)
	// With uniform trails, equal distances give equal probabilities and the
	// diagonal neighbour (twice the squared distance) gets half as much.
	require.InDelta(t, probs[1], probs[3], 1e-12)
	require.InDelta(t, probs[1]/2, probs[2], 1e-9)
}

func TestPheromoneField_ProbabilitiesErrors(t *testing.T) {
	dist := mustDist(t, squareCities())
	p, err := tsp.NewPheromoneField(4, 1)
	require.NoError(t, err)
	probs := make([]float64, 4)

	// Nothing left to visit: the distribution cannot be normalized.
	all := []bool{true, true, true, true}
	err = p.Probabilities(dist, defaultWeighting(), 0, all, probs)
	require.ErrorIs(t, err, tsp.ErrComputationOverflow)

	err = p.Probabilities(dist, defaultWeighting(), 4, make([]bool, 4), probs)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)

	err = p.Probabilities(dist, tsp.Weighting{Alpha: 1, Beta: 2}, 0, make([]bool, 4), probs)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)

	small := mustDist(t, squareCities()[:3])
	err = p.Probabilities(small, defaultWeighting(), 0, make([]bool, 4), probs)
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
}

// TestPheromoneField_CoincidentCities checks that zero distances stay finite
// through the epsilon term.
func TestPheromoneField_CoincidentCities(t *testing.T) {
	dist := mustDist(t, []tsp.City{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 5, Y: 5}})
	p, err := tsp.NewPheromoneField(3, 1)
	require.NoError(t, err)

	probs := make([]float64, 3)
	require.NoError(t, p.Probabilities(dist, defaultWeighting(), 0, []bool{true, false, false}, probs))
	require.Greater(t, probs[1], probs[2])
	require.InDelta(t, 1.0, floats.Sum(probs), 1e-12)
}
