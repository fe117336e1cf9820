package tsp

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/tspcompare/matrix"
)

// CoordinateSpan is the side of the square random cities are drawn from:
// both coordinates are uniform in [0, CoordinateSpan).
const CoordinateSpan = 100.0

// City is a point in the plane. Its identity is its index in the slice
// passed to NewDistanceMatrix.
type City struct {
	X, Y float64
}

// MarshalJSON encodes a city as a two-element array [x, y].
func (c City) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.X, c.Y})
}

// UnmarshalJSON decodes the [x, y] form written by MarshalJSON.
func (c *City) UnmarshalJSON(b []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return err
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

// RandomCities draws n cities uniformly from [0, CoordinateSpan)².
//
// Errors: ErrInvalidParameter when n < 1 or rng is nil.
//
// Complexity: O(n).
func RandomCities(n int, rng *rand.Rand) ([]City, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomCities: n=%d: %w", n, ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("RandomCities: nil rng: %w", ErrInvalidParameter)
	}

	cities := make([]City, n)
	var i int
	for i = 0; i < n; i++ {
		cities[i] = City{
			X: rng.Float64() * CoordinateSpan,
			Y: rng.Float64() * CoordinateSpan,
		}
	}
	return cities, nil
}

// NewDistanceMatrix builds the n×n Euclidean distance matrix of cities.
// Each unordered pair is computed once and mirrored, so the result is exactly
// symmetric with a zero diagonal.
//
// Errors: ErrInvalidParameter for an empty slice or non-finite coordinates.
//
// Complexity: O(n²) time and space.
func NewDistanceMatrix(cities []City) (*matrix.Dense, error) {
	n := len(cities)
	if n == 0 {
		return nil, fmt.Errorf("NewDistanceMatrix: no cities: %w", ErrInvalidParameter)
	}

	var i int
	for i = 0; i < n; i++ {
		if !finite(cities[i].X) || !finite(cities[i].Y) {
			return nil, fmt.Errorf("NewDistanceMatrix: city %d: %w", i, ErrInvalidParameter)
		}
	}

	dist, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}

	var (
		j int
		d float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = math.Hypot(cities[i].X-cities[j].X, cities[i].Y-cities[j].Y)
			// Both writes are in range and finite; errors are impossible here.
			_ = dist.Set(i, j, d)
			_ = dist.Set(j, i, d)
		}
	}
	return dist, nil
}

// TourPoints maps a tour to coordinates and repeats the first point at the end
// to close the loop. An empty tour yields an empty (non-nil) slice.
//
// Errors: ErrInvalidTour when the tour is not a permutation of the cities.
func TourPoints(cities []City, tour []int) ([]City, error) {
	if len(tour) == 0 {
		return []City{}, nil
	}
	if err := ValidatePermutation(tour, len(cities)); err != nil {
		return nil, err
	}

	out := make([]City, 0, len(tour)+1)
	for _, v := range tour {
		out = append(out, cities[v])
	}
	return append(out, cities[tour[0]]), nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
