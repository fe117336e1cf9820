package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a sample.
type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcStats returns the minimum, mean and sample standard deviation of
// values. Std is 0 for fewer than two values; an empty sample is all zeros.
func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Best = floats.Min(values)
	if s.N == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}
