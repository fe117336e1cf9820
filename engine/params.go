package engine

import (
	"fmt"

	"github.com/katalvlaran/tspcompare/tsp"
)

// Params describes one comparison run.
type Params struct {
	// NumCities is the number of random cities (≥ 1).
	NumCities int `json:"num_cities"`

	// NumAnts is the colony size (≥ 1).
	NumAnts int `json:"num_ants"`

	// NumIterations is the number of colony rounds (≥ 0).
	NumIterations int `json:"num_iterations"`

	// Seed drives city placement and the colony. 0 selects the fixed default
	// stream, the same one as seed 1; Report.Seed carries the resolved value.
	Seed int64 `json:"seed"`

	// ExhaustiveLimit bounds brute force; 0 selects tsp.DefaultExhaustiveLimit.
	ExhaustiveLimit int `json:"-"`

	// Workers bounds parallel tour construction inside the colony.
	Workers int `json:"-"`
}

// Validate reports the first out-of-range field. maxCities > 0 caps
// NumCities. Errors wrap tsp.ErrInvalidParameter.
func (p Params) Validate(maxCities int) error {
	switch {
	case p.NumCities < 1:
		return fmt.Errorf("num_cities=%d must be at least 1: %w", p.NumCities, tsp.ErrInvalidParameter)
	case maxCities > 0 && p.NumCities > maxCities:
		return fmt.Errorf("num_cities=%d exceeds %d: %w", p.NumCities, maxCities, tsp.ErrInvalidParameter)
	case p.NumAnts < 1:
		return fmt.Errorf("num_ants=%d must be at least 1: %w", p.NumAnts, tsp.ErrInvalidParameter)
	case p.NumIterations < 0:
		return fmt.Errorf("num_iterations=%d must not be negative: %w", p.NumIterations, tsp.ErrInvalidParameter)
	case p.ExhaustiveLimit < 0:
		return fmt.Errorf("exhaustive limit=%d must not be negative: %w", p.ExhaustiveLimit, tsp.ErrInvalidParameter)
	case p.Workers < 0:
		return fmt.Errorf("workers=%d must not be negative: %w", p.Workers, tsp.ErrInvalidParameter)
	}
	return nil
}

// acoConfig maps the run onto the fixed colony constants.
func (p Params) acoConfig() tsp.ACOConfig {
	cfg := tsp.DefaultACOConfig(p.NumAnts, p.NumIterations)
	if p.Workers > 1 {
		cfg.Workers = p.Workers
	}
	return cfg
}
