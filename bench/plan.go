// Package bench runs repeated seeded comparisons and summarizes how each
// solver fares across them.
package bench

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidPlan is returned for plans that cannot be run.
var ErrInvalidPlan = errors.New("bench: invalid plan")

// Case is one instance shape repeated Repeats times. Repeat i uses seed
// base+i, where base is Seed with 0 resolved to the default stream seed.
type Case struct {
	Name       string `toml:"name"`
	Cities     int    `toml:"cities"`
	Ants       int    `toml:"ants"`
	Iterations int    `toml:"iterations"`
	Repeats    int    `toml:"repeats"`
	Seed       int64  `toml:"seed"`
}

// Plan is a benchmark description, usually read from a TOML file:
//
//	max_parallel = 4
//	workers = 1
//	exhaustive_limit = 10
//
//	[[case]]
//	name = "small"
//	cities = 8
//	ants = 10
//	iterations = 50
//	repeats = 20
//	seed = 1000
type Plan struct {
	// MaxParallel bounds concurrent runs. 0 means one.
	MaxParallel int `toml:"max_parallel"`
	// Workers is the ACO construction parallelism per run.
	Workers int `toml:"workers"`
	// ExhaustiveLimit overrides the exhaustive search cap. 0 keeps the default.
	ExhaustiveLimit int `toml:"exhaustive_limit"`

	Cases []Case `toml:"case"`
}

// LoadPlan decodes and validates the plan file at path.
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	defer f.Close()
	return DecodePlan(f)
}

// DecodePlan reads a plan from r. Unknown keys are rejected.
func DecodePlan(r io.Reader) (*Plan, error) {
	var p Plan
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("bench: decode plan: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidPlan, undec[0].String())
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan shape. Per-run parameters are checked again by
// the engine.
func (p *Plan) Validate() error {
	if p.MaxParallel < 0 {
		return fmt.Errorf("%w: max_parallel=%d", ErrInvalidPlan, p.MaxParallel)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers=%d", ErrInvalidPlan, p.Workers)
	}
	if len(p.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidPlan)
	}
	seen := make(map[string]struct{}, len(p.Cases))
	for i, c := range p.Cases {
		if c.Name == "" {
			return fmt.Errorf("%w: case %d has no name", ErrInvalidPlan, i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate case %q", ErrInvalidPlan, c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.Repeats < 1 {
			return fmt.Errorf("%w: case %q repeats=%d", ErrInvalidPlan, c.Name, c.Repeats)
		}
		if c.Cities < 1 || c.Ants < 1 || c.Iterations < 0 {
			return fmt.Errorf("%w: case %q cities=%d ants=%d iterations=%d",
				ErrInvalidPlan, c.Name, c.Cities, c.Ants, c.Iterations)
		}
	}
	return nil
}
