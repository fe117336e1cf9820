package engine

import (
	"encoding/json"
	"time"

	"github.com/katalvlaran/tspcompare/tsp"
)

// Report is the outcome of one comparison run.
type Report struct {
	Seed   int64
	Cities []tsp.City

	ACO             tsp.Candidate
	NearestNeighbor tsp.Candidate
	Exhaustive      tsp.Candidate

	// Shortest is the winner chosen by tsp.SelectBest.
	Shortest tsp.Candidate

	// ACOBestIteration and ACOEvaluations describe the colony run.
	ACOBestIteration int
	ACOEvaluations   int

	// Durations holds the wall time of each solver.
	Durations map[tsp.Method]time.Duration
}

// Candidates returns the three solver results in priority order.
func (r *Report) Candidates() []tsp.Candidate {
	return []tsp.Candidate{r.ACO, r.NearestNeighbor, r.Exhaustive}
}

// wireReport is the JSON shape returned to clients. Paths are closed
// coordinate lists; a method that did not run has an empty path and a null
// length.
type wireReport struct {
	CityCoords       []tsp.City       `json:"city_coords"`
	BestTour         []tsp.City       `json:"best_tour"`
	BestLength       *float64         `json:"best_length"`
	NNPath           []tsp.City       `json:"nn_path"`
	NNLength         *float64         `json:"nn_length"`
	ExhaustivePath   []tsp.City       `json:"exhaustive_path"`
	ExhaustiveLength *float64         `json:"exhaustive_length"`
	ShortestMethod   tsp.Method       `json:"shortest_method"`
	ShortestLength   float64          `json:"shortest_length"`
	Seed             int64            `json:"seed"`
	DurationsMS      map[string]int64 `json:"durations_ms"`
}

// MarshalJSON writes the client-facing form of the report.
func (r *Report) MarshalJSON() ([]byte, error) {
	w := wireReport{
		CityCoords:     r.Cities,
		ShortestMethod: r.Shortest.Method,
		ShortestLength: r.Shortest.Length,
		Seed:           r.Seed,
		DurationsMS:    make(map[string]int64, len(r.Durations)),
	}
	if w.CityCoords == nil {
		w.CityCoords = []tsp.City{}
	}

	var err error
	if w.BestTour, w.BestLength, err = r.path(r.ACO); err != nil {
		return nil, err
	}
	if w.NNPath, w.NNLength, err = r.path(r.NearestNeighbor); err != nil {
		return nil, err
	}
	if w.ExhaustivePath, w.ExhaustiveLength, err = r.path(r.Exhaustive); err != nil {
		return nil, err
	}
	for m, d := range r.Durations {
		w.DurationsMS[string(m)] = d.Milliseconds()
	}
	return json.Marshal(w)
}

func (r *Report) path(c tsp.Candidate) ([]tsp.City, *float64, error) {
	if !c.Computed {
		return []tsp.City{}, nil, nil
	}
	pts, err := tsp.TourPoints(r.Cities, c.Tour)
	if err != nil {
		return nil, nil, err
	}
	length := c.Length
	return pts, &length, nil
}
