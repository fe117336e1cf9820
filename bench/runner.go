package bench

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/tspcompare/engine"
	"github.com/katalvlaran/tspcompare/tsp"
)

// Methods lists the solvers in report order.
var Methods = []tsp.Method{tsp.MethodACO, tsp.MethodNearestNeighbor, tsp.MethodExhaustive}

// Sample is the outcome of one seeded run.
type Sample struct {
	Case   string
	Repeat int
	Seed   int64
	Report *engine.Report
}

// Record aggregates one method over all repeats of one case.
type Record struct {
	Case       string
	Method     tsp.Method
	Cities     int
	Ants       int
	Iterations int
	Runs       int

	// Computed counts runs in which the method produced a tour; Wins counts
	// runs in which it was chosen as shortest.
	Computed int
	Wins     int

	LengthBest float64
	LengthMean float64
	LengthStd  float64

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64
}

// Runner executes plans against an engine.
type Runner struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewRunner returns a Runner. A nil logger means slog.Default().
func NewRunner(eng *engine.Engine, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{engine: eng, logger: logger}
}

type job struct {
	c      Case
	repeat int
}

// Run executes every repeat of every case, at most plan.MaxParallel at a
// time, and returns one Record per case and method in plan order. The first
// failing run cancels the rest.
func (r *Runner) Run(ctx context.Context, plan *Plan) ([]Record, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	samples, err := r.Samples(ctx, plan)
	if err != nil {
		return nil, err
	}
	return Summarize(plan, samples), nil
}

// Samples runs the plan and returns the raw samples ordered by case then
// repeat.
func (r *Runner) Samples(ctx context.Context, plan *Plan) ([]Sample, error) {
	var jobs []job
	for _, c := range plan.Cases {
		for i := 0; i < c.Repeats; i++ {
			jobs = append(jobs, job{c: c, repeat: i})
		}
	}

	p := pool.NewWithResults[Sample]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(max(plan.MaxParallel, 1))
	for _, j := range jobs {
		p.Go(func(ctx context.Context) (Sample, error) {
			seed := tsp.ResolveSeed(j.c.Seed) + int64(j.repeat)
			rep, err := r.engine.Run(ctx, engine.Params{
				NumCities:       j.c.Cities,
				NumAnts:         j.c.Ants,
				NumIterations:   j.c.Iterations,
				Seed:            seed,
				ExhaustiveLimit: plan.ExhaustiveLimit,
				Workers:         plan.Workers,
			})
			if err != nil {
				return Sample{}, fmt.Errorf("case %q repeat %d: %w", j.c.Name, j.repeat, err)
			}
			return Sample{Case: j.c.Name, Repeat: j.repeat, Seed: seed, Report: rep}, nil
		})
	}

	start := time.Now()
	samples, err := p.Wait()
	if err != nil {
		return nil, err
	}

	order := make(map[string]int, len(plan.Cases))
	for i, c := range plan.Cases {
		order[c.Name] = i
	}
	sort.Slice(samples, func(a, b int) bool {
		ca, cb := order[samples[a].Case], order[samples[b].Case]
		if ca != cb {
			return ca < cb
		}
		return samples[a].Repeat < samples[b].Repeat
	})

	r.logger.InfoContext(ctx, "bench plan completed",
		"cases", len(plan.Cases),
		"runs", len(samples),
		"elapsed", time.Since(start),
	)
	return samples, nil
}

// Summarize folds samples into per-case, per-method records in plan order.
func Summarize(plan *Plan, samples []Sample) []Record {
	byCase := make(map[string][]Sample, len(plan.Cases))
	for _, s := range samples {
		byCase[s.Case] = append(byCase[s.Case], s)
	}

	records := make([]Record, 0, len(plan.Cases)*len(Methods))
	for _, c := range plan.Cases {
		runs := byCase[c.Name]
		for _, m := range Methods {
			rec := Record{
				Case:       c.Name,
				Method:     m,
				Cities:     c.Cities,
				Ants:       c.Ants,
				Iterations: c.Iterations,
				Runs:       len(runs),
			}
			var (
				lengths = make([]float64, 0, len(runs))
				timesMs = make([]float64, 0, len(runs))
			)
			for _, s := range runs {
				if s.Report.Shortest.Method == m {
					rec.Wins++
				}
				cand := candidate(s.Report, m)
				if !cand.Computed {
					continue
				}
				rec.Computed++
				lengths = append(lengths, cand.Length)
				timesMs = append(timesMs, float64(s.Report.Durations[m].Microseconds())/1000.0)
			}
			ls, ts := CalcStats(lengths), CalcStats(timesMs)
			rec.LengthBest, rec.LengthMean, rec.LengthStd = ls.Best, ls.Mean, ls.Std
			rec.TimeBestMs, rec.TimeMeanMs, rec.TimeStdMs = ts.Best, ts.Mean, ts.Std
			records = append(records, rec)
		}
	}
	return records
}

func candidate(r *engine.Report, m tsp.Method) tsp.Candidate {
	switch m {
	case tsp.MethodACO:
		return r.ACO
	case tsp.MethodNearestNeighbor:
		return r.NearestNeighbor
	default:
		return r.Exhaustive
	}
}
