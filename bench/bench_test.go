package bench_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspcompare/bench"
	"github.com/katalvlaran/tspcompare/engine"
	"github.com/katalvlaran/tspcompare/tsp"
)

const planTOML = `
max_parallel = 3
workers = 1

[[case]]
name = "tiny"
cities = 5
ants = 4
iterations = 10
repeats = 4
seed = 100

[[case]]
name = "no-exhaustive"
cities = 12
ants = 3
iterations = 2
repeats = 2
seed = 7
`

func quietRunner() *bench.Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bench.NewRunner(engine.New(engine.WithLogger(logger)), logger)
}

func TestCalcStats(t *testing.T) {
	require.Equal(t, bench.Stats{}, bench.CalcStats(nil))
	require.Equal(t, bench.Stats{N: 1, Best: 3, Mean: 3}, bench.CalcStats([]float64{3}))

	s := bench.CalcStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.Equal(t, 8, s.N)
	require.Equal(t, 2.0, s.Best)
	require.InDelta(t, 5.0, s.Mean, 1e-12)
	require.InDelta(t, 2.138089935, s.Std, 1e-9)
}

func TestDecodePlan(t *testing.T) {
	p, err := bench.DecodePlan(strings.NewReader(planTOML))
	require.NoError(t, err)
	require.Equal(t, 3, p.MaxParallel)
	require.Len(t, p.Cases, 2)
	require.Equal(t, bench.Case{Name: "tiny", Cities: 5, Ants: 4, Iterations: 10, Repeats: 4, Seed: 100}, p.Cases[0])
}

func TestDecodePlan_Invalid(t *testing.T) {
	cases := map[string]string{
		"no cases":      `max_parallel = 1`,
		"unknown key":   "bogus = 1\n[[case]]\nname=\"a\"\ncities=3\nants=1\niterations=1\nrepeats=1",
		"zero repeats":  "[[case]]\nname=\"a\"\ncities=3\nants=1\niterations=1\nrepeats=0",
		"no name":       "[[case]]\ncities=3\nants=1\niterations=1\nrepeats=1",
		"zero cities":   "[[case]]\nname=\"a\"\ncities=0\nants=1\niterations=1\nrepeats=1",
		"duplicate":     "[[case]]\nname=\"a\"\ncities=3\nants=1\niterations=1\nrepeats=1\n[[case]]\nname=\"a\"\ncities=3\nants=1\niterations=1\nrepeats=1",
		"negative pool": "max_parallel = -1\n[[case]]\nname=\"a\"\ncities=3\nants=1\niterations=1\nrepeats=1",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := bench.DecodePlan(strings.NewReader(src))
			require.ErrorIs(t, err, bench.ErrInvalidPlan)
		})
	}

	_, err := bench.DecodePlan(strings.NewReader("cases = ["))
	require.Error(t, err)
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(planTOML), 0o600))

	p, err := bench.LoadPlan(path)
	require.NoError(t, err)
	require.Len(t, p.Cases, 2)

	_, err = bench.LoadPlan(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	p, err := bench.DecodePlan(strings.NewReader(planTOML))
	require.NoError(t, err)

	recs, err := quietRunner().Run(t.Context(), p)
	require.NoError(t, err)
	require.Len(t, recs, 2*len(bench.Methods))

	byKey := make(map[string]bench.Record, len(recs))
	for _, r := range recs {
		byKey[r.Case+"/"+string(r.Method)] = r
	}

	tinyWins := 0
	for _, m := range bench.Methods {
		r := byKey["tiny/"+string(m)]
		require.Equal(t, 4, r.Runs)
		require.Equal(t, 4, r.Computed)
		tinyWins += r.Wins
	}
	require.Equal(t, 4, tinyWins, "every run has exactly one winner")

	ex := byKey["tiny/"+string(tsp.MethodExhaustive)]
	aco := byKey["tiny/"+string(tsp.MethodACO)]
	nn := byKey["tiny/"+string(tsp.MethodNearestNeighbor)]
	require.LessOrEqual(t, ex.LengthMean, aco.LengthMean+1e-9)
	require.LessOrEqual(t, ex.LengthMean, nn.LengthMean+1e-9)

	big := byKey["no-exhaustive/"+string(tsp.MethodExhaustive)]
	require.Equal(t, 2, big.Runs)
	require.Zero(t, big.Computed)
	require.Zero(t, big.Wins)
	require.Zero(t, big.LengthMean)
}

func TestRunner_Reproducible(t *testing.T) {
	p, err := bench.DecodePlan(strings.NewReader(planTOML))
	require.NoError(t, err)
	r := quietRunner()

	a, err := r.Samples(t.Context(), p)
	require.NoError(t, err)
	p.MaxParallel = 1
	b, err := r.Samples(t.Context(), p)
	require.NoError(t, err)

	require.Len(t, a, 6)
	require.Len(t, b, len(a))
	for i := range 4 {
		require.Equal(t, "tiny", a[i].Case)
		require.Equal(t, i, a[i].Repeat)
		require.Equal(t, int64(100+i), a[i].Seed)
	}
	for i := range a {
		require.Equal(t, a[i].Case, b[i].Case)
		require.Equal(t, a[i].Repeat, b[i].Repeat)
		require.Equal(t, a[i].Report.Shortest.TSResult, b[i].Report.Shortest.TSResult)
	}
}

// TestRunner_ZeroSeedRepeatsDiffer checks that an omitted seed still gives
// every repeat its own instance.
func TestRunner_ZeroSeedRepeatsDiffer(t *testing.T) {
	p := &bench.Plan{Cases: []bench.Case{{Name: "unseeded", Cities: 6, Ants: 3, Iterations: 2, Repeats: 3}}}

	samples, err := quietRunner().Samples(t.Context(), p)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	for i, s := range samples {
		require.Equal(t, int64(1+i), s.Seed)
		require.Equal(t, s.Seed, s.Report.Seed)
	}
	require.NotEqual(t, samples[0].Report.Cities, samples[1].Report.Cities)
	require.NotEqual(t, samples[1].Report.Cities, samples[2].Report.Cities)
}

func TestRunner_Cancelled(t *testing.T) {
	p, err := bench.DecodePlan(strings.NewReader(planTOML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = quietRunner().Run(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	recs := []bench.Record{{
		Case: "tiny", Method: tsp.MethodACO, Cities: 5, Ants: 4, Iterations: 10, Runs: 2,
		Computed: 2, Wins: 1, LengthBest: 40, LengthMean: 41.5, LengthStd: 2.121320,
		TimeBestMs: 0.5, TimeMeanMs: 0.75, TimeStdMs: 0.25,
	}}

	var buf bytes.Buffer
	require.NoError(t, bench.WriteCSV(&buf, recs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "case", rows[0][0])
	require.Equal(t, []string{
		"tiny", "ACO", "5", "4", "10", "2", "2", "1",
		"40.000000", "41.500000", "2.121320",
		"0.500000", "0.750000", "0.250000",
	}, rows[1])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, bench.WriteCSVFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "case,method,"))
}

func TestCollectHost(t *testing.T) {
	hi, err := bench.CollectHost()
	if err != nil {
		t.Skipf("host facts unavailable: %v", err)
	}
	require.NotEmpty(t, hi.GoVersion)
	require.Positive(t, hi.GOMAXPROCS)
	require.NotEmpty(t, hi.LogArgs())
}
