package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspcompare/tsp"
)

func cand(m tsp.Method, l float64) tsp.Candidate {
	return tsp.Candidate{Method: m, TSResult: tsp.TSResult{Tour: []int{0}, Length: l}, Computed: true}
}

func TestSelectBest_TourIsCopied(t *testing.T) {
	winner := tsp.Candidate{Method: tsp.MethodNearestNeighbor, TSResult: tsp.TSResult{Tour: []int{0, 2, 1}, Length: 3}, Computed: true}
	got, err := tsp.SelectBest(cand(tsp.MethodACO, 5), winner)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 1}, got.Tour)

	got.Tour[1] = 9
	require.Equal(t, []int{0, 2, 1}, winner.Tour)
}

func TestSelectBest(t *testing.T) {
	cases := []struct {
		name  string
		cands []tsp.Candidate
		want  tsp.Method
	}{
		{
			name:  "strict minimum",
			cands: []tsp.Candidate{cand(tsp.MethodACO, 30), cand(tsp.MethodNearestNeighbor, 25), cand(tsp.MethodExhaustive, 20)},
			want:  tsp.MethodExhaustive,
		},
		{
			name:  "three-way tie goes to ACO",
			cands: []tsp.Candidate{cand(tsp.MethodACO, 40), cand(tsp.MethodNearestNeighbor, 40), cand(tsp.MethodExhaustive, 40)},
			want:  tsp.MethodACO,
		},
		{
			name:  "tie between NN and exhaustive goes to NN",
			cands: []tsp.Candidate{cand(tsp.MethodACO, 41), cand(tsp.MethodNearestNeighbor, 40), cand(tsp.MethodExhaustive, 40)},
			want:  tsp.MethodNearestNeighbor,
		},
		{
			name:  "argument order does not matter",
			cands: []tsp.Candidate{cand(tsp.MethodExhaustive, 40), cand(tsp.MethodNearestNeighbor, 40), cand(tsp.MethodACO, 40)},
			want:  tsp.MethodACO,
		},
		{
			name: "non-computed skipped",
			cands: []tsp.Candidate{
				cand(tsp.MethodACO, 50),
				cand(tsp.MethodNearestNeighbor, 45),
				{Method: tsp.MethodExhaustive},
			},
			want: tsp.MethodNearestNeighbor,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tsp.SelectBest(tc.cands...)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Method)
			for _, c := range tc.cands {
				if c.Computed {
					require.LessOrEqual(t, got.Length, c.Length)
				}
			}
		})
	}
}

func TestSelectBest_Errors(t *testing.T) {
	_, err := tsp.SelectBest()
	require.ErrorIs(t, err, tsp.ErrNoCandidate)

	_, err = tsp.SelectBest(tsp.Candidate{Method: tsp.MethodACO})
	require.ErrorIs(t, err, tsp.ErrNoCandidate)

	_, err = tsp.SelectBest(cand(tsp.MethodACO, math.NaN()))
	require.ErrorIs(t, err, tsp.ErrInvalidParameter)
}
