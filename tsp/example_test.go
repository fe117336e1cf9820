// Package tsp_test provides runnable, deterministic examples. Each one prints
// a stable // Output: block.
package tsp_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tspcompare/tsp"
)

// ExampleNearestNeighbor walks the corners of a 10×10 square.
func ExampleNearestNeighbor() {
	cities := []tsp.City{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	dist, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := tsp.NearestNeighbor(dist, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(tsp.DebugString(res.Tour), res.Length)
	// Output: [0 1 2 3 | 0] 40
}

// ExampleSelectBest compares three solvers on the same square; every method
// finds the perimeter and the tie goes to ACO.
func ExampleSelectBest() {
	cities := []tsp.City{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	dist, _ := tsp.NewDistanceMatrix(cities)

	colony, _ := tsp.NewAntColony(dist, tsp.DefaultACOConfig(10, 20), tsp.NewRand(7))
	aco, _ := colony.Solve(context.Background())
	nn, _ := tsp.NearestNeighbor(dist, 0)
	ex, _ := tsp.Exhaustive(context.Background(), dist, tsp.DefaultExhaustiveLimit)

	best, err := tsp.SelectBest(
		tsp.Candidate{Method: tsp.MethodExhaustive, TSResult: ex, Computed: true},
		tsp.Candidate{Method: tsp.MethodNearestNeighbor, TSResult: nn, Computed: true},
		tsp.Candidate{Method: tsp.MethodACO, TSResult: aco.TSResult, Computed: aco.Computed},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s %.1f\n", best.Method, best.Length)
	// Output: ACO 40.0
}

// ExampleExhaustive shows the size guard.
func ExampleExhaustive() {
	cities, _ := tsp.RandomCities(12, tsp.NewRand(1))
	dist, _ := tsp.NewDistanceMatrix(cities)

	_, err := tsp.Exhaustive(context.Background(), dist, tsp.DefaultExhaustiveLimit)
	fmt.Println(err)
	// Output: Exhaustive: n=12 limit=10: tsp: instance exceeds exhaustive search limit
}
