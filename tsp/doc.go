// Package tsp compares heuristic and exact solvers for the Euclidean
// Travelling Salesman Problem on a symmetric distance matrix.
//
// Solvers:
//
//   - AntColony: Ant Colony Optimization. Each round every ant builds a tour
//     by roulette-wheel sampling over τ^α·(1/(d+ε))^β, then trails evaporate
//     and every ant deposits 1/L on its edges.
//
//   - Complexity: O(iterations · ants · n²)
//
//   - NearestNeighbor: greedy walk to the closest unvisited city, ties toward
//     the lowest index.
//
//   - Complexity: O(n²)
//
//   - Exhaustive: brute force over the (n-1)! orderings with city 0 fixed,
//     guarded by a size limit (DefaultExhaustiveLimit) and ctx cancellation.
//
//   - Complexity: O((n-1)! · n)
//
// SelectBest picks the shortest computed result, breaking ties in the fixed
// order ACO, Nearest Neighbor, Exhaustive Search.
//
// Tours are open permutations of 0..n-1 read as cycles. Lengths are rounded
// to 1e-9 so that the same cycle compares equal regardless of rotation or
// direction.
//
// Randomness always comes from an explicit *rand.Rand (see NewRand); the
// package has no global state and does not log.
package tsp
