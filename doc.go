// Package tspcompare compares three ways of touring random cities: an ant
// colony optimizer, the nearest-neighbour heuristic and exhaustive search.
//
// 🚀 What is inside?
//
//	• matrix/  - row-major Dense storage, sentinel errors, metric validators
//	• tsp/     - cities, distance matrix, pheromone field, the three solvers
//	             and the aggregator that picks the shortest tour
//	• engine/  - one seeded comparison run, solvers fanned out concurrently
//	• server/  - gin adapter: POST /run_aco, GET /metrics, GET /healthz
//	• bench/   - repeated seeded runs from a TOML plan, CSV summaries
//	• config/, logging/, metrics/ - viper, slog + lumberjack, Prometheus
//
// ✨ Guarantees
//
//   - Deterministic: a seed fixes the cities and every ant's random stream,
//     independent of how many goroutines construct tours.
//   - Sentinel errors: every failure matches with errors.Is.
//   - Exhaustive search is capped (10 cities by default) and cancellable.
//
// Quick start:
//
//	go run ./cmd/tspcompare run --cities 8 --ants 10 --iterations 50 --seed 1
//	go run ./cmd/tspcompare serve --addr :8080
package tspcompare
