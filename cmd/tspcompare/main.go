// Command tspcompare compares ant colony optimization, nearest neighbour and
// exhaustive search on random Euclidean TSP instances.
//
// Usage:
//
//	tspcompare run   --cities N --ants A --iterations I [--seed S]
//	tspcompare serve [--config file] [--addr :8080]
//	tspcompare bench --plan plan.toml [--out results.csv]
//
// Every subcommand accepts --config and the shared engine and logging flags;
// TSPCOMPARE_* environment variables override the file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/tspcompare/bench"
	"github.com/katalvlaran/tspcompare/config"
	"github.com/katalvlaran/tspcompare/engine"
	"github.com/katalvlaran/tspcompare/logging"
	"github.com/katalvlaran/tspcompare/metrics"
	"github.com/katalvlaran/tspcompare/server"
)

const usage = `usage: tspcompare <command> [flags]

commands:
  run     run one comparison and print the report as JSON
  serve   serve POST /run_aco, /metrics and /healthz
  bench   run a TOML benchmark plan and write a CSV summary
`

// errUsage marks command-line mistakes; they exit with status 2.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "run":
		err = runCmd(ctx, args[1:], stdout, stderr)
	case "serve":
		err = serveCmd(ctx, args[1:], stderr)
	case "bench":
		err = benchCmd(ctx, args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usage)
		return 2
	default:
		fmt.Fprintln(stderr, "tspcompare:", err)
		return 1
	}
}

// newFlagSet registers the flags config.Load binds into the configuration.
func newFlagSet(name string, stderr io.Writer) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "configuration file (toml, yaml or json)")
	fs.String("log-level", "info", "log level: debug|info|warn|error")
	fs.String("log-format", "json", "log format: json|text")
	fs.String("log-file", "", "rotate logs into this file")
	fs.Int("exhaustive-limit", 10, "largest instance solved by exhaustive search")
	fs.Int("workers", 1, "ACO construction goroutines per run")
	fs.Int("max-cities", 500, "largest accepted instance")
	return fs, cfgPath
}

func parse(fs *pflag.FlagSet, cfgPath *string, args []string) (*config.Config, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	return config.Load(*cfgPath, fs)
}

func newEngine(cfg *config.Config, logger *slog.Logger, opts ...engine.Option) *engine.Engine {
	opts = append([]engine.Option{
		engine.WithLogger(logger),
		engine.WithMaxCities(cfg.Engine.MaxCities),
	}, opts...)
	return engine.New(opts...)
}

func runCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlagSet("run", stderr)
	var (
		cities     = fs.Int("cities", 0, "number of random cities (required)")
		ants       = fs.Int("ants", 0, "ants per iteration (required)")
		iterations = fs.Int("iterations", 0, "ACO iterations")
		seed       = fs.Int64("seed", 0, "instance and colony seed; 0 uses the default stream")
	)
	cfg, err := parse(fs, cfgPath, args)
	if err != nil {
		return err
	}
	// Logs go to stderr so stdout carries only the report.
	logger := logging.NewWithWriter(cfg.Log, stderr)

	rep, err := newEngine(cfg, logger).Run(ctx, engine.Params{
		NumCities:       *cities,
		NumAnts:         *ants,
		NumIterations:   *iterations,
		Seed:            *seed,
		ExhaustiveLimit: cfg.Engine.ExhaustiveLimit,
		Workers:         cfg.Engine.Workers,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func serveCmd(ctx context.Context, args []string, stderr io.Writer) error {
	fs, cfgPath := newFlagSet("serve", stderr)
	fs.String("addr", ":8080", "listen address")
	cfg, err := parse(fs, cfgPath, args)
	if err != nil {
		return err
	}

	logger, closer := logging.New(cfg.Log)
	defer closer.Close()

	m := metrics.New()
	eng := newEngine(cfg, logger, engine.WithObserver(m))
	srv := server.New(cfg, eng, m, logger)
	if err = srv.Start(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

func benchCmd(ctx context.Context, args []string, stderr io.Writer) error {
	fs, cfgPath := newFlagSet("bench", stderr)
	var (
		planPath = fs.String("plan", "", "benchmark plan file (required)")
		out      = fs.String("out", "artifacts/results.csv", "CSV output path")
	)
	cfg, err := parse(fs, cfgPath, args)
	if err != nil {
		return err
	}
	if *planPath == "" {
		return fmt.Errorf("%w: --plan is required", errUsage)
	}
	logger := logging.NewWithWriter(cfg.Log, stderr)

	plan, err := bench.LoadPlan(*planPath)
	if err != nil {
		return err
	}
	if plan.ExhaustiveLimit == 0 {
		plan.ExhaustiveLimit = cfg.Engine.ExhaustiveLimit
	}
	if plan.Workers == 0 {
		plan.Workers = cfg.Engine.Workers
	}

	if hi, herr := bench.CollectHost(); herr != nil {
		logger.Warn("host facts unavailable", "error", herr)
	} else {
		logger.Info("bench host", hi.LogArgs()...)
	}

	// Bench runs stay quiet per run; the runner logs the plan summary.
	quiet := slog.New(slog.DiscardHandler)
	records, err := bench.NewRunner(newEngine(cfg, quiet), logger).Run(ctx, plan)
	if err != nil {
		return err
	}
	if err = bench.WriteCSVFile(*out, records); err != nil {
		return err
	}
	logger.Info("bench results written", "path", *out, "records", len(records))
	return nil
}
