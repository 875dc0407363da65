package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/haze/config"
	"github.com/katalvlaran/haze/explorer"
	"github.com/katalvlaran/haze/metrics"
	"github.com/katalvlaran/haze/section"
)

type exploreFlags struct {
	runs          int
	mode          string
	seed          int64
	maxSections   int
	maxLayers     int
	maxDepth      int
	steps         int
	workers       int
	progressEvery int
	timeout       time.Duration
	metricsOut    string
}

func newExploreCmd(a *app) *cobra.Command {
	var f exploreFlags

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Send explorers into the labyrinth and report what they found",
		Long: `Each run starts from the configured origin (first run only) or from a
random section and explores breadth-first, depth-first or by a random
walk until the labyrinth is exhausted or a limit is reached, then prints
its statistics.

Examples:
  haze explore                         # 10 breadth-first runs, 1M sections each
  haze explore --runs 1 --mode dfs --max-depth 40
  haze explore --mode meander --steps 50000 --seed 7
  haze explore --workers 8 --metrics-out haze.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, &a.cfg)
			if err := a.validate(); err != nil {
				return err
			}
			return a.explore(cmd.Context(), f.metricsOut)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.runs, "runs", "n", 0, "number of explorers")
	fl.StringVarP(&f.mode, "mode", "m", "", "exploration mode: bfs, dfs or meander")
	fl.Int64Var(&f.seed, "seed", 0, "random seed for origins and meandering (0 = clock)")
	fl.IntVar(&f.maxSections, "max-sections", 0, "stop once this many sections are known (0 = no limit)")
	fl.IntVar(&f.maxLayers, "max-layers", 0, "stop breadth-first runs after this many layers (0 = no limit)")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "depth-first depth bound")
	fl.IntVar(&f.steps, "steps", 0, "meander step count")
	fl.IntVarP(&f.workers, "workers", "w", 0, "goroutines per breadth-first layer")
	fl.IntVar(&f.progressEvery, "progress-every", 0, "print a progress dot every N sections (terminal only)")
	fl.DurationVar(&f.timeout, "timeout", 0, "overall time limit (0 = none)")
	fl.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics to this file when done")

	return cmd
}

// apply copies every flag the user set into cfg.
func (f *exploreFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	e := &cfg.Explore
	if fl.Changed("runs") {
		e.Runs = f.runs
	}
	if fl.Changed("mode") {
		e.Mode = config.Mode(f.mode)
	}
	if fl.Changed("seed") {
		e.Seed = f.seed
	}
	if fl.Changed("max-sections") {
		e.MaxSections = f.maxSections
	}
	if fl.Changed("max-layers") {
		e.MaxLayers = f.maxLayers
	}
	if fl.Changed("max-depth") {
		e.MaxDepth = f.maxDepth
	}
	if fl.Changed("steps") {
		e.Steps = f.steps
	}
	if fl.Changed("workers") {
		e.Workers = f.workers
	}
	if fl.Changed("progress-every") {
		e.ProgressEvery = f.progressEvery
	}
	if fl.Changed("timeout") {
		e.Timeout = f.timeout
	}
}

func (a *app) explore(ctx context.Context, metricsOut string) error {
	cfg := a.cfg
	sp, err := cfg.Space()
	if err != nil {
		return err
	}

	if cfg.Explore.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Explore.Timeout)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	col, err := metrics.New(reg)
	if err != nil {
		return err
	}

	rng, seed := cfg.Rand()
	a.log.Info("haze explore",
		slog.String("mode", string(cfg.Explore.Mode)),
		slog.Int("runs", cfg.Explore.Runs),
		slog.Int64("seed", seed),
		slog.Int("ring_size", sp.Size()),
		slog.String("mask", fmt.Sprintf("%#x", sp.Mask())),
	)

	runErr := a.runAll(ctx, sp, rng, col)

	if metricsOut != "" {
		if err := prometheus.WriteToTextfile(metricsOut, reg); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
	}

	return runErr
}

func (a *app) runAll(ctx context.Context, sp *section.Space, rng *rand.Rand, col *metrics.Collector) error {
	cfg := a.cfg
	for run := 0; run < cfg.Explore.Runs; run++ {
		origin, err := cfg.Origin(sp, rng, run)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Explorer #%d sets out from %v...", run+1, origin)

		opts := append(cfg.ExplorerOptions(),
			explorer.WithLogger(a.log.With(slog.Int("run", run+1))),
			explorer.WithRecorder(col),
		)
		if a.tty {
			opts = append(opts, explorer.WithOnProgress(func(int) { fmt.Fprint(a.out, ".") }))
		}
		e, err := explorer.New(sp, origin, opts...)
		if err != nil {
			return err
		}

		st, err := a.runOne(ctx, e, rng)
		fmt.Fprint(a.out, "\n    ...done.\n")
		writeStats(a.out, st)
		fmt.Fprintln(a.out)

		switch {
		case errors.Is(err, context.DeadlineExceeded):
			a.log.Warn("time limit reached", slog.Int("run", run+1))
			return nil
		case err != nil:
			return err
		}
	}

	return nil
}

// runOne drives e according to the configured mode.
func (a *app) runOne(ctx context.Context, e *explorer.Explorer, rng *rand.Rand) (explorer.Stats, error) {
	switch a.cfg.Explore.Mode {
	case config.ModeDFS:
		err := e.ExploreDepthFirst(ctx, e.Origin(), a.cfg.Explore.MaxDepth)
		return e.Stats(), err
	case config.ModeMeander:
		err := e.Meander(ctx, rng, a.cfg.Explore.Steps)
		return e.Stats(), err
	default:
		return e.Run(ctx)
	}
}

// writeStats prints st as the two-column statistics block.
func writeStats(w io.Writer, st explorer.Stats) {
	fmt.Fprintf(w, "  Explored:   %7d    Dead Ends:  %7d    Doors:      %7d\n", st.Sections, st.DeadEnds, st.Doors)
	fmt.Fprintf(w, "  Unexplored: %7d    Hallways:   %7d    Walls:      %7d\n", st.Frontier, st.Hallways, st.Walls)
	fmt.Fprintf(w, "  Retraced:   %7d    Three-Ways: %7d    Layers:     %7d\n", st.Retraced, st.ThreeWays, st.Layers)
	fmt.Fprintf(w, "  Max Depth:  %7d    Four-Ways:  %7d    Halted:     %7s\n", st.MaxDepth, st.FourWays, st.HaltReason)
}
