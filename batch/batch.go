// Package batch solves many scrambled instances in a row and reports how
// the heuristics compare. Each instance is still searched single-threaded;
// the batch only parallelizes across independent instances.
package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/tilelab/taquin/heuristic"
	"github.com/tilelab/taquin/scramble"
	"github.com/tilelab/taquin/solver"
	"github.com/tilelab/taquin/stats"
	"github.com/tilelab/taquin/tiles"
)

// Options configures a batch run.
type Options struct {
	Dim           int
	Count         int
	ScrambleSteps int
	Heuristics    []heuristic.Kind
	Threads       int
	MaxIterations uint64
}

// HeuristicReport aggregates one heuristic's runs over the whole batch.
type HeuristicReport struct {
	Kind     heuristic.Kind
	Nodes    stats.Running
	Length   stats.Running
	Elapsed  stats.Running
	rawNodes []float64
}

// Report is the outcome of a batch run. Every heuristic solves the same
// instances, so the per-heuristic numbers are directly comparable.
type Report struct {
	Options Options
	Results []HeuristicReport
}

// Run scrambles Count instances of the given dimension and solves each one
// with every requested heuristic.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("batch count must be positive, got %d", opts.Count)
	}
	if len(opts.Heuristics) == 0 {
		opts.Heuristics = []heuristic.Kind{heuristic.Manhattan, heuristic.Misplaced}
	}
	if opts.Threads <= 0 {
		opts.Threads = 1
	}
	goal, err := tiles.Canonical(opts.Dim)
	if err != nil {
		return nil, err
	}

	instances := make([]tiles.Grid, opts.Count)
	for i := range instances {
		instances[i] = scramble.Walk(goal, opts.ScrambleSteps)
	}
	log.Debug().Int("count", opts.Count).Int("dim", opts.Dim).
		Int("steps", opts.ScrambleSteps).Int("threads", opts.Threads).
		Msg("batch-starting")

	// results[k][i] is heuristic k's solve of instance i; each goroutine
	// writes only its own cell, so no locking is needed.
	results := make([][]solver.Result, len(opts.Heuristics))
	for k := range results {
		results[k] = make([]solver.Result, opts.Count)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)
	for k, kind := range opts.Heuristics {
		k, kind := k, kind
		for i, inst := range instances {
			i, inst := i, inst
			g.Go(func() error {
				s := solver.New(kind)
				s.SetMaxIterations(opts.MaxIterations)
				res, err := s.Solve(gctx, inst, goal)
				if err != nil {
					return fmt.Errorf("instance %d (%s): %w", i, kind, err)
				}
				results[k][i] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Options: opts}
	for k, kind := range opts.Heuristics {
		hr := HeuristicReport{Kind: kind}
		for _, res := range results[k] {
			hr.Nodes.Push(float64(res.NodesExpanded))
			hr.Length.Push(float64(res.PathLength))
			hr.Elapsed.Push(res.Elapsed.Seconds())
		}
		hr.rawNodes = lo.Map(results[k], func(r solver.Result, _ int) float64 {
			return float64(r.NodesExpanded)
		})
		rep.Results = append(rep.Results, hr)
	}
	return rep, nil
}

// Fprint renders the per-heuristic comparison and a histogram of nodes
// expanded for each heuristic.
func (r *Report) Fprint(w io.Writer) error {
	fmt.Fprintf(w, "batch: %d instances, %dx%d, %d scramble steps\n\n",
		r.Options.Count, r.Options.Dim, r.Options.Dim, r.Options.ScrambleSteps)
	for _, hr := range r.Results {
		fmt.Fprintf(w, "%-10s  length mean %.1f (min %.0f max %.0f)  nodes mean %.1f ± %.1f (max %.0f)\n",
			hr.Kind, hr.Length.Mean(), hr.Length.Min(), hr.Length.Max(),
			hr.Nodes.Mean(), hr.Nodes.Stdev(), hr.Nodes.Max())
	}
	for _, hr := range r.Results {
		fmt.Fprintf(w, "\nnodes expanded (%s):\n", hr.Kind)
		hist := histogram.Hist(9, hr.rawNodes)
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return err
		}
	}
	return nil
}
