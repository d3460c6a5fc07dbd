// Package solver runs A* over sliding-tile configurations. With the default
// Manhattan heuristic the first time the goal leaves the frontier its
// recorded path cost is the true shortest solution length, so Solve always
// returns an optimal answer on solvable instances.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tilelab/taquin/heuristic"
	"github.com/tilelab/taquin/tiles"
)

var (
	// ErrUnsolvable means the initial grid's parity does not match the
	// goal's; no search is attempted.
	ErrUnsolvable = errors.New("puzzle is not solvable")
	// ErrExhausted means the frontier emptied before the goal was reached.
	// Inputs that pass the parity check cannot trigger this; seeing it
	// indicates an internal inconsistency.
	ErrExhausted = errors.New("search exhausted without reaching the goal")
	// ErrTimeout means the context was cancelled or the iteration cutoff
	// was hit. The caller may retry with a larger budget.
	ErrTimeout = errors.New("search cutoff reached")
)

// Result reports a finished search. Counters are carried here rather than in
// any global state, so concurrent solves on separate Solvers never interfere.
type Result struct {
	// PathLength is the optimal number of slides; len(Moves) always equals it.
	PathLength int
	// Moves is the solution, in order from the initial grid to the goal.
	Moves          []tiles.Action
	NodesExpanded  uint64
	NodesGenerated uint64
	MaxFrontier    int
	Elapsed        time.Duration
}

// Solver holds per-search configuration. A zero Solver searches with the
// Manhattan heuristic and no iteration cutoff; a Solver must not be shared
// by concurrent Solve calls.
type Solver struct {
	heur     heuristic.Kind
	maxIters uint64

	nodes atomic.Uint64
}

// New returns a Solver using the given heuristic.
func New(kind heuristic.Kind) *Solver {
	return &Solver{heur: kind}
}

// SetMaxIterations bounds the number of expansion iterations; 0 means
// unbounded. Exceeding the bound surfaces as ErrTimeout.
func (s *Solver) SetMaxIterations(n uint64) { s.maxIters = n }

// Heuristic returns the configured heuristic kind.
func (s *Solver) Heuristic() heuristic.Kind { return s.heur }

// Solve searches for a shortest slide sequence from initial to goal. It
// fails fast with ErrUnsolvable on a parity mismatch, before any frontier
// operation. Cancellation of ctx is checked once per expansion.
func (s *Solver) Solve(ctx context.Context, initial, goal tiles.Grid) (Result, error) {
	if initial.Dim() != goal.Dim() {
		return Result{}, fmt.Errorf("%w: initial is %dx%d but goal is %dx%d",
			tiles.ErrInvalidGrid, initial.Dim(), initial.Dim(), goal.Dim(), goal.Dim())
	}
	if !tiles.Solvable(initial, goal) {
		return Result{}, fmt.Errorf("%w: parity mismatch between initial %d and goal %d",
			ErrUnsolvable, initial.Hash(), goal.Hash())
	}
	log.Debug().
		Str("heuristic", s.heur.String()).
		Uint64("max-iterations", s.maxIters).
		Uint64("initial", initial.Hash()).
		Msg("astar-solve-config")

	tstart := time.Now()
	s.nodes.Store(0)

	var res Result
	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	var searchErr error
	g.Go(func() error {
		res, searchErr = s.search(ctx, initial, goal)
		done <- true
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	res.Elapsed = time.Since(tstart)
	if searchErr != nil {
		return res, searchErr
	}
	log.Info().
		Int("path-length", res.PathLength).
		Uint64("nodes-expanded", res.NodesExpanded).
		Uint64("nodes-generated", res.NodesGenerated).
		Int("max-frontier", res.MaxFrontier).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

// search is the single-threaded A* loop. The frontier and score tables are
// inherently sequential (every decision hangs off the global minimum-f
// state), so there is nothing to parallelize here.
func (s *Solver) search(ctx context.Context, initial, goal tiles.Grid) (Result, error) {
	fr := newFrontier()
	fr.improve(initial, nil, tiles.Action{}, 0, int32(heuristic.Estimate(s.heur, initial, goal)))

	var generated uint64
	for fr.len() > 0 {
		if err := ctx.Err(); err != nil {
			return s.partial(fr, generated), fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if s.maxIters > 0 && s.nodes.Load() >= s.maxIters {
			return s.partial(fr, generated), fmt.Errorf("%w: %d iterations", ErrTimeout, s.maxIters)
		}

		current := fr.popMin()
		fr.markClosed(current)
		s.nodes.Add(1)

		if current.state.IsGoal(goal) {
			return Result{
				PathLength:     int(current.g),
				Moves:          reconstruct(current),
				NodesExpanded:  s.nodes.Load(),
				NodesGenerated: generated,
				MaxFrontier:    fr.maxLen,
			}, nil
		}

		tentative := current.g + 1 // every slide costs exactly 1
		for _, act := range current.state.Actions() {
			succ, err := current.state.Apply(act)
			if err != nil {
				// Actions only emits legal moves.
				return Result{}, err
			}
			generated++
			if tentative >= fr.bestG(succ) {
				continue
			}
			h := int32(heuristic.Estimate(s.heur, succ, goal))
			fr.improve(succ, current, act, tentative, h)
		}
	}
	return s.partial(fr, generated), ErrExhausted
}

func (s *Solver) partial(fr *frontier, generated uint64) Result {
	return Result{
		PathLength:     -1,
		NodesExpanded:  s.nodes.Load(),
		NodesGenerated: generated,
		MaxFrontier:    fr.maxLen,
	}
}

// reconstruct walks parent links from the goal node back to the start and
// returns the actions in forward order.
func reconstruct(n *node) []tiles.Action {
	moves := make([]tiles.Action, n.g)
	for i := int(n.g) - 1; i >= 0; i-- {
		moves[i] = n.via
		n = n.parent
	}
	return moves
}
