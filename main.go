package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tilelab/taquin/batch"
	"github.com/tilelab/taquin/config"
	"github.com/tilelab/taquin/heuristic"
	"github.com/tilelab/taquin/shell"
	"github.com/tilelab/taquin/solver"
	"github.com/tilelab/taquin/tiles"
)

var (
	puzzleFlag    = flag.String("puzzle", "", `puzzle to solve, rows separated by slashes, e.g. "1 2 3/4 5 0/7 8 6"`)
	goalFlag      = flag.String("goal", "", "goal position; defaults to the ascending arrangement")
	heuristicFlag = flag.String("heuristic", "", "heuristic to use: manhattan or misplaced")
	batchFlag     = flag.Int("batch", 0, "solve this many scrambled instances and compare heuristics")
	debugFlag     = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *heuristicFlag != "" {
		cfg.Heuristic = *heuristicFlag
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	switch {
	case *puzzleFlag != "":
		os.Exit(solveOnce(cfg, *puzzleFlag, *goalFlag))
	case *batchFlag > 0:
		if err := runBatch(cfg, *batchFlag); err != nil {
			log.Error().Err(err).Msg("batch failed")
			os.Exit(1)
		}
	default:
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		sc := shell.NewShellController(cfg)
		go sc.Loop(sig)
		<-sig
		log.Info().Msg("bye")
	}
}

func solveOnce(cfg *config.Config, puzzleStr, goalStr string) int {
	initial, err := tiles.Parse(puzzleStr)
	if err != nil {
		log.Error().Err(err).Msg("bad puzzle")
		return 1
	}
	goal, err := tiles.Canonical(initial.Dim())
	if err != nil {
		log.Error().Err(err).Msg("bad puzzle")
		return 1
	}
	if goalStr != "" {
		if goal, err = tiles.Parse(goalStr); err != nil {
			log.Error().Err(err).Msg("bad goal")
			return 1
		}
	}
	heur, err := heuristic.ParseKind(cfg.Heuristic)
	if err != nil {
		log.Error().Err(err).Msg("bad heuristic")
		return 1
	}

	ctx := context.Background()
	if cfg.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SolveTimeout)
		defer cancel()
	}
	s := solver.New(heur)
	s.SetMaxIterations(cfg.MaxIterations)
	res, err := s.Solve(ctx, initial, goal)
	switch {
	case errors.Is(err, solver.ErrTimeout):
		log.Error().Err(err).Msg("gave up")
		return 2
	case err != nil:
		log.Error().Err(err).Msg("cannot solve")
		return 1
	}

	moves := make([]string, len(res.Moves))
	for i, m := range res.Moves {
		moves[i] = m.String()
	}
	fmt.Printf("optimal solution: %d moves, %d nodes expanded\n%s\n",
		res.PathLength, res.NodesExpanded, strings.Join(moves, " "))
	return 0
}

func runBatch(cfg *config.Config, count int) error {
	heur, err := heuristic.ParseKind(cfg.Heuristic)
	if err != nil {
		return err
	}
	kinds := []heuristic.Kind{heuristic.Manhattan, heuristic.Misplaced}
	if heur == heuristic.Misplaced {
		kinds = []heuristic.Kind{heuristic.Misplaced, heuristic.Manhattan}
	}
	rep, err := batch.Run(context.Background(), batch.Options{
		Dim:           cfg.Dim,
		Count:         count,
		ScrambleSteps: cfg.ScrambleSteps,
		Heuristics:    kinds,
		Threads:       cfg.Threads,
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		return err
	}
	return rep.Fprint(os.Stdout)
}
