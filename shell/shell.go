// Package shell is the interactive front end: a readline loop that keeps a
// current puzzle, scrambles it, solves it, and replays solutions.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/tilelab/taquin/batch"
	"github.com/tilelab/taquin/config"
	"github.com/tilelab/taquin/heuristic"
	"github.com/tilelab/taquin/scramble"
	"github.com/tilelab/taquin/solver"
	"github.com/tilelab/taquin/tiles"
)

const helpText = `commands:
new [n] - reset to the n x n goal position (default from config)
scramble [steps] - scramble the current puzzle with a random walk
random - jump to a uniformly random solvable position
show - print the current puzzle
heuristic <manhattan|misplaced> - select the estimator
solve - find a shortest solution for the current puzzle
replay - step through the last solution, printing each position
batch [k] - solve k scrambled instances and compare heuristics
help - this message
exit - leave the shell
`

type ShellController struct {
	l      *readline.Instance
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer

	cur  tiles.Grid
	goal tiles.Grid
	heur heuristic.Kind

	lastStart tiles.Grid
	lastMoves []tiles.Action
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtaquin>\033[0m ",
		HistoryFile:     "/tmp/taquin-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	heur, err := heuristic.ParseKind(cfg.Heuristic)
	if err != nil {
		heur = heuristic.Manhattan
	}
	goal, err := tiles.Canonical(cfg.Dim)
	if err != nil {
		panic(err)
	}
	return &ShellController{
		l: l, cfg: cfg, out: l.Stdout(), errOut: l.Stderr(),
		cur: goal, goal: goal, heur: heur,
	}
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.errOut)
}

// Execute runs one command line. Split out from the loop so it can be
// tested without a terminal.
func (sc *ShellController) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "new":
		dim := sc.cfg.Dim
		if len(fields) > 1 {
			d, err := strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			dim = d
		}
		goal, err := tiles.Canonical(dim)
		if err != nil {
			return err
		}
		sc.goal = goal
		sc.cur = goal
		sc.lastMoves = nil
		showMessage(sc.cur.String(), sc.out)

	case "scramble":
		steps := sc.cfg.ScrambleSteps
		if len(fields) > 1 {
			s, err := strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			steps = s
		}
		sc.cur = scramble.Walk(sc.cur, steps)
		sc.lastMoves = nil
		showMessage(sc.cur.String(), sc.out)

	case "random":
		g, err := scramble.Random(sc.goal.Dim())
		if err != nil {
			return err
		}
		sc.cur = g
		sc.lastMoves = nil
		showMessage(sc.cur.String(), sc.out)

	case "show":
		showMessage(sc.cur.String(), sc.out)

	case "heuristic":
		if len(fields) < 2 {
			return fmt.Errorf("heuristic needs a name, one of: %s",
				strings.Join(lo.Map([]heuristic.Kind{heuristic.Manhattan, heuristic.Misplaced},
					func(k heuristic.Kind, _ int) string { return k.String() }), ", "))
		}
		k, err := heuristic.ParseKind(fields[1])
		if err != nil {
			return err
		}
		sc.heur = k
		showMessage("heuristic set to "+k.String(), sc.out)

	case "solve":
		ctx := context.Background()
		if sc.cfg.SolveTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, sc.cfg.SolveTimeout)
			defer cancel()
		}
		s := solver.New(sc.heur)
		s.SetMaxIterations(sc.cfg.MaxIterations)
		res, err := s.Solve(ctx, sc.cur, sc.goal)
		if err != nil {
			return err
		}
		sc.lastStart = sc.cur
		sc.lastMoves = res.Moves
		showMessage(fmt.Sprintf("solved in %d moves; %d nodes expanded in %.2fs",
			res.PathLength, res.NodesExpanded, res.Elapsed.Seconds()), sc.out)

	case "replay":
		if sc.lastMoves == nil {
			return fmt.Errorf("nothing to replay; run solve first")
		}
		g := sc.lastStart
		showMessage(g.String(), sc.out)
		for i, act := range sc.lastMoves {
			next, err := g.Apply(act)
			if err != nil {
				return err
			}
			g = next
			showMessage(fmt.Sprintf("move %d: %s\n%s", i+1, act, g), sc.out)
		}

	case "batch":
		count := sc.cfg.BatchSize
		if len(fields) > 1 {
			c, err := strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			count = c
		}
		rep, err := batch.Run(context.Background(), batch.Options{
			Dim:           sc.goal.Dim(),
			Count:         count,
			ScrambleSteps: sc.cfg.ScrambleSteps,
			Threads:       sc.cfg.Threads,
			MaxIterations: sc.cfg.MaxIterations,
		})
		if err != nil {
			return err
		}
		if err := rep.Fprint(sc.out); err != nil {
			return err
		}

	case "help":
		showMessage(helpText, sc.out)

	default:
		return fmt.Errorf("unknown command %q; try help", fields[0])
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.Execute(line); err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop")
}
