package solver

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/tilelab/taquin/heuristic"
	"github.com/tilelab/taquin/scramble"
	"github.com/tilelab/taquin/tiles"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, s string) tiles.Grid {
	t.Helper()
	g, err := tiles.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestAlreadySolved(t *testing.T) {
	is := is.New(t)
	goal, err := tiles.Canonical(3)
	is.NoErr(err)

	res, err := New(heuristic.Manhattan).Solve(context.Background(), goal, goal)
	is.NoErr(err)
	is.Equal(res.PathLength, 0)
	is.Equal(len(res.Moves), 0)
	is.Equal(res.NodesExpanded, uint64(1)) // the goal itself
}

func TestOneMoveSolve(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := mustParse(t, "1 2 3/4 5 0/7 8 6")

	res, err := New(heuristic.Manhattan).Solve(context.Background(), start, goal)
	is.NoErr(err)
	is.Equal(res.PathLength, 1)
	is.Equal(len(res.Moves), 1)
}

func TestMovesReplayToGoal(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := mustParse(t, "0 2 3/1 5 6/4 7 8")

	res, err := New(heuristic.Manhattan).Solve(context.Background(), start, goal)
	is.NoErr(err)
	is.Equal(len(res.Moves), res.PathLength)

	g := start
	for _, a := range res.Moves {
		next, err := g.Apply(a)
		is.NoErr(err)
		g = next
	}
	is.True(g.IsGoal(goal))
}

func TestDeterminism(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := mustParse(t, "4 1 3/7 2 5/0 8 6")

	for _, kind := range []heuristic.Kind{heuristic.Manhattan, heuristic.Misplaced} {
		first, err := New(kind).Solve(context.Background(), start, goal)
		is.NoErr(err)
		second, err := New(kind).Solve(context.Background(), start, goal)
		is.NoErr(err)
		is.Equal(first.PathLength, second.PathLength)
		is.Equal(first.NodesExpanded, second.NodesExpanded)
		is.Equal(first.Moves, second.Moves)
	}
}

func TestUnsolvableFailsBeforeSearching(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	bad, err := scramble.Unsolvable(3)
	is.NoErr(err)

	res, err := New(heuristic.Manhattan).Solve(context.Background(), bad, goal)
	is.True(errors.Is(err, ErrUnsolvable))
	is.Equal(res.NodesExpanded, uint64(0))
	is.Equal(res.NodesGenerated, uint64(0))
	is.Equal(res.MaxFrontier, 0)
}

func TestMismatchedDimensions(t *testing.T) {
	is := is.New(t)
	g3, _ := tiles.Canonical(3)
	g4, _ := tiles.Canonical(4)
	_, err := New(heuristic.Manhattan).Solve(context.Background(), g3, g4)
	is.True(errors.Is(err, tiles.ErrInvalidGrid))
}

func TestCancelledContext(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := mustParse(t, "8 6 7/2 5 4/3 0 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(heuristic.Manhattan).Solve(ctx, start, goal)
	is.True(errors.Is(err, ErrTimeout))
}

func TestDeadlineExceeded(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := mustParse(t, "8 6 7/2 5 4/3 0 1")

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	_, err := New(heuristic.Misplaced).Solve(ctx, start, goal)
	is.True(errors.Is(err, ErrTimeout))
}

func TestIterationCutoff(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := mustParse(t, "1 2 3/4 0 5/7 8 6") // needs 2 moves

	s := New(heuristic.Manhattan)
	s.SetMaxIterations(1)
	res, err := s.Solve(context.Background(), start, goal)
	is.True(errors.Is(err, ErrTimeout))
	is.Equal(res.NodesExpanded, uint64(1))
}

func TestHardestEightPuzzle(t *testing.T) {
	if testing.Short() {
		t.Skip("deep search")
	}
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	// One of the two 8-puzzle positions at maximal depth.
	start := mustParse(t, "8 6 7/2 5 4/3 0 1")

	res, err := New(heuristic.Manhattan).Solve(context.Background(), start, goal)
	is.NoErr(err)
	is.Equal(res.PathLength, 31)
}

func TestManhattanExpandsNoMoreThanMisplaced(t *testing.T) {
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	start := scramble.Walk(goal, 30)

	m, err := New(heuristic.Manhattan).Solve(context.Background(), start, goal)
	is.NoErr(err)
	mp, err := New(heuristic.Misplaced).Solve(context.Background(), start, goal)
	is.NoErr(err)
	is.Equal(m.PathLength, mp.PathLength) // both optimal
	is.True(m.NodesExpanded <= mp.NodesExpanded)
}

// bfsDistances is ground truth for optimality: true shortest distance of
// every state reachable from goal.
func bfsDistances(t *testing.T, goal tiles.Grid) map[tiles.Grid]int {
	t.Helper()
	dist := map[tiles.Grid]int{goal: 0}
	queue := []tiles.Grid{goal}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, a := range cur.Actions() {
			next, err := cur.Apply(a)
			if err != nil {
				t.Fatal(err)
			}
			if _, seen := dist[next]; !seen {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

func TestOptimalityAgainstBFS(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive BFS over the 3x3 state space")
	}
	is := is.New(t)
	goal, _ := tiles.Canonical(3)
	dist := bfsDistances(t, goal)

	for _, steps := range []int{5, 10, 15, 20, 25, 30} {
		for trial := 0; trial < 5; trial++ {
			start := scramble.Walk(goal, steps)
			want, ok := dist[start]
			is.True(ok)
			res, err := New(heuristic.Manhattan).Solve(context.Background(), start, goal)
			is.NoErr(err)
			is.Equal(res.PathLength, want)
		}
	}
}
