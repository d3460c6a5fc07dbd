package tiles

import (
	"testing"

	"github.com/matryer/is"
)

func TestSolvableUnderLegalMoves(t *testing.T) {
	is := is.New(t)
	goal, err := Canonical(3)
	is.NoErr(err)
	is.True(Solvable(goal, goal))

	// Every state reachable by legal slides stays solvable. Walk a fixed
	// zig-zag of moves and check after each one.
	g := goal
	for i := 0; i < 20; i++ {
		acts := g.Actions()
		g, err = g.Apply(acts[i%len(acts)])
		is.NoErr(err)
		is.True(Solvable(g, goal))
		is.True(Solvable(goal, g))
	}
}

func TestDirectTranspositionIsUnsolvable(t *testing.T) {
	is := is.New(t)
	goal, err := Canonical(3)
	is.NoErr(err)
	// Swap two tiles directly, not via the blank: flips parity.
	swapped, err := Parse("2 1 3/4 5 6/7 8 0")
	is.NoErr(err)
	is.True(!Solvable(swapped, goal))
	is.True(!Solvable(goal, swapped))
}

func TestEvenWidthParityRule(t *testing.T) {
	is := is.New(t)
	goal, err := Canonical(4)
	is.NoErr(err)

	// The classic unsolvable 15-puzzle: 14 and 15 transposed.
	fourteenFifteen, err := Parse("1 2 3 4/5 6 7 8/9 10 11 12/13 15 14 0")
	is.NoErr(err)
	is.True(!Solvable(fourteenFifteen, goal))

	// A vertical slide changes the inversion count but also the blank row;
	// the combined invariant must hold.
	g := goal
	for i := 0; i < 16; i++ {
		acts := g.Actions()
		g, err = g.Apply(acts[i%len(acts)])
		is.NoErr(err)
		is.True(Solvable(g, goal))
	}
}

func TestSolvableDimensionMismatch(t *testing.T) {
	is := is.New(t)
	g3, _ := Canonical(3)
	g4, _ := Canonical(4)
	is.True(!Solvable(g3, g4))
}

func TestInversions(t *testing.T) {
	is := is.New(t)
	goal, _ := Canonical(3)
	is.Equal(inversions(goal), 0)

	g, err := Parse("2 1 3/4 5 6/7 8 0")
	is.NoErr(err)
	is.Equal(inversions(g), 1)

	rev, err := Parse("8 7 6/5 4 3/2 1 0")
	is.NoErr(err)
	is.Equal(inversions(rev), 28) // 8 choose 2: fully reversed
}
