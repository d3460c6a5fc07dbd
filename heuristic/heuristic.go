// Package heuristic provides admissible distance estimates between two
// puzzle configurations. Both estimators never overestimate the true
// remaining move count, so A* driven by either returns optimal solutions;
// Manhattan additionally satisfies the triangle inequality across single
// slides (it is consistent), which lets the search close states permanently.
package heuristic

import (
	"fmt"

	"github.com/tilelab/taquin/tiles"
)

// Kind selects an estimator.
type Kind int

const (
	// Manhattan sums, over every tile, the row and column distance between
	// the tile's position and its position in the goal. The default: it
	// dominates Misplaced and expands far fewer nodes.
	Manhattan Kind = iota
	// Misplaced counts tiles that are not in their goal cell. Weaker; kept
	// as a baseline for comparison.
	Misplaced
)

func (k Kind) String() string {
	switch k {
	case Manhattan:
		return "manhattan"
	case Misplaced:
		return "misplaced"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "manhattan":
		return Manhattan, nil
	case "misplaced":
		return Misplaced, nil
	}
	return Manhattan, fmt.Errorf("unknown heuristic %q", s)
}

// Estimate returns the selected estimate of the number of slides needed to
// get from g to goal. The blank is never counted. Panics if k is not a
// known Kind; both grids must have the same dimension.
func Estimate(k Kind, g, goal tiles.Grid) int {
	switch k {
	case Manhattan:
		return manhattan(g, goal)
	case Misplaced:
		return misplaced(g, goal)
	}
	panic("unreachable: " + k.String())
}

func manhattan(g, goal tiles.Grid) int {
	n := g.Dim()
	// Where each value sits in the goal.
	var goalRow, goalCol [tiles.MaxDim * tiles.MaxDim]int8
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := goal.Cell(r, c)
			goalRow[v], goalCol[v] = int8(r), int8(c)
		}
	}
	sum := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g.Cell(r, c)
			if v == tiles.Blank {
				continue
			}
			sum += abs(r-int(goalRow[v])) + abs(c-int(goalCol[v]))
		}
	}
	return sum
}

func misplaced(g, goal tiles.Grid) int {
	n := g.Dim()
	count := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g.Cell(r, c)
			if v != tiles.Blank && v != goal.Cell(r, c) {
				count++
			}
		}
	}
	return count
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
