// Package scramble generates test instances for the solver. Walk produces
// grids that are solvable by construction; Random repairs parity so every
// returned grid is solvable too. The solver's own parity check is therefore
// a sanity check for instances coming from this package, not a necessity.
package scramble

import (
	"lukechampine.com/frand"

	"github.com/tilelab/taquin/tiles"
)

// Walk applies steps random legal slides starting from goal and returns the
// scrambled grid. It never immediately undoes the previous slide, so short
// walks do not collapse back onto the goal.
func Walk(goal tiles.Grid, steps int) tiles.Grid {
	g := goal
	var last tiles.Action
	haveLast := false
	for i := 0; i < steps; i++ {
		acts := g.Actions()
		if haveLast {
			inv := last.Inverse()
			filtered := acts[:0]
			for _, a := range acts {
				if a != inv {
					filtered = append(filtered, a)
				}
			}
			acts = filtered
		}
		act := acts[frand.Intn(len(acts))]
		next, err := g.Apply(act)
		if err != nil {
			// Actions emitted it, so it must apply.
			panic(err)
		}
		g = next
		last = act
		haveLast = true
	}
	return g
}

// Random returns a uniformly shuffled grid of the given dimension, with its
// parity repaired so that the canonical goal is reachable. The repair swaps
// the first two non-blank cells, which flips the inversion parity and
// leaves the blank in place.
func Random(dim int) (tiles.Grid, error) {
	goal, err := tiles.Canonical(dim)
	if err != nil {
		return tiles.Grid{}, err
	}
	vals := make([]int, dim*dim)
	for i := range vals {
		vals[i] = i
	}
	for {
		frand.Shuffle(len(vals), func(i, j int) {
			vals[i], vals[j] = vals[j], vals[i]
		})
		g := fromFlat(dim, vals)
		if tiles.Solvable(g, goal) {
			return g, nil
		}
		i, j := firstTwoTiles(vals)
		vals[i], vals[j] = vals[j], vals[i]
		g = fromFlat(dim, vals)
		if tiles.Solvable(g, goal) {
			return g, nil
		}
		// Unreachable for a correct parity rule; reshuffle regardless.
	}
}

// Unsolvable returns a grid that cannot reach the canonical goal: the goal
// with its first two tiles transposed directly, not via the blank.
func Unsolvable(dim int) (tiles.Grid, error) {
	goal, err := tiles.Canonical(dim)
	if err != nil {
		return tiles.Grid{}, err
	}
	vals := make([]int, dim*dim)
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			vals[r*dim+c] = goal.Cell(r, c)
		}
	}
	i, j := firstTwoTiles(vals)
	vals[i], vals[j] = vals[j], vals[i]
	return fromFlat(dim, vals), nil
}

func firstTwoTiles(vals []int) (int, int) {
	idx := make([]int, 0, 2)
	for i, v := range vals {
		if v != tiles.Blank {
			idx = append(idx, i)
			if len(idx) == 2 {
				break
			}
		}
	}
	return idx[0], idx[1]
}

func fromFlat(dim int, vals []int) tiles.Grid {
	rows := make([][]int, dim)
	for r := 0; r < dim; r++ {
		rows[r] = vals[r*dim : (r+1)*dim]
	}
	g, err := tiles.New(rows)
	if err != nil {
		panic(err) // vals is always a permutation here
	}
	return g
}
