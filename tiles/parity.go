package tiles

// Solvable reports whether goal is reachable from g by legal slides.
//
// Sliding a tile never changes the permutation-parity invariant of a
// configuration, so two configurations are mutually reachable iff their
// invariants match. For odd board widths the invariant is the parity of the
// inversion count of the row-major flattening with the blank ignored. For
// even widths every vertical slide flips the inversion parity, so the
// invariant also folds in the parity of the blank's row counted from the
// bottom of the board.
//
// Grids of different dimensions are never mutually reachable.
func Solvable(g, goal Grid) bool {
	if g.dim != goal.dim {
		return false
	}
	return invariant(g) == invariant(goal)
}

func invariant(g Grid) int {
	n := int(g.dim)
	inv := inversions(g)
	if n%2 == 1 {
		return inv % 2
	}
	blankRowFromBottom := n - 1 - int(g.blank)/n
	return (inv + blankRowFromBottom) % 2
}

// inversions counts pairs of tiles out of ascending order in the row-major
// flattening, blank excluded.
func inversions(g Grid) int {
	n := int(g.dim) * int(g.dim)
	count := 0
	for i := 0; i < n; i++ {
		if g.cells[i] == Blank {
			continue
		}
		for j := i + 1; j < n; j++ {
			if g.cells[j] != Blank && g.cells[i] > g.cells[j] {
				count++
			}
		}
	}
	return count
}
