// Package tiles implements the sliding-tile puzzle board: an N×N grid of
// numbered tiles with a single blank cell. Grids are immutable values;
// applying a move always allocates a fresh Grid, so a Grid held in a map or
// a search frontier can never change underneath its owner.
package tiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
)

const (
	// Blank is the value of the empty cell.
	Blank = 0
	// MinDim and MaxDim bound the supported board widths.
	MinDim = 2
	MaxDim = 6

	maxCells = MaxDim * MaxDim
)

// ErrInvalidGrid is returned when a grid cannot be constructed from its
// input: wrong dimensions, or the cells are not a permutation of 0..N²-1.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is a puzzle configuration. It is a comparable value type: two Grids
// are equal (==) iff they have the same dimension and cell-wise identical
// contents, which makes Grid directly usable as a map key — the structural
// content key for all search bookkeeping.
type Grid struct {
	dim   int8
	blank int8 // row-major index of the blank, derived from cells
	cells [maxCells]uint8
}

// New constructs a Grid from rows of cell values. The input must be square,
// between MinDim and MaxDim on a side, and contain every value in 0..N²-1
// exactly once.
func New(rows [][]int) (Grid, error) {
	n := len(rows)
	if n < MinDim || n > MaxDim {
		return Grid{}, fmt.Errorf("%w: dimension %d not in [%d, %d]", ErrInvalidGrid, n, MinDim, MaxDim)
	}
	var g Grid
	g.dim = int8(n)
	var seen [maxCells]bool
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), n)
		}
		for c, v := range row {
			if v < 0 || v >= n*n {
				return Grid{}, fmt.Errorf("%w: cell (%d,%d) holds %d, want 0..%d", ErrInvalidGrid, r, c, v, n*n-1)
			}
			if seen[v] {
				return Grid{}, fmt.Errorf("%w: value %d appears more than once", ErrInvalidGrid, v)
			}
			seen[v] = true
			idx := r*n + c
			g.cells[idx] = uint8(v)
			if v == Blank {
				g.blank = int8(idx)
			}
		}
	}
	return g, nil
}

// Canonical returns the ascending goal grid for the given dimension:
// 1, 2, ... n²-1 in row-major order with the blank in the last cell.
func Canonical(dim int) (Grid, error) {
	if dim < MinDim || dim > MaxDim {
		return Grid{}, fmt.Errorf("%w: dimension %d not in [%d, %d]", ErrInvalidGrid, dim, MinDim, MaxDim)
	}
	var g Grid
	g.dim = int8(dim)
	for i := 0; i < dim*dim-1; i++ {
		g.cells[i] = uint8(i + 1)
	}
	g.blank = int8(dim*dim - 1)
	return g, nil
}

// Dim returns the board width.
func (g Grid) Dim() int { return int(g.dim) }

// Cell returns the value at the given row and column.
func (g Grid) Cell(row, col int) int {
	return int(g.cells[row*int(g.dim)+col])
}

// Blank returns the row and column of the blank cell.
func (g Grid) Blank() (row, col int) {
	return int(g.blank) / int(g.dim), int(g.blank) % int(g.dim)
}

// IsGoal reports whether g is cell-wise equal to the goal grid.
func (g Grid) IsGoal(goal Grid) bool { return g == goal }

// Hash returns a 64-bit content hash of the grid, used as a compact state
// identifier in log output. Map keys use the Grid value itself.
func (g Grid) Hash() uint64 {
	n := int(g.dim) * int(g.dim)
	return xxhash.Sum64(g.cells[:n])
}

// Compact renders the grid on one line, rows separated by slashes:
// "1 2 3/4 5 0/7 8 6". Parse is its inverse.
func (g Grid) Compact() string {
	var sb strings.Builder
	n := int(g.dim)
	for r := 0; r < n; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < n; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(g.Cell(r, c)))
		}
	}
	return sb.String()
}

func (g Grid) String() string {
	var sb strings.Builder
	n := int(g.dim)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g.Cell(r, c)
			if v == Blank {
				sb.WriteString("  ·")
			} else {
				fmt.Fprintf(&sb, "%3d", v)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse reads the compact one-line form produced by Compact.
func Parse(s string) (Grid, error) {
	rowStrs := strings.Split(strings.TrimSpace(s), "/")
	rows := make([][]int, len(rowStrs))
	for r, rs := range rowStrs {
		fields := strings.Fields(rs)
		rows[r] = make([]int, len(fields))
		for c, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Grid{}, fmt.Errorf("%w: cell %q is not a number", ErrInvalidGrid, f)
			}
			rows[r][c] = v
		}
	}
	return New(rows)
}
