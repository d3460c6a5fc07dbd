package tiles

import "fmt"

// Pos is a row/column coordinate on the board.
type Pos struct {
	Row, Col int8
}

// Action slides one tile into the blank. From is the blank's position and To
// is the grid-adjacent tile that moves into it. Actions are ephemeral: the
// move generator produces them and Apply consumes them.
type Action struct {
	From, To Pos
}

// Inverse returns the action that undoes a, once a has been applied.
func (a Action) Inverse() Action { return Action{From: a.To, To: a.From} }

func (a Action) String() string {
	return fmt.Sprintf("(%d,%d)<-(%d,%d)", a.From.Row, a.From.Col, a.To.Row, a.To.Col)
}

// deltas in emission order: up, down, left, right. The order is fixed so
// that equal-cost searches expand successors deterministically.
var deltas = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Actions enumerates the legal moves from g: one action per in-bounds
// 4-neighbor of the blank, emitted in up, down, left, right order. A corner
// blank yields 2 actions, an edge blank 3, an interior blank 4.
func (g Grid) Actions() []Action {
	br, bc := g.Blank()
	from := Pos{int8(br), int8(bc)}
	out := make([]Action, 0, 4)
	for _, d := range deltas {
		r, c := int8(br)+d.Row, int8(bc)+d.Col
		if r < 0 || r >= g.dim || c < 0 || c >= g.dim {
			continue
		}
		out = append(out, Action{From: from, To: Pos{r, c}})
	}
	return out
}

// Apply slides the tile at a.To into the blank at a.From and returns the
// resulting grid. The receiver is never modified. It is an error if a.From
// is not the blank or a.To is not an adjacent in-bounds cell.
func (g Grid) Apply(a Action) (Grid, error) {
	fi := int(a.From.Row)*int(g.dim) + int(a.From.Col)
	if !g.inBounds(a.From) || !g.inBounds(a.To) {
		return Grid{}, fmt.Errorf("action %s out of bounds for %dx%d grid", a, g.dim, g.dim)
	}
	if int8(fi) != g.blank {
		return Grid{}, fmt.Errorf("action %s does not address the blank", a)
	}
	dr, dc := a.To.Row-a.From.Row, a.To.Col-a.From.Col
	if dr*dr+dc*dc != 1 {
		return Grid{}, fmt.Errorf("action %s is not a unit slide", a)
	}
	ti := int(a.To.Row)*int(g.dim) + int(a.To.Col)
	next := g
	next.cells[fi], next.cells[ti] = next.cells[ti], next.cells[fi]
	next.blank = int8(ti)
	return next, nil
}

func (g Grid) inBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.dim && p.Col >= 0 && p.Col < g.dim
}
