package solver

import (
	"container/heap"

	"github.com/tilelab/taquin/tiles"
)

// costInf is the "unknown / infinite" path cost recorded for states the
// search has not discovered yet.
const costInf = int32(1<<31 - 1)

// node is the search bookkeeping attached to one discovered state. g is the
// best known path cost from the start, h the heuristic estimate to the goal.
// parent/via record how the best known path reaches this state.
type node struct {
	state  tiles.Grid
	g, h   int32
	parent *node
	via    tiles.Action

	index  int    // position in the open heap; -1 when not queued
	seq    uint64 // insertion order, used as the final tie-break
	closed bool
}

func (n *node) f() int32 { return n.g + n.h }

// openHeap orders nodes by ascending f. Ties pop the lower h first (deeper
// along its path, closer to the goal), then first-in first-out by insertion
// sequence so runs are deterministic.
type openHeap []*node

func (q openHeap) Len() int { return len(q) }

func (q openHeap) Less(i, j int) bool {
	if q[i].f() != q[j].f() {
		return q[i].f() < q[j].f()
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q openHeap) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openHeap) Pop() any {
	old := *q
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*q = old[:last]
	return n
}

// frontier is the open set plus the per-state score table and the closed
// set. States map to their node through the Grid value itself, so lookups
// are structural.
type frontier struct {
	queue   openHeap
	byState map[tiles.Grid]*node
	nextSeq uint64
	maxLen  int
}

func newFrontier() *frontier {
	return &frontier{byState: make(map[tiles.Grid]*node)}
}

func (fr *frontier) len() int { return len(fr.queue) }

// bestG returns the best known path cost for a state, or costInf if the
// state has not been discovered.
func (fr *frontier) bestG(g tiles.Grid) int32 {
	if n, ok := fr.byState[g]; ok {
		return n.g
	}
	return costInf
}

func (fr *frontier) isClosed(g tiles.Grid) bool {
	n, ok := fr.byState[g]
	return ok && n.closed
}

// markClosed finalizes the popped node. A closed state's g is immutable:
// improve refuses to touch it and it is never queued again.
func (fr *frontier) markClosed(n *node) { n.closed = true }

// improve records a strictly better path to a state, creating its node on
// first discovery, and queues or repositions it in the open heap. Returns
// false when newG does not beat the recorded cost or the state is closed.
func (fr *frontier) improve(state tiles.Grid, parent *node, via tiles.Action, newG, h int32) bool {
	n, ok := fr.byState[state]
	if ok {
		if n.closed || newG >= n.g {
			return false
		}
		n.g = newG
		n.parent = parent
		n.via = via
		if n.index >= 0 {
			heap.Fix(&fr.queue, n.index)
		} else {
			fr.push(n)
		}
		return true
	}
	n = &node{state: state, g: newG, h: h, parent: parent, via: via, index: -1}
	fr.byState[state] = n
	fr.push(n)
	return true
}

func (fr *frontier) push(n *node) {
	n.seq = fr.nextSeq
	fr.nextSeq++
	heap.Push(&fr.queue, n)
	if len(fr.queue) > fr.maxLen {
		fr.maxLen = len(fr.queue)
	}
}

// popMin removes and returns the open node with the lowest f.
func (fr *frontier) popMin() *node {
	return heap.Pop(&fr.queue).(*node)
}
