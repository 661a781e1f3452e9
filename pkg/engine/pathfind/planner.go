// Package pathfind plans, smooths and schedules paths over a nav grid.
package pathfind

import (
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"

	"undercroft/pkg/engine/binheap"
	"undercroft/pkg/engine/nav"
)

// Step costs, octile distance scaled by ten.
const (
	straightCost = 10
	diagonalCost = 14
)

// Planner runs A* over one grid. It is safe for concurrent use: each
// search works on its own scratch state.
type Planner struct {
	grid *nav.Grid
	pool sync.Pool
}

// scratch is the per-search state, indexed by node.
type scratch struct {
	g, h      []int
	parent    []int
	open      *binheap.Heap[int]
	closed    mapset.Set[int]
	neighbors []int
}

// NewPlanner returns a planner for grid.
func NewPlanner(grid *nav.Grid) *Planner {
	p := &Planner{grid: grid}
	p.pool.New = func() any {
		return newScratch(grid.MaxSize())
	}
	return p
}

func newScratch(n int) *scratch {
	s := &scratch{
		g:      make([]int, n),
		h:      make([]int, n),
		parent: make([]int, n),
		closed: mapset.New[int](),
	}
	s.open = binheap.New[int](n, func(i int) int { return i }, s.compare)
	return s
}

// compare ranks lower f-cost, then lower h-cost, closer to the root.
func (s *scratch) compare(a, b int) int {
	fa, fb := s.g[a]+s.h[a], s.g[b]+s.h[b]
	if fa != fb {
		return fb - fa
	}
	return s.h[b] - s.h[a]
}

func (s *scratch) reset() {
	s.open.Clear()
	s.closed.Clear()
}

// Grid returns the grid the planner searches.
func (p *Planner) Grid() *nav.Grid {
	return p.grid
}

// FindCells searches from node start to node goal. It returns the node
// indices from start to goal inclusive and the path cost.
func (p *Planner) FindCells(start, goal int) ([]int, int, bool) {
	if !p.grid.Node(start).Walkable || !p.grid.Node(goal).Walkable {
		return nil, 0, false
	}

	s := p.pool.Get().(*scratch)
	defer func() {
		s.reset()
		p.pool.Put(s)
	}()

	s.g[start] = 0
	s.h[start] = p.distance(start, goal)
	s.parent[start] = -1
	s.open.Add(start)

	for s.open.Len() > 0 {
		current := s.open.RemoveFirst()
		s.closed.Put(current)

		if current == goal {
			return retrace(s.parent, start, goal), s.g[goal], true
		}

		s.neighbors = p.grid.Neighbours(current, s.neighbors[:0])
		for _, n := range s.neighbors {
			node := p.grid.Node(n)
			if !node.Walkable || s.closed.Has(n) {
				continue
			}

			cost := s.g[current] + p.distance(current, n) + node.Penalty
			if cost < s.g[n] || !s.open.Contains(n) {
				s.g[n] = cost
				s.h[n] = p.distance(n, goal)
				s.parent[n] = current
				s.open.Add(n)
			}
		}
	}
	return nil, 0, false
}

// FindPath plans between two world points and returns the simplified
// waypoints in world space. Points off the grid or on blocked cells fail.
func (p *Planner) FindPath(start, goal mgl32.Vec3) ([]mgl32.Vec3, bool) {
	if !p.grid.Contains(start) || !p.grid.Contains(goal) {
		return nil, false
	}
	cells, _, ok := p.FindCells(p.grid.NodeFromWorldPoint(start), p.grid.NodeFromWorldPoint(goal))
	if !ok {
		return nil, false
	}

	turns := Simplify(p.grid, cells)
	waypoints := make([]mgl32.Vec3, len(turns))
	for i, n := range turns {
		waypoints[i] = p.grid.Node(n).World
	}
	return waypoints, len(waypoints) > 0
}

// distance is the octile distance between two nodes.
func (p *Planner) distance(a, b int) int {
	na, nb := p.grid.Node(a), p.grid.Node(b)
	dx := abs(na.X - nb.X)
	dy := abs(na.Y - nb.Y)
	if dx > dy {
		return diagonalCost*dy + straightCost*(dx-dy)
	}
	return diagonalCost*dx + straightCost*(dy-dx)
}

func retrace(parent []int, start, goal int) []int {
	var cells []int
	for n := goal; n != start; n = parent[n] {
		cells = append(cells, n)
	}
	cells = append(cells, start)
	slices.Reverse(cells)
	return cells
}

// Simplify keeps the cells where the step direction changes, plus the
// goal. The start cell is dropped since the agent already stands there; a
// path that never leaves the start yields just the start.
func Simplify(grid *nav.Grid, cells []int) []int {
	if len(cells) == 0 {
		return nil
	}
	var turns []int
	for k := 1; k < len(cells)-1; k++ {
		if step(grid, cells[k-1], cells[k]) != step(grid, cells[k], cells[k+1]) {
			turns = append(turns, cells[k])
		}
	}
	return append(turns, cells[len(cells)-1])
}

func step(grid *nav.Grid, from, to int) [2]int {
	a, b := grid.Node(from), grid.Node(to)
	return [2]int{b.X - a.X, b.Y - a.Y}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
