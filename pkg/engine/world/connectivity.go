package world

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Reachable returns every open cell reachable from start through
// 4-connected open cells. Neighbour links must have been built.
func Reachable(start *Cell) mapset.Set[*Cell] {
	reachable := mapset.New[*Cell]()
	if !start.Open() {
		return reachable
	}

	q := queue.New[*Cell]()
	q.Enqueue(start)
	reachable.Put(start)

	for !q.Empty() {
		current := q.Dequeue()
		for _, n := range current.GetNeighbors() {
			if n.Open() && !reachable.Has(n) {
				reachable.Put(n)
				q.Enqueue(n)
			}
		}
	}
	return reachable
}

// Components splits the open cells of the grid into 4-connected groups,
// in scan order of their first cell.
func (g *Grid) Components() [][]*Cell {
	seen := mapset.New[*Cell]()
	var groups [][]*Cell

	g.ForEachCell(func(_, _ int, cell *Cell) {
		if !cell.Open() || seen.Has(cell) {
			return
		}
		var group []*Cell
		Reachable(cell).Each(func(c *Cell) {
			seen.Put(c)
			group = append(group, c)
		})
		groups = append(groups, group)
	})
	return groups
}
