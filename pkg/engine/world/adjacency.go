package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// AdjacentRooms returns the names of the rooms directly reachable from the
// named room: rooms whose cells touch its cells, and rooms bordering the
// same connected run of corridor cells. The room itself is included. It
// returns nil when no room cell carries the name.
func (g *Grid) AdjacentRooms(name string) []string {
	if g == nil || name == "" {
		return nil
	}
	adjacent := mapset.New[string]()
	visited := mapset.New[*Cell]()

	found := false
	g.ForEachCell(func(_, _ int, cell *Cell) {
		if cell.Kind != Room || cell.Name != name {
			return
		}
		found = true
		for _, n := range cell.GetNeighbors() {
			switch {
			case n.Kind == Room && n.Name != name:
				adjacent.Put(n.Name)
			case n.Kind == Corridor && !visited.Has(n):
				corridorRooms(n, visited).Each(adjacent.Put)
			}
		}
	})
	if !found {
		return nil
	}
	adjacent.Put(name)

	names := make([]string, 0, adjacent.Size())
	adjacent.Each(func(n string) {
		names = append(names, n)
	})
	sort.Strings(names)
	return names
}

// corridorRooms flood-fills the corridor run containing start and returns
// the names of every room bordering it. Filled cells are added to visited.
func corridorRooms(start *Cell, visited mapset.Set[*Cell]) mapset.Set[string] {
	rooms := mapset.New[string]()

	q := queue.New[*Cell]()
	q.Enqueue(start)
	visited.Put(start)

	for !q.Empty() {
		current := q.Dequeue()
		for _, n := range current.GetNeighbors() {
			switch n.Kind {
			case Room:
				rooms.Put(n.Name)
			case Corridor:
				if !visited.Has(n) {
					visited.Put(n)
					q.Enqueue(n)
				}
			}
		}
	}
	return rooms
}
