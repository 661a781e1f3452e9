package cave

import (
	"github.com/zyedidia/generic/queue"

	"undercroft/pkg/engine/geom"
)

// passage is a pair of edge tiles chosen to join two caves.
type passage struct {
	a, b     *Cave
	from, to geom.Point
}

// connect links every cave to the master cave and returns how many tunnels
// were carved. Isolated caves are first joined to their nearest neighbour;
// afterwards the closest unreachable/reachable pair is joined until every
// cave is reachable.
func connect(m *TileMap, caves []*Cave, radius int) int {
	tunnels := 0

	for _, c := range caves {
		if c.Links() > 0 {
			continue
		}
		if p, ok := closest([]*Cave{c}, caves); ok {
			carve(m, p, radius)
			tunnels++
		}
	}

	for {
		var unreachable, reachable []*Cave
		for _, c := range caves {
			if c.Reachable {
				reachable = append(reachable, c)
			} else {
				unreachable = append(unreachable, c)
			}
		}
		p, ok := closest(unreachable, reachable)
		if !ok {
			return tunnels
		}
		carve(m, p, radius)
		tunnels++
	}
}

// closest finds the pair of edge tiles with the smallest squared distance
// between a cave in from and an unlinked cave in to. Ties keep the first
// pair found.
func closest(from, to []*Cave) (passage, bool) {
	var best passage
	bestDist, found := 0, false

	for _, a := range from {
		for _, b := range to {
			if a == b || a.LinkedTo(b) {
				continue
			}
			for _, ta := range a.Edges {
				for _, tb := range b.Edges {
					d := ta.DistSq(tb)
					if !found || d < bestDist {
						best = passage{a: a, b: b, from: ta, to: tb}
						bestDist, found = d, true
					}
				}
			}
		}
	}
	return best, found
}

// link joins a and b, spreading reachability from whichever side has it.
func link(a, b *Cave) {
	if a.Reachable {
		markReachable(b)
	} else if b.Reachable {
		markReachable(a)
	}
	a.links.Put(b)
	b.links.Put(a)
}

func markReachable(c *Cave) {
	q := queue.New[*Cave]()
	q.Enqueue(c)
	for !q.Empty() {
		cur := q.Dequeue()
		if cur.Reachable {
			continue
		}
		cur.Reachable = true
		cur.links.Each(func(n *Cave) {
			if !n.Reachable {
				q.Enqueue(n)
			}
		})
	}
}

// carve links the caves of p and opens a tunnel between its tiles.
func carve(m *TileMap, p passage, radius int) {
	link(p.a, p.b)
	for _, pt := range line(p.from, p.to) {
		stamp(m, pt, radius)
	}
}

// stamp opens every tile within radius of c.
func stamp(m *TileMap, c geom.Point, radius int) {
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy <= radius*radius {
				m.Set(c.X+dx, c.Y+dy, Open)
			}
		}
	}
}

// line walks from a towards b along the longer axis, returning every
// visited tile except b itself.
func line(a, b geom.Point) []geom.Point {
	x, y := a.X, a.Y
	dx, dy := b.X-a.X, b.Y-a.Y

	inverted := false
	step, gradientStep := sign(dx), sign(dy)
	longest, shortest := abs(dx), abs(dy)
	if longest < shortest {
		inverted = true
		longest, shortest = shortest, longest
		step, gradientStep = sign(dy), sign(dx)
	}

	points := make([]geom.Point, 0, longest)
	acc := longest / 2
	for i := 0; i < longest; i++ {
		points = append(points, geom.Pt(x, y))
		if inverted {
			y += step
		} else {
			x += step
		}
		acc += shortest
		if acc >= longest {
			if inverted {
				x += gradientStep
			} else {
				y += gradientStep
			}
			acc -= longest
		}
	}
	return points
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
