package generator

import (
	"github.com/zyedidia/generic/mapset"

	"undercroft/pkg/engine/geom"
)

// WallPlan lists the unit positions along feature perimeters. Horizontal
// walls run along bottom and top edges, vertical walls along left and right
// edges. A position shared by two perimeters is a door instead of a wall.
type WallPlan struct {
	HorizontalWalls []geom.Point
	VerticalWalls   []geom.Point
	HorizontalDoors []geom.Point
	VerticalDoors   []geom.Point
}

// Walls walks the perimeter of every room and corridor and sorts each
// position into walls or doors.
func (l *Layout) Walls() WallPlan {
	horizontal := newEdgeSet()
	vertical := newEdgeSet()

	for _, f := range l.Features() {
		b := f.Bounds()
		for x := b.Min.X; x < b.Max.X; x++ {
			horizontal.add(geom.Pt(x, b.Min.Y))
			horizontal.add(geom.Pt(x, b.Max.Y))
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			vertical.add(geom.Pt(b.Min.X, y))
			vertical.add(geom.Pt(b.Max.X, y))
		}
	}

	return WallPlan{
		HorizontalWalls: horizontal.walls(),
		VerticalWalls:   vertical.walls(),
		HorizontalDoors: horizontal.doors,
		VerticalDoors:   vertical.doors,
	}
}

// edgeSet records positions in insertion order. Seeing a wall position
// again turns it into a door.
type edgeSet struct {
	order []geom.Point
	wall  mapset.Set[geom.Point]
	doors []geom.Point
}

func newEdgeSet() *edgeSet {
	return &edgeSet{wall: mapset.New[geom.Point]()}
}

func (s *edgeSet) add(p geom.Point) {
	if s.wall.Has(p) {
		s.wall.Remove(p)
		s.doors = append(s.doors, p)
		return
	}
	s.wall.Put(p)
	s.order = append(s.order, p)
}

func (s *edgeSet) walls() []geom.Point {
	seen := mapset.New[geom.Point]()
	var out []geom.Point
	for _, p := range s.order {
		if s.wall.Has(p) && !seen.Has(p) {
			seen.Put(p)
			out = append(out, p)
		}
	}
	return out
}
