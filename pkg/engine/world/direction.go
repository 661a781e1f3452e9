package world

import "undercroft/pkg/engine/geom"

// Direction is one of the four grid axes a cell links along.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// steps holds the (col, row) offset of each direction. Rows follow world Y,
// so North increases the row.
var steps = [...]geom.Point{
	North: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
}

var directionNames = [...]string{"North", "East", "South", "West"}

func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	if !d.IsValid() {
		return "Unknown"
	}
	return directionNames[d]
}

func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the direction pointing back; invalid directions map to
// themselves.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 2) % 4
}

// Step is the (col, row) offset of a single move in d.
func (d Direction) Step() geom.Point {
	if !d.IsValid() {
		return geom.Point{}
	}
	return steps[d]
}

// Delta splits Step into row and column offsets.
func (d Direction) Delta() (rowDelta, colDelta int) {
	s := d.Step()
	return s.Y, s.X
}
