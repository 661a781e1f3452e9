// Package geom holds the integer grid geometry shared by the generators:
// points, axis-aligned rectangles and the conversions to float space.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Point is an integer grid coordinate. Y grows upwards.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// DistSq returns the squared euclidean distance between p and q.
func (p Point) DistSq(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Vec2 converts p to float space.
func (p Point) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{float32(p.X), float32(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Midpoint returns the point halfway between a and b, truncated toward zero.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Rect is an axis-aligned rectangle given by its bottom-left (Min) and
// top-right (Max) corners.
type Rect struct {
	Min, Max Point
}

// R builds a rectangle from its corner coordinates.
func R(x0, y0, x1, y1 int) Rect {
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// BottomLeft returns r.Min.
func (r Rect) BottomLeft() Point { return r.Min }

// TopRight returns r.Max.
func (r Rect) TopRight() Point { return r.Max }

// BottomRight returns the corner at (Max.X, Min.Y).
func (r Rect) BottomRight() Point { return Point{r.Max.X, r.Min.Y} }

// TopLeft returns the corner at (Min.X, Max.Y).
func (r Rect) TopLeft() Point { return Point{r.Min.X, r.Max.Y} }

// Width is the extent along X.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height is the extent along Y (the dungeon "length" axis).
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Empty reports whether r has no positive extent on some axis.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Centroid returns the centre of r in float space.
func (r Rect) Centroid() mgl32.Vec2 {
	return mgl32.Vec2{
		float32(r.Min.X+r.Max.X) / 2,
		float32(r.Min.Y+r.Max.Y) / 2,
	}
}

// Center returns the integer cell at the middle of r.
func (r Rect) Center() Point {
	return Midpoint(r.Min, r.Max)
}

// Contains reports whether o lies inside r (edges may touch).
func (r Rect) Contains(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y &&
		o.Max.X <= r.Max.X && o.Max.Y <= r.Max.Y
}

// Inset shrinks r by n on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{Min: Point{r.Min.X + n, r.Min.Y + n}, Max: Point{r.Max.X - n, r.Max.Y - n}}
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{min(r.Min.X, o.Min.X), min(r.Min.Y, o.Min.Y)},
		Max: Point{max(r.Max.X, o.Max.X), max(r.Max.Y, o.Max.Y)},
	}
}

// Intersect returns the overlap of r and o, which is Empty when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Point{max(r.Min.X, o.Min.X), max(r.Min.Y, o.Min.Y)},
		Max: Point{min(r.Max.X, o.Max.X), min(r.Max.Y, o.Max.Y)},
	}
}

// Cells calls fn for every unit cell covered by r, row by row.
func (r Rect) Cells(fn func(p Point)) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fn(Point{x, y})
		}
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v]", r.Min, r.Max)
}

// AngleDeg returns the angle in degrees of the vector from a to b,
// in (-180, 180].
func AngleDeg(a, b mgl32.Vec2) float64 {
	d := b.Sub(a)
	return math.Atan2(float64(d.Y()), float64(d.X())) * 180 / math.Pi
}
