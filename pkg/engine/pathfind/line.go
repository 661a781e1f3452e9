package pathfind

import "github.com/go-gl/mathgl/mgl32"

// verticalLineGradient stands in for the infinite slope of a vertical line.
const verticalLineGradient = 1e5

// Line is a turn boundary: a line through a point, perpendicular to the
// direction an agent approaches it from.
type Line struct {
	gradient              float32
	yIntercept            float32
	gradientPerpendicular float32

	pointOnLine1 mgl32.Vec2
	pointOnLine2 mgl32.Vec2

	approachSide bool
}

// NewLine builds the line through pointOnLine that is perpendicular to the
// segment from pointPerpendicularToLine. The side holding
// pointPerpendicularToLine is the approach side.
func NewLine(pointOnLine, pointPerpendicularToLine mgl32.Vec2) Line {
	dx := pointOnLine.X() - pointPerpendicularToLine.X()
	dy := pointOnLine.Y() - pointPerpendicularToLine.Y()

	var perpendicular float32 = verticalLineGradient
	if dx != 0 {
		perpendicular = dy / dx
	}

	var gradient float32 = verticalLineGradient
	if perpendicular != 0 {
		gradient = -1 / perpendicular
	}

	l := Line{
		gradient:              gradient,
		yIntercept:            pointOnLine.Y() - gradient*pointOnLine.X(),
		gradientPerpendicular: perpendicular,
		pointOnLine1:          pointOnLine,
		pointOnLine2:          pointOnLine.Add(mgl32.Vec2{1, gradient}),
	}
	l.approachSide = l.side(pointPerpendicularToLine)
	return l
}

func (l Line) side(p mgl32.Vec2) bool {
	return (p.X()-l.pointOnLine1.X())*(l.pointOnLine2.Y()-l.pointOnLine1.Y()) >
		(p.Y()-l.pointOnLine1.Y())*(l.pointOnLine2.X()-l.pointOnLine1.X())
}

// HasCrossed reports whether p is no longer on the approach side.
func (l Line) HasCrossed(p mgl32.Vec2) bool {
	return l.side(p) != l.approachSide
}

// DistanceFromPoint returns the distance from p to the line.
func (l Line) DistanceFromPoint(p mgl32.Vec2) float32 {
	yInterceptPerpendicular := p.Y() - l.gradientPerpendicular*p.X()
	x := (yInterceptPerpendicular - l.yIntercept) / (l.gradient - l.gradientPerpendicular)
	y := l.gradient*x + l.yIntercept
	return p.Sub(mgl32.Vec2{x, y}).Len()
}
