package pathfind

import "github.com/go-gl/mathgl/mgl32"

// Path is a smoothed path ready to be followed.
type Path struct {
	LookPoints     []mgl32.Vec3
	TurnBoundaries []Line

	FinishLineIndex int
	// SlowDownIndex is the first look point inside the stopping distance
	// measured back from the end of the path.
	SlowDownIndex int
}

// NewPath builds turn boundaries turnDst before every waypoint except the
// last, whose boundary sits on the waypoint itself.
func NewPath(waypoints []mgl32.Vec3, start mgl32.Vec3, turnDst, stoppingDst float32) *Path {
	p := &Path{
		LookPoints:      waypoints,
		TurnBoundaries:  make([]Line, len(waypoints)),
		FinishLineIndex: len(waypoints) - 1,
	}

	previous := flat(start)
	for i, wp := range waypoints {
		current := flat(wp)
		dir := direction(previous, current)

		boundary := current
		if i != p.FinishLineIndex {
			boundary = current.Sub(dir.Mul(turnDst))
		}
		p.TurnBoundaries[i] = NewLine(boundary, previous.Sub(dir.Mul(turnDst)))
		previous = boundary
	}

	var dstFromEnd float32
	for i := len(waypoints) - 1; i > 0; i-- {
		dstFromEnd += flat(waypoints[i]).Sub(flat(waypoints[i-1])).Len()
		if dstFromEnd > stoppingDst {
			p.SlowDownIndex = i
			break
		}
	}
	return p
}

// flat projects a world point onto the X/Z ground plane.
func flat(v mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{v.X(), v.Z()}
}

// direction returns the unit vector from a to b, or zero when they meet.
func direction(a, b mgl32.Vec2) mgl32.Vec2 {
	d := b.Sub(a)
	if d.LenSqr() == 0 {
		return mgl32.Vec2{}
	}
	return d.Normalize()
}
