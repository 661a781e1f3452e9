package pathfind

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// minSpeed is the speed factor below which a decelerating agent stops.
const minSpeed = 0.01

// Follower walks an agent along a Path.
type Follower struct {
	path        *Path
	stoppingDst float32
	index       int
	done        bool
}

// NewFollower starts following path from its first look point.
func NewFollower(path *Path, stoppingDst float32) *Follower {
	return &Follower{
		path:        path,
		stoppingDst: stoppingDst,
		done:        len(path.LookPoints) == 0,
	}
}

// Index returns the look point currently steered at.
func (f *Follower) Index() int { return f.index }

// Done reports whether the end of the path has been reached.
func (f *Follower) Done() bool { return f.done }

// Step advances past every turn boundary pos has crossed and returns the
// point to steer at with a speed factor in [0,1]. following is false once
// the path is finished.
func (f *Follower) Step(pos mgl32.Vec3) (target mgl32.Vec3, speed float32, following bool) {
	if f.done {
		return mgl32.Vec3{}, 0, false
	}

	p := flat(pos)
	for f.path.TurnBoundaries[f.index].HasCrossed(p) {
		if f.index == f.path.FinishLineIndex {
			f.done = true
			return mgl32.Vec3{}, 0, false
		}
		f.index++
	}

	speed = 1
	if f.index >= f.path.SlowDownIndex && f.stoppingDst > 0 {
		finish := f.path.TurnBoundaries[f.path.FinishLineIndex]
		speed = mgl32.Clamp(finish.DistanceFromPoint(p)/f.stoppingDst, 0, 1)
		if speed < minSpeed {
			f.done = true
			return mgl32.Vec3{}, 0, false
		}
	}
	return f.path.LookPoints[f.index], speed, true
}

// RepathPolicy decides when an agent chasing a moving target should ask
// for a new path.
type RepathPolicy struct {
	MinInterval   time.Duration
	MoveThreshold float32

	last       time.Time
	lastTarget mgl32.Vec3
	primed     bool
}

// DefaultRepathPolicy checks at most every 200ms and repaths once the
// target has moved half a unit.
func DefaultRepathPolicy() RepathPolicy {
	return RepathPolicy{MinInterval: 200 * time.Millisecond, MoveThreshold: 0.5}
}

// ShouldRepath reports whether a new request is due for target at now.
// The first call always asks for a path.
func (r *RepathPolicy) ShouldRepath(now time.Time, target mgl32.Vec3) bool {
	if !r.primed {
		r.primed = true
		r.last, r.lastTarget = now, target
		return true
	}
	if now.Sub(r.last) < r.MinInterval {
		return false
	}
	r.last = now
	if target.Sub(r.lastTarget).LenSqr() > r.MoveThreshold*r.MoveThreshold {
		r.lastTarget = target
		return true
	}
	return false
}
