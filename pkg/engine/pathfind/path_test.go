package pathfind

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestLine_HorizontalBoundary(t *testing.T) {
	l := NewLine(mgl32.Vec2{0, 0}, mgl32.Vec2{0, -1})
	if l.HasCrossed(mgl32.Vec2{0, -0.5}) {
		t.Error("point on the approach side should not have crossed")
	}
	if !l.HasCrossed(mgl32.Vec2{0, 0.5}) {
		t.Error("point past the line should have crossed")
	}
	if d := l.DistanceFromPoint(mgl32.Vec2{3, 2}); !near(d, 2, 1e-3) {
		t.Errorf("distance %f, want 2", d)
	}
}

func TestLine_VerticalBoundary(t *testing.T) {
	l := NewLine(mgl32.Vec2{0, 0}, mgl32.Vec2{-1, 0})
	if l.HasCrossed(mgl32.Vec2{-1, 3}) {
		t.Error("point left of x=0 should not have crossed")
	}
	if !l.HasCrossed(mgl32.Vec2{0.5, 0}) {
		t.Error("point right of x=0 should have crossed")
	}
	if d := l.DistanceFromPoint(mgl32.Vec2{2, 7}); !near(d, 2, 1e-3) {
		t.Errorf("distance %f, want 2", d)
	}
}

func TestNewPath_TurnBoundaries(t *testing.T) {
	waypoints := []mgl32.Vec3{{5, 0, 0}, {5, 0, 5}}
	p := NewPath(waypoints, mgl32.Vec3{}, 1, 0)

	if p.FinishLineIndex != 1 || len(p.TurnBoundaries) != 2 {
		t.Fatalf("expected two boundaries finishing at 1, got %d finishing at %d", len(p.TurnBoundaries), p.FinishLineIndex)
	}

	first := p.TurnBoundaries[0]
	if first.HasCrossed(mgl32.Vec2{3.5, 0}) {
		t.Error("first boundary sits one unit before the corner")
	}
	if !first.HasCrossed(mgl32.Vec2{4.5, 0}) {
		t.Error("first boundary should be crossed inside the turn distance")
	}

	last := p.TurnBoundaries[1]
	if last.HasCrossed(mgl32.Vec2{5, 3}) {
		t.Error("final boundary should not be crossed before the goal")
	}
	if !last.HasCrossed(mgl32.Vec2{5, 6}) {
		t.Error("final boundary should be crossed past the goal")
	}
}

func TestNewPath_SlowDownIndex(t *testing.T) {
	waypoints := []mgl32.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}
	cases := []struct {
		stopping float32
		want     int
	}{
		{0.5, 3},
		{1.5, 2},
		{2.5, 1},
		{10, 0},
	}
	for _, tc := range cases {
		p := NewPath(waypoints, mgl32.Vec3{}, 0.5, tc.stopping)
		if p.SlowDownIndex != tc.want {
			t.Errorf("stopping %.1f: slow down index %d, want %d", tc.stopping, p.SlowDownIndex, tc.want)
		}
	}
}

func TestNewPath_DegenerateLeg(t *testing.T) {
	p := NewPath([]mgl32.Vec3{{0, 0, 0}}, mgl32.Vec3{}, 1, 1)
	d := p.TurnBoundaries[0].DistanceFromPoint(mgl32.Vec2{1, 1})
	if math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
		t.Errorf("zero length leg produced distance %f", d)
	}
}

func TestFollower_WalksToTheEnd(t *testing.T) {
	p := NewPath([]mgl32.Vec3{{5, 0, 0}, {10, 0, 0}}, mgl32.Vec3{}, 1, 2)
	f := NewFollower(p, 2)

	target, speed, ok := f.Step(mgl32.Vec3{0, 0, 0})
	if !ok || !target.ApproxEqual(mgl32.Vec3{5, 0, 0}) || speed != 1 {
		t.Fatalf("first step: %v %f %v", target, speed, ok)
	}

	target, speed, ok = f.Step(mgl32.Vec3{4.5, 0, 0})
	if !ok || f.Index() != 1 || !target.ApproxEqual(mgl32.Vec3{10, 0, 0}) || speed != 1 {
		t.Fatalf("after the turn: index %d target %v speed %f ok %v", f.Index(), target, speed, ok)
	}

	_, speed, ok = f.Step(mgl32.Vec3{9, 0, 0})
	if !ok || !near(speed, 0.5, 1e-3) {
		t.Errorf("one unit from the finish at stopping distance 2: speed %f, want 0.5", speed)
	}

	if _, _, ok = f.Step(mgl32.Vec3{10.5, 0, 0}); ok || !f.Done() {
		t.Error("crossing the finish line should end the path")
	}
	if _, _, ok = f.Step(mgl32.Vec3{0, 0, 0}); ok {
		t.Error("a finished follower stays finished")
	}
}

func TestFollower_EmptyPath(t *testing.T) {
	f := NewFollower(NewPath(nil, mgl32.Vec3{}, 1, 1), 1)
	if _, _, ok := f.Step(mgl32.Vec3{}); ok {
		t.Error("an empty path has nothing to follow")
	}
}

func TestRepathPolicy(t *testing.T) {
	p := DefaultRepathPolicy()
	t0 := time.Unix(0, 0)

	if !p.ShouldRepath(t0, mgl32.Vec3{}) {
		t.Fatal("the first check always asks for a path")
	}
	if p.ShouldRepath(t0.Add(100*time.Millisecond), mgl32.Vec3{5, 0, 0}) {
		t.Error("checks inside the minimum interval are ignored")
	}
	if p.ShouldRepath(t0.Add(300*time.Millisecond), mgl32.Vec3{0.3, 0, 0}) {
		t.Error("a target moving less than the threshold keeps the path")
	}
	if !p.ShouldRepath(t0.Add(600*time.Millisecond), mgl32.Vec3{1, 0, 0}) {
		t.Error("a target moving past the threshold needs a new path")
	}
}
