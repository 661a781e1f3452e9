package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/pathfind"
	"undercroft/pkg/game/level"
)

// Agent movement, in world units.
const (
	turnDistance     = 0.5
	stoppingDistance = 1.5
	agentSpeed       = 0.25
	maxWalkSteps     = 10000

	tickInterval = 10 * time.Millisecond
)

type agentResults struct {
	requests int
	solved   int
	failed   int
	arrived  int
	paths    [][]mgl32.Vec3
}

// runAgents sends one path request per agent between random walkable
// tiles, ticks the scheduler until every answer is in and walks each
// agent along its path.
func runAgents(ctx context.Context, lvl *level.Level, s *pathfind.Scheduler, r *rand.Rand, agents int, logger *slog.Logger) (*agentResults, error) {
	res := &agentResults{}

	for i := 0; i < agents; i++ {
		start, ok := lvl.RandomOpenPoint(r)
		if !ok {
			return res, errors.New("level has no walkable tile")
		}
		goal, _ := lvl.RandomOpenPoint(r)

		err := s.Request(pathfind.Request{
			Start: start,
			End:   goal,
			Callback: func(waypoints []mgl32.Vec3, success bool) {
				if !success {
					res.failed++
					logger.Debug("no path", "agent", i, "start", start, "goal", goal)
					return
				}
				res.solved++
				res.paths = append(res.paths, waypoints)

				end, steps, arrived := walk(start, goal, waypoints)
				if arrived {
					res.arrived++
				}
				logger.Debug("agent walked",
					"agent", i,
					"waypoints", len(waypoints),
					"steps", steps,
					"arrived", arrived,
					"distance_left", end.Sub(goal).Len())
			},
		})
		if err != nil {
			return res, err
		}
		res.requests++
	}

	if err := s.Drain(ctx, tickInterval); err != nil {
		return res, err
	}
	logger.Info("paths delivered", "requests", res.requests, "solved", res.solved, "failed", res.failed, "arrived", res.arrived)
	return res, nil
}

// walk steers an agent from start along waypoints until the follower
// reports the end of the path. The agent has arrived when it stopped
// within stoppingDistance of goal on the ground plane.
func walk(start, goal mgl32.Vec3, waypoints []mgl32.Vec3) (mgl32.Vec3, int, bool) {
	f := pathfind.NewFollower(pathfind.NewPath(waypoints, start, turnDistance, stoppingDistance), stoppingDistance)
	pos := start

	for step := 0; step < maxWalkSteps; step++ {
		target, speed, following := f.Step(pos)
		if !following {
			return pos, step, near(pos, goal)
		}
		dir := target.Sub(pos)
		dir[1] = 0
		if dir.LenSqr() == 0 {
			return pos, step, near(pos, goal)
		}
		move := agentSpeed * speed
		if d := dir.Len(); move > d {
			move = d
		}
		pos = pos.Add(dir.Normalize().Mul(move))
	}
	return pos, maxWalkSteps, false
}

func near(pos, goal mgl32.Vec3) bool {
	d := goal.Sub(pos)
	d[1] = 0
	return d.Len() <= stoppingDistance
}
