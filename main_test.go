package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/pathfind"
	"undercroft/pkg/engine/rng"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWalk_ReachesTheEnd(t *testing.T) {
	waypoints := []mgl32.Vec3{{5, 0, 0}, {5, 0, 5}}
	end, steps, arrived := walk(mgl32.Vec3{}, waypoints[1], waypoints)
	if !arrived {
		t.Fatalf("agent stopped at %v after %d steps", end, steps)
	}
	if d := end.Sub(waypoints[1]).Len(); d > stoppingDistance {
		t.Errorf("agent ended %f from the goal", d)
	}
}

func TestWalk_StoppingShortIsNotArrival(t *testing.T) {
	waypoints := []mgl32.Vec3{{5, 0, 0}, {5, 0, 5}}
	end, _, arrived := walk(mgl32.Vec3{}, mgl32.Vec3{20, 0, 20}, waypoints)
	if arrived {
		t.Errorf("agent at %v counted as arrived at a goal far past the path end", end)
	}
}

func TestGenerateLevel_EveryGenerator(t *testing.T) {
	for _, name := range []string{"bsp", "cave", "arena"} {
		o := options{generator: name, seed: "main-test", offset: -1}
		gen, err := generateLevel(o, quietLogger())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if gen.seed != "main-test" {
			t.Errorf("%s: seed %q", name, gen.seed)
		}
		if len(gen.level.OpenCells()) == 0 {
			t.Errorf("%s: no walkable cells", name)
		}
	}

	if _, err := generateLevel(options{generator: "nope"}, quietLogger()); err == nil {
		t.Error("unknown generator should fail")
	}
}

func TestRunAgents(t *testing.T) {
	gen, err := generateLevel(options{generator: "arena", seed: "agents", offset: -1}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	s := pathfind.NewScheduler(gen.level.Planner, pathfind.WithWorkers(2))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := runAgents(ctx, gen.level, s, rng.New("agents"), 6, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if res.requests != 6 || res.solved+res.failed != 6 {
		t.Errorf("expected 6 answered requests, got %+v", res)
	}
	if res.failed != 0 {
		t.Errorf("the arena is connected, %d requests failed", res.failed)
	}
	if res.arrived != res.solved {
		t.Errorf("%d of %d agents arrived", res.arrived, res.solved)
	}
}

func TestWritten_Translated(t *testing.T) {
	initGettext("en")
	if got, want := written("DUMP_WRITTEN", "map.txt"), "Map dump written to map.txt"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := written("SCREENSHOT_WRITTEN", "shot.html"), "Screenshot written to shot.html"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
