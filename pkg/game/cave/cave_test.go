package cave

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/world"
)

func testConfig(seed string) Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Length = 60, 45
	cfg.Seed = seed
	return cfg
}

func TestRule_TieKeepsTile(t *testing.T) {
	cases := []struct {
		tile, walls, want int
	}{
		{Open, 4, Open},
		{Wall, 4, Wall},
		{Open, 5, Wall},
		{Wall, 3, Open},
		{Open, 8, Wall},
		{Wall, 0, Open},
	}
	for _, tc := range cases {
		if got := rule(tc.tile, tc.walls); got != tc.want {
			t.Errorf("rule(%d, %d) = %d, want %d", tc.tile, tc.walls, got, tc.want)
		}
	}
}

func TestWallNeighbours_OffMapCountsAsWall(t *testing.T) {
	m := NewTileMap(3, 3)
	if got := wallNeighbours(m, 0, 0); got != 5 {
		t.Errorf("corner of an open map: expected 5 walls, got %d", got)
	}
	if got := wallNeighbours(m, 1, 1); got != 0 {
		t.Errorf("centre of an open map: expected 0 walls, got %d", got)
	}
	m.Set(1, 1, Wall)
	if got := wallNeighbours(m, 1, 1); got != 0 {
		t.Errorf("a tile should not count itself, got %d", got)
	}
}

func TestLine(t *testing.T) {
	got := line(geom.Pt(0, 0), geom.Pt(4, 2))
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 1), geom.Pt(3, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("line: got %v, want %v", got, want)
	}

	steep := line(geom.Pt(2, 0), geom.Pt(0, 5))
	if len(steep) != 5 {
		t.Fatalf("steep line should take 5 steps, got %d", len(steep))
	}
	for i, p := range steep {
		if p.Y != i {
			t.Errorf("steep line step %d at y=%d", i, p.Y)
		}
	}
}

func TestGenerate_AllCavesReachable(t *testing.T) {
	for i := 0; i < 8; i++ {
		res, err := Generate(testConfig(fmt.Sprintf("reach-%d", i)))
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		if !res.Caves[0].Master {
			t.Error("largest cave should be the master")
		}
		for j, c := range res.Caves {
			if !c.Reachable {
				t.Errorf("seed %d: cave %d not reachable", i, j)
			}
			if j > 0 && c.Size() > res.Caves[j-1].Size() {
				t.Errorf("seed %d: caves not sorted by size", i)
			}
		}

		// The carved tunnels must really join the caves on the map.
		grid := res.Rasterize()
		reach := world.Reachable(grid.StartCell())
		b := res.Config.BorderSize
		for j, c := range res.Caves {
			tile := c.Tiles[0]
			if !reach.Has(grid.GetCell(tile.Y+b, tile.X+b)) {
				t.Errorf("seed %d: cave %d is not walkable from the master cave", i, j)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(testConfig("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testConfig("same"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Padded.Rows(), b.Padded.Rows()) {
		t.Error("maps differ between identical runs")
	}
	if len(a.Caves) != len(b.Caves) {
		t.Fatalf("cave counts differ: %d vs %d", len(a.Caves), len(b.Caves))
	}
	for i := range a.Caves {
		if !reflect.DeepEqual(a.Caves[i].Tiles, b.Caves[i].Tiles) {
			t.Errorf("cave %d tiles differ", i)
		}
	}
}

func TestGenerate_RegionsRespectThresholds(t *testing.T) {
	res, err := Generate(testConfig("regions"))
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range res.Caves {
		if c.Size() < res.Config.MinCaveRegion {
			t.Errorf("cave %d has %d tiles, below %d", i, c.Size(), res.Config.MinCaveRegion)
		}
		seen := map[geom.Point]bool{}
		for _, e := range c.Edges {
			if seen[e] {
				t.Errorf("cave %d lists edge %v twice", i, e)
			}
			seen[e] = true
		}
		if len(c.Edges) == 0 {
			t.Errorf("cave %d has no edge tiles", i)
		}
	}
}

func TestGenerate_PaddedBorder(t *testing.T) {
	res, err := Generate(testConfig("border"))
	if err != nil {
		t.Fatal(err)
	}
	p := res.Padded
	if p.Width() != 62 || p.Length() != 47 {
		t.Fatalf("expected 62x47 padded map, got %dx%d", p.Width(), p.Length())
	}
	for x := 0; x < p.Width(); x++ {
		if p.At(x, 0) != Wall || p.At(x, p.Length()-1) != Wall {
			t.Fatalf("border column %d is open", x)
		}
	}
	for y := 0; y < p.Length(); y++ {
		if p.At(0, y) != Wall || p.At(p.Width()-1, y) != Wall {
			t.Fatalf("border row %d is open", y)
		}
	}
	if p.Count(Open) != res.Map.Count(Open) {
		t.Errorf("padding changed the open tile count: %d vs %d", p.Count(Open), res.Map.Count(Open))
	}
}

func TestGenerate_NoCavesFailsFast(t *testing.T) {
	cfg := testConfig("solid")
	cfg.FillPercent = 100
	if _, err := Generate(cfg); !errors.Is(err, ErrNoCaves) {
		t.Fatalf("expected ErrNoCaves, got %v", err)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := testConfig("bad")
	cfg.FillPercent = 120
	if _, err := Generate(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSpawnPoints(t *testing.T) {
	res, err := Generate(testConfig("spawn"))
	if err != nil {
		t.Fatal(err)
	}
	player, objects := res.SpawnPoints(rand.New(rand.NewSource(3)))
	if res.Map.At(player.X, player.Y) != Open {
		t.Errorf("player spawn %v is not open", player)
	}
	if len(objects) != len(res.Caves)-1 {
		t.Errorf("expected %d object spawns, got %d", len(res.Caves)-1, len(objects))
	}
	for _, o := range objects {
		if res.Map.At(o.X, o.Y) != Open {
			t.Errorf("object spawn %v is not open", o)
		}
	}
}

func TestCoordToWorld(t *testing.T) {
	res := &Result{Map: NewTileMap(10, 6)}
	got := res.CoordToWorld(geom.Pt(0, 0), 2)
	if want := (mgl32.Vec3{-4.5, 2, -2.5}); !got.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	got = res.CoordToWorld(geom.Pt(9, 5), 0)
	if want := (mgl32.Vec3{4.5, 0, 2.5}); !got.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewCave_EdgesTouchWalls(t *testing.T) {
	m := NewTileMap(5, 5)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			if x == 0 || y == 0 || x == 4 || y == 4 {
				m.Set(x, y, Wall)
			}
		}
	}
	region := regions(m, Open)
	if len(region) != 1 || len(region[0]) != 9 {
		t.Fatalf("expected one 9-tile region, got %d regions", len(region))
	}
	c := newCave(region[0], m)
	if len(c.Edges) != 8 {
		t.Errorf("every tile but the centre is an edge, got %d edges", len(c.Edges))
	}
	for _, e := range c.Edges {
		if e == geom.Pt(2, 2) {
			t.Error("centre tile is surrounded by open tiles and is not an edge")
		}
	}
}
