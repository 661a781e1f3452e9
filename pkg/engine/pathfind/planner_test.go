package pathfind

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	g "github.com/zyedidia/generic"
	"github.com/zyedidia/generic/heap"

	"undercroft/pkg/engine/nav"
)

const (
	layerWall = 9
	layerMud  = 12
)

// tileGeometry is a unit-tile map centred on the origin. Row 0 of rows is
// the top of the map (largest Z).
type tileGeometry struct {
	rows []string
}

func (t tileGeometry) tile(p mgl32.Vec3) byte {
	h, w := len(t.rows), len(t.rows[0])
	x := int(math.Floor(float64(p.X() + float32(w)/2)))
	z := int(math.Floor(float64(p.Z() + float32(h)/2)))
	if x < 0 || x >= w || z < 0 || z >= h {
		return '#'
	}
	return t.rows[h-1-z][x]
}

func (t tileGeometry) CheckSphere(c mgl32.Vec3, _ float32, mask nav.LayerMask) bool {
	return mask.Has(layerWall) && t.tile(c) == '#'
}

func (t tileGeometry) RaycastDown(o mgl32.Vec3, _ float32, mask nav.LayerMask) (int, bool) {
	if t.tile(o) == '~' && mask.Has(layerMud) {
		return layerMud, true
	}
	return 0, false
}

func buildGrid(t testing.TB, rows []string) *nav.Grid {
	t.Helper()
	cfg := nav.Config{
		WorldSize:                mgl32.Vec2{float32(len(rows[0])), float32(len(rows))},
		NodeRadius:               0.5,
		Unwalkable:               nav.Layer(layerWall),
		Terrain:                  []nav.TerrainType{{Mask: nav.Layer(layerMud), Penalty: 7}},
		ObstacleProximityPenalty: 10,
	}
	grid, err := nav.Build(cfg, tileGeometry{rows: rows})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return grid
}

func openRows(w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	return rows
}

func randomRows(r *rand.Rand, w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		var b strings.Builder
		for j := 0; j < w; j++ {
			switch n := r.Intn(10); {
			case n < 3:
				b.WriteByte('#')
			case n < 5:
				b.WriteByte('~')
			default:
				b.WriteByte('.')
			}
		}
		rows[i] = b.String()
	}
	return rows
}

// dijkstra returns the cheapest cost from start to every node using the
// same moves and costs as the planner, or -1 where unreachable.
func dijkstra(grid *nav.Grid, start int) []int {
	dist := make([]int, grid.MaxSize())
	for i := range dist {
		dist[i] = -1
	}
	type entry struct{ node, cost int }
	h := heap.New[entry](func(a, b entry) bool { return a.cost < b.cost })
	dist[start] = 0
	h.Push(entry{start, 0})

	var buf []int
	for h.Size() > 0 {
		e, _ := h.Pop()
		if e.cost > dist[e.node] {
			continue
		}
		a := grid.Node(e.node)
		buf = grid.Neighbours(e.node, buf[:0])
		for _, n := range buf {
			b := grid.Node(n)
			if !b.Walkable {
				continue
			}
			step := straightCost
			if a.X != b.X && a.Y != b.Y {
				step = diagonalCost
			}
			cost := e.cost + step + b.Penalty
			if dist[n] < 0 || cost < dist[n] {
				dist[n] = cost
				h.Push(entry{n, cost})
			}
		}
	}
	return dist
}

func pathCost(grid *nav.Grid, cells []int) int {
	cost := 0
	for k := 1; k < len(cells); k++ {
		a, b := grid.Node(cells[k-1]), grid.Node(cells[k])
		if g.Max(abs(a.X-b.X), abs(a.Y-b.Y)) != 1 {
			return -1
		}
		if a.X != b.X && a.Y != b.Y {
			cost += diagonalCost
		} else {
			cost += straightCost
		}
		cost += b.Penalty
	}
	return cost
}

func length(start mgl32.Vec3, points []mgl32.Vec3) float32 {
	var total float32
	prev := start
	for _, p := range points {
		total += p.Sub(prev).Len()
		prev = p
	}
	return total
}

func TestFindPath_OpenGridCorner(t *testing.T) {
	grid := buildGrid(t, openRows(10, 10))
	p := NewPlanner(grid)

	start, goal := grid.NodeAt(0, 0).World, grid.NodeAt(9, 9).World
	waypoints, ok := p.FindPath(start, goal)
	if !ok {
		t.Fatal("expected a path across an open grid")
	}
	if got := waypoints[len(waypoints)-1]; !got.ApproxEqual(goal) {
		t.Errorf("last waypoint %v, want %v", got, goal)
	}

	cells, cost, _ := p.FindCells(grid.Index(0, 0), grid.Index(9, 9))
	if cost != 9*diagonalCost {
		t.Errorf("expected diagonal cost %d, got %d", 9*diagonalCost, cost)
	}
	raw := make([]mgl32.Vec3, len(cells)-1)
	for i, c := range cells[1:] {
		raw[i] = grid.Node(c).World
	}
	if s, r := length(start, waypoints), length(start, raw); s > r+1e-3 {
		t.Errorf("simplified length %f exceeds raw length %f", s, r)
	}
	if len(waypoints) != 1 {
		t.Errorf("a straight diagonal should simplify to the goal alone, got %v", waypoints)
	}
}

func TestFindCells_MatchesDijkstra(t *testing.T) {
	maps := [][]string{
		openRows(12, 8),
		{
			"..........",
			".########.",
			".#......#.",
			".#.####.#.",
			".#.#..#.#.",
			".#.#..#...",
			".#.####.#.",
			"...~~~~~#.",
		},
	}
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 6; i++ {
		maps = append(maps, randomRows(r, 15, 11))
	}

	for mi, rows := range maps {
		grid := buildGrid(t, rows)
		p := NewPlanner(grid)
		for trial := 0; trial < 20; trial++ {
			start := r.Intn(grid.MaxSize())
			goal := r.Intn(grid.MaxSize())
			if !grid.Node(start).Walkable || !grid.Node(goal).Walkable {
				continue
			}
			want := dijkstra(grid, start)[goal]
			cells, cost, ok := p.FindCells(start, goal)
			if want < 0 {
				if ok {
					t.Errorf("map %d: %d->%d found a path to an unreachable cell", mi, start, goal)
				}
				continue
			}
			if !ok {
				t.Errorf("map %d: %d->%d no path, want cost %d", mi, start, goal, want)
				continue
			}
			if cost != want {
				t.Errorf("map %d: %d->%d cost %d, want %d", mi, start, goal, cost, want)
			}
			if cells[0] != start || cells[len(cells)-1] != goal {
				t.Errorf("map %d: path %v should run from %d to %d", mi, cells, start, goal)
			}
			if got := pathCost(grid, cells); got != cost {
				t.Errorf("map %d: walked cost %d does not match reported %d", mi, got, cost)
			}
		}
	}
}

func TestFindPath_Failures(t *testing.T) {
	grid := buildGrid(t, []string{
		"...#....",
		"...#....",
		"...#..#.",
		"...#....",
	})
	p := NewPlanner(grid)
	open := grid.NodeAt(0, 0).World
	wall := grid.NodeAt(3, 1).World
	across := grid.NodeAt(7, 0).World

	cases := []struct {
		name        string
		start, goal mgl32.Vec3
	}{
		{"walled start", wall, open},
		{"walled goal", open, grid.NodeAt(6, 1).World},
		{"unreachable goal", open, across},
		{"start off grid", mgl32.Vec3{-50, 0, 0}, open},
		{"goal off grid", open, mgl32.Vec3{0, 0, 9}},
	}
	for _, tc := range cases {
		waypoints, ok := p.FindPath(tc.start, tc.goal)
		if ok || len(waypoints) != 0 {
			t.Errorf("%s: expected failure with no waypoints, got %v %v", tc.name, ok, waypoints)
		}
	}
}

func TestFindPath_StartIsGoal(t *testing.T) {
	grid := buildGrid(t, openRows(5, 5))
	here := grid.NodeAt(2, 3).World
	waypoints, ok := NewPlanner(grid).FindPath(here, here)
	if !ok || len(waypoints) != 1 || !waypoints[0].ApproxEqual(here) {
		t.Errorf("expected a single waypoint at %v, got %v %v", here, ok, waypoints)
	}
}

func TestSimplify_KeepsTurns(t *testing.T) {
	grid := buildGrid(t, openRows(8, 8))
	at := func(x, y int) int { return grid.Index(x, y) }

	cells := []int{at(0, 0), at(1, 0), at(2, 0), at(3, 1), at(4, 2), at(4, 3), at(4, 4)}
	got := Simplify(grid, cells)
	want := []int{at(2, 0), at(4, 2), at(4, 4)}
	if len(got) != len(want) {
		t.Fatalf("simplify %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turn %d: %d, want %d", i, got[i], want[i])
		}
	}

	if got := Simplify(grid, nil); got != nil {
		t.Errorf("empty path should stay empty, got %v", got)
	}
}

func TestPlanner_ConcurrentSearches(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	grid := buildGrid(t, randomRows(r, 30, 20))
	p := NewPlanner(grid)

	type pair struct{ start, goal int }
	var pairs []pair
	for len(pairs) < 64 {
		s, e := r.Intn(grid.MaxSize()), r.Intn(grid.MaxSize())
		if grid.Node(s).Walkable && grid.Node(e).Walkable {
			pairs = append(pairs, pair{s, e})
		}
	}

	want := make([]int, len(pairs))
	for i, pr := range pairs {
		_, want[i], _ = p.FindCells(pr.start, pr.goal)
	}

	got := make([]int, len(pairs))
	var wg sync.WaitGroup
	for i, pr := range pairs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, got[i], _ = p.FindCells(pr.start, pr.goal)
		}()
	}
	wg.Wait()

	for i := range pairs {
		if got[i] != want[i] {
			t.Errorf("pair %d: concurrent cost %d, sequential %d", i, got[i], want[i])
		}
	}
}
