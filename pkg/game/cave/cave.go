// Package cave generates organic cave levels with a cellular automaton and
// joins the surviving caves so that every one is reachable from the
// largest.
package cave

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/rng"
)

// ErrNoCaves is returned when no open region survives filtering.
var ErrNoCaves = errors.New("no cave survived filtering")

// Cave is a connected region of open tiles.
type Cave struct {
	Tiles []geom.Point
	// Edges are the tiles with a wall or the map boundary on one side.
	Edges []geom.Point

	Master    bool
	Reachable bool

	links mapset.Set[*Cave]
}

func newCave(tiles []geom.Point, m *TileMap) *Cave {
	c := &Cave{Tiles: tiles, links: mapset.New[*Cave]()}
	for _, t := range tiles {
		for _, n := range m.neighbours4(t) {
			if m.At(n.X, n.Y) == Wall {
				c.Edges = append(c.Edges, t)
				break
			}
		}
	}
	return c
}

// Size returns the number of tiles in the cave.
func (c *Cave) Size() int { return len(c.Tiles) }

// Links returns how many caves this one has been joined to.
func (c *Cave) Links() int { return c.links.Size() }

// LinkedTo reports whether c has been joined to o.
func (c *Cave) LinkedTo(o *Cave) bool { return c.links.Has(o) }

// Result is the output of one cave run.
type Result struct {
	Config Config
	// Seed is the seed string actually used.
	Seed string

	// Map is the carved map without border; Padded adds the border.
	Map    *TileMap
	Padded *TileMap

	// Caves are sorted by size, the master cave first.
	Caves []*Cave
}

// Generate builds a cave map.
func Generate(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.logger()

	seed := rng.Resolve(cfg.Seed, cfg.RandomSeed)
	r := rng.New(seed)

	m := fill(cfg, r)
	for i := 0; i < cfg.SmoothPasses; i++ {
		smooth(m)
	}

	for _, region := range regions(m, Wall) {
		if len(region) < cfg.MinWallRegion {
			setAll(m, region, Open)
		}
	}

	var caves []*Cave
	for _, region := range regions(m, Open) {
		if len(region) < cfg.MinCaveRegion {
			setAll(m, region, Wall)
			continue
		}
		caves = append(caves, newCave(region, m))
	}
	if len(caves) == 0 {
		return nil, fmt.Errorf("%w: %dx%d map at %d%% fill (seed %q)", ErrNoCaves, cfg.Width, cfg.Length, cfg.FillPercent, seed)
	}

	sort.SliceStable(caves, func(i, j int) bool {
		return caves[i].Size() > caves[j].Size()
	})
	caves[0].Master = true
	caves[0].Reachable = true

	tunnels := connect(m, caves, cfg.BrushRadius)
	logger.Debug("caves generated", "seed", seed, "caves", len(caves), "tunnels", tunnels)

	return &Result{
		Config: cfg,
		Seed:   seed,
		Map:    m,
		Padded: m.Padded(cfg.BorderSize),
		Caves:  caves,
	}, nil
}

// fill seeds the map: border tiles are walls, interior tiles are walls
// with probability FillPercent.
func fill(cfg Config, r *rand.Rand) *TileMap {
	m := NewTileMap(cfg.Width, cfg.Length)
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Length; y++ {
			switch {
			case x == 0 || x == cfg.Width-1 || y == 0 || y == cfg.Length-1:
				m.Set(x, y, Wall)
			case r.Intn(100) < cfg.FillPercent:
				m.Set(x, y, Wall)
			default:
				m.Set(x, y, Open)
			}
		}
	}
	return m
}

// smooth runs one automaton pass in place, so later tiles see the updated
// values of earlier ones.
func smooth(m *TileMap) {
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.length; y++ {
			m.Set(x, y, rule(m.At(x, y), wallNeighbours(m, x, y)))
		}
	}
}

// rule applies the smoothing threshold. Exactly four wall neighbours keep
// the tile as it is.
func rule(tile, walls int) int {
	switch {
	case walls > 4:
		return Wall
	case walls < 4:
		return Open
	default:
		return tile
	}
}

// wallNeighbours counts walls in the 8-neighbourhood, off-map included.
func wallNeighbours(m *TileMap, x, y int) int {
	n := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			n += m.At(nx, ny)
		}
	}
	return n
}

// regions returns the 4-connected regions of the given tile type in scan
// order.
func regions(m *TileMap, tile int) [][]geom.Point {
	visited := make([]bool, len(m.tiles))
	var out [][]geom.Point

	for x := 0; x < m.width; x++ {
		for y := 0; y < m.length; y++ {
			if visited[x*m.length+y] || m.At(x, y) != tile {
				continue
			}
			out = append(out, floodFill(m, geom.Pt(x, y), tile, visited))
		}
	}
	return out
}

func floodFill(m *TileMap, start geom.Point, tile int, visited []bool) []geom.Point {
	var region []geom.Point
	q := queue.New[geom.Point]()
	q.Enqueue(start)
	visited[start.X*m.length+start.Y] = true

	for !q.Empty() {
		p := q.Dequeue()
		region = append(region, p)
		for _, n := range m.neighbours4(p) {
			if !m.InBounds(n.X, n.Y) || m.At(n.X, n.Y) != tile {
				continue
			}
			if i := n.X*m.length + n.Y; !visited[i] {
				visited[i] = true
				q.Enqueue(n)
			}
		}
	}
	return region
}

func setAll(m *TileMap, tiles []geom.Point, v int) {
	for _, t := range tiles {
		m.Set(t.X, t.Y, v)
	}
}
