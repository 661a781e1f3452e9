// Package level turns generated maps into walkable levels: a tile grid, a
// nav grid sampled from it and a planner over that nav grid.
package level

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/nav"
	"undercroft/pkg/engine/pathfind"
	"undercroft/pkg/engine/world"
	"undercroft/pkg/game/cave"
	"undercroft/pkg/game/generator"
)

// ErrInvalidOptions wraps every error returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid level options")

// Options controls how a tile grid is turned into a nav grid.
type Options struct {
	TileSize float32

	FloorPenalty    int
	CorridorPenalty int
	CavePenalty     int

	ObstacleProximityPenalty int
	BlurSize                 int

	Logger *slog.Logger
}

// DefaultOptions uses unit tiles and makes corridors a little dearer than
// room floors.
func DefaultOptions() Options {
	return Options{
		TileSize:                 1,
		FloorPenalty:             0,
		CorridorPenalty:          2,
		CavePenalty:              0,
		ObstacleProximityPenalty: 10,
		BlurSize:                 1,
	}
}

// Validate checks the tile size is positive and no terrain penalty is
// negative.
func (o Options) Validate() error {
	if o.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %v must be positive", ErrInvalidOptions, o.TileSize)
	}
	if o.FloorPenalty < 0 || o.CorridorPenalty < 0 || o.CavePenalty < 0 {
		return fmt.Errorf("%w: terrain penalties must not be negative", ErrInvalidOptions)
	}
	return nil
}

func (o Options) navConfig(size mgl32.Vec2) nav.Config {
	return nav.Config{
		WorldSize:  size,
		NodeRadius: o.TileSize / 2,
		Unwalkable: nav.Layer(LayerWall),
		Terrain: []nav.TerrainType{
			{Mask: nav.Layer(LayerFloor), Penalty: o.FloorPenalty},
			{Mask: nav.Layer(LayerCorridor), Penalty: o.CorridorPenalty},
			{Mask: nav.Layer(LayerCave), Penalty: o.CavePenalty},
		},
		ObstacleProximityPenalty: o.ObstacleProximityPenalty,
		BlurSize:                 o.BlurSize,
	}
}

// Level is a generated map ready for agents.
type Level struct {
	Grid     *world.Grid
	Geometry *GridGeometry
	Nav      *nav.Grid
	Planner  *pathfind.Planner
}

// FromGrid samples grid into a nav grid with one node per tile.
func FromGrid(grid *world.Grid, opts Options) (*Level, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	geo := NewGridGeometry(grid, opts.TileSize)
	navGrid, err := nav.Build(opts.navConfig(geo.Size()), geo)
	if err != nil {
		return nil, fmt.Errorf("build nav grid: %w", err)
	}

	if opts.Logger != nil {
		lo, hi := navGrid.PenaltyRange()
		opts.Logger.Debug("level assembled",
			"rows", grid.Rows(),
			"cols", grid.Cols(),
			"nodes", navGrid.MaxSize(),
			"min_penalty", lo,
			"max_penalty", hi)
	}

	return &Level{
		Grid:     grid,
		Geometry: geo,
		Nav:      navGrid,
		Planner:  pathfind.NewPlanner(navGrid),
	}, nil
}

// FromLayout rasterises a BSP dungeon and assembles it.
func FromLayout(l *generator.Layout, opts Options) (*Level, error) {
	return FromGrid(l.Rasterize(), opts)
}

// FromCaves rasterises a cave map, border included, and assembles it.
func FromCaves(r *cave.Result, opts Options) (*Level, error) {
	return FromGrid(r.Rasterize(), opts)
}

// CellToWorld returns the world position of the middle of a tile.
func (l *Level) CellToWorld(row, col int) mgl32.Vec3 {
	return l.Geometry.CellCenter(row, col)
}

// WorldToCell returns the tile under p and whether it is inside the grid.
func (l *Level) WorldToCell(p mgl32.Vec3) (row, col int, ok bool) {
	row, col = l.Geometry.CellAt(p)
	return row, col, l.Grid.IsValidPosition(row, col)
}

// Start returns the world position of the grid's start cell.
func (l *Level) Start() mgl32.Vec3 {
	c := l.Grid.StartCell()
	if c == nil {
		return mgl32.Vec3{}
	}
	return l.CellToWorld(c.Row, c.Col)
}

// OpenCells lists every walkable tile in row-major order.
func (l *Level) OpenCells() []*world.Cell {
	var cells []*world.Cell
	l.Grid.ForEachCell(func(_, _ int, c *world.Cell) {
		if c.Open() {
			cells = append(cells, c)
		}
	})
	return cells
}

// RandomOpenPoint returns the centre of a uniformly chosen walkable tile.
func (l *Level) RandomOpenPoint(r *rand.Rand) (mgl32.Vec3, bool) {
	cells := l.OpenCells()
	if len(cells) == 0 {
		return mgl32.Vec3{}, false
	}
	c := cells[r.Intn(len(cells))]
	return l.CellToWorld(c.Row, c.Col), true
}

// PathCells maps world waypoints back to the tiles they stand on.
func (l *Level) PathCells(waypoints []mgl32.Vec3) [][2]int {
	cells := make([][2]int, 0, len(waypoints))
	for _, p := range waypoints {
		if row, col, ok := l.WorldToCell(p); ok {
			cells = append(cells, [2]int{row, col})
		}
	}
	return cells
}
