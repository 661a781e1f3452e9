package generator

import (
	"fmt"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/rng"
	"undercroft/pkg/engine/spatial"
	"undercroft/pkg/engine/world"
)

// Feature is a room or a corridor of a layout.
type Feature interface {
	Bounds() geom.Rect
	Kind() world.Kind
}

// Layout is the output of one BSP dungeon run.
type Layout struct {
	Config Config
	// Seed is the seed string actually used, so the run can be replayed.
	Seed string

	Tree      *spatial.Tree
	Regions   []spatial.NodeID
	Rooms     []Room
	Corridors []Corridor

	// Failures joins a ConnectError for every pair left unconnected.
	Failures error
}

// Build runs partitioning, room placement and corridor connection.
func Build(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.logger()

	seed := rng.Resolve(cfg.Seed, cfg.RandomSeed)
	r := rng.New(seed)

	tree := spatial.NewTree(geom.R(0, 0, cfg.Width, cfg.Length))
	regions := Partition(tree, r, cfg.MaxIterations, cfg.MinRoomWidth, cfg.MinRoomLength)
	leaves := tree.Leaves(tree.Root())
	rooms := PlaceRooms(tree, leaves, r, cfg.BottomCornerFactor, cfg.TopCornerFactor, cfg.RoomOffset)
	corridors, failures := Connect(tree, regions, r, cfg.CorridorWidth)

	if failures != nil {
		logger.Warn("dungeon has unconnected regions", "seed", seed, "error", failures)
	}
	logger.Debug("dungeon generated",
		"seed", seed,
		"regions", len(regions),
		"rooms", len(rooms),
		"corridors", len(corridors))

	return &Layout{
		Config:    cfg,
		Seed:      seed,
		Tree:      tree,
		Regions:   regions,
		Rooms:     rooms,
		Corridors: corridors,
		Failures:  failures,
	}, nil
}

// Features returns the rooms followed by the corridors.
func (l *Layout) Features() []Feature {
	features := make([]Feature, 0, len(l.Rooms)+len(l.Corridors))
	for _, r := range l.Rooms {
		features = append(features, r)
	}
	for _, c := range l.Corridors {
		features = append(features, c)
	}
	return features
}

// PlayerStart returns the centre cell of the first room.
func (l *Layout) PlayerStart() geom.Point {
	if len(l.Rooms) == 0 {
		return geom.Rect{Max: geom.Pt(l.Config.Width, l.Config.Length)}.Center()
	}
	return l.Rooms[0].Rect.Center()
}

// SpawnRooms returns the rooms after the first whose sides are both at
// least minSize.
func (l *Layout) SpawnRooms(minSize int) []Room {
	var rooms []Room
	for i, r := range l.Rooms {
		if i == 0 {
			continue
		}
		if r.Width() >= minSize && r.Height() >= minSize {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// Rasterize draws the layout into a tile grid with one row per unit of
// length and one column per unit of width. The start cell is PlayerStart.
func (l *Layout) Rasterize() *world.Grid {
	grid := world.NewGrid(l.Config.Length, l.Config.Width)

	for _, c := range l.Corridors {
		c.Rect.Cells(func(p geom.Point) {
			grid.Mark(p.Y, p.X, world.Corridor, "Corridor")
		})
	}
	for _, r := range l.Rooms {
		r.Rect.Cells(func(p geom.Point) {
			grid.Mark(p.Y, p.X, world.Room, r.Name)
		})
	}

	start := l.PlayerStart()
	grid.SetStartCellAt(start.Y, start.X)
	grid.BuildAllCellConnections()
	return grid
}

// Unreachable returns the rooms that cannot be walked to from the first
// room once the layout is rasterised.
func (l *Layout) Unreachable() []Room {
	if len(l.Rooms) == 0 {
		return nil
	}
	grid := l.Rasterize()
	reach := world.Reachable(grid.StartCell())

	var rooms []Room
	for _, r := range l.Rooms {
		if !reach.Has(grid.GetCell(r.Rect.Min.Y, r.Rect.Min.X)) {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// String summarises the layout for logs.
func (l *Layout) String() string {
	return fmt.Sprintf("%dx%d dungeon, %d rooms, %d corridors (seed %q)",
		l.Config.Width, l.Config.Length, len(l.Rooms), len(l.Corridors), l.Seed)
}
