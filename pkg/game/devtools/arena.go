package devtools

import (
	"fmt"
	"log/slog"

	"undercroft/pkg/engine/world"
	"undercroft/pkg/game/generator"
)

// arenaMargin is the spacing between wall pillars.
const arenaMargin = 3

// ArenaGenerator builds a fixed developer testing map: room floor,
// corridor and cave bands side by side, wall pillars every few cells and
// a dividing wall with a single gap. The seed is ignored.
type ArenaGenerator struct {
	Size int
}

// Name returns the name of this generator
func (a *ArenaGenerator) Name() string {
	return "arena"
}

// Generate lays out the arena.
func (a *ArenaGenerator) Generate(seed string, logger *slog.Logger) (*world.Grid, error) {
	n := a.Size
	if n < 12 {
		return nil, fmt.Errorf("%w: arena size %d is below 12", generator.ErrInvalidConfig, n)
	}
	grid := world.NewGrid(n, n)

	grid.ForEachCell(func(row, col int, cell *world.Cell) {
		if grid.IsOnPerimeter(row, col) {
			return
		}
		switch {
		case col < n/3:
			grid.Mark(row, col, world.Room, "Arena Hall")
		case col < 2*n/3:
			grid.Mark(row, col, world.Corridor, "Arena Corridor")
		default:
			grid.Mark(row, col, world.Cave, "Arena Cave")
		}
	})

	// Pillars, grouped in rows with a margin between each
	for row := arenaMargin + 1; row < n-1; row += arenaMargin + 1 {
		for col := arenaMargin + 1; col < n-1; col += arenaMargin + 1 {
			grid.Mark(row, col, world.Wall, "")
		}
	}

	divider := n / 2
	for row := 1; row < n-1; row++ {
		grid.Mark(row, divider, world.Wall, "")
	}
	grid.Mark(n/2, divider, world.Corridor, "Arena Gap")

	grid.SetStartCellAt(1, 1)
	grid.BuildAllCellConnections()

	if logger != nil {
		logger.Debug("arena generated", "size", n, "seed_ignored", seed)
	}
	return grid, nil
}

// Arena is the registered developer map.
var Arena = &ArenaGenerator{Size: 50}

func init() {
	generator.Register(Arena)
}
