package generator

import (
	"log/slog"

	"undercroft/pkg/engine/world"
	"undercroft/pkg/game/cave"
)

// CaveGenerator rasterises a cellular cave map
type CaveGenerator struct {
	Config cave.Config
}

// Name returns the name of this generator
func (g *CaveGenerator) Name() string {
	return "cave"
}

// Generate builds a cave map with the given seed and rasterises it
func (g *CaveGenerator) Generate(seed string, logger *slog.Logger) (*world.Grid, error) {
	cfg := g.Config
	cfg.Seed = seed
	cfg.Logger = logger
	res, err := cave.Generate(cfg)
	if err != nil {
		return nil, err
	}
	return res.Rasterize(), nil
}

// Caves is the registered cave generator
var Caves = &CaveGenerator{Config: cave.DefaultConfig()}

func init() {
	Register(Caves)
}
