package generator

import (
	"log/slog"
	"sort"

	"undercroft/pkg/engine/world"
)

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(seed string, logger *slog.Logger) (*world.Grid, error)
	Name() string
}

// BSPGenerator rasterises a BSP dungeon layout
type BSPGenerator struct {
	Config Config
}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "bsp"
}

// Generate builds a layout with the given seed and rasterises it
func (g *BSPGenerator) Generate(seed string, logger *slog.Logger) (*world.Grid, error) {
	cfg := g.Config
	cfg.Seed = seed
	cfg.Logger = logger
	layout, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	return layout.Rasterize(), nil
}

var registry = map[string]GridGenerator{}

// Register makes a generator available by name. A later registration with
// the same name replaces the earlier one.
func Register(g GridGenerator) {
	registry[g.Name()] = g
}

// Get returns the generator registered under name
func Get(name string) (GridGenerator, bool) {
	g, ok := registry[name]
	return g, ok
}

// Names lists the registered generators in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Available generators
var BSP = &BSPGenerator{Config: DefaultConfig()}

// DefaultGenerator is the default map generator
var DefaultGenerator GridGenerator = BSP

func init() {
	Register(BSP)
}
