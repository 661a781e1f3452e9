package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/pathfind"
	"undercroft/pkg/engine/rng"
	"undercroft/pkg/engine/terminal"
	"undercroft/pkg/game/cave"
	"undercroft/pkg/game/devtools"
	"undercroft/pkg/game/generator"
	"undercroft/pkg/game/level"
	"undercroft/pkg/game/renderer"
)

type options struct {
	generator  string
	width      int
	length     int
	minRoom    int
	iterations int
	corridor   int
	offset     int
	fill       int
	seed       string
	randomSeed bool

	agents  int
	workers int
	timeout time.Duration

	dump       string
	screenshot string
	lang       string
	noColor    bool
	verbose    bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.generator, "generator", generator.DefaultGenerator.Name(), "map generator: "+strings.Join(generator.Names(), ", "))
	flag.IntVar(&o.width, "width", 0, "map width in tiles (0 uses the generator default)")
	flag.IntVar(&o.length, "length", 0, "map length in tiles (0 uses the generator default)")
	flag.IntVar(&o.minRoom, "min-room", 0, "minimum room width and length for bsp")
	flag.IntVar(&o.iterations, "iterations", 0, "maximum bsp split iterations")
	flag.IntVar(&o.corridor, "corridor", 0, "corridor width for bsp")
	flag.IntVar(&o.offset, "offset", -1, "room inset from its region for bsp")
	flag.IntVar(&o.fill, "fill", 0, "initial wall percentage for caves")
	flag.StringVar(&o.seed, "seed", "", "seed string; empty picks one from the clock")
	flag.BoolVar(&o.randomSeed, "random-seed", false, "ignore -seed and pick a fresh seed")
	flag.IntVar(&o.agents, "agents", 8, "number of agents requesting paths")
	flag.IntVar(&o.workers, "workers", 0, "path solving workers (0 uses one per CPU)")
	flag.DurationVar(&o.timeout, "timeout", 30*time.Second, "give up waiting for paths after this long")
	flag.StringVar(&o.dump, "dump", "", "write a debug map dump to this file")
	flag.StringVar(&o.screenshot, "screenshot", "", "write an HTML screenshot into this directory")
	flag.StringVar(&o.lang, "lang", "en", "message language")
	flag.BoolVar(&o.noColor, "no-color", false, "disable coloured output")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.Parse()
	return o
}

func newLogger(verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

// dynamicGet looks up keys that take arguments; a function variable keeps
// vet from treating the msgid as a format string.
var dynamicGet = gotext.Get

// written reports where an output file went.
func written(key, path string) string {
	return dynamicGet(key, path)
}

// generated is a level plus whatever the generator knows about it.
type generated struct {
	name   string
	seed   string
	level  *level.Level
	layout *generator.Layout
	caves  *cave.Result
}

func (o options) bspConfig(logger *slog.Logger) generator.Config {
	cfg := generator.DefaultConfig()
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.length > 0 {
		cfg.Length = o.length
	}
	if o.minRoom > 0 {
		cfg.MinRoomWidth, cfg.MinRoomLength = o.minRoom, o.minRoom
	}
	if o.iterations > 0 {
		cfg.MaxIterations = o.iterations
	}
	if o.corridor > 0 {
		cfg.CorridorWidth = o.corridor
	}
	if o.offset >= 0 {
		cfg.RoomOffset = o.offset
	}
	cfg.Seed, cfg.RandomSeed, cfg.Logger = o.seed, o.randomSeed, logger
	return cfg
}

func (o options) caveConfig(logger *slog.Logger) cave.Config {
	cfg := cave.DefaultConfig()
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.length > 0 {
		cfg.Length = o.length
	}
	if o.fill > 0 {
		cfg.FillPercent = o.fill
	}
	cfg.Seed, cfg.RandomSeed, cfg.Logger = o.seed, o.randomSeed, logger
	return cfg
}

// generateLevel runs the chosen generator and assembles the level.
func generateLevel(o options, logger *slog.Logger) (*generated, error) {
	levelOpts := level.DefaultOptions()
	levelOpts.Logger = logger

	switch o.generator {
	case generator.BSP.Name():
		layout, err := generator.Build(o.bspConfig(logger))
		if err != nil {
			return nil, err
		}
		lvl, err := level.FromLayout(layout, levelOpts)
		if err != nil {
			return nil, err
		}
		return &generated{name: o.generator, seed: layout.Seed, level: lvl, layout: layout}, nil

	case generator.Caves.Name():
		res, err := cave.Generate(o.caveConfig(logger))
		if err != nil {
			return nil, err
		}
		lvl, err := level.FromCaves(res, levelOpts)
		if err != nil {
			return nil, err
		}
		return &generated{name: o.generator, seed: res.Seed, level: lvl, caves: res}, nil
	}

	gen, ok := generator.Get(o.generator)
	if !ok {
		return nil, fmt.Errorf("unknown generator %q, have %s", o.generator, strings.Join(generator.Names(), ", "))
	}
	seed := rng.Resolve(o.seed, o.randomSeed)
	grid, err := gen.Generate(seed, logger)
	if err != nil {
		return nil, err
	}
	lvl, err := level.FromGrid(grid, levelOpts)
	if err != nil {
		return nil, err
	}
	return &generated{name: o.generator, seed: seed, level: lvl}, nil
}

func (g *generated) summary(res *agentResults) renderer.Summary {
	s := renderer.Summary{
		Generator: g.name,
		Seed:      g.seed,
		Rows:      g.level.Grid.Rows(),
		Cols:      g.level.Grid.Cols(),
		OpenCells: len(g.level.OpenCells()),
		Requests:  res.requests,
		Solved:    res.solved,
		Failed:    res.failed,
		Arrived:   res.arrived,
	}
	if g.layout != nil {
		s.Rooms, s.Corridors = len(g.layout.Rooms), len(g.layout.Corridors)
		for _, r := range g.layout.Unreachable() {
			s.Unreachable = append(s.Unreachable, r.Name)
		}
	}
	if g.caves != nil {
		s.Caves = len(g.caves.Caves)
	}
	return s
}

func (g *generated) doors() []geom.Point {
	if g.layout == nil {
		return nil
	}
	walls := g.layout.Walls()
	return append(walls.HorizontalDoors, walls.VerticalDoors...)
}

func main() {
	o := parseFlags()
	logger := newLogger(o.verbose)
	initGettext(o.lang)

	gen, err := generateLevel(o, logger)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	logger.Info("level ready", "generator", gen.name, "seed", gen.seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	opts := []pathfind.Option{pathfind.WithLogger(logger)}
	if o.workers > 0 {
		opts = append(opts, pathfind.WithWorkers(o.workers))
	}
	scheduler := pathfind.NewScheduler(gen.level.Planner, opts...)

	results, err := runAgents(ctx, gen.level, scheduler, rng.New(gen.seed+"/agents"), o.agents, logger)
	if cerr := scheduler.Close(); cerr != nil {
		logger.Error("closing scheduler", "error", cerr)
	}
	if err != nil {
		log.Fatalf("agents: %v", err)
	}

	r := renderer.New(os.Stdout)
	r.Init(renderer.Options{
		Colors: terminal.ColorsWanted(os.Stdout, o.noColor),
		Center: terminal.IsInteractive(os.Stdout),
	})
	r.PrintLevel(renderer.Frame{Level: gen.level, Doors: gen.doors(), Paths: results.paths})
	fmt.Println()
	r.PrintSummary(gen.summary(results))

	dump := devtools.Dump{
		Generator: gen.name,
		Seed:      gen.seed,
		Level:     gen.level,
		Layout:    gen.layout,
		Caves:     gen.caves,
		Paths:     results.paths,
	}
	if o.dump != "" {
		path, err := devtools.DumpToFile(o.dump, dump)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Println(written("DUMP_WRITTEN", path))
	}
	if o.screenshot != "" {
		path, err := devtools.SaveScreenshotHTML(o.screenshot, dump)
		if err != nil {
			log.Fatalf("screenshot: %v", err)
		}
		fmt.Println(written("SCREENSHOT_WRITTEN", path))
	}
}
