// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/world"
	"undercroft/pkg/game/cave"
	"undercroft/pkg/game/generator"
	"undercroft/pkg/game/level"
)

// DefaultDumpFilename is where DumpToFile writes when given no name.
const DefaultDumpFilename = "map.txt"

// Dump is everything known about one generated level.
type Dump struct {
	Generator string
	Seed      string
	Level     *level.Level

	// At most one of Layout and Caves is set, depending on the generator.
	Layout *generator.Layout
	Caves  *cave.Result

	// Paths are waypoint lists returned by the planner.
	Paths [][]mgl32.Vec3
}

// cellSymbol returns the single-character symbol for a cell with no
// overlay.
func cellSymbol(cell *world.Cell) rune {
	if cell == nil {
		return '#'
	}
	switch cell.Kind {
	case world.Room:
		return '.'
	case world.Corridor:
		return ','
	case world.Cave:
		return '~'
	default:
		return '#'
	}
}

// overlay holds the symbols drawn over cells, keyed by position.
type overlay map[geom.Point]rune

func (d Dump) overlay() overlay {
	o := overlay{}
	if d.Layout != nil {
		walls := d.Layout.Walls()
		for _, p := range walls.HorizontalDoors {
			o[p] = 'D'
		}
		for _, p := range walls.VerticalDoors {
			o[p] = 'D'
		}
	}
	for _, path := range d.Paths {
		for _, c := range d.Level.PathCells(path) {
			o[geom.Pt(c[1], c[0])] = '*'
		}
	}
	if start := d.Level.Grid.StartCell(); start != nil {
		o[geom.Pt(start.Col, start.Row)] = '@'
	}
	return o
}

// writeMapGrid writes the grid with the highest row first so that north
// is up.
func writeMapGrid(w io.Writer, grid *world.Grid, o overlay) {
	for row := grid.Rows() - 1; row >= 0; row-- {
		line := make([]rune, grid.Cols())
		for col := range line {
			if r, ok := o[geom.Pt(col, row)]; ok {
				line[col] = r
				continue
			}
			line[col] = cellSymbol(grid.GetCell(row, col))
		}
		fmt.Fprintln(w, string(line))
	}
}

// WriteDump writes a full debug dump of d to w: metadata, legend, map and
// a list of every feature with its coordinates.
func WriteDump(w io.Writer, d Dump) error {
	if d.Level == nil {
		return fmt.Errorf("no level")
	}
	bw := bufio.NewWriter(w)
	grid := d.Level.Grid

	startRow, startCol := -1, -1
	if c := grid.StartCell(); c != nil {
		startRow, startCol = c.Row, c.Col
	}

	fmt.Fprintln(bw, "=== MAP DUMP ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "generator: %s\n", d.Generator)
	fmt.Fprintf(bw, "seed: %q\n", d.Seed)
	fmt.Fprintf(bw, "grid_rows: %d\n", grid.Rows())
	fmt.Fprintf(bw, "grid_cols: %d\n", grid.Cols())
	fmt.Fprintf(bw, "coordinate_system: row,col (0-based, row grows north, col grows east)\n")
	fmt.Fprintf(bw, "start_cell: %d,%d\n", startRow, startCol)
	fmt.Fprintf(bw, "open_cells: %d\n", len(d.Level.OpenCells()))
	lo, hi := d.Level.Nav.PenaltyRange()
	fmt.Fprintf(bw, "penalty_range: %d..%d\n", lo, hi)
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Legend ---")
	fmt.Fprintln(bw, "# = wall  . = room  , = corridor  ~ = cave  D = door  * = waypoint  @ = start")
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Map ---")
	writeMapGrid(bw, grid, d.overlay())
	fmt.Fprintln(bw, "")

	if d.Layout != nil {
		writeLayout(bw, d.Layout)
	}
	if d.Caves != nil {
		writeCaves(bw, d.Caves)
	}

	fmt.Fprintln(bw, "Paths:")
	for i, path := range d.Paths {
		fmt.Fprintf(bw, "  path: %d waypoints: %d cells:", i, len(path))
		for _, c := range d.Level.PathCells(path) {
			fmt.Fprintf(bw, " %d,%d", c[0], c[1])
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "=== END MAP DUMP ===")
	return bw.Flush()
}

func writeLayout(w io.Writer, l *generator.Layout) {
	fmt.Fprintln(w, "Rooms:")
	for _, r := range l.Rooms {
		fmt.Fprintf(w, "  name: %q node: %d rect: %v\n", r.Name, r.Node, r.Rect)
	}
	fmt.Fprintln(w, "")

	grid := l.Rasterize()
	fmt.Fprintln(w, "Room links:")
	for _, r := range l.Rooms {
		fmt.Fprintf(w, "  name: %q adjacent: %q\n", r.Name, grid.AdjacentRooms(r.Name))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Corridors:")
	for _, c := range l.Corridors {
		fmt.Fprintf(w, "  from: %d to: %d relation: %s width: %d rect: %v\n", c.Area1, c.Area2, c.Relation, c.Width, c.Rect)
	}
	fmt.Fprintln(w, "")

	walls := l.Walls()
	fmt.Fprintln(w, "Doors:")
	for _, p := range walls.HorizontalDoors {
		fmt.Fprintf(w, "  x: %d y: %d orientation: horizontal\n", p.X, p.Y)
	}
	for _, p := range walls.VerticalDoors {
		fmt.Fprintf(w, "  x: %d y: %d orientation: vertical\n", p.X, p.Y)
	}
	fmt.Fprintf(w, "wall_segments: horizontal=%d vertical=%d\n", len(walls.HorizontalWalls), len(walls.VerticalWalls))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Unreachable rooms:")
	unreachable := l.Unreachable()
	if len(unreachable) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, r := range unreachable {
		fmt.Fprintf(w, "  name: %q\n", r.Name)
	}
	if l.Failures != nil {
		fmt.Fprintf(w, "connect_failures: %v\n", l.Failures)
	}
	fmt.Fprintln(w, "")
}

func writeCaves(w io.Writer, r *cave.Result) {
	fmt.Fprintln(w, "Caves:")
	for i, c := range r.Caves {
		fmt.Fprintf(w, "  cave: %d tiles: %d edges: %d master: %v links: %d\n", i+1, c.Size(), len(c.Edges), c.Master, c.Links())
	}
	fmt.Fprintln(w, "")
}

// DumpToFile writes d to filename, or to DefaultDumpFilename when it is
// empty, and returns the absolute path written.
func DumpToFile(filename string, d Dump) (string, error) {
	if filename == "" {
		filename = DefaultDumpFilename
	}
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, d); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
