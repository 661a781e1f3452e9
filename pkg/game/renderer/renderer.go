// Package renderer prints generated levels to a terminal.
package renderer

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/terminal"
	"undercroft/pkg/engine/world"
	"undercroft/pkg/game/level"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleRoom
	StyleCorridor
	StyleCave
	StyleDoor
	StylePath
	StyleStart
	StyleSubtle
	StyleDenied
	StyleHeading
)

// Icon constants
const (
	IconStart    = "@"
	IconWall     = "▒"
	IconRoom     = "·"
	IconCorridor = "░"
	IconCave     = "•"
	IconDoor     = "+"
	IconPath     = "*"
	IconVoid     = " "
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// Options controls how output looks.
type Options struct {
	Colors bool
	// Center indents the map to the middle of the terminal.
	Center bool
}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out    io.Writer
	opts   Options
	styles map[TextStyle]color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer writing to out
func New(out io.Writer) *TUIRenderer {
	return &TUIRenderer{out: out}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init(opts Options) {
	t.opts = opts
	t.styles = map[TextStyle]color.Style{
		StyleWall:     {color.FgGray},
		StyleRoom:     {color.FgBlue},
		StyleCorridor: {color.FgCyan},
		StyleCave:     {color.FgYellow},
		StyleDoor:     {color.FgYellow, color.OpBold},
		StylePath:     {color.FgMagenta, color.OpBold},
		StyleStart:    {color.FgGreen, color.BgBlack, color.OpBold},
		StyleSubtle:   {color.FgGray, color.OpBold},
		StyleDenied:   {color.FgRed, color.OpBold},
		StyleHeading:  {color.FgMagenta, color.OpBold},
	}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// StyleText applies a style to text and returns the styled string
func (t *TUIRenderer) StyleText(text string, style TextStyle) string {
	s, ok := t.styles[style]
	if !t.opts.Colors || !ok {
		return text
	}
	return s.Sprint(text)
}

// FormatText formats a message with the renderer's markup system:
// GT{KEY} translates KEY, ROOM{name} and BAD{text} apply styles.
func (t *TUIRenderer) FormatText(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range t.regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ROOM":
			val = t.StyleText(operand, StyleRoom)
		case "BAD":
			val = t.StyleText(operand, StyleDenied)
		case "SUBTLE":
			val = t.StyleText(operand, StyleSubtle)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

// RenderCell returns the string representation of a cell under an
// optional overlay mark.
func (t *TUIRenderer) RenderCell(c *world.Cell, mark rune) string {
	switch mark {
	case '@':
		return t.StyleText(IconStart, StyleStart)
	case '*':
		return t.StyleText(IconPath, StylePath)
	case 'D':
		return t.StyleText(IconDoor, StyleDoor)
	}
	if c == nil {
		return IconVoid
	}

	switch c.Kind {
	case world.Room:
		return t.StyleText(IconRoom, StyleRoom)
	case world.Corridor:
		return t.StyleText(IconCorridor, StyleCorridor)
	case world.Cave:
		return t.StyleText(IconCave, StyleCave)
	}

	// Walls only show next to something walkable
	if hasOpenNeighbour(c) {
		return t.StyleText(IconWall, StyleWall)
	}
	return IconVoid
}

func hasOpenNeighbour(c *world.Cell) bool {
	for _, n := range c.GetNeighbors() {
		if n.Open() {
			return true
		}
	}
	return false
}

// Frame is what PrintLevel draws.
type Frame struct {
	Level *level.Level
	Doors []geom.Point
	Paths [][]mgl32.Vec3
}

func (f Frame) marks() map[geom.Point]rune {
	m := map[geom.Point]rune{}
	for _, p := range f.Doors {
		m[p] = 'D'
	}
	for _, path := range f.Paths {
		for _, c := range f.Level.PathCells(path) {
			m[geom.Pt(c[1], c[0])] = '*'
		}
	}
	if s := f.Level.Grid.StartCell(); s != nil {
		m[geom.Pt(s.Col, s.Row)] = '@'
	}
	return m
}

// PrintLevel renders the whole map, north up.
func (t *TUIRenderer) PrintLevel(f Frame) {
	grid := f.Level.Grid
	marks := f.marks()

	indent := ""
	if t.opts.Center {
		if pad := (terminal.Width(t.out) - grid.Cols()) / 2; pad > 0 {
			indent = strings.Repeat(" ", pad)
		}
	}

	var b strings.Builder
	for row := grid.Rows() - 1; row >= 0; row-- {
		b.WriteString(indent)
		for col := 0; col < grid.Cols(); col++ {
			b.WriteString(t.RenderCell(grid.GetCell(row, col), marks[geom.Pt(col, row)]))
		}
		b.WriteString("\n")
	}
	fmt.Fprint(t.out, b.String())
}

// Summary is the outcome of one run.
type Summary struct {
	Generator string
	Seed      string

	Rows, Cols int
	Rooms      int
	Corridors  int
	Caves      int
	OpenCells  int

	Requests int
	Solved   int
	Failed   int
	Arrived  int

	Unreachable []string
}

// PrintSummary prints the run summary using translated labels.
func (t *TUIRenderer) PrintSummary(s Summary) {
	line := func(key string, a ...any) {
		fmt.Fprintln(t.out, fmt.Sprintf(dynamicGet(key), a...))
	}

	fmt.Fprintln(t.out, t.StyleText(dynamicGet("SUMMARY_TITLE"), StyleHeading))
	line("SUMMARY_GENERATOR", s.Generator)
	line("SUMMARY_SEED", s.Seed)
	line("SUMMARY_SIZE", s.Cols, s.Rows)
	switch {
	case s.Caves > 0:
		line("SUMMARY_CAVES", s.Caves)
	case s.Rooms > 0:
		line("SUMMARY_ROOMS", s.Rooms, s.Corridors)
	}
	line("SUMMARY_OPEN_CELLS", s.OpenCells)
	if s.Requests > 0 {
		line("SUMMARY_PATHS", s.Solved, s.Requests)
		if s.Solved > 0 {
			fmt.Fprintln(t.out, t.FormatText("%d/%d %s", s.Arrived, s.Solved, dynamicGet("SUMMARY_ARRIVED")))
		}
		if s.Failed > 0 {
			fmt.Fprintln(t.out, t.FormatText("BAD{%d} %s", s.Failed, dynamicGet("SUMMARY_FAILED")))
		}
	}
	for _, name := range s.Unreachable {
		fmt.Fprintln(t.out, t.FormatText("%s ROOM{%s}", dynamicGet("SUMMARY_UNREACHABLE"), name))
	}
}
