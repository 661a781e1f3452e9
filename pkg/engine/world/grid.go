package world

import (
	"errors"
	"fmt"
)

var (
	ErrNoStart     = errors.New("grid has no start cell")
	ErrStartWalled = errors.New("start cell is not open")
)

// Grid is a rows x cols tile map with encapsulated cell storage
type Grid struct {
	cells []*Cell
	rows  int
	cols  int

	startCell *Cell
}

// NewGrid creates a new all-wall grid with the given dimensions
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Build(rows, cols)
	return g
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// StartCell returns the starting cell
func (g *Grid) StartCell() *Cell {
	return g.startCell
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid) IsOnPerimeter(row, col int) bool {
	return g.IsValidPosition(row, col) &&
		(row == 0 || col == 0 || row == g.rows-1 || col == g.cols-1)
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(row, col int) *Cell {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.cells[row*g.cols+col]
}

// GetCellRelative returns the cell adjacent to the given cell in the specified direction
func (g *Grid) GetCellRelative(c *Cell, dir Direction) *Cell {
	if c == nil || !dir.IsValid() {
		return nil
	}
	rowRel, colRel := dir.Delta()
	return g.GetCell(c.Row+rowRel, c.Col+colRel)
}

// IsOpen reports whether the position is inside the grid and walkable
func (g *Grid) IsOpen(row, col int) bool {
	return g.GetCell(row, col).Open()
}

// SetStartCellAt sets the starting cell by position. Returns false if out of bounds.
func (g *Grid) SetStartCellAt(row, col int) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	g.startCell = cell
	return true
}

// Mark sets the kind and name of the cell at the given position.
// Returns false if out of bounds.
func (g *Grid) Mark(row, col int, kind Kind, name string) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	cell.Kind = kind
	cell.Name = name
	return true
}

// Build initializes the grid with the given dimensions, every cell a wall
func (g *Grid) Build(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.rows = rows
	g.cols = cols
	g.startCell = nil
	g.cells = make([]*Cell, rows*cols)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.cells[row*cols+col] = NewCell(row, col)
		}
	}
}

// BuildAllCellConnections connects all cells to their neighbors
func (g *Grid) BuildAllCellConnections() {
	for _, cell := range g.cells {
		g.buildCellConnections(cell)
	}
}

func (g *Grid) buildCellConnections(current *Cell) {
	for _, dir := range AllDirections() {
		adj := g.GetCellRelative(current, dir)
		if adj == nil {
			continue
		}
		current.SetNeighbor(dir, adj)
		adj.SetNeighbor(dir.Opposite(), current)
	}
}

// ForEachCell iterates over all cells in the grid, calling the provided function for each
func (g *Grid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for _, cell := range g.cells {
		fn(cell.Row, cell.Col, cell)
	}
}

// Count returns how many cells have the given kind
func (g *Grid) Count(kind Kind) int {
	n := 0
	for _, cell := range g.cells {
		if cell.Kind == kind {
			n++
		}
	}
	return n
}

// Validate checks the grid for common issues
func (g *Grid) Validate() error {
	if g.rows <= 0 || g.cols <= 0 {
		return fmt.Errorf("grid has invalid dimensions %dx%d", g.rows, g.cols)
	}
	if g.startCell == nil {
		return ErrNoStart
	}
	if !g.startCell.Open() {
		return fmt.Errorf("%w: %d:%d", ErrStartWalled, g.startCell.Row, g.startCell.Col)
	}
	return nil
}
