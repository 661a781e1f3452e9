// Package world provides the tile grid that generated levels are
// rasterised into. Each cell knows its kind and its four neighbours.
package world

// Kind classifies what occupies a cell.
type Kind int

const (
	Wall Kind = iota
	Room
	Corridor
	Cave
)

// String returns a short label for the kind
func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Room:
		return "room"
	case Corridor:
		return "corridor"
	case Cave:
		return "cave"
	default:
		return "unknown"
	}
}

// Open reports whether agents can stand on cells of this kind.
func (k Kind) Open() bool {
	return k != Wall
}

// Cell represents a single tile in the grid.
type Cell struct {
	// Name labels the feature the cell belongs to, e.g. "Room 3".
	Name string

	// Grid position. Row grows with world Y, Col with world X.
	Row int
	Col int

	Kind Kind

	// Navigation - links to adjacent cells
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell
}

// NewCell creates a wall cell at the given position
func NewCell(row, col int) *Cell {
	return &Cell{Row: row, Col: col, Kind: Wall}
}

// Open reports whether the cell is walkable floor
func (c *Cell) Open() bool {
	return c != nil && c.Kind.Open()
}

// GetNeighbor returns the neighboring cell in the given direction
func (c *Cell) GetNeighbor(dir Direction) *Cell {
	if c == nil {
		return nil
	}
	switch dir {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

// SetNeighbor sets the neighboring cell in the given direction
func (c *Cell) SetNeighbor(dir Direction, neighbor *Cell) {
	if c == nil {
		return
	}
	switch dir {
	case North:
		c.North = neighbor
	case East:
		c.East = neighbor
	case South:
		c.South = neighbor
	case West:
		c.West = neighbor
	}
}

// GetNeighbors returns all non-nil adjacent cells
func (c *Cell) GetNeighbors() []*Cell {
	var neighbors []*Cell
	for _, dir := range AllDirections() {
		if n := c.GetNeighbor(dir); n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
