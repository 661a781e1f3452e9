package cave

import "undercroft/pkg/engine/geom"

// Tile values
const (
	Open = 0
	Wall = 1
)

// TileMap is a width x length grid of Open/Wall tiles indexed by (x, y).
type TileMap struct {
	width, length int
	tiles         []int
}

// NewTileMap returns an all-open map.
func NewTileMap(width, length int) *TileMap {
	return &TileMap{width: width, length: length, tiles: make([]int, width*length)}
}

func (m *TileMap) Width() int  { return m.width }
func (m *TileMap) Length() int { return m.length }

// InBounds reports whether (x, y) lies on the map.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.length
}

// At returns the tile at (x, y). Positions off the map read as Wall.
func (m *TileMap) At(x, y int) int {
	if !m.InBounds(x, y) {
		return Wall
	}
	return m.tiles[x*m.length+y]
}

// Set writes the tile at (x, y). Positions off the map are ignored.
func (m *TileMap) Set(x, y, v int) {
	if m.InBounds(x, y) {
		m.tiles[x*m.length+y] = v
	}
}

// Count returns how many tiles equal v.
func (m *TileMap) Count(v int) int {
	n := 0
	for _, t := range m.tiles {
		if t == v {
			n++
		}
	}
	return n
}

// Rows returns the map as [x][y] slices.
func (m *TileMap) Rows() [][]int {
	out := make([][]int, m.width)
	for x := range out {
		out[x] = append([]int(nil), m.tiles[x*m.length:(x+1)*m.length]...)
	}
	return out
}

// Padded returns a copy surrounded by a wall border of the given size.
func (m *TileMap) Padded(border int) *TileMap {
	p := NewTileMap(m.width+2*border, m.length+2*border)
	for x := 0; x < p.width; x++ {
		for y := 0; y < p.length; y++ {
			p.Set(x, y, m.At(x-border, y-border))
		}
	}
	return p
}

func (m *TileMap) neighbours4(p geom.Point) [4]geom.Point {
	return [4]geom.Point{
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
	}
}
