package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/nav"
	"undercroft/pkg/engine/world"
)

// Geometry layers reported to the nav grid.
const (
	LayerWall     = 9
	LayerFloor    = 10
	LayerCorridor = 11
	LayerCave     = 12
)

// GridGeometry answers nav grid probes from a tile grid laid flat on the
// X/Z plane and centred on the origin. Column c spans X in
// [origin.X+c*tile, origin.X+(c+1)*tile); row r does the same along Z.
// Everything outside the grid is solid wall.
type GridGeometry struct {
	grid   *world.Grid
	tile   float32
	origin mgl32.Vec2
}

// NewGridGeometry lays grid out with square tiles of side tileSize.
func NewGridGeometry(grid *world.Grid, tileSize float32) *GridGeometry {
	return &GridGeometry{
		grid: grid,
		tile: tileSize,
		origin: mgl32.Vec2{
			-float32(grid.Cols()) * tileSize / 2,
			-float32(grid.Rows()) * tileSize / 2,
		},
	}
}

// Size returns the covered extent along X and Z.
func (gg *GridGeometry) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(gg.grid.Cols()) * gg.tile, float32(gg.grid.Rows()) * gg.tile}
}

// CellCenter returns the world position of the middle of a tile.
func (gg *GridGeometry) CellCenter(row, col int) mgl32.Vec3 {
	return mgl32.Vec3{
		gg.origin.X() + (float32(col)+0.5)*gg.tile,
		0,
		gg.origin.Y() + (float32(row)+0.5)*gg.tile,
	}
}

// CellAt returns the tile under p. The tile may lie outside the grid.
func (gg *GridGeometry) CellAt(p mgl32.Vec3) (row, col int) {
	col = int(math.Floor(float64((p.X() - gg.origin.X()) / gg.tile)))
	row = int(math.Floor(float64((p.Z() - gg.origin.Y()) / gg.tile)))
	return row, col
}

func (gg *GridGeometry) solid(row, col int) bool {
	return !gg.grid.IsOpen(row, col)
}

// CheckSphere reports whether a circle of radius r around c overlaps a
// wall tile. Touching a wall does not count.
func (gg *GridGeometry) CheckSphere(c mgl32.Vec3, r float32, mask nav.LayerMask) bool {
	if !mask.Has(LayerWall) {
		return false
	}
	row0, col0 := gg.CellAt(c.Sub(mgl32.Vec3{r, 0, r}))
	row1, col1 := gg.CellAt(c.Add(mgl32.Vec3{r, 0, r}))

	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			if !gg.solid(row, col) {
				continue
			}
			lo := gg.origin.Add(mgl32.Vec2{float32(col) * gg.tile, float32(row) * gg.tile})
			hi := lo.Add(mgl32.Vec2{gg.tile, gg.tile})
			if circleRectOverlap(mgl32.Vec2{c.X(), c.Z()}, r, lo, hi) {
				return true
			}
		}
	}
	return false
}

// RaycastDown casts from o straight down onto the floor plane at Y=0 and
// returns the layer of the tile hit.
func (gg *GridGeometry) RaycastDown(o mgl32.Vec3, maxDist float32, mask nav.LayerMask) (int, bool) {
	if o.Y() < 0 || o.Y()-maxDist > 0 {
		return 0, false
	}
	layer := LayerWall
	if cell := gg.grid.GetCell(gg.CellAt(o)); cell != nil {
		layer = layerOf(cell.Kind)
	}
	return layer, mask.Has(layer)
}

func layerOf(k world.Kind) int {
	switch k {
	case world.Room:
		return LayerFloor
	case world.Corridor:
		return LayerCorridor
	case world.Cave:
		return LayerCave
	default:
		return LayerWall
	}
}

func circleRectOverlap(c mgl32.Vec2, r float32, lo, hi mgl32.Vec2) bool {
	nearest := mgl32.Vec2{
		mgl32.Clamp(c.X(), lo.X(), hi.X()),
		mgl32.Clamp(c.Y(), lo.Y(), hi.Y()),
	}
	return c.Sub(nearest).LenSqr() < r*r
}
