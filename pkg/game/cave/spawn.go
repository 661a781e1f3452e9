package cave

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/world"
)

// SpawnPoints picks the player tile from the master cave and one object
// tile from each other cave.
func (r *Result) SpawnPoints(rnd *rand.Rand) (player geom.Point, objects []geom.Point) {
	for i, c := range r.Caves {
		t := c.Tiles[rnd.Intn(len(c.Tiles))]
		if i == 0 {
			player = t
			continue
		}
		objects = append(objects, t)
	}
	return player, objects
}

// CoordToWorld converts a tile of the unpadded map to the centre of that
// tile in world space, with the map centred on the origin of the X/Z plane.
func (r *Result) CoordToWorld(tile geom.Point, height float32) mgl32.Vec3 {
	w, l := r.Map.Width(), r.Map.Length()
	return mgl32.Vec3{
		float32(-w/2) + 0.5 + float32(tile.X),
		height,
		float32(-l/2) + 0.5 + float32(tile.Y),
	}
}

// Rasterize draws the padded map into a tile grid. Cave tiles are named
// after their cave, carved tunnels are named "Tunnel". The start cell is
// the first tile of the master cave.
func (r *Result) Rasterize() *world.Grid {
	b := r.Config.BorderSize
	grid := world.NewGrid(r.Padded.Length(), r.Padded.Width())

	for x := 0; x < r.Padded.Width(); x++ {
		for y := 0; y < r.Padded.Length(); y++ {
			if r.Padded.At(x, y) == Open {
				grid.Mark(y, x, world.Cave, "Tunnel")
			}
		}
	}
	for i, c := range r.Caves {
		name := fmt.Sprintf("Cave %d", i+1)
		for _, t := range c.Tiles {
			grid.Mark(t.Y+b, t.X+b, world.Cave, name)
		}
	}

	start := r.Caves[0].Tiles[0]
	grid.SetStartCellAt(start.Y+b, start.X+b)
	grid.BuildAllCellConnections()
	return grid
}
