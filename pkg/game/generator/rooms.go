package generator

import (
	"fmt"
	"math/rand"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/rng"
	"undercroft/pkg/engine/spatial"
	"undercroft/pkg/engine/world"
)

// Room names, picked at random per room
var roomNames = []string{
	"Crypt", "Ossuary", "Armory", "Cistern", "Chapel",
	"Guardroom", "Larder", "Library", "Barracks", "Vault",
	"Shrine", "Kennel", "Forge", "Cellar", "Gallery",
}

// Room is a leaf region after a room has been inscribed into it.
type Room struct {
	Node spatial.NodeID
	Name string
	Rect geom.Rect
}

// Bounds returns the room rectangle.
func (r Room) Bounds() geom.Rect { return r.Rect }

// Kind tags rooms among the layout features.
func (r Room) Kind() world.Kind { return world.Room }

// Width returns the room extent along X.
func (r Room) Width() int { return r.Rect.Width() }

// Height returns the room extent along Y.
func (r Room) Height() int { return r.Rect.Height() }

// PlaceRooms inscribes a room into each leaf, narrowing the leaf bounds in
// place, and returns the rooms in leaf order.
func PlaceRooms(tree *spatial.Tree, leaves []spatial.NodeID, r *rand.Rand, bottomCornerFactor, topCornerFactor float64, offset int) []Room {
	rooms := make([]Room, 0, len(leaves))
	for i, id := range leaves {
		region := tree.Node(id).Region
		rect := geom.Rect{
			Min: bottomLeftCorner(region, r, bottomCornerFactor, offset),
			Max: topRightCorner(region, r, topCornerFactor, offset),
		}
		tree.SetBounds(id, rect)

		name := fmt.Sprintf("%s %d", roomNames[r.Intn(len(roomNames))], i+1)
		rooms = append(rooms, Room{Node: id, Name: name, Rect: rect})
	}
	return rooms
}

// bottomLeftCorner samples the lower corner of a room. The Y range
// collapses to its minimum so every room sits on the inset floor of its
// region.
func bottomLeftCorner(region geom.Rect, r *rand.Rand, factor float64, offset int) geom.Point {
	minX, maxX := region.Min.X+offset, region.Max.X-offset
	minY := region.Min.Y + offset

	x := rng.Range(r, minX, int(float64(minX)+float64(maxX-minX)*factor))
	y := rng.Range(r, minY, int(float64(minY)+float64(minY-minY)*factor))
	return geom.Pt(x, y)
}

// topRightCorner samples the upper corner of a room
func topRightCorner(region geom.Rect, r *rand.Rand, factor float64, offset int) geom.Point {
	minX, maxX := region.Min.X+offset, region.Max.X-offset
	minY, maxY := region.Min.Y+offset, region.Max.Y-offset

	x := rng.Range(r, int(float64(minX)+float64(maxX-minX)*factor), maxX)
	y := rng.Range(r, int(float64(minY)+float64(maxY-minY)*factor), maxY)
	return geom.Pt(x, y)
}
