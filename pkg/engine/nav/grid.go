// Package nav discretises world space into a grid of walkable cells with
// movement penalties, the graph the path planner searches.
package nav

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	g "github.com/zyedidia/generic"
)

// rayHeight is how far above a cell the terrain ray starts.
const rayHeight = 50

// Geometry is the level the grid is built against.
type Geometry interface {
	// CheckSphere reports whether any geometry on a layer in mask
	// intersects the sphere.
	CheckSphere(center mgl32.Vec3, radius float32, mask LayerMask) bool
	// RaycastDown casts a ray straight down from origin and returns the
	// layer of the first surface in mask hit within maxDist.
	RaycastDown(origin mgl32.Vec3, maxDist float32, mask LayerMask) (layer int, ok bool)
}

// Node is one cell of the grid. Nodes are read-only once built.
type Node struct {
	Walkable bool
	World    mgl32.Vec3
	X, Y     int
	Penalty  int
}

// Grid is a built navigation grid.
type Grid struct {
	cfg        Config
	nodes      []Node
	sizeX      int
	sizeY      int
	diameter   float32
	bottomLeft mgl32.Vec3

	minPenalty int
	maxPenalty int
}

// Build samples geo on every cell and blurs the resulting penalties.
func Build(cfg Config, geo Geometry) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	diameter := cfg.NodeRadius * 2
	sizeX := int(math.RoundToEven(float64(cfg.WorldSize.X() / diameter)))
	sizeY := int(math.RoundToEven(float64(cfg.WorldSize.Y() / diameter)))
	if sizeX <= 0 || sizeY <= 0 {
		return nil, fmt.Errorf("%w: world size %v holds no cell of radius %v", ErrInvalidConfig, cfg.WorldSize, cfg.NodeRadius)
	}

	grid := &Grid{
		cfg:      cfg,
		nodes:    make([]Node, sizeX*sizeY),
		sizeX:    sizeX,
		sizeY:    sizeY,
		diameter: diameter,
		bottomLeft: cfg.Center.Sub(mgl32.Vec3{
			cfg.WorldSize.X() / 2, 0, cfg.WorldSize.Y() / 2,
		}),
	}

	walkableMask := cfg.walkableMask()
	up := mgl32.Vec3{0, rayHeight, 0}
	for y := 0; y < sizeY; y++ {
		for x := 0; x < sizeX; x++ {
			point := grid.bottomLeft.Add(mgl32.Vec3{
				float32(x)*diameter + cfg.NodeRadius,
				0,
				float32(y)*diameter + cfg.NodeRadius,
			})
			walkable := !geo.CheckSphere(point, cfg.NodeRadius, cfg.Unwalkable)

			penalty := 0
			if layer, ok := geo.RaycastDown(point.Add(up), 2*rayHeight, walkableMask); ok {
				penalty = cfg.terrainPenalty(layer)
			}
			if !walkable {
				penalty += cfg.ObstacleProximityPenalty
			}

			grid.nodes[grid.Index(x, y)] = Node{
				Walkable: walkable,
				World:    point,
				X:        x,
				Y:        y,
				Penalty:  penalty,
			}
		}
	}

	grid.blur(cfg.BlurSize)
	return grid, nil
}

// SizeX returns the number of columns.
func (gr *Grid) SizeX() int { return gr.sizeX }

// SizeY returns the number of rows.
func (gr *Grid) SizeY() int { return gr.sizeY }

// MaxSize returns the number of nodes.
func (gr *Grid) MaxSize() int { return len(gr.nodes) }

// Index returns the node index of (x, y).
func (gr *Grid) Index(x, y int) int { return y*gr.sizeX + x }

// InBounds reports whether (x, y) is a cell of the grid.
func (gr *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < gr.sizeX && y >= 0 && y < gr.sizeY
}

// Node returns the node at index i.
func (gr *Grid) Node(i int) *Node { return &gr.nodes[i] }

// NodeAt returns the node at (x, y).
func (gr *Grid) NodeAt(x, y int) *Node { return &gr.nodes[gr.Index(x, y)] }

// PenaltyRange returns the smallest and largest blurred penalty.
func (gr *Grid) PenaltyRange() (lo, hi int) {
	return gr.minPenalty, gr.maxPenalty
}

// NodeFromWorldPoint returns the index of the node nearest to p. Points
// outside the grid clamp to its border.
func (gr *Grid) NodeFromWorldPoint(p mgl32.Vec3) int {
	size := gr.cfg.WorldSize
	percentX := mgl32.Clamp((p.X()-gr.cfg.Center.X()+size.X()/2)/size.X(), 0, 1)
	percentY := mgl32.Clamp((p.Z()-gr.cfg.Center.Z()+size.Y()/2)/size.Y(), 0, 1)

	x := int(math.RoundToEven(float64(float32(gr.sizeX-1) * percentX)))
	y := int(math.RoundToEven(float64(float32(gr.sizeY-1) * percentY)))
	return gr.Index(x, y)
}

// Neighbours appends the indices of the up to eight cells around i to buf.
func (gr *Grid) Neighbours(i int, buf []int) []int {
	n := gr.nodes[i]
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := n.X+dx, n.Y+dy
			if gr.InBounds(x, y) {
				buf = append(buf, gr.Index(x, y))
			}
		}
	}
	return buf
}

// blur smooths penalties with a box of side 2*size+1, one horizontal and
// one vertical pass of running sums. Samples beyond the border repeat the
// border cell.
func (gr *Grid) blur(size int) {
	kernel := 2*size + 1
	area := float64(kernel * kernel)
	horizontal := make([]int, len(gr.nodes))
	vertical := make([]int, len(gr.nodes))

	for y := 0; y < gr.sizeY; y++ {
		for x := -size; x <= size; x++ {
			sample := g.Clamp(x, 0, gr.sizeX-1)
			horizontal[gr.Index(0, y)] += gr.nodes[gr.Index(sample, y)].Penalty
		}
		for x := 1; x < gr.sizeX; x++ {
			remove := g.Clamp(x-size-1, 0, gr.sizeX-1)
			add := g.Clamp(x+size, 0, gr.sizeX-1)
			horizontal[gr.Index(x, y)] = horizontal[gr.Index(x-1, y)] -
				gr.nodes[gr.Index(remove, y)].Penalty +
				gr.nodes[gr.Index(add, y)].Penalty
		}
	}

	gr.minPenalty, gr.maxPenalty = math.MaxInt, math.MinInt
	for x := 0; x < gr.sizeX; x++ {
		for y := -size; y <= size; y++ {
			sample := g.Clamp(y, 0, gr.sizeY-1)
			vertical[gr.Index(x, 0)] += horizontal[gr.Index(x, sample)]
		}
		gr.setBlurred(x, 0, vertical[gr.Index(x, 0)], area)

		for y := 1; y < gr.sizeY; y++ {
			remove := g.Clamp(y-size-1, 0, gr.sizeY-1)
			add := g.Clamp(y+size, 0, gr.sizeY-1)
			vertical[gr.Index(x, y)] = vertical[gr.Index(x, y-1)] -
				horizontal[gr.Index(x, remove)] +
				horizontal[gr.Index(x, add)]
			gr.setBlurred(x, y, vertical[gr.Index(x, y)], area)
		}
	}
}

func (gr *Grid) setBlurred(x, y, sum int, area float64) {
	p := int(math.RoundToEven(float64(sum) / area))
	gr.nodes[gr.Index(x, y)].Penalty = p
	gr.minPenalty = g.Min(gr.minPenalty, p)
	gr.maxPenalty = g.Max(gr.maxPenalty, p)
}

// Contains reports whether p lies over the grid on the X/Z plane.
func (gr *Grid) Contains(p mgl32.Vec3) bool {
	x := p.X() - gr.bottomLeft.X()
	z := p.Z() - gr.bottomLeft.Z()
	return x >= 0 && z >= 0 && x <= gr.cfg.WorldSize.X() && z <= gr.cfg.WorldSize.Y()
}
