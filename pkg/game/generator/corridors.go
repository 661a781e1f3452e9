package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/spatial"
	"undercroft/pkg/engine/world"
)

// ErrNoCorridor is wrapped by every ConnectError.
var ErrNoCorridor = errors.New("no corridor created for this pair")

// facingTolerance is how far behind the outermost room a facing room may
// sit and still be a candidate.
const facingTolerance = 10

// Relation is the direction from a node's first child to its second.
type Relation int

const (
	Right Relation = iota
	Up
	Down
	Left
)

func (r Relation) String() string {
	switch r {
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Corridor joins the subtrees of Area1 and Area2 through the rooms From
// and To.
type Corridor struct {
	Area1, Area2 spatial.NodeID
	From, To     spatial.NodeID
	Relation     Relation
	Width        int
	Rect         geom.Rect
}

// Bounds returns the corridor rectangle.
func (c Corridor) Bounds() geom.Rect { return c.Rect }

// Kind tags corridors among the layout features.
func (c Corridor) Kind() world.Kind { return world.Corridor }

// ConnectError reports a node whose children could not be joined.
type ConnectError struct {
	Parent   spatial.NodeID
	Relation Relation
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("node %d (%s): %v", e.Parent, e.Relation, ErrNoCorridor)
}

func (e *ConnectError) Unwrap() error {
	return ErrNoCorridor
}

// Connect joins the two children of every split region, deepest regions
// first. Pairs that cannot be joined are skipped and reported through the
// returned error, which joins one ConnectError per pair.
func Connect(tree *spatial.Tree, regions []spatial.NodeID, r *rand.Rand, width int) ([]Corridor, error) {
	ordered := make([]spatial.NodeID, len(regions))
	copy(ordered, regions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return tree.Node(ordered[i]).Depth > tree.Node(ordered[j]).Depth
	})

	c := connector{tree: tree, rand: r, width: width}
	var corridors []Corridor
	var errs []error

	for _, id := range ordered {
		n := tree.Node(id)
		if n.IsLeaf() {
			continue
		}
		a1, a2 := n.Children[0], n.Children[1]
		rel := relationOf(tree, a1, a2)

		var corridor Corridor
		var ok bool
		switch rel {
		case Up:
			corridor, ok = c.vertical(a1, a2)
		case Down:
			corridor, ok = c.vertical(a2, a1)
		case Right:
			corridor, ok = c.horizontal(a1, a2)
		default:
			corridor, ok = c.horizontal(a2, a1)
		}
		if !ok {
			errs = append(errs, &ConnectError{Parent: id, Relation: rel})
			continue
		}
		corridor.Area1, corridor.Area2, corridor.Relation = a1, a2, rel
		corridors = append(corridors, corridor)
	}

	return corridors, errors.Join(errs...)
}

// relationOf classifies the angle between the centroids of two partition
// regions.
func relationOf(tree *spatial.Tree, a, b spatial.NodeID) Relation {
	angle := geom.AngleDeg(tree.Node(a).Region.Centroid(), tree.Node(b).Region.Centroid())
	switch {
	case angle >= -45 && angle < 45:
		return Right
	case angle >= 45 && angle < 135:
		return Up
	case angle > -135 && angle < -45:
		return Down
	default:
		return Left
	}
}

type connector struct {
	tree  *spatial.Tree
	rand  *rand.Rand
	width int
}

// vertical joins a room of the lower subtree to a room of the upper one
func (c connector) vertical(bottom, top spatial.NodeID) (Corridor, bool) {
	tops := c.tree.Leaves(top)
	for _, b := range c.candidates(bottom, func(r geom.Rect) int { return r.Max.Y }) {
		bb := c.tree.Bounds(b)
		t, ok := c.nearest(tops, func(r geom.Rect) bool {
			return overlap(bb.Min.X, bb.Max.X, r.Min.X, r.Max.X)
		}, func(r geom.Rect) int { return r.Min.Y })
		if !ok {
			continue
		}
		tb := c.tree.Bounds(t)

		x := c.position(bb.Min.X, bb.Max.X, tb.Min.X, tb.Max.X)
		rect := geom.Rect{Min: geom.Pt(x, bb.Max.Y), Max: geom.Pt(x+c.width, tb.Min.Y)}
		if rect.Empty() {
			continue
		}
		return Corridor{From: b, To: t, Width: c.width, Rect: rect}, true
	}
	return Corridor{}, false
}

// horizontal joins a room of the left subtree to a room of the right one
func (c connector) horizontal(left, right spatial.NodeID) (Corridor, bool) {
	rights := c.tree.Leaves(right)
	for _, l := range c.candidates(left, func(r geom.Rect) int { return r.Max.X }) {
		lb := c.tree.Bounds(l)
		rr, ok := c.nearest(rights, func(r geom.Rect) bool {
			return overlap(lb.Min.Y, lb.Max.Y, r.Min.Y, r.Max.Y)
		}, func(r geom.Rect) int { return r.Min.X })
		if !ok {
			continue
		}
		rb := c.tree.Bounds(rr)

		y := c.position(lb.Min.Y, lb.Max.Y, rb.Min.Y, rb.Max.Y)
		rect := geom.Rect{Min: geom.Pt(lb.Max.X, y), Max: geom.Pt(rb.Min.X, y+c.width)}
		if rect.Empty() {
			continue
		}
		return Corridor{From: l, To: rr, Width: c.width, Rect: rect}, true
	}
	return Corridor{}, false
}

// candidates orders the leaves of area by how far their facing edge
// reaches, outermost first. The first candidate is drawn at random among
// the leaves within facingTolerance of the outermost edge.
func (c connector) candidates(area spatial.NodeID, edge func(geom.Rect) int) []spatial.NodeID {
	leaves := c.tree.Leaves(area)
	sort.SliceStable(leaves, func(i, j int) bool {
		return edge(c.tree.Bounds(leaves[i])) > edge(c.tree.Bounds(leaves[j]))
	})
	if len(leaves) <= 1 {
		return leaves
	}

	outermost := edge(c.tree.Bounds(leaves[0]))
	tied := 0
	for _, id := range leaves {
		if outermost-edge(c.tree.Bounds(id)) >= facingTolerance {
			break
		}
		tied++
	}
	pick := c.rand.Intn(tied)

	ordered := make([]spatial.NodeID, 0, len(leaves))
	ordered = append(ordered, leaves[pick])
	ordered = append(ordered, leaves[:pick]...)
	ordered = append(ordered, leaves[pick+1:]...)
	return ordered
}

// nearest returns the leaf accepted by fits with the smallest key
func (c connector) nearest(leaves []spatial.NodeID, fits func(geom.Rect) bool, key func(geom.Rect) int) (spatial.NodeID, bool) {
	best, found := spatial.NoNode, false
	for _, id := range leaves {
		b := c.tree.Bounds(id)
		if !fits(b) {
			continue
		}
		if !found || key(b) < key(c.tree.Bounds(best)) {
			best, found = id, true
		}
	}
	return best, found
}

// position centres a corridor of the connector width on the shared span
// of [min1,max1] and [min2,max2].
func (c connector) position(min1, max1, min2, max2 int) int {
	lo := max(min1, min2)
	hi := min(max1, max2)
	return geom.Midpoint(geom.Pt(lo+1, 0), geom.Pt(hi-(c.width+1), 0)).X
}

// overlap reports whether two spans share at least one unit
func overlap(min1, max1, min2, max2 int) bool {
	return min(max1, max2)-max(min1, min2) >= 1
}
