package generator

import (
	"math/rand"

	"github.com/zyedidia/generic/queue"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/rng"
	"undercroft/pkg/engine/spatial"
)

// Partition splits the root of tree breadth-first until maxIterations
// regions have been processed or nothing is left to split. It returns the
// root followed by every region it created, intermediate nodes included.
func Partition(tree *spatial.Tree, r *rand.Rand, maxIterations, minWidth, minLength int) []spatial.NodeID {
	regions := []spatial.NodeID{tree.Root()}

	q := queue.New[spatial.NodeID]()
	q.Enqueue(tree.Root())

	for iterations := 0; iterations < maxIterations && !q.Empty(); iterations++ {
		id := q.Dequeue()
		bounds := tree.Node(id).Region

		wideEnough := bounds.Width() >= 2*minWidth
		longEnough := bounds.Height() >= 2*minLength
		if !wideEnough && !longEnough {
			continue
		}

		var a, b geom.Rect
		switch {
		case wideEnough && longEnough:
			if r.Intn(2) == 0 {
				a, b = splitVertically(bounds, r, minWidth)
			} else {
				a, b = splitHorizontally(bounds, r, minLength)
			}
		case wideEnough:
			a, b = splitVertically(bounds, r, minWidth)
		default:
			a, b = splitHorizontally(bounds, r, minLength)
		}

		left, right := tree.Split(id, a, b)
		regions = append(regions, left, right)
		q.Enqueue(left)
		q.Enqueue(right)
	}

	return regions
}

// splitVertically cuts along x, returning the left part first
func splitVertically(bounds geom.Rect, r *rand.Rand, minWidth int) (geom.Rect, geom.Rect) {
	cut := rng.Range(r, bounds.Min.X+minWidth, bounds.Max.X-minWidth)
	return geom.Rect{Min: bounds.Min, Max: geom.Pt(cut, bounds.Max.Y)},
		geom.Rect{Min: geom.Pt(cut, bounds.Min.Y), Max: bounds.Max}
}

// splitHorizontally cuts along y, returning the lower part first
func splitHorizontally(bounds geom.Rect, r *rand.Rand, minLength int) (geom.Rect, geom.Rect) {
	cut := rng.Range(r, bounds.Min.Y+minLength, bounds.Max.Y-minLength)
	return geom.Rect{Min: bounds.Min, Max: geom.Pt(bounds.Max.X, cut)},
		geom.Rect{Min: geom.Pt(bounds.Min.X, cut), Max: bounds.Max}
}
