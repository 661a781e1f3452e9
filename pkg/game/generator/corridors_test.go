package generator

import (
	"errors"
	"math/rand"
	"testing"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/spatial"
)

func TestConnect_DownRelation(t *testing.T) {
	tree := spatial.NewTree(geom.R(0, 0, 10, 20))
	top, bottom := tree.Split(tree.Root(), geom.R(0, 10, 10, 20), geom.R(0, 0, 10, 10))
	tree.SetBounds(top, geom.R(2, 12, 8, 18))
	tree.SetBounds(bottom, geom.R(2, 2, 8, 8))

	corridors, err := Connect(tree, []spatial.NodeID{0, top, bottom}, rand.New(rand.NewSource(1)), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corridors) != 1 {
		t.Fatalf("expected 1 corridor, got %d", len(corridors))
	}
	c := corridors[0]
	if c.Relation != Down {
		t.Errorf("expected relation down, got %s", c.Relation)
	}
	if want := geom.R(3, 8, 6, 12); c.Rect != want {
		t.Errorf("expected corridor %v, got %v", want, c.Rect)
	}
	if c.From != bottom || c.To != top {
		t.Errorf("expected corridor from %d to %d, got %d to %d", bottom, top, c.From, c.To)
	}
	if c.Area1 != top || c.Area2 != bottom {
		t.Errorf("areas should keep child order, got %d,%d", c.Area1, c.Area2)
	}
}

func TestConnect_LeftRelation(t *testing.T) {
	tree := spatial.NewTree(geom.R(0, 0, 20, 10))
	right, left := tree.Split(tree.Root(), geom.R(10, 0, 20, 10), geom.R(0, 0, 10, 10))
	tree.SetBounds(left, geom.R(1, 1, 8, 8))
	tree.SetBounds(right, geom.R(12, 2, 18, 6))

	corridors, err := Connect(tree, []spatial.NodeID{0, right, left}, rand.New(rand.NewSource(1)), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := corridors[0]
	if c.Relation != Left {
		t.Errorf("expected relation left, got %s", c.Relation)
	}
	if want := geom.R(8, 2, 12, 5); c.Rect != want {
		t.Errorf("expected corridor %v, got %v", want, c.Rect)
	}
}

func TestConnect_NoOverlapIsReported(t *testing.T) {
	tree := spatial.NewTree(geom.R(0, 0, 20, 10))
	a, b := tree.Split(tree.Root(), geom.R(0, 0, 10, 10), geom.R(10, 0, 20, 10))
	tree.SetBounds(a, geom.R(1, 1, 5, 3))
	tree.SetBounds(b, geom.R(12, 6, 15, 9))

	corridors, err := Connect(tree, []spatial.NodeID{0, a, b}, rand.New(rand.NewSource(1)), 3)
	if len(corridors) != 0 {
		t.Errorf("expected no corridor, got %v", corridors)
	}
	if !errors.Is(err, ErrNoCorridor) {
		t.Fatalf("expected ErrNoCorridor, got %v", err)
	}
	var ce *ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("expected a ConnectError, got %T", err)
	}
	if ce.Parent != tree.Root() || ce.Relation != Right {
		t.Errorf("expected root/right failure, got node %d %s", ce.Parent, ce.Relation)
	}
}

func TestConnect_RetriesNextBottomCandidate(t *testing.T) {
	// The lower half holds two rooms side by side. The taller one faces
	// nothing above it, so the connector has to fall back to the other.
	tree := spatial.NewTree(geom.R(0, 0, 20, 20))
	bottom, top := tree.Split(tree.Root(), geom.R(0, 0, 20, 10), geom.R(0, 10, 20, 20))
	bl, br := tree.Split(bottom, geom.R(0, 0, 10, 10), geom.R(10, 0, 20, 10))
	tree.SetBounds(bl, geom.R(1, 1, 8, 7))
	tree.SetBounds(br, geom.R(11, 1, 18, 9))
	tree.SetBounds(top, geom.R(2, 12, 7, 18))

	regions := []spatial.NodeID{0, bottom, top, bl, br}
	for seed := int64(1); seed <= 10; seed++ {
		corridors, _ := Connect(tree, regions, rand.New(rand.NewSource(seed)), 2)
		var outer *Corridor
		for i := range corridors {
			if corridors[i].Area1 == bottom {
				outer = &corridors[i]
			}
		}
		if outer == nil {
			t.Fatalf("seed %d: expected the halves to be connected", seed)
		}
		if outer.From != bl || outer.To != top {
			t.Errorf("seed %d: expected %d->%d, got %d->%d", seed, bl, top, outer.From, outer.To)
		}
		if outer.Rect.Empty() {
			t.Errorf("seed %d: empty corridor %v", seed, outer.Rect)
		}
	}
}

func TestConnect_DeepestFirst(t *testing.T) {
	tree, regions := partition(11, 50, 50, 50, 4, 4)
	rooms := PlaceRooms(tree, tree.Leaves(tree.Root()), rand.New(rand.NewSource(11)), 0.1, 0.9, 1)
	if len(rooms) == 0 {
		t.Fatal("expected rooms")
	}
	corridors, _ := Connect(tree, regions, rand.New(rand.NewSource(11)), 3)
	for i := 1; i < len(corridors); i++ {
		prev := tree.Node(corridors[i-1].Area1).Depth
		cur := tree.Node(corridors[i].Area1).Depth
		if cur > prev {
			t.Fatalf("corridor %d joins depth %d after depth %d", i, cur, prev)
		}
	}
}
