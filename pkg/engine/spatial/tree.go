// Package spatial stores the binary space partition as an arena of nodes
// addressed by index. Parent and child links are ids into the arena, so the
// tree can be shared read-only once generation has finished.
package spatial

import (
	"fmt"

	"github.com/zyedidia/generic/queue"

	"undercroft/pkg/engine/geom"
)

// NodeID indexes a node inside its Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Node is one region of the partition.
type Node struct {
	// Region is the extent assigned by the partitioner. It never changes.
	Region geom.Rect
	// Bounds starts equal to Region and is narrowed in place when a room is
	// inscribed into a leaf.
	Bounds   geom.Rect
	Parent   NodeID
	Children []NodeID
	Depth    int
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is the arena owning every node of one partition.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only the root region.
func NewTree(root geom.Rect) *Tree {
	return &Tree{nodes: []Node{{Region: root, Bounds: root, Parent: NoNode}}}
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for id. The pointer is only valid until the next
// call to Split.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("spatial: node %d out of range [0,%d)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// Bounds returns the current bounds of id.
func (t *Tree) Bounds(id NodeID) geom.Rect {
	return t.Node(id).Bounds
}

// SetBounds replaces the current bounds of id.
func (t *Tree) SetBounds(id NodeID, r geom.Rect) {
	t.Node(id).Bounds = r
}

// Split attaches two children with the given regions to parent and returns
// their ids. A node can only be split once.
func (t *Tree) Split(parent NodeID, a, b geom.Rect) (NodeID, NodeID) {
	p := t.Node(parent)
	if !p.IsLeaf() {
		panic(fmt.Sprintf("spatial: node %d already split", parent))
	}
	depth := p.Depth + 1

	ida := NodeID(len(t.nodes))
	idb := ida + 1
	t.nodes = append(t.nodes,
		Node{Region: a, Bounds: a, Parent: parent, Depth: depth},
		Node{Region: b, Bounds: b, Parent: parent, Depth: depth},
	)
	t.nodes[parent].Children = []NodeID{ida, idb}
	return ida, idb
}

// Leaves returns the leaves below id in breadth-first order. A leaf
// returns itself.
func (t *Tree) Leaves(id NodeID) []NodeID {
	var leaves []NodeID
	q := queue.New[NodeID]()
	q.Enqueue(id)
	for !q.Empty() {
		cur := q.Dequeue()
		n := t.Node(cur)
		if n.IsLeaf() {
			leaves = append(leaves, cur)
			continue
		}
		for _, c := range n.Children {
			q.Enqueue(c)
		}
	}
	return leaves
}

// Each calls fn for every node in creation order.
func (t *Tree) Each(fn func(id NodeID, n *Node)) {
	for i := range t.nodes {
		fn(NodeID(i), &t.nodes[i])
	}
}
