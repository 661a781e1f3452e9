// Package binheap provides an indexed binary heap. Every item maps to a
// dense non-negative key, which lets the heap answer membership queries and
// re-sift an item whose priority changed without searching for it.
package binheap

import "fmt"

// CompareFn orders two items. A positive result means a has the higher
// priority and belongs closer to the root; zero means equal priority.
type CompareFn[T any] func(a, b T) int

// KeyFn maps an item to its dense key.
type KeyFn[T any] func(item T) int

// Heap is a max-heap on CompareFn. Invert the comparison to get a min-heap.
type Heap[T any] struct {
	items   []T
	pos     []int // key -> slot+1, 0 when absent
	key     KeyFn[T]
	compare CompareFn[T]
}

// New creates a heap sized for keys in [0, capacity). Larger keys grow the
// index on demand.
func New[T any](capacity int, key KeyFn[T], compare CompareFn[T]) *Heap[T] {
	return &Heap[T]{
		items:   make([]T, 0, capacity),
		pos:     make([]int, capacity),
		key:     key,
		compare: compare,
	}
}

// Len returns the number of items in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Add inserts item. Adding a key that is already present replaces the
// stored item and restores heap order.
func (h *Heap[T]) Add(item T) {
	k := h.key(item)
	if h.Contains(item) {
		i := h.pos[k] - 1
		h.items[i] = item
		h.fix(i)
		return
	}
	h.grow(k)
	h.items = append(h.items, item)
	h.pos[k] = len(h.items)
	h.up(len(h.items) - 1)
}

// Peek returns the root without removing it.
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// RemoveFirst removes and returns the root. It panics on an empty heap.
func (h *Heap[T]) RemoveFirst() T {
	if len(h.items) == 0 {
		panic("binheap: RemoveFirst on empty heap")
	}
	first := h.items[0]
	last := len(h.items) - 1
	h.swap(0, last)
	h.pos[h.key(first)] = 0
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	if last > 0 {
		h.down(0)
	}
	return first
}

// Update stores item over the entry with the same key and moves it to its
// new place. An absent item is added.
func (h *Heap[T]) Update(item T) {
	h.Add(item)
}

// Contains reports whether an item with the same key is in the heap.
func (h *Heap[T]) Contains(item T) bool {
	k := h.key(item)
	if k < 0 {
		panic(fmt.Sprintf("binheap: negative key %d", k))
	}
	if k >= len(h.pos) {
		return false
	}
	i := h.pos[k] - 1
	return i >= 0 && i < len(h.items) && h.key(h.items[i]) == k
}

// Clear empties the heap, keeping its storage.
func (h *Heap[T]) Clear() {
	for _, it := range h.items {
		h.pos[h.key(it)] = 0
	}
	clear(h.items)
	h.items = h.items[:0]
}

func (h *Heap[T]) grow(k int) {
	if k < 0 {
		panic(fmt.Sprintf("binheap: negative key %d", k))
	}
	if k < len(h.pos) {
		return
	}
	n := max(2*len(h.pos), k+1)
	pos := make([]int, n)
	copy(pos, h.pos)
	h.pos = pos
}

func (h *Heap[T]) fix(i int) {
	if !h.up(i) {
		h.down(i)
	}
}

// up sifts slot i towards the root and reports whether it moved.
func (h *Heap[T]) up(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if h.compare(h.items[i], h.items[parent]) <= 0 {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

func (h *Heap[T]) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		best := left
		if right := left + 1; right < n && h.compare(h.items[right], h.items[left]) > 0 {
			best = right
		}
		if h.compare(h.items[best], h.items[i]) <= 0 {
			return
		}
		h.swap(i, best)
		i = best
	}
}

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.key(h.items[i])] = i + 1
	h.pos[h.key(h.items[j])] = j + 1
}
