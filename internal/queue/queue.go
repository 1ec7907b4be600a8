// Package queue provides the value-based priority queue used by the
// query engine for k-best candidate tracking.
package queue

// Item represents an item in the priority queue.
type Item struct {
	ID       uint32  // ID is the point index carried by the item.
	Distance float32 // Distance is the priority of the item in the queue.
}

// PriorityQueue is a binary heap of Items stored by value for cache
// locality. Ordering is by Distance with point ID as the tie-break, so
// heap contents are fully deterministic for equal distances.
type PriorityQueue struct {
	isMaxHeap bool
	items     []Item
}

// NewMin initializes a new priority queue with minimum priority on top.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: false,
		items:     make([]Item, 0, capacity),
	}
}

// NewMax initializes a new priority queue with maximum priority on top.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: true,
		items:     make([]Item, 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Top returns the top element without removing it.
func (pq *PriorityQueue) Top() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) Push(item Item) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue) Pop() (Item, bool) {
	n := len(pq.items)
	if n == 0 {
		return Item{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item{}
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// PushBounded inserts item into a max-heap capped at capacity items,
// evicting the current worst when full and item beats it. This is the
// k-best update: after any number of calls the heap holds the capacity
// smallest items seen, with ties resolved toward lower IDs.
//
// Returns true if the item was admitted.
func (pq *PriorityQueue) PushBounded(item Item, capacity int) bool {
	if capacity <= 0 {
		return false
	}
	if len(pq.items) < capacity {
		pq.Push(item)
		return true
	}
	top := pq.items[0]
	if !beats(item, top, pq.isMaxHeap) {
		return false
	}
	pq.items[0] = item
	pq.siftDown(0)
	return true
}

// Drain empties the queue in pop order, appending to dst.
func (pq *PriorityQueue) Drain(dst []Item) []Item {
	for {
		item, ok := pq.Pop()
		if !ok {
			return dst
		}
		dst = append(dst, item)
	}
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}

// beats reports whether candidate should replace top in a bounded heap.
// For a max-heap (k-best by smallest distance) a candidate wins with a
// strictly smaller distance, or an equal distance and smaller ID.
func beats(candidate, top Item, isMaxHeap bool) bool {
	if isMaxHeap {
		if candidate.Distance != top.Distance {
			return candidate.Distance < top.Distance
		}
		return candidate.ID < top.ID
	}
	if candidate.Distance != top.Distance {
		return candidate.Distance > top.Distance
	}
	return candidate.ID > top.ID
}

func (pq *PriorityQueue) less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if pq.isMaxHeap {
		if a.Distance != b.Distance {
			return a.Distance > b.Distance
		}
		return a.ID > b.ID
	}
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
