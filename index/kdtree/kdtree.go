package kdtree

import (
	"sort"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/internal/math32"
	"github.com/hupe1980/kdgo/vectorstore"
)

// Compile-time check to ensure Tree satisfies the index.Tree interface.
var _ index.Tree = (*Tree)(nil)

// Options contains configuration options for the KD-tree.
type Options struct {
	// LeafSize is the subset size at or below which a node becomes a
	// leaf. Smaller values prune harder per query but build deeper trees.
	LeafSize int
}

// DefaultOptions contains the default configuration options for the KD-tree.
var DefaultOptions = Options{
	LeafSize: 16,
}

// node is an arena entry. Internal nodes carry the splitting hyperplane
// and int32 child indices; leaves carry index.NoNode children and own
// idx[start:end].
type node struct {
	start, end  int32
	left, right int32
	splitDim    int32
	splitValue  float32
}

// Tree is an immutable KD-tree over a point store. It is built once
// and safe for concurrent read-only traversal.
type Tree struct {
	store  *vectorstore.Store
	metric distance.Func
	opts   Options
	nodes  []node
	idx    []uint32 // permutation: tree position -> original point index
}

// Build constructs a KD-tree over the given store.
//
// Split policy: the dimension with the greatest spread (max - min) over
// the current subset, ties resolved toward the lower dimension. The
// subset is ordered by (coordinate, original index) and split at the
// median position, so equal coordinates tie-break stably by original
// index and all-identical subsets still halve and terminate.
func Build(store *vectorstore.Store, metric distance.Func, optFns ...func(o *Options)) (*Tree, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.LeafSize < 1 {
		return nil, index.ErrInvalidLeafSize
	}
	if store == nil || store.Count() == 0 {
		return nil, index.ErrEmptyInput
	}

	n := store.Count()
	t := &Tree{
		store:  store,
		metric: metric,
		opts:   opts,
		nodes:  make([]node, 0, 2*(n/opts.LeafSize+1)),
		idx:    make([]uint32, n),
	}
	for i := range t.idx {
		t.idx[i] = uint32(i)
	}

	t.buildRange(0, int32(n))

	return t, nil
}

// buildRange materializes the subtree over idx[start:end) and returns
// its arena index. The node is appended before recursing so the root
// always lands at arena index 0.
func (t *Tree) buildRange(start, end int32) int32 {
	self := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		start: start,
		end:   end,
		left:  index.NoNode,
		right: index.NoNode,
	})

	if end-start <= int32(t.opts.LeafSize) {
		return self
	}

	dim := t.maxSpreadDim(start, end)

	sub := t.idx[start:end]
	sort.Slice(sub, func(i, j int) bool {
		ci, cj := t.store.Coord(sub[i], dim), t.store.Coord(sub[j], dim)
		if ci != cj {
			return ci < cj
		}
		return sub[i] < sub[j]
	})

	mid := start + (end-start)/2
	splitValue := t.store.Coord(t.idx[mid], dim)

	left := t.buildRange(start, mid)
	right := t.buildRange(mid, end)

	t.nodes[self].left = left
	t.nodes[self].right = right
	t.nodes[self].splitDim = int32(dim)
	t.nodes[self].splitValue = splitValue

	return self
}

// maxSpreadDim returns the dimension with the greatest coordinate
// spread over idx[start:end).
func (t *Tree) maxSpreadDim(start, end int32) int {
	best, bestSpread := 0, float32(-1)
	for d := 0; d < t.store.Dimension(); d++ {
		lo := t.store.Coord(t.idx[start], d)
		hi := lo
		for pos := start + 1; pos < end; pos++ {
			c := t.store.Coord(t.idx[pos], d)
			if c < lo {
				lo = c
			} else if c > hi {
				hi = c
			}
		}
		if spread := hi - lo; spread > bestSpread {
			best, bestSpread = d, spread
		}
	}
	return best
}

// Dimension returns the fixed vector dimensionality.
func (t *Tree) Dimension() int { return t.store.Dimension() }

// NumPoints returns the number of indexed points.
func (t *Tree) NumPoints() int { return t.store.Count() }

// Metric returns the distance function fixed at build time.
func (t *Tree) Metric() distance.Func { return t.metric }

// Root returns the arena index of the root node.
func (t *Tree) Root() int32 { return 0 }

// IsLeaf reports whether node n is a leaf.
func (t *Tree) IsLeaf(n int32) bool { return t.nodes[n].left == index.NoNode }

// LeafRange returns the permutation-array range owned by leaf n.
func (t *Tree) LeafRange(n int32) (start, end int32) {
	return t.nodes[n].start, t.nodes[n].end
}

// PointAt maps a permutation-array position to an original point index.
func (t *Tree) PointAt(pos int32) uint32 { return t.idx[pos] }

// Vector returns the stored vector for an original point index.
func (t *Tree) Vector(id uint32) []float32 { return t.store.Vector(id) }

// ChildBounds orders the children of internal node n by proximity to q.
// The near side inherits the caller's bound; the far side is bounded
// below by the distance from q to the splitting hyperplane, which is a
// single-axis displacement in the metric's geometry.
func (t *Tree) ChildBounds(n int32, q []float32, nodeBound float32) (near, far int32, nearBound, farBound float32) {
	nd := t.nodes[n]
	diff := q[nd.splitDim] - nd.splitValue
	planeBound := t.metric.GeomToReduced(math32.Abs(diff))

	if diff < 0 {
		near, far = nd.left, nd.right
	} else {
		near, far = nd.right, nd.left
	}

	nearBound = nodeBound
	farBound = nodeBound
	if planeBound > farBound {
		farBound = planeBound
	}

	return near, far, nearBound, farBound
}

// Stats walks the arena and reports tree shape statistics.
func (t *Tree) Stats() index.TreeStats {
	stats := index.TreeStats{
		Kind:      "kdtree",
		Metric:    t.metric.Metric().String(),
		Dimension: t.Dimension(),
		NumPoints: t.NumPoints(),
		LeafSize:  t.opts.LeafSize,
		Nodes:     len(t.nodes),
	}

	var walk func(n int32, depth int)
	walk = func(n int32, depth int) {
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if t.IsLeaf(n) {
			stats.Leaves++
			return
		}
		walk(t.nodes[n].left, depth+1)
		walk(t.nodes[n].right, depth+1)
	}
	walk(t.Root(), 0)

	return stats
}
