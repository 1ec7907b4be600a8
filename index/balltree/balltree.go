package balltree

import (
	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/vectorstore"
)

// Compile-time check to ensure Tree satisfies the index.Tree interface.
var _ index.Tree = (*Tree)(nil)

// Options contains configuration options for the ball-tree.
type Options struct {
	// LeafSize is the subset size at or below which a node becomes a leaf.
	LeafSize int
}

// DefaultOptions contains the default configuration options for the ball-tree.
var DefaultOptions = Options{
	LeafSize: 16,
}

// node is an arena entry. The bounding ball (centroid, radius) is
// stored for every node; the centroid lives in the flat centroid arena
// at position n*dim.
type node struct {
	start, end  int32
	left, right int32
	radius      float32 // geometric-space radius of the bounding ball
}

// Tree is an immutable ball-tree over a point store. It is built once
// and safe for concurrent read-only traversal.
type Tree struct {
	store     *vectorstore.Store
	metric    distance.Func
	opts      Options
	nodes     []node
	centroids []float32 // centroid of node n at [n*dim : (n+1)*dim]
	idx       []uint32  // permutation: tree position -> original point index
}

// Build constructs a ball-tree over the given store.
//
// Split policy: two pivots chosen by the farthest-point heuristic (the
// point farthest from an arbitrary seed, then the point farthest from
// that), remaining points assigned to the closer pivot with input order
// preserved. Each node's bounding ball is the subset centroid with
// radius equal to the farthest member, so pruning is exact for every
// true metric; cosine rides on L2 geometry over normalized vectors.
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
// its arena index.
func (t *Tree) buildRange(start, end int32) int32 {
	self := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		start: start,
		end:   end,
		left:  index.NoNode,
		right: index.NoNode,
	})
	t.appendBall(start, end)

	if end-start <= int32(t.opts.LeafSize) {
		return self
	}

	mid := t.splitByPivots(start, end)

	left := t.buildRange(start, mid)
	right := t.buildRange(mid, end)

	t.nodes[self].left = left
	t.nodes[self].right = right

	return self
}

// appendBall computes the bounding ball of idx[start:end) and appends
// the centroid to the centroid arena, recording the radius on the node
// just appended.
func (t *Tree) appendBall(start, end int32) {
	dim := t.store.Dimension()
	base := len(t.centroids)
	t.centroids = append(t.centroids, make([]float32, dim)...)
	centroid := t.centroids[base : base+dim]

	for pos := start; pos < end; pos++ {
		v := t.store.Vector(t.idx[pos])
		for d := 0; d < dim; d++ {
			centroid[d] += v[d]
		}
	}
	inv := 1 / float32(end-start)
	for d := 0; d < dim; d++ {
		centroid[d] *= inv
	}

	var radius float32
	for pos := start; pos < end; pos++ {
		g := t.metric.GeomFromReduced(t.metric.Reduced(centroid, t.store.Vector(t.idx[pos])))
		if g > radius {
			radius = g
		}
	}
	t.nodes[len(t.nodes)-1].radius = radius
}

// splitByPivots partitions idx[start:end) between two far-apart pivots
// and returns the split position. Input order within each side is
// preserved, keeping the build deterministic. Degenerate subsets
// (all points identical) fall back to positional halving so recursion
// depth stays bounded by subset size, not point distinctness.
func (t *Tree) splitByPivots(start, end int32) int32 {
	p1 := t.farthestFrom(t.idx[start], start, end)
	p2 := t.farthestFrom(p1, start, end)

	if t.metric.Reduced(t.store.Vector(p1), t.store.Vector(p2)) == 0 {
		return start + (end-start)/2
	}

	v1 := t.store.Vector(p1)
	v2 := t.store.Vector(p2)

	sub := t.idx[start:end]
	leftBuf := make([]uint32, 0, len(sub))
	rightBuf := make([]uint32, 0, len(sub))
	for _, id := range sub {
		v := t.store.Vector(id)
		if t.metric.Reduced(v, v1) <= t.metric.Reduced(v, v2) {
			leftBuf = append(leftBuf, id)
		} else {
			rightBuf = append(rightBuf, id)
		}
	}

	copy(sub, leftBuf)
	copy(sub[len(leftBuf):], rightBuf)

	return start + int32(len(leftBuf))
}

// farthestFrom returns the point in idx[start:end) farthest from seed,
// ties resolved toward the lower point index.
func (t *Tree) farthestFrom(seed uint32, start, end int32) uint32 {
	sv := t.store.Vector(seed)
	best := t.idx[start]
	var bestRd float32 = -1
	for pos := start; pos < end; pos++ {
		id := t.idx[pos]
		rd := t.metric.Reduced(sv, t.store.Vector(id))
		if rd > bestRd || (rd == bestRd && id < best) {
			best, bestRd = id, rd
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

// Centroid returns the bounding-ball centroid of node n.
func (t *Tree) Centroid(n int32) []float32 {
	dim := t.store.Dimension()
	return t.centroids[int(n)*dim : (int(n)+1)*dim]
}

// Radius returns the bounding-ball radius of node n in geometric space.
func (t *Tree) Radius(n int32) float32 { return t.nodes[n].radius }

// ChildBounds orders the children of internal node n by proximity to q.
// Each child's bound is the gap between the query and its bounding
// ball, max(0, d(q, centroid) - radius), converted to reduced space and
// clamped below by the caller's bound for n.
func (t *Tree) ChildBounds(n int32, q []float32, nodeBound float32) (near, far int32, nearBound, farBound float32) {
	nd := t.nodes[n]
	lb := t.ballBound(nd.left, q, nodeBound)
	rb := t.ballBound(nd.right, q, nodeBound)

	if lb <= rb {
		return nd.left, nd.right, lb, rb
	}
	return nd.right, nd.left, rb, lb
}

func (t *Tree) ballBound(c int32, q []float32, nodeBound float32) float32 {
	g := t.metric.GeomFromReduced(t.metric.Reduced(q, t.Centroid(c))) - t.nodes[c].radius
	if g <= 0 {
		return nodeBound
	}
	b := t.metric.GeomToReduced(g)
	if b < nodeBound {
		return nodeBound
	}
	return b
}

// Stats walks the arena and reports tree shape statistics.
func (t *Tree) Stats() index.TreeStats {
	stats := index.TreeStats{
		Kind:      "balltree",
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
