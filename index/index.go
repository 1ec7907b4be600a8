package index

import (
	"sort"

	"github.com/hupe1980/kdgo/distance"
)

// SearchResult represents a single query match.
type SearchResult struct {
	// ID is the original point index within the indexed batch.
	ID uint32

	// Distance is the metric distance between the query and the point.
	Distance float32
}

// Filter restricts query results to point IDs for which it returns true.
// A nil Filter admits every point. Filters are evaluated during leaf
// scans, so filtered k-NN still returns the k nearest admitted points.
type Filter func(id uint32) bool

// NoNode marks an absent child reference in the node arena.
const NoNode int32 = -1

// Tree is the read-only interface a built partition tree exposes to the
// query engine. Nodes live in an arena and are addressed by int32
// indices; leaves own half-open ranges into a permutation array that
// maps tree positions back to original point indices.
//
// Implementations must be safe for concurrent use by any number of
// readers: a Tree is immutable once built.
type Tree interface {
	// Dimension returns the fixed vector dimensionality D.
	Dimension() int

	// NumPoints returns the number of indexed points N.
	NumPoints() int

	// Metric returns the distance function fixed at build time.
	Metric() distance.Func

	// Root returns the arena index of the root node.
	Root() int32

	// IsLeaf reports whether node n is a leaf.
	IsLeaf(n int32) bool

	// LeafRange returns the [start, end) positions node n owns in the
	// permutation array. Valid for leaves only.
	LeafRange(n int32) (start, end int32)

	// PointAt maps a permutation-array position to an original point index.
	PointAt(pos int32) uint32

	// Vector returns the stored vector for an original point index.
	// The slice aliases tree-owned memory and must not be modified.
	Vector(id uint32) []float32

	// Stats walks the arena and reports tree shape statistics.
	Stats() TreeStats

	// ChildBounds returns both children of internal node n together with
	// lower bounds, in reduced-distance space, on the distance from q to
	// any point in each child's partition. nodeBound is the caller's
	// bound for n itself; child bounds never decrease below it. The
	// near child (smaller bound) is returned first.
	ChildBounds(n int32, q []float32, nodeBound float32) (near, far int32, nearBound, farBound float32)
}

// SortResults orders results ascending by distance, breaking ties by
// lower point index so repeated queries are byte-for-byte identical.
func SortResults(results []SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})
}

// MergeSearchResults merges two sorted result lists into a single
// sorted list of at most k results. Both inputs must already be sorted
// ascending by distance.
func MergeSearchResults(a, b []SearchResult, k int) []SearchResult {
	if len(a) == 0 {
		if len(b) > k {
			return b[:k]
		}
		return b
	}
	if len(b) == 0 {
		if len(a) > k {
			return a[:k]
		}
		return a
	}

	result := make([]SearchResult, 0, k)
	i, j := 0, 0

	for len(result) < k && (i < len(a) || j < len(b)) {
		switch {
		case i < len(a) && j < len(b):
			if less(a[i], b[j]) {
				result = append(result, a[i])
				i++
			} else {
				result = append(result, b[j])
				j++
			}
		case i < len(a):
			result = append(result, a[i])
			i++
		default:
			result = append(result, b[j])
			j++
		}
	}

	return result
}

func less(x, y SearchResult) bool {
	if x.Distance != y.Distance {
		return x.Distance < y.Distance
	}
	return x.ID < y.ID
}
