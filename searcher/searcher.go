package searcher

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/internal/queue"
)

// KNN returns the k nearest neighbors of q, sorted ascending by
// distance with ties broken by lower point index. If fewer than k
// points exist (or pass the filter), all of them are returned.
//
// The traversal is branch-and-bound: descend into the nearer child
// first and skip the farther one when its lower bound exceeds the
// current k-th best distance. Bounds are never applied while the
// candidate heap is under-filled. The tree is read-only throughout, so
// any number of KNN calls may run concurrently on one tree.
func KNN(tree index.Tree, q []float32, k int, filter index.Filter) ([]index.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", index.ErrInvalidK, k)
	}

	q, err := prepareQuery(tree, q)
	if err != nil {
		return nil, err
	}

	metric := tree.Metric()
	best := queue.NewMax(k)

	var visit func(n int32, bound float32)
	visit = func(n int32, bound float32) {
		if best.Len() == k {
			if worst, ok := best.Top(); ok && bound > worst.Distance {
				return
			}
		}

		if tree.IsLeaf(n) {
			start, end := tree.LeafRange(n)
			for pos := start; pos < end; pos++ {
				id := tree.PointAt(pos)
				if filter != nil && !filter(id) {
					continue
				}
				rd := metric.Reduced(q, tree.Vector(id))
				best.PushBounded(queue.Item{ID: id, Distance: rd}, k)
			}
			return
		}

		near, far, nearBound, farBound := tree.ChildBounds(n, q, bound)
		visit(near, nearBound)
		visit(far, farBound)
	}
	visit(tree.Root(), 0)

	// Max-heap drains worst first; fill the result slice back to front
	// and convert reduced distances to metric values.
	results := make([]index.SearchResult, best.Len())
	for i := len(results) - 1; i >= 0; i-- {
		item, _ := best.Pop()
		results[i] = index.SearchResult{ID: item.ID, Distance: metric.FromReduced(item.Distance)}
	}

	return results, nil
}

// Radius returns all points within metric distance r of q. Results are
// unsorted; callers wanting order can apply index.SortResults.
func Radius(tree index.Tree, q []float32, r float32, filter index.Filter) ([]index.SearchResult, error) {
	if r < 0 {
		return nil, fmt.Errorf("%w: got %g", index.ErrInvalidRadius, r)
	}

	q, err := prepareQuery(tree, q)
	if err != nil {
		return nil, err
	}

	metric := tree.Metric()
	rbound := metric.ToReduced(r)

	var results []index.SearchResult

	var visit func(n int32, bound float32)
	visit = func(n int32, bound float32) {
		if bound > rbound {
			return
		}

		if tree.IsLeaf(n) {
			start, end := tree.LeafRange(n)
			for pos := start; pos < end; pos++ {
				id := tree.PointAt(pos)
				if filter != nil && !filter(id) {
					continue
				}
				rd := metric.Reduced(q, tree.Vector(id))
				if rd <= rbound {
					results = append(results, index.SearchResult{ID: id, Distance: metric.FromReduced(rd)})
				}
			}
			return
		}

		near, far, nearBound, farBound := tree.ChildBounds(n, q, bound)
		visit(near, nearBound)
		visit(far, farBound)
	}
	visit(tree.Root(), 0)

	return results, nil
}

// KNNBatch answers one KNN query per row of queries. Rows are
// independent read-only traversals and are evaluated in parallel;
// the output slice is pre-sized and each worker writes only its own
// row. The first row error (or context cancellation) aborts the batch.
func KNNBatch(ctx context.Context, tree index.Tree, queries [][]float32, k int, filter index.Filter) ([][]index.SearchResult, error) {
	results := make([][]index.SearchResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := KNN(tree, q, k, filter)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// prepareQuery validates the query vector against the tree dimension
// and, for metrics that search over unit vectors, returns a normalized
// copy so the caller's slice is never touched.
func prepareQuery(tree index.Tree, q []float32) ([]float32, error) {
	if err := index.ValidateQueryVector(q, tree.Dimension()); err != nil {
		return nil, err
	}

	if tree.Metric().NormalizeInput() {
		normalized, ok := distance.NormalizeL2Copy(q)
		if !ok {
			return nil, fmt.Errorf("%w: query", index.ErrZeroVector)
		}
		return normalized, nil
	}

	return q, nil
}
