package kdgo

import (
	"context"
	"time"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/searcher"
)

// SearchResult represents a single query match: the original point
// index and its metric distance to the query.
type SearchResult = index.SearchResult

// SearchOptions controls the execution of a query.
type SearchOptions struct {
	// Filter restricts results to point indexes it admits. Nil admits
	// every point. See BitmapFilter for roaring-bitmap allow-lists.
	Filter index.Filter
}

// WithFilter sets a result filter for one query.
func WithFilter(f index.Filter) func(o *SearchOptions) {
	return func(o *SearchOptions) {
		o.Filter = f
	}
}

// Index is an immutable exact nearest-neighbor index: a point store
// plus a partition tree built over it. All query methods are read-only
// and safe for unbounded concurrent use.
type Index struct {
	tree    index.Tree
	logger  *Logger
	metrics MetricsCollector
}

// KNN returns the k nearest neighbors of q, sorted ascending by
// distance with ties broken by lower point index. If fewer than k
// points exist, all of them are returned without error.
func (ix *Index) KNN(q []float32, k int, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	var opts SearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	results, err := searcher.KNN(ix.tree, q, k, opts.Filter)
	err = translateError(err)

	ix.metrics.RecordSearch(k, time.Since(start), err)
	ix.logger.LogSearch(k, len(results), err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// KNNBatch answers one KNN query per row of queries, evaluating rows in
// parallel. Row order is preserved in the output.
func (ix *Index) KNNBatch(ctx context.Context, queries [][]float32, k int, optFns ...func(o *SearchOptions)) ([][]SearchResult, error) {
	var opts SearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	results, err := searcher.KNNBatch(ctx, ix.tree, queries, k, opts.Filter)
	err = translateError(err)

	ix.metrics.RecordBatchSearch(len(queries), k, time.Since(start), err)
	ix.logger.LogBatchSearch(ctx, len(queries), k, err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// Radius returns all points within metric distance r of q, unsorted.
// Use SortResults for distance order.
func (ix *Index) Radius(q []float32, r float32, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	var opts SearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	results, err := searcher.Radius(ix.tree, q, r, opts.Filter)
	err = translateError(err)

	ix.metrics.RecordRadiusSearch(time.Since(start), err)
	ix.logger.LogRadiusSearch(float64(r), len(results), err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// Dimension returns the fixed vector dimensionality of the index.
func (ix *Index) Dimension() int {
	return ix.tree.Dimension()
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	return ix.tree.NumPoints()
}

// Metric returns the metric identifier fixed at build time.
func (ix *Index) Metric() distance.Metric {
	return ix.tree.Metric().Metric()
}

// Stats reports the shape of the underlying partition tree.
func (ix *Index) Stats() index.TreeStats {
	return ix.tree.Stats()
}

// SortResults orders results ascending by distance, ties broken by
// lower point index. Radius results are unsorted by default.
func SortResults(results []SearchResult) {
	index.SortResults(results)
}
