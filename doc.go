// Package kdgo provides exact nearest-neighbor search for Go.
//
// Kdgo builds an immutable space-partitioning index (KD-tree or
// ball-tree) over a batch of fixed-dimension float32 vectors and
// answers exact k-NN and radius queries with branch-and-bound
// traversal:
//
//   - Exact results: no recall tuning, every query returns the true
//     nearest neighbors under the configured metric
//   - Pluggable metrics: Euclidean, Cosine, Manhattan, Minkowski(p)
//   - Immutable indexes: build once, query from any number of
//     goroutines without locking
//   - Parallel batch queries via independent worker rows
//   - Roaring-bitmap result filtering at leaf-scan time
//
// # Index Selection
//
//   - KD-tree: low to moderate dimensions (<~20), axis-aligned splits
//   - Ball-tree: higher dimensions or non-Euclidean metrics, where
//     hypersphere bounds prune better than hyperplanes
//
// # Quick Start
//
// Build a KD-tree and query it:
//
//	idx, err := kdgo.KDTree().
//	    Euclidean().
//	    LeafSize(32).
//	    Build(vectors)
//	if err != nil {
//	    panic(err)
//	}
//
//	results, err := idx.KNN(query, 10)
//
// Batch queries run rows in parallel:
//
//	batch, err := idx.KNNBatch(ctx, queries, 10)
//
// Radius queries return everything within r:
//
//	within, err := idx.Radius(query, 0.5)
//
// Restrict results to an allow-list of point indexes:
//
//	results, err := idx.KNN(query, 10, kdgo.WithBitmap(bm))
//
// Indexes are immutable once built; to index new data, build a new
// index. For persistence, serialization, or approximate search, reach
// for a vector database instead - kdgo is the exact, in-memory core.
package kdgo
