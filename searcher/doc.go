// Package searcher implements the exact query engine for kdgo partition
// trees: branch-and-bound k-NN, radius queries, and parallel batch
// queries over any index.Tree.
package searcher
