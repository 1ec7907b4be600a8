// Package vectorstore provides the immutable columnar point store
// backing kdgo indexes.
//
// Vectors are stored contiguously in a single []float32 slice
// (vector i occupies data[i*dim : (i+1)*dim]), giving O(1) access by
// index and good cache locality for leaf scans. The store is built
// once from a batch and never mutated; indexing new data means
// building a new store.
package vectorstore
