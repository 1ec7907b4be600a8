// Package distance provides the distance metrics used by kdgo indexes.
//
// A metric is selected once at index construction and fixed for the
// lifetime of the index. Tree traversal works in "reduced" distance
// space (a cheap, order-preserving surrogate such as squared L2 for
// Euclidean) and converts back to true metric values only for results.
package distance
