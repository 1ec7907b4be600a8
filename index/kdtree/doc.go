// Package kdtree implements an exact KD-tree index over a point store.
//
// The tree partitions points by axis-aligned hyperplanes: each internal
// node picks the dimension with the greatest spread over its subset and
// splits at the median. Nodes live in a flat arena addressed by int32
// indices; leaves own contiguous ranges of a permutation array, so
// every point index appears in exactly one leaf.
package kdtree
