// Package balltree implements an exact ball-tree index over a point store.
//
// The tree partitions points by nested bounding hyperspheres: each node
// stores the centroid and radius of its subset, and internal nodes
// split their points between two far-apart pivots. Ball bounds depend
// only on the triangle inequality, so the tree prunes well in higher
// dimensions where axis-aligned KD splits lose their bite.
package balltree
