package index

import "fmt"

// TreeStats describes the shape of a built partition tree.
type TreeStats struct {
	Kind      string // "kdtree" or "balltree"
	Metric    string
	Dimension int
	NumPoints int
	LeafSize  int
	Nodes     int
	Leaves    int
	MaxDepth  int
}

func (s TreeStats) String() string {
	return fmt.Sprintf("%s(metric=%s dim=%d points=%d leafSize=%d nodes=%d leaves=%d depth=%d)",
		s.Kind, s.Metric, s.Dimension, s.NumPoints, s.LeafSize, s.Nodes, s.Leaves, s.MaxDepth)
}
