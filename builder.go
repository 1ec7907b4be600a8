// Package kdgo provides an exact nearest-neighbor index for Go.
//
// This file implements the fluent builder APIs for constructing indexes.
// Builders are immutable - each method returns a new builder with the
// updated configuration.
package kdgo

import (
	"time"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/index/balltree"
	"github.com/hupe1980/kdgo/index/kdtree"
	"github.com/hupe1980/kdgo/vectorstore"
)

// KDTree creates a new KD-tree index builder.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	idx, err := kdgo.KDTree().
//	    Euclidean().
//	    LeafSize(32).
//	    Build(vectors)
func KDTree() KDTreeBuilder {
	return KDTreeBuilder{config: defaultConfig()}
}

// BallTree creates a new ball-tree index builder.
//
// Example:
//
//	idx, err := kdgo.BallTree().
//	    Cosine().
//	    Build(vectors)
func BallTree() BallTreeBuilder {
	return BallTreeBuilder{config: defaultConfig()}
}

// builderConfig holds the configuration shared by both tree builders.
type builderConfig struct {
	leafSize  int
	metric    distance.Func
	metricErr error // deferred metric construction error, surfaced at Build
	logger    *Logger
	metrics   MetricsCollector
}

func defaultConfig() builderConfig {
	return builderConfig{
		leafSize: kdtree.DefaultOptions.LeafSize,
		metric:   distance.Euclidean(),
		logger:   NoopLogger(),
		metrics:  NoopMetricsCollector{},
	}
}

// KDTreeBuilder is an immutable fluent builder for KD-tree indexes.
type KDTreeBuilder struct {
	config builderConfig
}

// Euclidean sets the distance metric to L2.
func (b KDTreeBuilder) Euclidean() KDTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Euclidean(), nil
	return b
}

// Cosine sets the distance metric to cosine distance.
// Stored vectors and queries are L2-normalized.
func (b KDTreeBuilder) Cosine() KDTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Cosine(), nil
	return b
}

// Manhattan sets the distance metric to L1.
func (b KDTreeBuilder) Manhattan() KDTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Manhattan(), nil
	return b
}

// Minkowski sets the distance metric to Minkowski with order p.
// p < 1 surfaces ErrInvalidMetric at Build time.
func (b KDTreeBuilder) Minkowski(p float64) KDTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Minkowski(p)
	return b
}

// Metric sets the distance metric by identifier.
// Parameterized metrics surface ErrInvalidMetric at Build time.
func (b KDTreeBuilder) Metric(m distance.Metric) KDTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Provider(m)
	return b
}

// LeafSize sets the subset size at or below which a node becomes a leaf.
// Default: 16.
func (b KDTreeBuilder) LeafSize(n int) KDTreeBuilder {
	b.config.leafSize = n
	return b
}

// WithLogger sets the logger for build and query operations.
func (b KDTreeBuilder) WithLogger(l *Logger) KDTreeBuilder {
	if l != nil {
		b.config.logger = l
	}
	return b
}

// WithMetrics sets the metrics collector.
func (b KDTreeBuilder) WithMetrics(m MetricsCollector) KDTreeBuilder {
	if m != nil {
		b.config.metrics = m
	}
	return b
}

// Build constructs the point store and KD-tree from the batch.
// The input is copied; callers keep ownership of their slices.
func (b KDTreeBuilder) Build(vectors [][]float32) (*Index, error) {
	return buildIndex(b.config, vectors, func(store *vectorstore.Store, cfg builderConfig) (index.Tree, error) {
		return kdtree.Build(store, cfg.metric, func(o *kdtree.Options) { o.LeafSize = cfg.leafSize })
	})
}

// BallTreeBuilder is an immutable fluent builder for ball-tree indexes.
type BallTreeBuilder struct {
	config builderConfig
}

// Euclidean sets the distance metric to L2.
func (b BallTreeBuilder) Euclidean() BallTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Euclidean(), nil
	return b
}

// Cosine sets the distance metric to cosine distance.
// Stored vectors and queries are L2-normalized.
func (b BallTreeBuilder) Cosine() BallTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Cosine(), nil
	return b
}

// Manhattan sets the distance metric to L1.
func (b BallTreeBuilder) Manhattan() BallTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Manhattan(), nil
	return b
}

// Minkowski sets the distance metric to Minkowski with order p.
// p < 1 surfaces ErrInvalidMetric at Build time.
func (b BallTreeBuilder) Minkowski(p float64) BallTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Minkowski(p)
	return b
}

// Metric sets the distance metric by identifier.
func (b BallTreeBuilder) Metric(m distance.Metric) BallTreeBuilder {
	b.config.metric, b.config.metricErr = distance.Provider(m)
	return b
}

// LeafSize sets the subset size at or below which a node becomes a leaf.
// Default: 16.
func (b BallTreeBuilder) LeafSize(n int) BallTreeBuilder {
	b.config.leafSize = n
	return b
}

// WithLogger sets the logger for build and query operations.
func (b BallTreeBuilder) WithLogger(l *Logger) BallTreeBuilder {
	if l != nil {
		b.config.logger = l
	}
	return b
}

// WithMetrics sets the metrics collector.
func (b BallTreeBuilder) WithMetrics(m MetricsCollector) BallTreeBuilder {
	if m != nil {
		b.config.metrics = m
	}
	return b
}

// Build constructs the point store and ball-tree from the batch.
// The input is copied; callers keep ownership of their slices.
func (b BallTreeBuilder) Build(vectors [][]float32) (*Index, error) {
	return buildIndex(b.config, vectors, func(store *vectorstore.Store, cfg builderConfig) (index.Tree, error) {
		return balltree.Build(store, cfg.metric, func(o *balltree.Options) { o.LeafSize = cfg.leafSize })
	})
}

func buildIndex(cfg builderConfig, vectors [][]float32, buildTree func(*vectorstore.Store, builderConfig) (index.Tree, error)) (*Index, error) {
	start := time.Now()

	idx, err := func() (*Index, error) {
		if cfg.metricErr != nil {
			return nil, cfg.metricErr
		}

		store, err := vectorstore.New(vectors, func(o *vectorstore.Options) {
			o.Normalize = cfg.metric.NormalizeInput()
		})
		if err != nil {
			return nil, err
		}

		tree, err := buildTree(store, cfg)
		if err != nil {
			return nil, err
		}

		return &Index{
			tree:    tree,
			logger:  cfg.logger,
			metrics: cfg.metrics,
		}, nil
	}()

	err = translateError(err)
	cfg.metrics.RecordBuild(len(vectors), time.Since(start), err)

	if err != nil {
		cfg.logger.LogBuild("", len(vectors), 0, time.Since(start), err)
		return nil, err
	}

	stats := idx.tree.Stats()
	cfg.logger.LogBuild(stats.Kind, stats.NumPoints, stats.Dimension, time.Since(start), nil)

	return idx, nil
}
