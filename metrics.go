package kdgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each index build.
	// points is the batch size, duration the build time, err nil on success.
	RecordBuild(points int, duration time.Duration, err error)

	// RecordSearch is called after each k-NN search.
	RecordSearch(k int, duration time.Duration, err error)

	// RecordBatchSearch is called after each batch search.
	// queries is the number of rows attempted.
	RecordBatchSearch(queries, k int, duration time.Duration, err error)

	// RecordRadiusSearch is called after each radius search.
	RecordRadiusSearch(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)            {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchSearch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRadiusSearch(time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildTotalNanos   atomic.Int64
	SearchCount       atomic.Int64
	SearchErrors      atomic.Int64
	SearchTotalNanos  atomic.Int64
	BatchSearchCount  atomic.Int64
	BatchSearchErrors atomic.Int64
	RadiusCount       atomic.Int64
	RadiusErrors      atomic.Int64
}

func (c *BasicMetricsCollector) RecordBuild(points int, duration time.Duration, err error) {
	c.BuildCount.Add(1)
	c.BuildTotalNanos.Add(int64(duration))
	if err != nil {
		c.BuildErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	c.SearchCount.Add(1)
	c.SearchTotalNanos.Add(int64(duration))
	if err != nil {
		c.SearchErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordBatchSearch(queries, k int, duration time.Duration, err error) {
	c.BatchSearchCount.Add(1)
	if err != nil {
		c.BatchSearchErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordRadiusSearch(duration time.Duration, err error) {
	c.RadiusCount.Add(1)
	if err != nil {
		c.RadiusErrors.Add(1)
	}
}

// AvgSearchLatency returns the mean search duration, or 0 before any search.
func (c *BasicMetricsCollector) AvgSearchLatency() time.Duration {
	count := c.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(c.SearchTotalNanos.Load() / count)
}
