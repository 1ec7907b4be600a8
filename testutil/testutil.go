package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// RandomBatch returns n random vectors of the given dimension with
// components in [0, scale).
func (r *RNG) RandomBatch(n, dim int, scale float32) [][]float32 {
	batch := make([][]float32, n)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range batch {
		v := make([]float32, dim)
		for d := range v {
			v[d] = r.rand.Float32() * scale
		}
		batch[i] = v
	}
	return batch
}

// BruteForceKNN is the linear-scan exact k-NN reference: it computes
// the metric distance from q to every vector and returns the k nearest
// sorted ascending, ties broken by lower index. Used to cross-check
// tree traversals.
func BruteForceKNN(vectors [][]float32, metric distance.Func, q []float32, k int) []index.SearchResult {
	qq := q
	if metric.NormalizeInput() {
		if normalized, ok := distance.NormalizeL2Copy(q); ok {
			qq = normalized
		}
	}

	results := make([]index.SearchResult, 0, len(vectors))
	for i, v := range vectors {
		vv := v
		if metric.NormalizeInput() {
			if normalized, ok := distance.NormalizeL2Copy(v); ok {
				vv = normalized
			}
		}
		results = append(results, index.SearchResult{
			ID:       uint32(i),
			Distance: metric.FromReduced(metric.Reduced(qq, vv)),
		})
	}

	index.SortResults(results)

	if len(results) > k {
		results = results[:k]
	}
	return results
}
