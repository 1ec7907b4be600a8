package searcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/index/balltree"
	"github.com/hupe1980/kdgo/index/kdtree"
	"github.com/hupe1980/kdgo/testutil"
	"github.com/hupe1980/kdgo/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTrees(t *testing.T, vectors [][]float32, metric distance.Func, leafSize int) map[string]index.Tree {
	t.Helper()

	var storeOpts []func(*vectorstore.Options)
	if metric.NormalizeInput() {
		storeOpts = append(storeOpts, func(o *vectorstore.Options) { o.Normalize = true })
	}
	store, err := vectorstore.New(vectors, storeOpts...)
	require.NoError(t, err)

	kd, err := kdtree.Build(store, metric, func(o *kdtree.Options) { o.LeafSize = leafSize })
	require.NoError(t, err)
	ball, err := balltree.Build(store, metric, func(o *balltree.Options) { o.LeafSize = leafSize })
	require.NoError(t, err)

	return map[string]index.Tree{"kdtree": kd, "balltree": ball}
}

func TestKNNValidation(t *testing.T) {
	trees := buildTrees(t, [][]float32{{0, 0}, {1, 1}}, distance.Euclidean(), 1)

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			_, err := KNN(tree, []float32{0, 0}, 0, nil)
			assert.ErrorIs(t, err, index.ErrInvalidK)

			_, err = KNN(tree, []float32{0, 0}, -3, nil)
			assert.ErrorIs(t, err, index.ErrInvalidK)

			_, err = KNN(tree, []float32{0, 0, 0}, 1, nil)
			var dm *index.ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, 2, dm.Expected)
			assert.Equal(t, 3, dm.Actual)
		})
	}
}

func TestKNNWorkedExample(t *testing.T) {
	// Build over {(0,0),(1,0),(0,1),(5,5)} with leaf size 1; the two
	// nearest to (0,0) are itself at 0 and one of the unit points at 1.
	trees := buildTrees(t, [][]float32{{0, 0}, {1, 0}, {0, 1}, {5, 5}}, distance.Euclidean(), 1)

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			results, err := KNN(tree, []float32{0, 0}, 2, nil)
			require.NoError(t, err)
			require.Len(t, results, 2)

			assert.Equal(t, uint32(0), results[0].ID)
			assert.Zero(t, results[0].Distance)
			assert.Equal(t, uint32(1), results[1].ID) // tie with (0,1) broken by index
			assert.InDelta(t, 1.0, results[1].Distance, 1e-5)
		})
	}
}

func TestKNNBoundaries(t *testing.T) {
	vectors := [][]float32{{0, 0}, {3, 0}, {0, 4}, {3, 4}, {10, 10}}
	trees := buildTrees(t, vectors, distance.Euclidean(), 2)

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			// k == N returns everything sorted.
			all, err := KNN(tree, []float32{0, 0}, 5, nil)
			require.NoError(t, err)
			require.Len(t, all, 5)
			for i := 1; i < len(all); i++ {
				assert.LessOrEqual(t, all[i-1].Distance, all[i].Distance)
			}

			// k > N returns exactly N results, no padding, no error.
			over, err := KNN(tree, []float32{0, 0}, 50, nil)
			require.NoError(t, err)
			assert.Equal(t, all, over)
		})
	}
}

func TestKNNMatchesBruteForce(t *testing.T) {
	metrics := map[string]distance.Func{
		"Euclidean": distance.Euclidean(),
		"Manhattan": distance.Manhattan(),
		"Cosine":    distance.Cosine(),
	}
	mink, err := distance.Minkowski(3)
	require.NoError(t, err)
	metrics["Minkowski3"] = mink

	rng := testutil.NewRNG(7)

	for metricName, metric := range metrics {
		for _, n := range []int{1, 17, 250, 500} {
			for _, dim := range []int{1, 3, 8} {
				vectors := rng.RandomBatch(n, dim, 10)
				if metric.NormalizeInput() {
					// Keep vectors away from the origin for cosine.
					for _, v := range vectors {
						v[0] += 0.1
					}
				}
				trees := buildTrees(t, vectors, metric, 8)

				for treeName, tree := range trees {
					t.Run(fmt.Sprintf("%s/%s/n=%d/d=%d", metricName, treeName, n, dim), func(t *testing.T) {
						for trial := 0; trial < 5; trial++ {
							q := make([]float32, dim)
							rng.FillUniform(q)
							q[0] += 0.1

							k := 1 + rng.Intn(12)
							got, err := KNN(tree, q, k, nil)
							require.NoError(t, err)

							want := testutil.BruteForceKNN(vectors, metric, q, k)
							require.Len(t, got, len(want))
							for i := range want {
								assert.Equal(t, want[i].ID, got[i].ID, "rank %d", i)
								assert.InDelta(t, want[i].Distance, got[i].Distance, 1e-3)
							}
						}
					})
				}
			}
		}
	}
}

func TestKNNIdempotent(t *testing.T) {
	rng := testutil.NewRNG(11)
	vectors := rng.RandomBatch(200, 4, 1)
	trees := buildTrees(t, vectors, distance.Euclidean(), 8)

	q := []float32{0.5, 0.5, 0.5, 0.5}
	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			first, err := KNN(tree, q, 10, nil)
			require.NoError(t, err)
			second, err := KNN(tree, q, 10, nil)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestKNNFilter(t *testing.T) {
	vectors := [][]float32{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	trees := buildTrees(t, vectors, distance.Euclidean(), 1)

	evenOnly := func(id uint32) bool { return id%2 == 0 }

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			results, err := KNN(tree, []float32{0, 0}, 3, evenOnly)
			require.NoError(t, err)
			require.Len(t, results, 2) // only two even IDs exist
			assert.Equal(t, uint32(0), results[0].ID)
			assert.Equal(t, uint32(2), results[1].ID)
		})
	}
}

func TestRadius(t *testing.T) {
	vectors := [][]float32{{0, 0}, {1, 0}, {0, 1}, {5, 5}}
	trees := buildTrees(t, vectors, distance.Euclidean(), 1)

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			_, err := Radius(tree, []float32{0, 0}, -1, nil)
			assert.ErrorIs(t, err, index.ErrInvalidRadius)

			results, err := Radius(tree, []float32{0, 0}, 1.5, nil)
			require.NoError(t, err)

			index.SortResults(results)
			require.Len(t, results, 3)
			assert.Equal(t, uint32(0), results[0].ID)
			assert.Equal(t, uint32(1), results[1].ID)
			assert.Equal(t, uint32(2), results[2].ID)

			// Boundary is inclusive.
			onEdge, err := Radius(tree, []float32{0, 0}, 1.0, nil)
			require.NoError(t, err)
			assert.Len(t, onEdge, 3)

			none, err := Radius(tree, []float32{-10, -10}, 0.5, nil)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestRadiusMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(23)
	vectors := rng.RandomBatch(300, 5, 1)
	trees := buildTrees(t, vectors, distance.Euclidean(), 8)

	metric := distance.Euclidean()
	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			for trial := 0; trial < 5; trial++ {
				q := make([]float32, 5)
				rng.FillUniform(q)
				r := rng.Float32() * 0.8

				got, err := Radius(tree, q, r, nil)
				require.NoError(t, err)
				index.SortResults(got)

				var want []index.SearchResult
				for _, res := range testutil.BruteForceKNN(vectors, metric, q, len(vectors)) {
					if res.Distance <= r {
						want = append(want, res)
					}
				}

				require.Len(t, got, len(want))
				for i := range want {
					assert.Equal(t, want[i].ID, got[i].ID)
				}
			}
		})
	}
}

func TestKNNBatch(t *testing.T) {
	rng := testutil.NewRNG(31)
	vectors := rng.RandomBatch(150, 3, 1)
	trees := buildTrees(t, vectors, distance.Euclidean(), 8)

	queries := rng.RandomBatch(20, 3, 1)

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			batch, err := KNNBatch(context.Background(), tree, queries, 5, nil)
			require.NoError(t, err)
			require.Len(t, batch, 20)

			// Each row matches its individual query.
			for i, q := range queries {
				single, err := KNN(tree, q, 5, nil)
				require.NoError(t, err)
				assert.Equal(t, single, batch[i])
			}
		})
	}

	t.Run("RowErrorAbortsBatch", func(t *testing.T) {
		tree := trees["kdtree"]
		bad := [][]float32{{0, 0, 0}, {1, 1}} // second row has wrong dimension
		_, err := KNNBatch(context.Background(), tree, bad, 5, nil)
		require.Error(t, err)
		var dm *index.ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		tree := trees["kdtree"]
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := KNNBatch(ctx, tree, queries, 5, nil)
		assert.Error(t, err)
	})
}
