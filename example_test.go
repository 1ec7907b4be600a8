package kdgo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/kdgo"
)

// Example_kdTreeBuilder demonstrates creating a KD-tree index with the fluent builder.
func Example_kdTreeBuilder() {
	vectors := [][]float32{
		{0, 0},
		{1, 0},
		{0, 1},
		{5, 5},
	}

	idx, err := kdgo.KDTree().
		Euclidean().
		LeafSize(1).
		Build(vectors)
	if err != nil {
		log.Fatal(err)
	}

	results, err := idx.KNN([]float32{0, 0}, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Printf("id=%d distance=%.1f\n", r.ID, r.Distance)
	}
	// Output:
	// id=0 distance=0.0
	// id=1 distance=1.0
}

// Example_ballTreeBuilder demonstrates a cosine ball-tree index.
func Example_ballTreeBuilder() {
	vectors := [][]float32{
		{1, 0},
		{0, 1},
		{-1, 0},
	}

	idx, err := kdgo.BallTree().
		Cosine().
		Build(vectors)
	if err != nil {
		log.Fatal(err)
	}

	// (3, 0) points the same way as (1, 0).
	results, err := idx.KNN([]float32{3, 0}, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("id=%d distance=%.1f\n", results[0].ID, results[0].Distance)
	// Output: id=0 distance=0.0
}

// Example_batch demonstrates parallel batch queries.
func Example_batch() {
	vectors := [][]float32{
		{0, 0},
		{10, 10},
	}

	idx, err := kdgo.KDTree().Build(vectors)
	if err != nil {
		log.Fatal(err)
	}

	batch, err := idx.KNNBatch(context.Background(), [][]float32{
		{1, 1},
		{9, 9},
	}, 1)
	if err != nil {
		log.Fatal(err)
	}

	for i, row := range batch {
		fmt.Printf("query %d -> id=%d\n", i, row[0].ID)
	}
	// Output:
	// query 0 -> id=0
	// query 1 -> id=1
}

// Example_radius demonstrates a radius query.
func Example_radius() {
	vectors := [][]float32{
		{0, 0},
		{1, 0},
		{5, 5},
	}

	idx, err := kdgo.KDTree().Build(vectors)
	if err != nil {
		log.Fatal(err)
	}

	results, err := idx.Radius([]float32{0, 0}, 2)
	if err != nil {
		log.Fatal(err)
	}

	kdgo.SortResults(results)
	for _, r := range results {
		fmt.Printf("id=%d\n", r.ID)
	}
	// Output:
	// id=0
	// id=1
}
