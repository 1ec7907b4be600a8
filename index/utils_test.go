package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortResults(t *testing.T) {
	results := []SearchResult{
		{ID: 3, Distance: 2.0},
		{ID: 1, Distance: 1.0},
		{ID: 2, Distance: 1.0},
		{ID: 0, Distance: 0.5},
	}

	SortResults(results)

	assert.Equal(t, []SearchResult{
		{ID: 0, Distance: 0.5},
		{ID: 1, Distance: 1.0},
		{ID: 2, Distance: 1.0},
		{ID: 3, Distance: 2.0},
	}, results)
}

func TestMergeSearchResults(t *testing.T) {
	a := []SearchResult{{ID: 0, Distance: 0.1}, {ID: 2, Distance: 0.5}}
	b := []SearchResult{{ID: 1, Distance: 0.2}, {ID: 3, Distance: 0.3}}

	t.Run("Merge", func(t *testing.T) {
		got := MergeSearchResults(a, b, 3)
		assert.Equal(t, []SearchResult{
			{ID: 0, Distance: 0.1},
			{ID: 1, Distance: 0.2},
			{ID: 3, Distance: 0.3},
		}, got)
	})

	t.Run("EmptySides", func(t *testing.T) {
		assert.Equal(t, a, MergeSearchResults(a, nil, 5))
		assert.Equal(t, b, MergeSearchResults(nil, b, 5))
		assert.Equal(t, a[:1], MergeSearchResults(a, nil, 1))
	})

	t.Run("TieBreakByID", func(t *testing.T) {
		x := []SearchResult{{ID: 5, Distance: 1.0}}
		y := []SearchResult{{ID: 2, Distance: 1.0}}
		got := MergeSearchResults(x, y, 2)
		assert.Equal(t, uint32(2), got[0].ID)
		assert.Equal(t, uint32(5), got[1].ID)
	})
}
