package vectorstore

import (
	"fmt"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
)

// Options contains configuration options for the point store.
type Options struct {
	// Normalize enables L2 normalization of stored vectors.
	// Used by cosine indexes, which search normalized vectors with
	// squared L2 internally.
	Normalize bool
}

// DefaultOptions contains the default configuration options for the point store.
var DefaultOptions = Options{
	Normalize: false,
}

// Store owns the fixed-dimension vectors of one index.
// It is immutable after construction and safe for concurrent reads.
type Store struct {
	dim   int
	count int
	data  []float32 // contiguous: vector i at data[i*dim : (i+1)*dim]
}

// New builds a point store from a batch of same-dimension vectors.
// It copies the input, so callers keep ownership of their slices.
//
// Fails with index.ErrEmptyInput on an empty batch, with
// index.ErrDimensionMismatch on ragged rows, and with
// index.ErrZeroVector when normalization meets a zero-norm vector.
func New(vectors [][]float32, optFns ...func(o *Options)) (*Store, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(vectors) == 0 {
		return nil, index.ErrEmptyInput
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, &index.ErrInvalidDimension{Dimension: 0}
	}

	data := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, &index.ErrDimensionMismatch{Expected: dim, Actual: len(v)}
		}
		data = append(data, v...)
		if opts.Normalize {
			if !distance.NormalizeL2InPlace(data[i*dim:]) {
				return nil, fmt.Errorf("%w: vector %d", index.ErrZeroVector, i)
			}
		}
	}

	return &Store{
		dim:   dim,
		count: len(vectors),
		data:  data,
	}, nil
}

// Dimension returns the vector dimensionality.
func (s *Store) Dimension() int {
	return s.dim
}

// Count returns the number of stored vectors.
func (s *Store) Count() int {
	return s.count
}

// Vector returns the vector at the given index.
// The returned slice aliases store memory; do not modify.
func (s *Store) Vector(id uint32) []float32 {
	start := int(id) * s.dim
	return s.data[start : start+s.dim : start+s.dim]
}

// Coord returns component d of vector id without slicing.
// Hot path for split-dimension selection during tree builds.
func (s *Store) Coord(id uint32, d int) float32 {
	return s.data[int(id)*s.dim+d]
}
