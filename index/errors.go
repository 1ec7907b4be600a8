package index

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when an index is built from zero vectors.
	ErrEmptyInput = errors.New("empty input: at least one vector is required")

	// ErrInvalidK is returned when a k-NN query is issued with k <= 0.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a radius query is issued with r < 0.
	ErrInvalidRadius = errors.New("radius must be non-negative")

	// ErrInvalidLeafSize is returned when a tree is built with leafSize < 1.
	ErrInvalidLeafSize = errors.New("leaf size must be at least 1")

	// ErrZeroVector is returned when a cosine index receives a vector
	// with zero L2 norm, which has no direction to compare.
	ErrZeroVector = errors.New("zero-norm vector is not valid for cosine")
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ValidateQueryVector checks a query vector against the index dimension.
func ValidateQueryVector(q []float32, dim int) error {
	if len(q) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(q)}
	}
	return nil
}
