package kdgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyInput is returned when an index is built from zero vectors.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidMetric is returned for unrecognized metric identifiers
	// or invalid metric parameters.
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrInvalidRadius is returned when a radius query uses r < 0.
	ErrInvalidRadius = errors.New("invalid radius")

	// ErrInvalidLeafSize is returned when an index is configured with
	// leafSize < 1.
	ErrInvalidLeafSize = errors.New("invalid leaf size")

	// ErrZeroVector is returned when a cosine index receives a vector
	// with zero L2 norm.
	ErrZeroVector = errors.New("zero-norm vector")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// translateError normalizes package-level errors into the kdgo error
// vocabulary so callers only match against one set.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var id *index.ErrInvalidDimension
	if errors.As(err, &id) {
		// Only reachable for zero-length vectors.
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	if errors.Is(err, index.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}
	if errors.Is(err, index.ErrEmptyInput) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	if errors.Is(err, index.ErrInvalidRadius) {
		return fmt.Errorf("%w: %w", ErrInvalidRadius, err)
	}
	if errors.Is(err, index.ErrInvalidLeafSize) {
		return fmt.Errorf("%w: %w", ErrInvalidLeafSize, err)
	}
	if errors.Is(err, index.ErrZeroVector) {
		return fmt.Errorf("%w: %w", ErrZeroVector, err)
	}
	if errors.Is(err, distance.ErrInvalidMetric) {
		return fmt.Errorf("%w: %w", ErrInvalidMetric, err)
	}

	return err
}
