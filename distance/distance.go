package distance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/kdgo/internal/math32"
)

// ErrInvalidMetric is returned for unrecognized metric identifiers or
// invalid metric parameters (e.g. Minkowski p < 1).
var ErrInvalidMetric = errors.New("invalid metric")

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricCosine
	MetricManhattan
	MetricMinkowski
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricCosine:
		return "Cosine"
	case MetricManhattan:
		return "Manhattan"
	case MetricMinkowski:
		return "Minkowski"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Func computes dissimilarity between two equal-length vectors.
//
// Distance is the user-visible metric value. Reduced is a cheaper,
// monotonically related surrogate used inside tree traversal (squared
// L2 for Euclidean, sum |d|^p for Minkowski). FromReduced/ToReduced
// convert between the two spaces.
//
// All implementations are pure: total, deterministic, commutative and
// non-negative. Callers are responsible for equal vector lengths.
type Func interface {
	// Metric returns the metric identifier.
	Metric() Metric

	// Distance returns the metric value between a and b.
	Distance(a, b []float32) float32

	// Reduced returns the reduced-space distance between a and b.
	Reduced(a, b []float32) float32

	// FromReduced converts a reduced-space value to a metric value.
	FromReduced(r float32) float32

	// ToReduced converts a metric value to reduced space.
	ToReduced(d float32) float32

	// GeomFromReduced converts a reduced-space value to the geometric
	// distance in which the triangle inequality holds. For cosine this
	// is plain L2 over the normalized vectors, not the cosine distance;
	// tree bounds (balls, hyperplane gaps) live in this space.
	GeomFromReduced(r float32) float32

	// GeomToReduced is the inverse of GeomFromReduced.
	GeomToReduced(d float32) float32

	// NormalizeInput reports whether vectors must be L2-normalized
	// before indexing and querying. True for cosine, which is searched
	// as Euclidean over unit vectors.
	NormalizeInput() bool
}

// Provider returns the distance function for the given metric identifier.
// MetricMinkowski carries a parameter and must be constructed via
// Minkowski(p) instead.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return euclidean{}, nil
	case MetricCosine:
		return cosine{}, nil
	case MetricManhattan:
		return manhattan{}, nil
	case MetricMinkowski:
		return nil, fmt.Errorf("%w: Minkowski requires a p parameter, use distance.Minkowski(p)", ErrInvalidMetric)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetric, m)
	}
}

// Euclidean returns the L2 metric.
func Euclidean() Func { return euclidean{} }

// Cosine returns the cosine distance metric (1 - cosine similarity).
// Indexes built with it L2-normalize stored vectors and queries.
func Cosine() Func { return cosine{} }

// Manhattan returns the L1 (city-block) metric.
func Manhattan() Func { return manhattan{} }

// Minkowski returns the Minkowski metric with the given order p.
// p must be >= 1 for the triangle inequality to hold.
func Minkowski(p float64) (Func, error) {
	if p < 1 {
		return nil, fmt.Errorf("%w: Minkowski p must be >= 1, got %g", ErrInvalidMetric, p)
	}
	return minkowski{p: p}, nil
}

type euclidean struct{}

func (euclidean) Metric() Metric { return MetricEuclidean }

func (euclidean) Distance(a, b []float32) float32 { return math32.Sqrt(math32.SquaredL2(a, b)) }

func (euclidean) Reduced(a, b []float32) float32 { return math32.SquaredL2(a, b) }

func (euclidean) FromReduced(r float32) float32 { return math32.Sqrt(r) }

func (euclidean) ToReduced(d float32) float32 { return d * d }

func (euclidean) GeomFromReduced(r float32) float32 { return math32.Sqrt(r) }

func (euclidean) GeomToReduced(d float32) float32 { return d * d }

func (euclidean) NormalizeInput() bool { return false }

// cosine is searched as squared L2 over unit vectors: for normalized
// a and b, |a-b|^2 = 2 - 2*dot(a,b) = 2 * (1 - cos). The tree never
// sees cosine directly, so pruning stays sound.
type cosine struct{}

func (cosine) Metric() Metric { return MetricCosine }

func (cosine) Distance(a, b []float32) float32 {
	magA := math32.Sqrt(math32.Dot(a, a))
	magB := math32.Sqrt(math32.Dot(b, b))
	if magA == 0 || magB == 0 {
		// Zero-norm vectors carry no direction; treat them as maximally
		// dissimilar rather than returning NaN.
		return 1
	}
	return 1 - math32.Dot(a, b)/(magA*magB)
}

func (cosine) Reduced(a, b []float32) float32 { return math32.SquaredL2(a, b) }

func (cosine) FromReduced(r float32) float32 { return r / 2 }

func (cosine) ToReduced(d float32) float32 { return 2 * d }

func (cosine) GeomFromReduced(r float32) float32 { return math32.Sqrt(r) }

func (cosine) GeomToReduced(d float32) float32 { return d * d }

func (cosine) NormalizeInput() bool { return true }

type manhattan struct{}

func (manhattan) Metric() Metric { return MetricManhattan }

func (manhattan) Distance(a, b []float32) float32 { return math32.L1(a, b) }

func (manhattan) Reduced(a, b []float32) float32 { return math32.L1(a, b) }

func (manhattan) FromReduced(r float32) float32 { return r }

func (manhattan) ToReduced(d float32) float32 { return d }

func (manhattan) GeomFromReduced(r float32) float32 { return r }

func (manhattan) GeomToReduced(d float32) float32 { return d }

func (manhattan) NormalizeInput() bool { return false }

type minkowski struct {
	p float64
}

func (m minkowski) Metric() Metric { return MetricMinkowski }

func (m minkowski) Distance(a, b []float32) float32 {
	return math32.Pow(math32.MinkowskiPow(a, b, m.p), 1/m.p)
}

func (m minkowski) Reduced(a, b []float32) float32 { return math32.MinkowskiPow(a, b, m.p) }

func (m minkowski) FromReduced(r float32) float32 { return math32.Pow(r, 1/m.p) }

func (m minkowski) ToReduced(d float32) float32 { return math32.Pow(d, m.p) }

func (m minkowski) GeomFromReduced(r float32) float32 { return math32.Pow(r, 1/m.p) }

func (m minkowski) GeomToReduced(d float32) float32 { return math32.Pow(d, m.p) }

func (m minkowski) NormalizeInput() bool { return false }

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := math32.Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / math32.Sqrt(norm2)
	math32.ScaleInPlace(v, inv)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}
