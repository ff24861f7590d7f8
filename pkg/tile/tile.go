package tile

import (
	"math"

	"github.com/matzehuels/qrtile/pkg/errors"
)

// Spans is an ordered sequence of pixel spans, one per row or column of
// modules. A Spans value produced by [ComputeSpans] sums exactly to the
// rounded extent it was computed for.
type Spans []int

// ComputeSpans splits extent pixels across n cells.
//
// It returns an INVALID_GEOMETRY error when n is not positive or when extent
// is negative, NaN or infinite. An extent of zero, or one smaller than n, is
// legal and produces zero-width cells.
func ComputeSpans(n int, extent float64) (Spans, error) {
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "module count must be positive, got %d", n)
	}
	if math.IsNaN(extent) || math.IsInf(extent, 0) {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "extent must be finite, got %v", extent)
	}
	if extent < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "extent must not be negative, got %v", extent)
	}

	spans := make(Spans, n)
	prev := 0
	for i := range n {
		next := Boundary(n, extent, i+1)
		spans[i] = next - prev
		prev = next
	}
	return spans, nil
}

// Boundary returns the pixel offset at which cell i begins, which is also
// where cell i-1 ends. Boundary(n, extent, n) is the total extent.
// The caller guarantees n > 0 and a finite, non-negative extent.
func Boundary(n int, extent float64, i int) int {
	return int(math.Round(extent * float64(i) / float64(n)))
}

// Sum returns the total pixel extent covered by s.
func (s Spans) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Boundaries returns the len(s)+1 cumulative offsets of s, starting at 0
// and ending at s.Sum().
func (s Spans) Boundaries() []int {
	b := make([]int, len(s)+1)
	for i, v := range s {
		b[i+1] = b[i] + v
	}
	return b
}

// Offsets returns the leading offset of every cell: the running sum of all
// spans before it.
func (s Spans) Offsets() []int {
	return s.Boundaries()[:len(s)]
}

// Index returns the cell containing pixel offset p, or -1 when p lies
// outside [0, s.Sum()). Zero-width cells never contain a pixel.
func (s Spans) Index(p int) int {
	if p < 0 {
		return -1
	}
	start := 0
	for i, v := range s {
		if p < start+v {
			return i
		}
		start += v
	}
	return -1
}
