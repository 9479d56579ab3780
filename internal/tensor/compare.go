package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Default tolerances for AllClose, matching numpy.allclose.
const (
	DefaultRTol = 1e-5
	DefaultATol = 1e-8
)

// AllClose reports whether a and b have equal shapes and every pair of
// elements satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b *RawTensor, rtol, atol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.Shape().Equal(b.Shape()) {
		return false
	}

	av, bv := a.Float64s(), b.Float64s()
	for i := range av {
		if scalar.EqualWithinAbs(av[i], bv[i], atol+rtol*math.Abs(bv[i])) {
			continue
		}
		return false
	}
	return true
}
