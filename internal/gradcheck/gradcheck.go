// Package gradcheck validates analytic gradients against central finite
// differences computed with gonum's diff/fd package.
//
// Only element-wise chains are supported: output element i must depend on
// input element i alone, which holds for every chain built from ops.Square
// and ops.Exp.
package gradcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/autodiff/ops"
	"github.com/born-ml/chaingrad/internal/tensor"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// ErrNotElementwise is returned when f changes the number of elements.
var ErrNotElementwise = errors.New("function is not element-wise")

// Options configures a gradient check.
type Options struct {
	Eps  float64 // finite-difference step
	RTol float64 // relative tolerance for AllClose
	ATol float64 // absolute tolerance for AllClose
}

// DefaultOptions returns a step of 1e-4 and numpy.allclose tolerances.
func DefaultOptions() Options {
	return Options{
		Eps:  1e-4,
		RTol: tensor.DefaultRTol,
		ATol: tensor.DefaultATol,
	}
}

// Report is the outcome of Check.
type Report struct {
	Analytic   *tensor.RawTensor // gradient from Backward
	Numeric    *tensor.RawTensor // gradient from central differences
	MaxAbsDiff float64           // max |analytic - numeric| over all elements
	OK         bool              // AllClose(analytic, numeric, RTol, ATol)
}

// NumericalDiff estimates dy_i/dx_i for y = f(x) with the central difference
// (f(x+eps) - f(x-eps)) / 2eps, one element at a time. The result is float64
// and shaped like x. f is evaluated on fresh leaves, so x itself is untouched.
func NumericalDiff(f ops.Func, x *autodiff.Variable, eps float64) (*tensor.RawTensor, error) {
	base := x.Data()
	if base == nil {
		return nil, fmt.Errorf("numerical diff: %w", autodiff.ErrAbsentPayload)
	}

	vals := base.Float64s()
	grad := make([]float64, len(vals))
	settings := &fd.Settings{Formula: fd.Central, Step: eps}

	var evalErr error
	for i := range vals {
		grad[i] = fd.Derivative(func(v float64) float64 {
			if evalErr != nil {
				return math.NaN()
			}
			y, err := evalAt(f, base.Shape(), vals, i, v)
			if err != nil {
				evalErr = err
				return math.NaN()
			}
			return y
		}, vals[i], settings)

		if evalErr != nil {
			return nil, fmt.Errorf("numerical diff: element %d: %w", i, evalErr)
		}
	}

	return tensor.FromSlice(grad, base.Shape())
}

// evalAt runs f with element i of vals replaced by v and returns output element i.
func evalAt(f ops.Func, shape tensor.Shape, vals []float64, i int, v float64) (float64, error) {
	shifted := make([]float64, len(vals))
	copy(shifted, vals)
	shifted[i] = v

	data, err := tensor.FromSlice(shifted, shape)
	if err != nil {
		return 0, err
	}
	y, err := f(autodiff.MustVariable(data))
	if err != nil {
		return 0, err
	}
	if y.Data() == nil {
		return 0, autodiff.ErrAbsentPayload
	}
	if y.Data().NumElements() != len(vals) {
		return 0, fmt.Errorf("%w: %d inputs, %d outputs", ErrNotElementwise, len(vals), y.Data().NumElements())
	}
	return y.Data().Float64s()[i], nil
}

// Check runs f on x, back-propagates from the output (seeding ones) and
// compares x's gradient with NumericalDiff. It overwrites x.Grad().
func Check(f ops.Func, x *autodiff.Variable, opts Options) (*Report, error) {
	y, err := f(x)
	if err != nil {
		return nil, fmt.Errorf("gradient check: forward: %w", err)
	}
	if err := y.Backward(); err != nil {
		return nil, fmt.Errorf("gradient check: %w", err)
	}
	analytic := x.Grad()
	if analytic == nil {
		return nil, fmt.Errorf("gradient check: no gradient reached the input: %w", tensor.ErrNilTensor)
	}

	numeric, err := NumericalDiff(f, x, opts.Eps)
	if err != nil {
		return nil, fmt.Errorf("gradient check: %w", err)
	}

	return &Report{
		Analytic:   analytic,
		Numeric:    numeric,
		MaxAbsDiff: floats.Distance(analytic.Float64s(), numeric.Float64s(), math.Inf(1)),
		OK:         tensor.AllClose(analytic, numeric, opts.RTol, opts.ATol),
	}, nil
}
