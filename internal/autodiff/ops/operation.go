// Package ops defines the concrete differentiable operations.
//
// Each operation embeds autodiff.Node and supplies Forward and Backward:
//   - SquareOp: y = x^2 (dy/dx = 2x)
//   - ExpOp: y = exp(x) (dy/dx = exp(x))
//
// Operations are single-use. Build them through the package functions
// (Square, Exp, SquareOn, ExpOn), which create a fresh instance per call.
package ops

import (
	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/backend/cpu"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// Func is a unary differentiable function on variables, such as Square or Exp.
type Func func(x *autodiff.Variable) (*autodiff.Variable, error)

var defaultBackend tensor.Backend = cpu.New()

// DefaultBackend returns the backend used by Square and Exp.
func DefaultBackend() tensor.Backend {
	return defaultBackend
}

// Chain applies fns to x left to right and returns the last output.
// It stops at the first error.
//
// Example:
//
//	y, err := ops.Chain(x, ops.Square, ops.Exp, ops.Square) // y = exp(x^2)^2
func Chain(x *autodiff.Variable, fns ...Func) (*autodiff.Variable, error) {
	y := x
	for _, fn := range fns {
		var err error
		if y, err = fn(y); err != nil {
			return nil, err
		}
	}
	return y, nil
}

// Compose returns the function that applies fns left to right.
func Compose(fns ...Func) Func {
	return func(x *autodiff.Variable) (*autodiff.Variable, error) {
		return Chain(x, fns...)
	}
}

// ByName returns the package function for an operation name
// ("square" or "exp", case-sensitive).
func ByName(name string) (Func, bool) {
	switch name {
	case "square":
		return Square, true
	case "exp":
		return Exp, true
	default:
		return nil, false
	}
}
