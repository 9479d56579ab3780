package ops

import (
	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x)
//   - grad_input = exp(x) * grad_output
type ExpOp struct {
	autodiff.Node
	backend tensor.Backend
}

// NewExpOp creates a new ExpOp running on backend.
func NewExpOp(backend tensor.Backend) *ExpOp {
	return &ExpOp{backend: backend}
}

// Name returns "Exp".
func (op *ExpOp) Name() string {
	return "Exp"
}

// Forward computes exp(x).
func (op *ExpOp) Forward(x *tensor.RawTensor) (any, error) {
	return op.backend.Exp(x), nil
}

// Backward computes exp(x) * gy from the recorded input x.
func (op *ExpOp) Backward(gy *tensor.RawTensor) (*tensor.RawTensor, error) {
	x, err := recordedInput(op, gy)
	if err != nil {
		return nil, err
	}
	return op.backend.Mul(op.backend.Exp(x), gy), nil
}

// Exp applies a fresh ExpOp on the default backend.
func Exp(x *autodiff.Variable) (*autodiff.Variable, error) {
	return ExpOn(defaultBackend, x)
}

// ExpOn applies a fresh ExpOp on backend.
func ExpOn(backend tensor.Backend, x *autodiff.Variable) (*autodiff.Variable, error) {
	return autodiff.Apply(NewExpOp(backend), x)
}
