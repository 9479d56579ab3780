package ops

import (
	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// SquareOp represents the square operation: y = x^2.
//
// Backward pass:
//   - d(x^2)/dx = 2x
//   - grad_input = 2 * x * grad_output
type SquareOp struct {
	autodiff.Node
	backend tensor.Backend
}

// NewSquareOp creates a new SquareOp running on backend.
func NewSquareOp(backend tensor.Backend) *SquareOp {
	return &SquareOp{backend: backend}
}

// Name returns "Square".
func (op *SquareOp) Name() string {
	return "Square"
}

// Forward computes x^2.
func (op *SquareOp) Forward(x *tensor.RawTensor) (any, error) {
	return op.backend.Square(x), nil
}

// Backward computes 2 * x * gy using the recorded input x.
func (op *SquareOp) Backward(gy *tensor.RawTensor) (*tensor.RawTensor, error) {
	x, err := recordedInput(op, gy)
	if err != nil {
		return nil, err
	}
	return op.backend.Mul(op.backend.MulScalar(x, 2), gy), nil
}

// Square applies a fresh SquareOp on the default backend.
func Square(x *autodiff.Variable) (*autodiff.Variable, error) {
	return SquareOn(defaultBackend, x)
}

// SquareOn applies a fresh SquareOp on backend.
func SquareOn(backend tensor.Backend, x *autodiff.Variable) (*autodiff.Variable, error) {
	return autodiff.Apply(NewSquareOp(backend), x)
}
