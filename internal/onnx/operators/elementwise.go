package operators

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/tensor"
)

// registerElementwise adds the element-wise operators to the registry.
func (r *Registry) registerElementwise() {
	r.Register("Mul", handleMul)
	r.Register("Exp", handleExp)
	r.Register("Identity", handleIdentity)
}

func handleMul(ctx *Context, _ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("mul requires 2 inputs, got %d", len(inputs))
	}
	a, b := inputs[0], inputs[1]
	if a == nil || b == nil {
		return nil, fmt.Errorf("mul: %w", tensor.ErrNilTensor)
	}
	// No broadcasting: exported chains only multiply a value by itself.
	if !a.Shape().Equal(b.Shape()) || a.DType() != b.DType() {
		return nil, fmt.Errorf("mul: %w: %s%s vs %s%s", tensor.ErrShapeMismatch, a.DType(), a.Shape(), b.DType(), b.Shape())
	}
	return []*tensor.RawTensor{ctx.Backend.Mul(a, b)}, nil
}

func handleExp(ctx *Context, _ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("exp requires 1 input, got %d", len(inputs))
	}
	if inputs[0] == nil {
		return nil, fmt.Errorf("exp: %w", tensor.ErrNilTensor)
	}
	return []*tensor.RawTensor{ctx.Backend.Exp(inputs[0])}, nil
}

func handleIdentity(_ *Context, _ *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("identity requires 1 input, got %d", len(inputs))
	}
	return inputs, nil
}
