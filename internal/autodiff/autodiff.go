// Package autodiff implements reverse-mode automatic differentiation over
// linear chains of unary operations.
//
// Architecture:
//   - Variable: a payload tensor, its gradient and the Operation that created it
//   - Operation: a one-shot unit that computes a forward result and, later,
//     the gradient of its input from the gradient of its output
//   - Apply: runs an Operation on a Variable and records the graph linkage
//   - Variable.Backward: walks creator links from output to leaf applying the chain rule
//
// Every Operation has exactly one input and one output, and every Variable is
// consumed by at most one Operation. Gradients are assigned, not summed, so
// feeding one Variable into two operations and calling Backward on both
// outputs leaves the gradient of the second traversal.
//
// Usage:
//
//	x, _ := autodiff.NewVariable(tensor.Scalar(2.0))
//	y, _ := ops.Square(x)
//	_ = y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x = 4.0
package autodiff

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/tensor"
)

// Variable is a value node in the computation graph.
//
// A Variable and the chain it belongs to are not safe for concurrent use:
// building a chain mutates the operations in it and Backward writes the
// gradient of every upstream Variable.
type Variable struct {
	data    *tensor.RawTensor // payload; nil for a placeholder
	grad    *tensor.RawTensor // nil until Backward (or SetGrad)
	creator Operation         // nil for leaves
	name    string
}

// NewVariable creates a Variable from a payload.
//
// The payload must be a *tensor.RawTensor or nil. nil creates a placeholder
// whose use is deferred: it flows through operations and only fails once a
// gradient of matching shape is needed. Any other value, including a bare
// Go number, returns an error wrapping ErrInvalidPayload.
func NewVariable(data any) (*Variable, error) {
	switch v := data.(type) {
	case nil:
		return &Variable{}, nil
	case *tensor.RawTensor:
		return &Variable{data: v}, nil
	default:
		return nil, fmt.Errorf("%w: %T is not supported", ErrInvalidPayload, data)
	}
}

// MustVariable is like NewVariable but panics on error.
func MustVariable(data any) *Variable {
	v, err := NewVariable(data)
	if err != nil {
		panic(err)
	}
	return v
}

// Data returns the payload (nil for a placeholder).
func (v *Variable) Data() *tensor.RawTensor {
	return v.data
}

// Grad returns the gradient, or nil if none has been computed.
func (v *Variable) Grad() *tensor.RawTensor {
	return v.grad
}

// SetGrad seeds the gradient used by the next Backward call.
func (v *Variable) SetGrad(g *tensor.RawTensor) {
	v.grad = g
}

// ClearGrad drops the gradient.
func (v *Variable) ClearGrad() {
	v.grad = nil
}

// Creator returns the Operation that produced v, or nil for a leaf.
func (v *Variable) Creator() Operation {
	return v.creator
}

// SetCreator records op as the creator of v, replacing any previous one.
func (v *Variable) SetCreator(op Operation) {
	v.creator = op
}

// IsLeaf reports whether v was supplied by the caller rather than produced by an Operation.
func (v *Variable) IsLeaf() bool {
	return v.creator == nil
}

// Name returns the optional label used by exports and snapshots.
func (v *Variable) Name() string {
	return v.name
}

// SetName labels v.
func (v *Variable) SetName(name string) {
	v.name = name
}

// String implements fmt.Stringer.
func (v *Variable) String() string {
	if v.data == nil {
		return "variable(None)"
	}
	return fmt.Sprintf("variable(%s)", v.data)
}
