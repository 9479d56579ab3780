package autodiff

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/tensor"
)

// Operation represents a differentiable unary operation in the computation graph.
// Each operation records its input and output during Apply and computes the
// input gradient during the backward pass.
//
// Implementations embed Node, which supplies the linkage methods. An Operation
// instance is applied exactly once.
type Operation interface {
	// Name identifies the operation kind (e.g. "Square").
	Name() string

	// Forward computes the output payload from the input payload without
	// modifying it. It may return a *tensor.RawTensor or a bare Go number;
	// Apply normalizes the result with tensor.AsArray.
	Forward(x *tensor.RawTensor) (any, error)

	// Backward returns the gradient of the input given the gradient of the output.
	Backward(gy *tensor.RawTensor) (*tensor.RawTensor, error)

	// Input returns the Variable the operation was applied to.
	Input() *Variable

	// Output returns the Variable the operation produced.
	Output() *Variable

	bind(input, output *Variable)
}

// Node records the input and output of an Operation. Embed it in every
// Operation implementation. Its Forward and Backward fail with
// ErrNotImplemented, so an operation that forgets to define one of them
// reports the omission when it is called.
type Node struct {
	input  *Variable
	output *Variable
}

// Name returns a generic operation name.
func (n *Node) Name() string {
	return "Operation"
}

// Forward fails with ErrNotImplemented.
func (n *Node) Forward(_ *tensor.RawTensor) (any, error) {
	return nil, fmt.Errorf("forward: %w", ErrNotImplemented)
}

// Backward fails with ErrNotImplemented.
func (n *Node) Backward(_ *tensor.RawTensor) (*tensor.RawTensor, error) {
	return nil, fmt.Errorf("backward: %w", ErrNotImplemented)
}

// Input returns the Variable the operation was applied to.
func (n *Node) Input() *Variable {
	return n.input
}

// Output returns the Variable the operation produced.
func (n *Node) Output() *Variable {
	return n.output
}

func (n *Node) bind(input, output *Variable) {
	n.input = input
	n.output = output
}

// Apply runs op on input and links the result into the graph:
// the new Variable's creator is op, and op remembers both input and output.
//
// A placeholder input (nil payload) skips Forward and yields a placeholder
// output. An operation that has already been applied is rejected with
// ErrOperationReused because rebinding it would corrupt the earlier graph.
func Apply(op Operation, input *Variable) (*Variable, error) {
	if input == nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), ErrNilVariable)
	}
	if op.Input() != nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), ErrOperationReused)
	}

	var y any
	if x := input.Data(); x != nil {
		var err error
		if y, err = op.Forward(x); err != nil {
			return nil, fmt.Errorf("%s: %w", op.Name(), err)
		}
	}

	data, err := tensor.AsArray(y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), err)
	}
	output, err := NewVariable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), err)
	}

	output.SetCreator(op)
	op.bind(input, output)
	return output, nil
}
