package operators

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/born-ml/chaingrad/internal/tensor"
)

// ErrUnsupportedOperator is returned by Execute for unregistered operator types.
var ErrUnsupportedOperator = errors.New("unsupported operator")

// OpHandler processes an ONNX node and returns output tensors.
type OpHandler func(ctx *Context, node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error)

// Context provides backend and other execution context for operators.
type Context struct {
	Backend tensor.Backend
}

// Registry maps ONNX operator types to handler functions.
type Registry struct {
	handlers map[string]OpHandler
}

// NewRegistry creates a new operator registry with all supported operators.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]OpHandler),
	}
	r.registerElementwise()
	return r
}

// Register adds a custom operator handler.
func (r *Registry) Register(opType string, handler OpHandler) {
	r.handlers[opType] = handler
}

// Get returns the handler for an operator type.
func (r *Registry) Get(opType string) (OpHandler, bool) {
	h, ok := r.handlers[opType]
	return h, ok
}

// Execute runs an operator with the given inputs.
func (r *Registry) Execute(ctx *Context, node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	handler, ok := r.Get(node.OpType)
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedOperator, node.OpType, r.SupportedOps())
	}
	return handler(ctx, node, inputs)
}

// SupportedOps returns the registered operator types in sorted order.
func (r *Registry) SupportedOps() []string {
	return slices.Sorted(maps.Keys(r.handlers))
}
