// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// chains of single-input operations.
//
// A Variable holds a payload and, after Backward, a gradient. Applying an
// Operation to a Variable produces a new Variable linked to the operation
// that created it, so calling Backward on the final output walks the chain in
// reverse and fills in every gradient along the way.
//
// Example:
//
//	import (
//	    "github.com/born-ml/chaingrad/autodiff"
//	    "github.com/born-ml/chaingrad/tensor"
//	)
//
//	func main() {
//	    x := autodiff.MustVariable(tensor.Scalar(0.5))
//	    y, err := autodiff.Chain(x, autodiff.Square, autodiff.Exp, autodiff.Square)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := y.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad()) // float64()[3.297442541400256]
//	}
package autodiff

import (
	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/autodiff/ops"
)

// Variable is a node in a computational graph.
type Variable = autodiff.Variable

// Operation is a differentiable function of one variable.
//
// Custom operations embed Node and override Forward and Backward.
type Operation = autodiff.Operation

// Node provides the bookkeeping half of Operation.
type Node = autodiff.Node

// Func applies a fresh operation instance to its input.
type Func = ops.Func

// Errors.
var (
	ErrInvalidPayload  = autodiff.ErrInvalidPayload
	ErrNotImplemented  = autodiff.ErrNotImplemented
	ErrAbsentPayload   = autodiff.ErrAbsentPayload
	ErrOperationReused = autodiff.ErrOperationReused
	ErrNilVariable     = autodiff.ErrNilVariable
)

// NewVariable wraps a tensor payload. A nil payload creates a placeholder.
func NewVariable(data any) (*Variable, error) {
	return autodiff.NewVariable(data)
}

// MustVariable is like NewVariable but panics on error.
func MustVariable(data any) *Variable {
	return autodiff.MustVariable(data)
}

// Apply runs op on input and links the result to op.
func Apply(op Operation, input *Variable) (*Variable, error) {
	return autodiff.Apply(op, input)
}

// Square computes x² element-wise.
func Square(x *Variable) (*Variable, error) {
	return ops.Square(x)
}

// Exp computes eˣ element-wise.
func Exp(x *Variable) (*Variable, error) {
	return ops.Exp(x)
}

// Chain applies fns to x in order.
func Chain(x *Variable, fns ...Func) (*Variable, error) {
	return ops.Chain(x, fns...)
}

// Compose returns a Func that applies fns in order.
func Compose(fns ...Func) Func {
	return ops.Compose(fns...)
}
