// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/chaingrad/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types: float32 or float64.
type DType = tensor.DType

// DataType represents the runtime element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the only supported device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a 2×3 matrix, Shape{} is a 0-d scalar.
type Shape = tensor.Shape

// RawTensor is a dense row-major array.
type RawTensor = tensor.RawTensor

// Backend computes the element-wise kernels used by operations.
type Backend = tensor.Backend

// Tolerances used by AllClose when callers have no better choice.
const (
	DefaultRTol = tensor.DefaultRTol
	DefaultATol = tensor.DefaultATol
)

// Errors.
var (
	ErrUnsupportedType = tensor.ErrUnsupportedType
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrNilTensor       = tensor.ErrNilTensor
)

// FromSlice copies data into a new tensor of the given shape.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	return tensor.MustFromSlice(data, shape)
}

// Scalar creates a 0-d tensor holding v.
func Scalar[T DType](v T) *RawTensor {
	return tensor.Scalar(v)
}

// Full creates a tensor of the given shape filled with value.
func Full(shape Shape, dtype DataType, value float64) (*RawTensor, error) {
	return tensor.Full(shape, dtype, value)
}

// OnesLike creates a tensor of ones with the shape and type of x.
func OnesLike(x *RawTensor) (*RawTensor, error) {
	return tensor.OnesLike(x)
}

// AsArray promotes a Go scalar to a 0-d tensor. Tensors and nil pass through.
func AsArray(x any) (*RawTensor, error) {
	return tensor.AsArray(x)
}

// AllClose reports whether a and b have the same shape and every element
// satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b *RawTensor, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}

// ParseDataType converts "float32" or "float64" into a DataType.
func ParseDataType(s string) (DataType, bool) {
	return tensor.ParseDataType(s)
}
