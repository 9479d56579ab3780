package tensor

import "fmt"

// FromSlice creates a tensor of the given shape from a flat row-major slice.
// The data is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{0, 0.5, 1, 1, 2, 3}, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %s", ErrShapeMismatch, len(data), shape)
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), CPU)
	if err != nil {
		return nil, err
	}

	switch raw.DType() {
	case Float32:
		dst := raw.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	default:
		dst := raw.AsFloat64()
		for i, v := range data {
			dst[i] = float64(v)
		}
	}
	return raw, nil
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	raw, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return raw
}

// Scalar creates a 0-dimensional tensor holding v.
func Scalar[T DType](v T) *RawTensor {
	return MustFromSlice([]T{v}, Shape{})
}

// Full creates a tensor of the given shape and dtype filled with value.
func Full(shape Shape, dtype DataType, value float64) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}

	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = value
		}
	default:
		return nil, fmt.Errorf("full: unsupported dtype %s", dtype)
	}
	return raw, nil
}

// OnesLike returns a tensor of ones with the same shape and dtype as x.
// A nil x has no shape to copy and yields ErrNilTensor.
func OnesLike(x *RawTensor) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("ones_like: %w", ErrNilTensor)
	}
	return Full(x.Shape(), x.DType(), 1)
}
