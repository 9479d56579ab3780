// Package cpu implements the CPU backend. Float64 kernels run on gonum/floats;
// float32 tensors take plain loops.
package cpu

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Mul performs element-wise multiplication. Both operands must have the same
// shape and dtype.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mul: shapes differ: %s vs %s", a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("mul: dtypes differ: %s vs %s", a.DType(), b.DType()))
	}

	result := cpu.alloc("mul", a)
	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range dst {
			dst[i] = x[i] * y[i]
		}
	case tensor.Float64:
		floats.MulTo(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", a.DType()))
	}
	return result
}

// MulScalar multiplies every element of x by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := cpu.alloc("mul_scalar", x)
	switch x.DType() {
	case tensor.Float32:
		dst, src := result.AsFloat32(), x.AsFloat32()
		s := float32(scalar)
		for i, v := range src {
			dst[i] = v * s
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		copy(dst, x.AsFloat64())
		floats.Scale(scalar, dst)
	default:
		panic(fmt.Sprintf("mul_scalar: unsupported dtype %s", x.DType()))
	}
	return result
}

// alloc creates an uninitialized result tensor shaped like x.
func (cpu *CPUBackend) alloc(op string, x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}
