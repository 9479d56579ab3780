package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/chaingrad/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("exp", x)

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Exp(float64(v)))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Exp(v)
		}
	default:
		panic(fmt.Sprintf("exp: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Square computes element-wise x^2.
func (cpu *CPUBackend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("square", x)

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = v * v
		}
	case tensor.Float64:
		src := x.AsFloat64()
		floats.MulTo(result.AsFloat64(), src, src)
	default:
		panic(fmt.Sprintf("square: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Pow computes element-wise x^p.
func (cpu *CPUBackend) Pow(x *tensor.RawTensor, p float64) *tensor.RawTensor {
	result := cpu.alloc("pow", x)

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Pow(float64(v), p))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Pow(v, p)
		}
	default:
		panic(fmt.Sprintf("pow: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
