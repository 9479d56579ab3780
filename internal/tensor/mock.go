package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements every kernel naively in float64 and counts calls per kernel,
// so tests can check both results and which backend an operation used.
type MockBackend struct {
	Calls map[string]int
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{Calls: make(map[string]int)}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Mul performs element-wise multiplication. Shapes must match.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	m.Calls["Mul"]++
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mock: mul: shape mismatch %s vs %s", a.Shape(), b.Shape()))
	}
	bv := b.Float64s()
	return m.unary(a, func(i int, x float64) float64 { return x * bv[i] })
}

// MulScalar multiplies every element by scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar float64) *RawTensor {
	m.Calls["MulScalar"]++
	return m.unary(x, func(_ int, v float64) float64 { return v * scalar })
}

// Exp computes e^x element-wise.
func (m *MockBackend) Exp(x *RawTensor) *RawTensor {
	m.Calls["Exp"]++
	return m.unary(x, func(_ int, v float64) float64 { return math.Exp(v) })
}

// Square computes x^2 element-wise.
func (m *MockBackend) Square(x *RawTensor) *RawTensor {
	m.Calls["Square"]++
	return m.unary(x, func(_ int, v float64) float64 { return v * v })
}

// Pow computes x^p element-wise.
func (m *MockBackend) Pow(x *RawTensor, p float64) *RawTensor {
	m.Calls["Pow"]++
	return m.unary(x, func(_ int, v float64) float64 { return math.Pow(v, p) })
}

// unary allocates a result like x and fills it with op applied to each element.
func (m *MockBackend) unary(x *RawTensor, op func(i int, v float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	switch result.DType() {
	case Float32:
		dst := result.AsFloat32()
		for i, v := range x.Float64s() {
			dst[i] = float32(op(i, v))
		}
	case Float64:
		dst := result.AsFloat64()
		for i, v := range x.Float64s() {
			dst[i] = op(i, v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", result.DType()))
	}
	return result
}
