package tensor

// Backend defines the element-wise arithmetic the autodiff engine needs.
// Implementations must allocate a fresh result for every call and never
// write into their arguments.
//
// Implementations:
//   - CPU: pure Go, float64 kernels on gonum/floats
type Backend interface {
	// Element-wise binary operations (operands must share a shape)
	Mul(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise)
	Exp(x *RawTensor) *RawTensor    // exponential
	Square(x *RawTensor) *RawTensor // x^2
	Pow(x *RawTensor, p float64) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
