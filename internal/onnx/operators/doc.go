// Package operators maps ONNX operator types onto backend kernels.
//
// The registry covers the operators an exported chain can contain (Mul, Exp)
// plus Identity, which lets hand-built graphs rename values.
package operators
