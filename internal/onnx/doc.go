// Package onnx exports recorded autodiff chains as ONNX models and reads
// them back.
//
// ONNX (Open Neural Network Exchange) is an open format for representing
// computation graphs. This package keeps hand-written message structs for the
// subset of the schema a unary chain needs and uses protowire from
// google.golang.org/protobuf for the wire encoding.
//
// Key components:
//   - ModelProto: Top-level ONNX model structure with metadata and graph
//   - GraphProto: Computation graph with nodes, inputs, outputs and value info
//   - NodeProto: Single operation in the graph (Mul, Exp)
//   - ValueInfoProto: Tensor type information for graph values
//   - Run/RunChain: Evaluate a parsed graph with the operators registry
//
// Operation mapping:
//   - Square: Mul(x, x)
//   - Exp: Exp(x)
//
// Example usage:
//
//	y, _ := ops.Chain(x, ops.Square, ops.Exp, ops.Square)
//	model, err := onnx.ExportChain(y, "chaingrad", "v0.1.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := onnx.WriteFile("chain.onnx", model); err != nil {
//	    log.Fatal(err)
//	}
package onnx
