package onnx

import "errors"

// Common errors.
var (
	ErrEmptyChain       = errors.New("variable has no recorded operations")
	ErrUnsupportedOp    = errors.New("operation has no ONNX mapping")
	ErrUnsupportedDType = errors.New("dtype has no ONNX mapping")
	ErrMalformed        = errors.New("malformed protobuf data")
)
