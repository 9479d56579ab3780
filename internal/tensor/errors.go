package tensor

import "errors"

// Common errors.
var (
	ErrUnsupportedType = errors.New("unsupported payload type")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrNilTensor       = errors.New("nil tensor")
)
