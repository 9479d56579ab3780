package tensor

import "fmt"

// AsArray normalizes a forward result into a tensor.
//
// Bare Go numbers become 0-d tensors (float32 stays float32, everything else
// is widened to float64). A *RawTensor is returned unchanged, and nil (or a
// nil *RawTensor) stays nil so that placeholder payloads survive the trip.
func AsArray(x any) (*RawTensor, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil
	case *RawTensor:
		return v, nil
	case float32:
		return Scalar(v), nil
	case float64:
		return Scalar(v), nil
	case int:
		return Scalar(float64(v)), nil
	case int8:
		return Scalar(float64(v)), nil
	case int16:
		return Scalar(float64(v)), nil
	case int32:
		return Scalar(float64(v)), nil
	case int64:
		return Scalar(float64(v)), nil
	case uint:
		return Scalar(float64(v)), nil
	case uint8:
		return Scalar(float64(v)), nil
	case uint16:
		return Scalar(float64(v)), nil
	case uint32:
		return Scalar(float64(v)), nil
	case uint64:
		return Scalar(float64(v)), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}
