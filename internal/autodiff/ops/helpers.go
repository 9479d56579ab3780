package ops

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// recordedInput returns the payload captured at forward time and checks that
// the output gradient can be combined with it element-wise.
func recordedInput(op autodiff.Operation, gy *tensor.RawTensor) (*tensor.RawTensor, error) {
	x := op.Input().Data()
	if x == nil {
		return nil, autodiff.ErrAbsentPayload
	}
	if gy == nil {
		return nil, fmt.Errorf("output gradient: %w", tensor.ErrNilTensor)
	}
	if !gy.Shape().Equal(x.Shape()) || gy.DType() != x.DType() {
		return nil, fmt.Errorf("%w: gradient %s%s vs input %s%s",
			tensor.ErrShapeMismatch, gy.DType(), gy.Shape(), x.DType(), x.Shape())
	}
	return x, nil
}
