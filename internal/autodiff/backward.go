package autodiff

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/tensor"
)

// Backward computes the gradient of v with respect to every Variable upstream
// of it and stores each result in that Variable's Grad.
//
// Algorithm:
//  1. If v has no gradient yet, seed it with ones shaped like its payload (dv/dv = 1)
//  2. Push v's creator onto a stack (a leaf has none; Backward is then a no-op)
//  3. Pop an operation f and set f.Input().grad = f.Backward(f.Output().grad)
//  4. Push the creator of f.Input(), if any, and repeat until the stack is empty
//
// Seeding fails with ErrAbsentPayload when v is a placeholder. Errors from an
// operation's Backward stop the traversal; gradients already assigned further
// downstream are kept.
func (v *Variable) Backward() error {
	if v.grad == nil {
		if v.data == nil {
			return fmt.Errorf("backward: seed gradient: %w", ErrAbsentPayload)
		}
		ones, err := tensor.OnesLike(v.data)
		if err != nil {
			return fmt.Errorf("backward: seed gradient: %w", err)
		}
		v.grad = ones
	}

	if v.creator == nil {
		return nil
	}

	funcs := []Operation{v.creator}
	for len(funcs) > 0 {
		f := funcs[len(funcs)-1]
		funcs = funcs[:len(funcs)-1]

		x, y := f.Input(), f.Output()
		gx, err := f.Backward(y.grad)
		if err != nil {
			return fmt.Errorf("backward: %s: %w", f.Name(), err)
		}
		x.grad = gx

		if x.creator != nil {
			funcs = append(funcs, x.creator)
		}
	}
	return nil
}
