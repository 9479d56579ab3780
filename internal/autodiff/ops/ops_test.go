package ops_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/autodiff/ops"
	"github.com/born-ml/chaingrad/internal/backend/cpu"
	"github.com/born-ml/chaingrad/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

// TestSquareOp_Backward tests SquareOp forward and backward pass.
func TestSquareOp_Backward(t *testing.T) {
	backend := cpu.New()
	x := autodiff.MustVariable(tensor.MustFromSlice([]float64{-1, 0, 2.5}, tensor.Shape{3}))

	y, err := ops.SquareOn(backend, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 6.25}, y.Data().AsFloat64(), epsilon)

	op := y.Creator()
	gx, err := op.Backward(tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3}))
	require.NoError(t, err)

	// grad = 2 * x * gy
	assert.InDeltaSlice(t, []float64{-2, 0, 15}, gx.AsFloat64(), epsilon)
}

// TestExpOp_Backward tests ExpOp forward and backward pass.
func TestExpOp_Backward(t *testing.T) {
	backend := cpu.New()
	x := autodiff.MustVariable(tensor.MustFromSlice([]float64{0, 1, -1}, tensor.Shape{3}))

	y, err := ops.ExpOn(backend, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, math.E, 1 / math.E}, y.Data().AsFloat64(), epsilon)

	gx, err := y.Creator().Backward(tensor.MustFromSlice([]float64{2, 2, 2}, tensor.Shape{3}))
	require.NoError(t, err)

	// grad = exp(x) * gy
	assert.InDeltaSlice(t, []float64{2, 2 * math.E, 2 / math.E}, gx.AsFloat64(), epsilon)
}

func TestOpsFloat32(t *testing.T) {
	x := autodiff.MustVariable(tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}))

	y, err := ops.Chain(x, ops.Square, ops.Exp)
	require.NoError(t, err)
	require.Equal(t, tensor.Float32, y.Data().DType())

	require.NoError(t, y.Backward())

	grad := x.Grad().AsFloat32()
	assert.InEpsilon(t, 2*math.Exp(1), float64(grad[0]), 1e-6)
	assert.InEpsilon(t, 4*math.Exp(4), float64(grad[1]), 1e-6)
}

func TestBackwardRejectsMismatchedGradient(t *testing.T) {
	tests := []struct {
		name string
		gy   *tensor.RawTensor
	}{
		{"shape", tensor.MustFromSlice([]float64{1, 1, 1}, tensor.Shape{3})},
		{"dtype", tensor.MustFromSlice([]float32{1, 1}, tensor.Shape{2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := autodiff.MustVariable(tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2}))
			y, err := ops.Square(x)
			require.NoError(t, err)

			y.SetGrad(tt.gy)
			err = y.Backward()
			require.ErrorIs(t, err, tensor.ErrShapeMismatch)
			assert.Nil(t, x.Grad())
		})
	}
}

func TestBackwardNilOutputGradient(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))
	y, err := ops.Exp(x)
	require.NoError(t, err)

	_, err = y.Creator().Backward(nil)
	require.ErrorIs(t, err, tensor.ErrNilTensor)
}

func TestFactoriesCreateFreshOperations(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))

	a, err := ops.Square(x)
	require.NoError(t, err)
	b, err := ops.Square(x)
	require.NoError(t, err)

	assert.NotSame(t, a.Creator(), b.Creator())
	assert.Same(t, x, a.Creator().Input())
	assert.Same(t, x, b.Creator().Input())
}

func TestChainStopsAtFirstError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	failing := func(*autodiff.Variable) (*autodiff.Variable, error) {
		return nil, boom
	}
	counting := func(v *autodiff.Variable) (*autodiff.Variable, error) {
		calls++
		return ops.Square(v)
	}

	_, err := ops.Chain(autodiff.MustVariable(tensor.Scalar(1.0)), counting, failing, counting)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestChainWithoutFuncsReturnsInput(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))

	y, err := ops.Chain(x)
	require.NoError(t, err)
	assert.Same(t, x, y)
}

func TestCompose(t *testing.T) {
	f := ops.Compose(ops.Square, ops.Exp, ops.Square)

	y, err := f(autodiff.MustVariable(tensor.Scalar(2.0)))
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pow(math.Exp(4), 2), y.Data().Item(), 1e-12)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"square", "exp"} {
		fn, ok := ops.ByName(name)
		require.True(t, ok, name)
		require.NotNil(t, fn)
	}

	_, ok := ops.ByName("log")
	assert.False(t, ok)
}

func TestOpNames(t *testing.T) {
	assert.Equal(t, "Square", ops.NewSquareOp(cpu.New()).Name())
	assert.Equal(t, "Exp", ops.NewExpOp(cpu.New()).Name())
}

func TestForwardDoesNotMutateInput(t *testing.T) {
	data := tensor.MustFromSlice([]float64{0.5, 1.5}, tensor.Shape{2})
	x := autodiff.MustVariable(data)

	_, err := ops.Chain(x, ops.Square, ops.Exp, ops.Square)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 1.5}, x.Data().AsFloat64())
}

func TestOperationsUseInjectedBackend(t *testing.T) {
	mock := tensor.NewMockBackend()
	x := autodiff.MustVariable(tensor.MustFromSlice([]float64{0.5, 1}, tensor.Shape{2}))

	h, err := ops.SquareOn(mock, x)
	require.NoError(t, err)
	y, err := ops.ExpOn(mock, h)
	require.NoError(t, err)
	require.NoError(t, y.Backward())

	// forward: Square, Exp; backward: Exp, Mul (exp) then MulScalar, Mul (square)
	assert.Equal(t, 1, mock.Calls["Square"])
	assert.Equal(t, 2, mock.Calls["Exp"])
	assert.Equal(t, 2, mock.Calls["Mul"])
	assert.Equal(t, 1, mock.Calls["MulScalar"])

	for i, v := range []float64{0.5, 1} {
		assert.InDelta(t, 2*v*math.Exp(v*v), x.Grad().AsFloat64()[i], epsilon)
	}
}
