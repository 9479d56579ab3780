package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/autodiff/ops"
	"github.com/born-ml/chaingrad/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

// squareExpSquare builds y = exp(x^2)^2.
func squareExpSquare(t *testing.T, x *autodiff.Variable) *autodiff.Variable {
	t.Helper()
	y, err := ops.Chain(x, ops.Square, ops.Exp, ops.Square)
	require.NoError(t, err)
	return y
}

// chainGrad is the closed form of d/dx exp(x^2)^2.
func chainGrad(x float64) float64 {
	return 4 * x * math.Pow(math.Exp(x*x), 2)
}

func TestNewVariable(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		wantErr bool
	}{
		{"scalar array", tensor.Scalar(1.0), false},
		{"2D array", tensor.MustFromSlice([]float64{0, 0.5, 1, 1, 2, 3}, tensor.Shape{2, 3}), false},
		{"absent", nil, false},
		{"typed nil tensor", (*tensor.RawTensor)(nil), false},
		{"bare int", 1, true},
		{"bare float", 1.0, true},
		{"string", "1.0", true},
		{"slice", []float64{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := autodiff.NewVariable(tt.data)
			if tt.wantErr {
				require.ErrorIs(t, err, autodiff.ErrInvalidPayload)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			assert.Nil(t, v.Grad())
			assert.Nil(t, v.Creator())
			assert.True(t, v.IsLeaf())
		})
	}
}

func TestNewVariableErrorNamesType(t *testing.T) {
	_, err := autodiff.NewVariable(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "int")

	assert.Panics(t, func() { autodiff.MustVariable("x") })
}

func TestForward(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(2.0))

	sq, err := ops.Square(x)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, sq.Data().Item(), tolerance)

	ex, err := ops.Exp(x)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(2), ex.Data().Item(), tolerance)

	y := squareExpSquare(t, autodiff.MustVariable(tensor.Scalar(0.5)))
	assert.InDelta(t, math.Pow(math.Exp(0.25), 2), y.Data().Item(), tolerance)
}

func TestApplyLinksGraph(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(3.0))
	op := ops.NewSquareOp(ops.DefaultBackend())

	y, err := autodiff.Apply(op, x)
	require.NoError(t, err)

	assert.Same(t, x, op.Input())
	assert.Same(t, y, op.Output())
	assert.Equal(t, autodiff.Operation(op), y.Creator())
	assert.False(t, y.IsLeaf())
	assert.True(t, x.IsLeaf())
}

func TestBackwardEndToEnd(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(2.0))
	y := squareExpSquare(t, x)

	require.NoError(t, y.Backward())

	require.NotNil(t, x.Grad())
	want := 4 * 2.0 * math.Pow(math.Exp(4), 2)
	assert.InEpsilon(t, want, x.Grad().Item(), 1e-12)
}

func TestBackwardChainRuleOnArray(t *testing.T) {
	values := []float64{0, 0.5, 1, 1, 2, 3}
	x := autodiff.MustVariable(tensor.MustFromSlice(values, tensor.Shape{2, 3}))
	y := squareExpSquare(t, x)

	require.NoError(t, y.Backward())

	grad := x.Grad()
	require.NotNil(t, grad)
	require.True(t, grad.Shape().Equal(tensor.Shape{2, 3}))
	for i, v := range values {
		want := chainGrad(v)
		assert.InDelta(t, want, grad.AsFloat64()[i], 1e-9*math.Max(1, math.Abs(want)), "x=%v", v)
	}
}

func TestBackwardSeedsOnes(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(3.0))
	y, err := ops.Square(x)
	require.NoError(t, err)

	require.NoError(t, y.Backward())

	require.NotNil(t, y.Grad())
	assert.Equal(t, 0, y.Grad().NumDims())
	assert.Equal(t, 1.0, y.Grad().Item())
	assert.Equal(t, 6.0, x.Grad().Item())
}

func TestBackwardUsesExistingGrad(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(3.0))
	y, err := ops.Square(x)
	require.NoError(t, err)

	y.SetGrad(tensor.Scalar(0.5))
	require.NoError(t, y.Backward())

	assert.Equal(t, 3.0, x.Grad().Item())
}

func TestBackwardIntermediateGrads(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(0.5))
	a, err := ops.Square(x)
	require.NoError(t, err)
	b, err := ops.Exp(a)
	require.NoError(t, err)
	y, err := ops.Square(b)
	require.NoError(t, err)

	require.NoError(t, y.Backward())

	bv := b.Data().Item()
	assert.InDelta(t, 2*bv, b.Grad().Item(), tolerance)
	assert.InDelta(t, math.Exp(0.25)*2*bv, a.Grad().Item(), tolerance)
	assert.InDelta(t, chainGrad(0.5), x.Grad().Item(), tolerance)
}

func TestBackwardLeafIsNoOp(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(2.0))
	y, err := ops.Square(x)
	require.NoError(t, err)

	require.NoError(t, x.Backward())

	assert.Nil(t, y.Grad())
	assert.Equal(t, 1.0, x.Grad().Item())
}

func TestAbsentPayloadFailsAtBackward(t *testing.T) {
	x, err := autodiff.NewVariable(nil)
	require.NoError(t, err)

	y, err := ops.Chain(x, ops.Square, ops.Exp, ops.Square)
	require.NoError(t, err, "placeholders must flow through the forward pass")
	assert.Nil(t, y.Data())

	err = y.Backward()
	require.ErrorIs(t, err, autodiff.ErrAbsentPayload)
	assert.Nil(t, x.Grad())
}

func TestAbsentPayloadWithSeededGrad(t *testing.T) {
	x := autodiff.MustVariable(nil)
	y, err := ops.Square(x)
	require.NoError(t, err)

	y.SetGrad(tensor.Scalar(1.0))
	require.ErrorIs(t, y.Backward(), autodiff.ErrAbsentPayload)
}

func TestIndependentGraphs(t *testing.T) {
	x1 := autodiff.MustVariable(tensor.Scalar(1.0))
	x2 := autodiff.MustVariable(tensor.Scalar(2.0))

	y1, err := ops.Square(x1)
	require.NoError(t, err)
	y2, err := ops.Square(x2)
	require.NoError(t, err)

	assert.NotSame(t, y1.Creator(), y2.Creator())

	require.NoError(t, y2.Backward())
	assert.Nil(t, x1.Grad())
	assert.Equal(t, 4.0, x2.Grad().Item())

	require.NoError(t, y1.Backward())
	assert.Equal(t, 2.0, x1.Grad().Item())
	assert.Equal(t, 4.0, x2.Grad().Item())
}

func TestOperationReuseRejected(t *testing.T) {
	op := ops.NewExpOp(ops.DefaultBackend())
	x1 := autodiff.MustVariable(tensor.Scalar(1.0))
	x2 := autodiff.MustVariable(tensor.Scalar(2.0))

	y1, err := autodiff.Apply(op, x1)
	require.NoError(t, err)

	_, err = autodiff.Apply(op, x2)
	require.ErrorIs(t, err, autodiff.ErrOperationReused)

	// The first graph is intact
	assert.Same(t, x1, op.Input())
	assert.Same(t, y1, op.Output())
}

// Gradients are assigned, not accumulated: a value feeding two operations
// keeps only the gradient of the last traversal.
func TestSharedInputGradIsOverwritten(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(3.0))
	sq, err := ops.Square(x)
	require.NoError(t, err)
	ex, err := ops.Exp(x)
	require.NoError(t, err)

	require.NoError(t, sq.Backward())
	require.NoError(t, ex.Backward())

	assert.InDelta(t, math.Exp(3), x.Grad().Item(), tolerance)
}

type bareOp struct {
	autodiff.Node
}

type forwardOnlyOp struct {
	autodiff.Node
}

func (op *forwardOnlyOp) Forward(x *tensor.RawTensor) (any, error) {
	return x.Clone(), nil
}

func TestUnimplementedOperation(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))

	_, err := autodiff.Apply(&bareOp{}, x)
	require.ErrorIs(t, err, autodiff.ErrNotImplemented)

	y, err := autodiff.Apply(&forwardOnlyOp{}, x)
	require.NoError(t, err)
	err = y.Backward()
	require.ErrorIs(t, err, autodiff.ErrNotImplemented)
	assert.Nil(t, x.Grad())
}

// sumOp returns a bare float64, exercising scalar normalization in Apply.
type sumOp struct {
	autodiff.Node
}

func (op *sumOp) Name() string { return "Sum" }

func (op *sumOp) Forward(x *tensor.RawTensor) (any, error) {
	var total float64
	for _, v := range x.Float64s() {
		total += v
	}
	return total, nil
}

func (op *sumOp) Backward(gy *tensor.RawTensor) (*tensor.RawTensor, error) {
	x := op.Input().Data()
	return tensor.Full(x.Shape(), x.DType(), gy.Item())
}

func TestApplyNormalizesScalarResult(t *testing.T) {
	x := autodiff.MustVariable(tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3}))

	y, err := autodiff.Apply(&sumOp{}, x)
	require.NoError(t, err)

	require.NotNil(t, y.Data())
	assert.Equal(t, 0, y.Data().NumDims())
	assert.Equal(t, 6.0, y.Data().Item())

	require.NoError(t, y.Backward())
	assert.Equal(t, []float64{1, 1, 1}, x.Grad().AsFloat64())
}

type badOutputOp struct {
	autodiff.Node
}

func (op *badOutputOp) Forward(_ *tensor.RawTensor) (any, error) {
	return "not a number", nil
}

func TestApplyRejectsNonNumericResult(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))

	_, err := autodiff.Apply(&badOutputOp{}, x)
	require.ErrorIs(t, err, tensor.ErrUnsupportedType)
}

func TestApplyNilInput(t *testing.T) {
	_, err := ops.Square(nil)
	require.True(t, errors.Is(err, autodiff.ErrNilVariable))
}

func TestClearGrad(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(2.0))
	y, err := ops.Square(x)
	require.NoError(t, err)

	y.SetGrad(tensor.Scalar(10.0))
	require.NoError(t, y.Backward())
	assert.Equal(t, 40.0, x.Grad().Item())

	y.ClearGrad()
	require.NoError(t, y.Backward())
	assert.Equal(t, 4.0, x.Grad().Item())
}

func TestLineage(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))
	y := squareExpSquare(t, x)

	lineage := autodiff.Lineage(y)
	require.Len(t, lineage, 3)
	assert.Equal(t, "Square", lineage[0].Name())
	assert.Equal(t, "Exp", lineage[1].Name())
	assert.Equal(t, "Square", lineage[2].Name())
	assert.Same(t, x, lineage[0].Input())
	assert.Same(t, y, lineage[2].Output())

	assert.Empty(t, autodiff.Lineage(x))
	assert.Same(t, x, autodiff.Root(y))

	nodes := autodiff.Nodes(y)
	require.Len(t, nodes, 4)
	assert.Same(t, x, nodes[0])
	assert.Same(t, y, nodes[3])
}

func TestVariableString(t *testing.T) {
	assert.Equal(t, "variable(None)", autodiff.MustVariable(nil).String())
	assert.Equal(t, "variable(float64()[2])", autodiff.MustVariable(tensor.Scalar(2.0)).String())
}

func TestLabel(t *testing.T) {
	v := autodiff.MustVariable(tensor.Scalar(1.0))
	assert.Equal(t, "v2", autodiff.Label(v, 2))

	v.SetName("x")
	assert.Equal(t, "x", autodiff.Label(v, 2))
}

func TestLabels(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))
	x.SetName("x")
	y, err := ops.Chain(x, ops.Square, ops.Exp)
	require.NoError(t, err)

	labels, err := autodiff.Labels(y)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "v1", "v2"}, labels)

	y.SetName("v1")
	_, err = autodiff.Labels(y)
	assert.ErrorIs(t, err, autodiff.ErrDuplicateLabel)
}
