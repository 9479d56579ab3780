package onnx

import (
	"path/filepath"
	"testing"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/autodiff/ops"
	"github.com/born-ml/chaingrad/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func buildChain(t *testing.T, data *tensor.RawTensor) *autodiff.Variable {
	t.Helper()
	y, err := ops.Chain(autodiff.MustVariable(data), ops.Square, ops.Exp, ops.Square)
	require.NoError(t, err)
	return y
}

func TestExportChain(t *testing.T) {
	y := buildChain(t, tensor.MustFromSlice([]float64{0, 0.5, 1, 1, 2, 3}, tensor.Shape{2, 3}))

	model, err := ExportChain(y, "chaingrad", "test")
	require.NoError(t, err)

	assert.Equal(t, int64(IRVersion), model.IRVersion)
	require.Len(t, model.OpsetImport, 1)
	assert.Equal(t, int64(OpsetVersion), model.OpsetImport[0].Version)

	g := model.Graph
	require.NotNil(t, g)
	require.Len(t, g.Nodes, 3)

	assert.Equal(t, "Mul", g.Nodes[0].OpType)
	assert.Equal(t, []string{"v0", "v0"}, g.Nodes[0].Inputs)
	assert.Equal(t, []string{"v1"}, g.Nodes[0].Outputs)
	assert.Equal(t, "Exp", g.Nodes[1].OpType)
	assert.Equal(t, []string{"v1"}, g.Nodes[1].Inputs)
	assert.Equal(t, "Mul", g.Nodes[2].OpType)
	assert.Equal(t, []string{"v3"}, g.Nodes[2].Outputs)

	require.Len(t, g.Inputs, 1)
	assert.Equal(t, "v0", g.Inputs[0].Name)
	assert.Equal(t, int32(TensorProtoDouble), g.Inputs[0].Type.TensorType.ElemType)
	assert.Equal(t, []DimensionProto{{DimValue: 2}, {DimValue: 3}}, g.Inputs[0].Type.TensorType.Shape.Dims)
	require.Len(t, g.Outputs, 1)
	assert.Equal(t, "v3", g.Outputs[0].Name)
	assert.Len(t, g.ValueInfo, 2)
}

func TestExportUsesVariableNames(t *testing.T) {
	x := autodiff.MustVariable(tensor.MustFromSlice([]float32{1}, tensor.Shape{1}))
	x.SetName("x")
	y, err := ops.Exp(x)
	require.NoError(t, err)
	y.SetName("y")

	model, err := ExportChain(y, "chaingrad", "test")
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, model.Graph.Nodes[0].Inputs)
	assert.Equal(t, []string{"y"}, model.Graph.Nodes[0].Outputs)
	assert.Equal(t, int32(TensorProtoFloat), model.Graph.Outputs[0].Type.TensorType.ElemType)
}

func TestExportErrors(t *testing.T) {
	leaf := autodiff.MustVariable(tensor.Scalar(1.0))
	_, err := ExportChain(leaf, "chaingrad", "test")
	require.ErrorIs(t, err, ErrEmptyChain)

	placeholder, err := ops.Square(autodiff.MustVariable(nil))
	require.NoError(t, err)
	_, err = ExportChain(placeholder, "chaingrad", "test")
	require.ErrorIs(t, err, autodiff.ErrAbsentPayload)
}

func TestExportRejectsDuplicateNames(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))
	x.SetName("x")
	y, err := ops.Chain(x, ops.Square, ops.Exp)
	require.NoError(t, err)
	y.SetName("x")

	_, err = ExportChain(y, "chaingrad", "test")
	require.ErrorIs(t, err, autodiff.ErrDuplicateLabel)
}

func TestExportRejectsNameClashingWithGenerated(t *testing.T) {
	x := autodiff.MustVariable(tensor.Scalar(1.0))
	y, err := ops.Chain(x, ops.Square, ops.Exp)
	require.NoError(t, err)
	y.SetName("v0")

	_, err = ExportChain(y, "chaingrad", "test")
	require.ErrorIs(t, err, autodiff.ErrDuplicateLabel)
}

type negateOp struct {
	autodiff.Node
}

func (op *negateOp) Name() string { return "Negate" }

func (op *negateOp) Forward(x *tensor.RawTensor) (any, error) {
	return ops.DefaultBackend().MulScalar(x, -1), nil
}

func TestExportUnsupportedOp(t *testing.T) {
	y, err := autodiff.Apply(&negateOp{}, autodiff.MustVariable(tensor.Scalar(1.0)))
	require.NoError(t, err)

	_, err = ExportChain(y, "chaingrad", "test")
	require.ErrorIs(t, err, ErrUnsupportedOp)
}

func TestEncodeParseRoundTrip(t *testing.T) {
	y := buildChain(t, tensor.Scalar(2.0))
	model, err := ExportChain(y, "chaingrad", "v0.1.0")
	require.NoError(t, err)
	model.DocString = "y = exp(x^2)^2"

	data, err := Encode(model)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, model.IRVersion, parsed.IRVersion)
	assert.Equal(t, model.ProducerName, parsed.ProducerName)
	assert.Equal(t, model.ProducerVersion, parsed.ProducerVersion)
	assert.Equal(t, model.DocString, parsed.DocString)
	assert.Equal(t, model.OpsetImport, parsed.OpsetImport)
	require.NotNil(t, parsed.Graph)
	assert.Equal(t, model.Graph.Nodes, parsed.Graph.Nodes)
	assert.Equal(t, model.Graph.Inputs[0].Name, parsed.Graph.Inputs[0].Name)

	// 0-d tensors keep an empty shape message
	shape := parsed.Graph.Outputs[0].Type.TensorType.Shape
	require.NotNil(t, shape)
	assert.Empty(t, shape.Dims)
}

func TestParseSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, fieldModelIRVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, 9)
	b = protowire.AppendTag(b, 14, protowire.BytesType) // metadata_props
	b = protowire.AppendBytes(b, []byte{0x0a, 0x01, 'k'})
	b = protowire.AppendTag(b, fieldModelProducerName, protowire.BytesType)
	b = protowire.AppendString(b, "other")

	model, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, int64(9), model.IRVersion)
	assert.Equal(t, "other", model.ProducerName)
}

func TestParseMalformed(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, fieldModelGraph, protowire.BytesType)
	b = protowire.AppendVarint(b, 100) // length beyond the buffer

	_, err := Parse(b)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestWriteParseFile(t *testing.T) {
	y := buildChain(t, tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2}))
	model, err := ExportChain(y, "chaingrad", "test")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chain.onnx")
	require.NoError(t, WriteFile(path, model))

	parsed, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, parsed.Graph.Nodes, 3)
}
