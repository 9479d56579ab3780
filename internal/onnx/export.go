package onnx

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// Versions written by ExportChain.
const (
	IRVersion    = 7
	OpsetVersion = 13
)

// ExportChain converts the chain of operations ending at y into an ONNX model.
//
// Graph values are named after the variables (Variable.Name) and fall back
// to v0 (the leaf) ... vN (y). The leaf becomes the single graph input, y the
// single graph output, and the intermediates are listed as value info.
func ExportChain(y *autodiff.Variable, producer, version string) (*ModelProto, error) {
	lineage := autodiff.Lineage(y)
	if len(lineage) == 0 {
		return nil, fmt.Errorf("export: %w", ErrEmptyChain)
	}

	names, err := autodiff.Labels(y)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	nodes := autodiff.Nodes(y)
	infos := make([]ValueInfoProto, len(nodes))
	for i, v := range nodes {
		info, err := valueInfo(names[i], v.Data())
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", names[i], err)
		}
		infos[i] = info
	}

	graph := &GraphProto{
		Name:      "chain",
		Inputs:    []ValueInfoProto{infos[0]},
		Outputs:   []ValueInfoProto{infos[len(infos)-1]},
		ValueInfo: infos[1 : len(infos)-1],
	}
	for i, op := range lineage {
		in, out := names[i], names[i+1]
		node := NodeProto{
			Name:    fmt.Sprintf("%s_%d", op.Name(), i),
			Outputs: []string{out},
		}
		switch op.Name() {
		case "Square":
			node.OpType = "Mul"
			node.Inputs = []string{in, in}
		case "Exp":
			node.OpType = "Exp"
			node.Inputs = []string{in}
		default:
			return nil, fmt.Errorf("export: %w: %s", ErrUnsupportedOp, op.Name())
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	return &ModelProto{
		IRVersion:       IRVersion,
		OpsetImport:     []OperatorSetID{{Domain: "", Version: OpsetVersion}},
		ProducerName:    producer,
		ProducerVersion: version,
		ModelVersion:    1,
		Graph:           graph,
	}, nil
}

func valueInfo(name string, data *tensor.RawTensor) (ValueInfoProto, error) {
	if data == nil {
		return ValueInfoProto{}, autodiff.ErrAbsentPayload
	}

	var elemType int32
	switch data.DType() {
	case tensor.Float32:
		elemType = TensorProtoFloat
	case tensor.Float64:
		elemType = TensorProtoDouble
	default:
		return ValueInfoProto{}, fmt.Errorf("%w: %s", ErrUnsupportedDType, data.DType())
	}

	shape := &TensorShapeProto{Dims: make([]DimensionProto, 0, data.NumDims())}
	for _, d := range data.Shape() {
		shape.Dims = append(shape.Dims, DimensionProto{DimValue: int64(d)})
	}

	return ValueInfoProto{
		Name: name,
		Type: &TypeProto{TensorType: &TensorTypeProto{ElemType: elemType, Shape: shape}},
	}, nil
}
