package onnx

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// Encode serializes a model to the ONNX protobuf wire format.
func Encode(m *ModelProto) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encode: nil model")
	}
	return appendModel(nil, m), nil
}

// WriteFile encodes m and writes it to path.
func WriteFile(path string, m *ModelProto) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	//nolint:gosec // G306: exported models are meant to be readable by other tools
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ONNX file: %w", err)
	}
	return nil
}

func appendModel(b []byte, m *ModelProto) []byte {
	b = appendInt(b, fieldModelIRVersion, m.IRVersion)
	b = appendString(b, fieldModelProducerName, m.ProducerName)
	b = appendString(b, fieldModelProducerVersion, m.ProducerVersion)
	b = appendString(b, fieldModelDomain, m.Domain)
	b = appendInt(b, fieldModelVersion, m.ModelVersion)
	b = appendString(b, fieldModelDocString, m.DocString)
	if m.Graph != nil {
		b = appendMessage(b, fieldModelGraph, appendGraph(nil, m.Graph))
	}
	for i := range m.OpsetImport {
		b = appendMessage(b, fieldModelOpsetImport, appendOpset(nil, &m.OpsetImport[i]))
	}
	return b
}

func appendGraph(b []byte, g *GraphProto) []byte {
	for i := range g.Nodes {
		b = appendMessage(b, fieldGraphNode, appendNode(nil, &g.Nodes[i]))
	}
	b = appendString(b, fieldGraphName, g.Name)
	b = appendString(b, fieldGraphDocString, g.DocString)
	for i := range g.Inputs {
		b = appendMessage(b, fieldGraphInput, appendValueInfo(nil, &g.Inputs[i]))
	}
	for i := range g.Outputs {
		b = appendMessage(b, fieldGraphOutput, appendValueInfo(nil, &g.Outputs[i]))
	}
	for i := range g.ValueInfo {
		b = appendMessage(b, fieldGraphValueInfo, appendValueInfo(nil, &g.ValueInfo[i]))
	}
	return b
}

func appendNode(b []byte, n *NodeProto) []byte {
	for _, in := range n.Inputs {
		b = appendRepeatedString(b, fieldNodeInput, in)
	}
	for _, out := range n.Outputs {
		b = appendRepeatedString(b, fieldNodeOutput, out)
	}
	b = appendString(b, fieldNodeName, n.Name)
	b = appendString(b, fieldNodeOpType, n.OpType)
	b = appendString(b, fieldNodeDocString, n.DocString)
	b = appendString(b, fieldNodeDomain, n.Domain)
	return b
}

func appendValueInfo(b []byte, v *ValueInfoProto) []byte {
	b = appendString(b, fieldValueInfoName, v.Name)
	if v.Type != nil {
		b = appendMessage(b, fieldValueInfoType, appendType(nil, v.Type))
	}
	b = appendString(b, fieldValueInfoDocString, v.DocString)
	return b
}

func appendType(b []byte, t *TypeProto) []byte {
	if t.TensorType == nil {
		return b
	}
	var tt []byte
	tt = appendInt(tt, fieldTensorTypeElemType, int64(t.TensorType.ElemType))
	if s := t.TensorType.Shape; s != nil {
		var shape []byte
		for _, d := range s.Dims {
			var dim []byte
			if d.DimParam != "" {
				dim = appendString(dim, fieldDimParam, d.DimParam)
			} else {
				dim = protowire.AppendTag(dim, fieldDimValue, protowire.VarintType)
				dim = protowire.AppendVarint(dim, uint64(d.DimValue))
			}
			shape = appendMessage(shape, fieldShapeDim, dim)
		}
		// A 0-d tensor still carries an (empty) shape message.
		tt = appendMessage(tt, fieldTensorTypeShape, shape)
	}
	return appendMessage(b, fieldTypeTensorType, tt)
}

func appendOpset(b []byte, o *OperatorSetID) []byte {
	b = appendString(b, fieldOpsetDomain, o.Domain)
	b = appendInt(b, fieldOpsetVersion, o.Version)
	return b
}

// appendInt writes a varint field, omitting the proto3 default of zero.
func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// appendString writes a string field, omitting the empty default.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	return appendRepeatedString(b, num, s)
}

// appendRepeatedString writes s unconditionally (repeated fields keep empties).
func appendRepeatedString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}
