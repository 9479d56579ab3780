package onnx

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ParseFile parses an ONNX model from file.
//
//nolint:gosec // G304: Path is provided by user, file inclusion is intentional for ONNX model loading
func ParseFile(path string) (*ModelProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an ONNX model from bytes. Fields outside the export subset are skipped.
func Parse(data []byte) (*ModelProto, error) {
	model := &ModelProto{}
	if err := readModelProto(data, model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return model, nil
}

// fieldFunc consumes the value of one field and returns the number of bytes
// read (negative for a protowire parse error).
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// walk iterates over every field of a message.
func walk(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func readModelProto(b []byte, m *ModelProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldModelIRVersion && typ == protowire.VarintType:
			return consumeInt(b, &m.IRVersion), nil
		case num == fieldModelProducerName && typ == protowire.BytesType:
			return consumeString(b, &m.ProducerName), nil
		case num == fieldModelProducerVersion && typ == protowire.BytesType:
			return consumeString(b, &m.ProducerVersion), nil
		case num == fieldModelDomain && typ == protowire.BytesType:
			return consumeString(b, &m.Domain), nil
		case num == fieldModelVersion && typ == protowire.VarintType:
			return consumeInt(b, &m.ModelVersion), nil
		case num == fieldModelDocString && typ == protowire.BytesType:
			return consumeString(b, &m.DocString), nil
		case num == fieldModelGraph && typ == protowire.BytesType:
			m.Graph = &GraphProto{}
			return consumeMessage(b, func(sub []byte) error { return readGraphProto(sub, m.Graph) })
		case num == fieldModelOpsetImport && typ == protowire.BytesType:
			var op OperatorSetID
			n, err := consumeMessage(b, func(sub []byte) error { return readOperatorSetID(sub, &op) })
			m.OpsetImport = append(m.OpsetImport, op)
			return n, err
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func readGraphProto(b []byte, g *GraphProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		switch num {
		case fieldGraphNode:
			var node NodeProto
			n, err := consumeMessage(b, func(sub []byte) error { return readNodeProto(sub, &node) })
			g.Nodes = append(g.Nodes, node)
			return n, err
		case fieldGraphName:
			return consumeString(b, &g.Name), nil
		case fieldGraphDocString:
			return consumeString(b, &g.DocString), nil
		case fieldGraphInput, fieldGraphOutput, fieldGraphValueInfo:
			var vi ValueInfoProto
			n, err := consumeMessage(b, func(sub []byte) error { return readValueInfoProto(sub, &vi) })
			switch num {
			case fieldGraphInput:
				g.Inputs = append(g.Inputs, vi)
			case fieldGraphOutput:
				g.Outputs = append(g.Outputs, vi)
			default:
				g.ValueInfo = append(g.ValueInfo, vi)
			}
			return n, err
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func readNodeProto(b []byte, node *NodeProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		switch num {
		case fieldNodeInput:
			var s string
			n := consumeString(b, &s)
			node.Inputs = append(node.Inputs, s)
			return n, nil
		case fieldNodeOutput:
			var s string
			n := consumeString(b, &s)
			node.Outputs = append(node.Outputs, s)
			return n, nil
		case fieldNodeName:
			return consumeString(b, &node.Name), nil
		case fieldNodeOpType:
			return consumeString(b, &node.OpType), nil
		case fieldNodeDocString:
			return consumeString(b, &node.DocString), nil
		case fieldNodeDomain:
			return consumeString(b, &node.Domain), nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func readValueInfoProto(b []byte, vi *ValueInfoProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		switch num {
		case fieldValueInfoName:
			return consumeString(b, &vi.Name), nil
		case fieldValueInfoType:
			vi.Type = &TypeProto{}
			return consumeMessage(b, func(sub []byte) error { return readTypeProto(sub, vi.Type) })
		case fieldValueInfoDocString:
			return consumeString(b, &vi.DocString), nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func readTypeProto(b []byte, t *TypeProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldTypeTensorType || typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		t.TensorType = &TensorTypeProto{}
		return consumeMessage(b, func(sub []byte) error { return readTensorTypeProto(sub, t.TensorType) })
	})
}

func readTensorTypeProto(b []byte, tt *TensorTypeProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldTensorTypeElemType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			tt.ElemType = int32(v) //nolint:gosec // G115: ONNX elem_type is an int32 enum
			return n, nil
		case num == fieldTensorTypeShape && typ == protowire.BytesType:
			tt.Shape = &TensorShapeProto{}
			return consumeMessage(b, func(sub []byte) error { return readTensorShapeProto(sub, tt.Shape) })
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func readTensorShapeProto(b []byte, s *TensorShapeProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldShapeDim || typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		var d DimensionProto
		n, err := consumeMessage(b, func(sub []byte) error { return readDimensionProto(sub, &d) })
		s.Dims = append(s.Dims, d)
		return n, err
	})
}

func readDimensionProto(b []byte, d *DimensionProto) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldDimValue && typ == protowire.VarintType:
			return consumeInt(b, &d.DimValue), nil
		case num == fieldDimParam && typ == protowire.BytesType:
			return consumeString(b, &d.DimParam), nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func readOperatorSetID(b []byte, o *OperatorSetID) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldOpsetDomain && typ == protowire.BytesType:
			return consumeString(b, &o.Domain), nil
		case num == fieldOpsetVersion && typ == protowire.VarintType:
			return consumeInt(b, &o.Version), nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

func consumeInt(b []byte, dst *int64) int {
	v, n := protowire.ConsumeVarint(b)
	*dst = int64(v) //nolint:gosec // G115: protobuf int64 fields are two's complement varints
	return n
}

func consumeString(b []byte, dst *string) int {
	s, n := protowire.ConsumeString(b)
	*dst = s
	return n
}

// consumeMessage reads a length-delimited submessage and hands its bytes to read.
func consumeMessage(b []byte, read func([]byte) error) (int, error) {
	sub, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	if err := read(sub); err != nil {
		return 0, err
	}
	return n, nil
}
