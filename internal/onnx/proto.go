package onnx

// ONNX protobuf data structures (hand-written, export subset).

// ModelProto represents an ONNX model.
type ModelProto struct {
	IRVersion       int64           // IR version (e.g., 7, 8, 9)
	OpsetImport     []OperatorSetID // Opset version(s)
	ProducerName    string          // Framework name
	ProducerVersion string          // Framework version
	Domain          string          // Model domain
	ModelVersion    int64           // Model version number
	DocString       string          // Model description
	Graph           *GraphProto     // Computation graph
}

// GraphProto represents the computation graph.
type GraphProto struct {
	Name      string           // Graph name
	Nodes     []NodeProto      // Operation nodes
	Inputs    []ValueInfoProto // Graph inputs
	Outputs   []ValueInfoProto // Graph outputs
	DocString string           // Graph description
	ValueInfo []ValueInfoProto // Intermediate tensor info
}

// NodeProto represents a single operation.
type NodeProto struct {
	Name      string   // Node name (optional)
	OpType    string   // Operation type (e.g., "Mul", "Exp")
	Inputs    []string // Input tensor names
	Outputs   []string // Output tensor names
	Domain    string   // Custom domain (empty for default)
	DocString string   // Node description
}

// ValueInfoProto describes input/output tensor specifications.
type ValueInfoProto struct {
	Name      string     // Tensor name
	Type      *TypeProto // Tensor type information
	DocString string     // Description
}

// TypeProto describes tensor type.
type TypeProto struct {
	TensorType *TensorTypeProto // Tensor type (most common)
}

// TensorTypeProto describes tensor shape and element type.
type TensorTypeProto struct {
	ElemType int32             // Element data type
	Shape    *TensorShapeProto // Tensor shape
}

// TensorShapeProto describes tensor dimensions.
type TensorShapeProto struct {
	Dims []DimensionProto // Dimensions
}

// DimensionProto describes a single dimension.
type DimensionProto struct {
	DimValue int64  // Static dimension value
	DimParam string // Dynamic dimension name (e.g., "batch_size")
}

// OperatorSetID identifies opset version.
type OperatorSetID struct {
	Domain  string // Operator domain (empty for default)
	Version int64  // Opset version number
}

// ONNX data types (TensorProto.DataType) produced by the exporter.
const (
	TensorProtoUndefined = 0
	TensorProtoFloat     = 1  // float32
	TensorProtoDouble    = 11 // float64
)

// Field numbers from onnx.proto.
const (
	fieldModelIRVersion       = 1
	fieldModelProducerName    = 2
	fieldModelProducerVersion = 3
	fieldModelDomain          = 4
	fieldModelVersion         = 5
	fieldModelDocString       = 6
	fieldModelGraph           = 7
	fieldModelOpsetImport     = 8

	fieldGraphNode      = 1
	fieldGraphName      = 2
	fieldGraphDocString = 10
	fieldGraphInput     = 11
	fieldGraphOutput    = 12
	fieldGraphValueInfo = 13

	fieldNodeInput     = 1
	fieldNodeOutput    = 2
	fieldNodeName      = 3
	fieldNodeOpType    = 4
	fieldNodeDocString = 6
	fieldNodeDomain    = 7

	fieldValueInfoName      = 1
	fieldValueInfoType      = 2
	fieldValueInfoDocString = 3

	fieldTypeTensorType = 1

	fieldTensorTypeElemType = 1
	fieldTensorTypeShape    = 2

	fieldShapeDim = 1

	fieldDimValue = 1
	fieldDimParam = 2

	fieldOpsetDomain  = 1
	fieldOpsetVersion = 2
)
