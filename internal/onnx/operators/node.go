package operators

// Node represents an ONNX operation node.
// This is a local copy of the relevant fields from onnx.NodeProto
// to avoid import cycles between onnx and operators packages.
type Node struct {
	Name    string   // Node name (optional)
	OpType  string   // Operation type (e.g., "Mul", "Exp")
	Inputs  []string // Input tensor names
	Outputs []string // Output tensor names
}
