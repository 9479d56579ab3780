package onnx

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/onnx/operators"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// Run evaluates m's graph on backend. Nodes are executed in the order they
// are listed, which is the order ExportChain writes them in.
func Run(m *ModelProto, backend tensor.Backend, inputs map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
	if m == nil || m.Graph == nil {
		return nil, fmt.Errorf("run: %w: no graph", ErrMalformed)
	}
	graph := m.Graph

	tensors := make(map[string]*tensor.RawTensor, len(inputs)+len(graph.Nodes))
	for _, in := range graph.Inputs {
		t, ok := inputs[in.Name]
		if !ok {
			return nil, fmt.Errorf("run: missing input: %s", in.Name)
		}
		tensors[in.Name] = t
	}

	registry := operators.NewRegistry()
	ctx := &operators.Context{Backend: backend}
	for i := range graph.Nodes {
		node := &graph.Nodes[i]

		nodeInputs := make([]*tensor.RawTensor, len(node.Inputs))
		for j, name := range node.Inputs {
			t, ok := tensors[name]
			if !ok {
				return nil, fmt.Errorf("run: node %s: missing input %s", node.Name, name)
			}
			nodeInputs[j] = t
		}

		outputs, err := registry.Execute(ctx, toOperatorNode(node), nodeInputs)
		if err != nil {
			return nil, fmt.Errorf("run: node %s (%s): %w", node.Name, node.OpType, err)
		}
		for j, name := range node.Outputs {
			if j < len(outputs) {
				tensors[name] = outputs[j]
			}
		}
	}

	result := make(map[string]*tensor.RawTensor, len(graph.Outputs))
	for _, out := range graph.Outputs {
		t, ok := tensors[out.Name]
		if !ok {
			return nil, fmt.Errorf("run: missing output: %s", out.Name)
		}
		result[out.Name] = t
	}
	return result, nil
}

// RunChain evaluates a single-input, single-output model on x.
func RunChain(m *ModelProto, backend tensor.Backend, x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if m == nil || m.Graph == nil || len(m.Graph.Inputs) != 1 || len(m.Graph.Outputs) != 1 {
		return nil, fmt.Errorf("run: %w: expected one input and one output", ErrMalformed)
	}

	out, err := Run(m, backend, map[string]*tensor.RawTensor{m.Graph.Inputs[0].Name: x})
	if err != nil {
		return nil, err
	}
	return out[m.Graph.Outputs[0].Name], nil
}

func toOperatorNode(proto *NodeProto) *operators.Node {
	return &operators.Node{
		Name:    proto.Name,
		OpType:  proto.OpType,
		Inputs:  proto.Inputs,
		Outputs: proto.Outputs,
	}
}
