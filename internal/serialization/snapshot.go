package serialization

import (
	"fmt"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// SnapshotChain collects the payload and gradient of every variable in y's
// chain, keyed "<label>.data" and "<label>.grad" (see autodiff.Label).
// Absent payloads and gradients are skipped. Duplicate labels fail with
// autodiff.ErrDuplicateLabel.
func SnapshotChain(y *autodiff.Variable) (map[string]*tensor.RawTensor, error) {
	labels, err := autodiff.Labels(y)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	nodes := autodiff.Nodes(y)
	out := make(map[string]*tensor.RawTensor, 2*len(nodes))
	for i, v := range nodes {
		if v.Data() != nil {
			out[labels[i]+".data"] = v.Data()
		}
		if v.Grad() != nil {
			out[labels[i]+".grad"] = v.Grad()
		}
	}
	return out, nil
}
