package autodiff

import "fmt"

// Lineage follows creator links from v back to its leaf and returns the
// operations in execution order (first applied first). A leaf has an empty lineage.
//
// Usage:
//
//	y, _ := ops.Chain(x, ops.Square, ops.Exp, ops.Square)
//	for _, op := range autodiff.Lineage(y) {
//	    fmt.Println(op.Name()) // Square, Exp, Square
//	}
func Lineage(v *Variable) []Operation {
	var recorded []Operation
	for f := v.Creator(); f != nil; f = f.Input().Creator() {
		recorded = append(recorded, f)
	}

	// Reverse into execution order
	for i, j := 0, len(recorded)-1; i < j; i, j = i+1, j-1 {
		recorded[i], recorded[j] = recorded[j], recorded[i]
	}
	return recorded
}

// Root returns the leaf at the start of v's chain (v itself if it is a leaf).
func Root(v *Variable) *Variable {
	for !v.IsLeaf() {
		v = v.Creator().Input()
	}
	return v
}

// Nodes returns every Variable in v's chain from leaf to v.
func Nodes(v *Variable) []*Variable {
	lineage := Lineage(v)
	nodes := make([]*Variable, 0, len(lineage)+1)
	nodes = append(nodes, Root(v))
	for _, op := range lineage {
		nodes = append(nodes, op.Output())
	}
	return nodes
}

// Labels returns the Label of every variable in Nodes(v), in the same order.
// Two variables that end up with the same label are rejected with
// ErrDuplicateLabel, since exports and snapshots key values by label.
func Labels(v *Variable) ([]string, error) {
	nodes := Nodes(v)
	labels := make([]string, len(nodes))
	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		label := Label(n, i)
		if j, ok := seen[label]; ok {
			return nil, fmt.Errorf("%w: %q used by variables %d and %d", ErrDuplicateLabel, label, j, i)
		}
		seen[label] = i
		labels[i] = label
	}
	return labels, nil
}

// Label returns v's name, or "v<index>" when it has none. index is the
// position of v in Nodes.
func Label(v *Variable, index int) string {
	if v.Name() != "" {
		return v.Name()
	}
	return fmt.Sprintf("v%d", index)
}
