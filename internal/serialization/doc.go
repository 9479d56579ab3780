// Package serialization stores snapshots of autodiff chains in the .born format.
//
// A snapshot holds the payload and gradient of every variable in a chain as
// named tensors ("v0.data", "v0.grad", ...). The layout is the .born v2 format:
//
//	Format Structure:
//	  [64 bytes: fixed header]
//	    0x00 Magic "BORN"
//	    0x04 Version (uint32 LE)
//	    0x08 Flags (uint32 LE)
//	    0x10 Header size (uint64 LE)
//	    0x18 Data size (uint64 LE)
//	    0x20 SHA-256 of the tensor data (32 bytes)
//	  [Header: JSON metadata]
//	  [Tensor data: raw bytes, 64-byte aligned]
//
// Example usage:
//
//	y, _ := ops.Chain(x, ops.Square, ops.Exp, ops.Square)
//	_ = y.Backward()
//	snap, err := serialization.SnapshotChain(y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := serialization.WriteFile("chain.born", snap, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	tensors, header, err := serialization.ReadFile("chain.born")
package serialization
