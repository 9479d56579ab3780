package serialization

import (
	"crypto/sha256"
	"time"
)

// Format constants.
const (
	MagicBytes        = "BORN"
	FormatVersion     = 2                 // v2: with SHA-256 checksum
	HeaderAlignment   = 64                // Align tensor data to 64 bytes
	FixedHeaderSize   = 64                // fixed header size (0x40 bytes)
	ChecksumSize      = 32                // SHA-256 checksum size (32 bytes)
	ChecksumOffset    = 0x20              // Checksum offset in the fixed header
	MaxHeaderSize     = 100 * 1024 * 1024 // Upper bound for the JSON header
	SnapshotModelType = "chain"
)

// Flags for the .born format.
const (
	FlagHasMetadata uint32 = 1 << 2 // bit 2: custom metadata included
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the .born format
	BornVersion   string            `json:"born_version"`   // Version of the writer
	ModelType     string            `json:"model_type"`     // "chain" for snapshots
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`        // Tensor metadata
	Metadata      map[string]string `json:"metadata"`       // Custom metadata
}

// TensorMeta describes a tensor in the .born file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "v0.grad")
	DType  string `json:"dtype"`  // Data type ("float32", "float64")
	Shape  []int  `json:"shape"`  // Tensor shape ([] for 0-d)
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [ChecksumSize]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [ChecksumSize]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// alignedPadding returns the zero bytes needed after pos to reach HeaderAlignment.
func alignedPadding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
