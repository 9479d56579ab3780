package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/born-ml/chaingrad/internal/tensor"
)

const writerVersion = "0.1.0"

// WriteTo writes tensors in .born v2 format. Tensors are stored in name order
// so that equal inputs produce byte-identical data sections.
func WriteTo(w io.Writer, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	header := Header{
		FormatVersion: FormatVersion,
		BornVersion:   writerVersion,
		ModelType:     SnapshotModelType,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(tensors)),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Calculate tensor offsets and collect tensor data
	var tensorData []byte
	for _, name := range slices.Sorted(maps.Keys(tensors)) {
		raw := tensors[name]
		if raw == nil {
			return fmt.Errorf("tensor %s: %w", name, tensor.ErrNilTensor)
		}
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  raw.DType().String(),
			Shape:  []int(raw.Shape().Clone()),
			Offset: int64(len(tensorData)),
			Size:   int64(raw.ByteSize()),
		})
		tensorData = append(tensorData, raw.Data()...)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	fixedHeader := make([]byte, FixedHeaderSize)

	// 0x00-0x03: Magic bytes "BORN"
	copy(fixedHeader[0:4], MagicBytes)

	// 0x04-0x07: Version
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersion))

	// 0x08-0x0B: Flags
	flags := uint32(0)
	if len(metadata) > 0 {
		flags |= FlagHasMetadata
	}
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags)

	// 0x10-0x17: Header size, 0x18-0x1F: Data size
	binary.LittleEndian.PutUint64(fixedHeader[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(len(tensorData)))

	// 0x20-0x3F: SHA-256 checksum
	checksum := ComputeChecksum(tensorData)
	copy(fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.Write(fixedHeader); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	padding := alignedPadding(int64(FixedHeaderSize + len(headerJSON)))
	if padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.Write(tensorData); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// WriteFile writes tensors to a .born file at path.
func WriteFile(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for snapshots
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteTo(file, tensors, metadata); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
