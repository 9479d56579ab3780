package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/chaingrad/internal/tensor"
)

// ReadFrom reads a .born v2 stream, verifies the data checksum and returns
// the tensors by name together with the header.
func ReadFrom(r io.Reader) (map[string]*tensor.RawTensor, Header, error) {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixedHeader); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixedHeader[0:4]) != MagicBytes {
		return nil, Header{}, fmt.Errorf("%w: got %q, expected %q", ErrInvalidMagic, fixedHeader[0:4], MagicBytes)
	}
	if version := binary.LittleEndian.Uint32(fixedHeader[4:8]); version != FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])
	var stored [ChecksumSize]byte
	copy(stored[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, Header{}, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header JSON: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if padding := alignedPadding(int64(FixedHeaderSize) + int64(headerSize)); padding > 0 {
		if _, err := io.CopyN(io.Discard, r, padding); err != nil {
			return nil, Header{}, fmt.Errorf("failed to read padding: %w", err)
		}
	}

	var data bytes.Buffer
	//nolint:gosec // G115: data size is validated against the stream length by CopyN
	if _, err := io.CopyN(&data, r, int64(dataSize)); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateChecksum(ComputeChecksum(data.Bytes()), stored); err != nil {
		return nil, Header{}, err
	}

	tensors := make(map[string]*tensor.RawTensor, len(header.Tensors))
	for _, meta := range header.Tensors {
		raw, err := loadTensor(meta, data.Bytes())
		if err != nil {
			return nil, Header{}, err
		}
		tensors[meta.Name] = raw
	}
	return tensors, header, nil
}

// ReadFile reads a .born file from path.
//
//nolint:gosec // G304: Path is provided by user
func ReadFile(path string) (map[string]*tensor.RawTensor, Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadFrom(file)
}

// Lookup returns the tensor called name or ErrTensorNotFound.
func Lookup(tensors map[string]*tensor.RawTensor, name string) (*tensor.RawTensor, error) {
	raw, ok := tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
	}
	return raw, nil
}

func loadTensor(meta TensorMeta, data []byte) (*tensor.RawTensor, error) {
	dtype, ok := tensor.ParseDataType(meta.DType)
	if !ok {
		return nil, fmt.Errorf("tensor %s: unsupported dtype %s", meta.Name, meta.DType)
	}

	// Validate against the data section before allocating: the header is not
	// covered by the checksum.
	size, ok := byteSize(meta.Shape, dtype.Size())
	if !ok || size != meta.Size {
		return nil, fmt.Errorf("%w: tensor %s: shape %v does not match %d bytes", ErrOutOfBounds, meta.Name, meta.Shape, meta.Size)
	}
	if meta.Offset < 0 || meta.Offset > int64(len(data)) || size > int64(len(data))-meta.Offset {
		return nil, fmt.Errorf("%w: tensor %s [%d:+%d] in %d bytes", ErrOutOfBounds, meta.Name, meta.Offset, size, len(data))
	}

	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", meta.Name, err)
	}
	copy(raw.Data(), data[meta.Offset:meta.Offset+size])
	return raw, nil
}

// byteSize returns the storage size of a tensor with the given dimensions.
// It reports false for non-positive dimensions or when the size overflows int64.
func byteSize(dims []int, elemSize int) (int64, bool) {
	size := int64(elemSize)
	for _, d := range dims {
		if d <= 0 || size > math.MaxInt64/int64(d) {
			return 0, false
		}
		size *= int64(d)
	}
	return size, true
}
