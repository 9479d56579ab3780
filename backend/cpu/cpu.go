// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/chaingrad/internal/backend/cpu"
	"github.com/born-ml/chaingrad/tensor"
)

// Backend represents the CPU backend implementation.
//
// Float64 kernels run on gonum/floats; float32 kernels are plain loops.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	y, err := ops.SquareOn(backend, x)
func New() *Backend {
	return internalcpu.New()
}
