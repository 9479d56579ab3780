// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package onnx exports differentiated chains as ONNX models.
//
// Square is written as Mul(x, x) and Exp as Exp, so the exported graph runs
// on any ONNX runtime that supports opset 13.
//
// # Example Usage
//
//	y, _ := autodiff.Chain(x, autodiff.Square, autodiff.Exp)
//	if err := onnx.Save("chain.onnx", y, "chaingrad"); err != nil {
//	    log.Fatal(err)
//	}
package onnx

import (
	"github.com/born-ml/chaingrad/autodiff"
	"github.com/born-ml/chaingrad/internal/onnx"
	"github.com/born-ml/chaingrad/tensor"
)

// Model is the protobuf ModelProto subset written by Export.
type Model = onnx.ModelProto

// Errors.
var (
	ErrEmptyChain       = onnx.ErrEmptyChain
	ErrUnsupportedOp    = onnx.ErrUnsupportedOp
	ErrUnsupportedDType = onnx.ErrUnsupportedDType
)

// Export builds an ONNX model for the chain that produced y.
func Export(y *autodiff.Variable, producer string) (*Model, error) {
	return onnx.ExportChain(y, producer, version)
}

// Save exports the chain that produced y and writes it to path.
func Save(path string, y *autodiff.Variable, producer string) error {
	model, err := Export(y, producer)
	if err != nil {
		return err
	}
	return onnx.WriteFile(path, model)
}

// Load parses an ONNX file written by Save.
func Load(path string) (*Model, error) {
	return onnx.ParseFile(path)
}

// Evaluate runs a model on x with backend and returns its single output.
func Evaluate(m *Model, backend tensor.Backend, x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return onnx.RunChain(m, backend, x)
}

const version = "0.1.0"
