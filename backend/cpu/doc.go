// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the element-wise kernels
// behind chaingrad operations.
//
// # Overview
//
// The backend implements Mul, MulScalar, Exp, Square and Pow for float32 and
// float64 tensors. Every kernel allocates its result; inputs are never
// modified in place.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/chaingrad/backend/cpu"
//	    "github.com/born-ml/chaingrad/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2})
//	    fmt.Println(backend.Exp(x))
//	}
package cpu
