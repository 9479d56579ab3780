// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array type behind every variable payload and
// gradient in chaingrad.
//
// # Overview
//
// A RawTensor is a dense row-major array of float32 or float64 values with a
// Shape. A RawTensor with an empty Shape is a 0-d array holding one value;
// plain Go scalars are promoted to 0-d arrays by AsArray.
//
// # Basic Usage
//
//	import "github.com/born-ml/chaingrad/tensor"
//
//	func main() {
//	    x := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    s := tensor.Scalar(2.0)
//	    fmt.Println(x, s)
//	}
//
// # Supported Data Types
//
//   - float32
//   - float64 (default for promoted Go scalars)
package tensor
