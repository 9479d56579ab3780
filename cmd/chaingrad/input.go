package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/chaingrad/internal/autodiff/ops"
	"github.com/born-ml/chaingrad/internal/tensor"
)

var (
	errNoValues  = errors.New("no values given (use -x)")
	errNoOps     = errors.New("no operations given (use -ops)")
	errUnknownOp = errors.New("unknown operation")
)

// parseValues parses a comma-separated list of floats.
func parseValues(s string) ([]float64, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, errNoValues
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// parseShape parses comma-separated dimensions. An empty string is the 0-d shape.
func parseShape(s string) (tensor.Shape, error) {
	fields := splitList(s)
	shape := make(tensor.Shape, len(fields))
	for i, f := range fields {
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", i, err)
		}
		shape[i] = d
	}
	return shape, shape.Validate()
}

// buildTensor turns the -x, -shape and -dtype flags into a tensor. A missing
// shape is 0-d for a single value and 1-d otherwise.
func buildTensor(values, shape, dtype string) (*tensor.RawTensor, error) {
	data, err := parseValues(values)
	if err != nil {
		return nil, err
	}

	var dims tensor.Shape
	if strings.TrimSpace(shape) != "" {
		if dims, err = parseShape(shape); err != nil {
			return nil, err
		}
	} else if len(data) > 1 {
		dims = tensor.Shape{len(data)}
	}

	dt, ok := tensor.ParseDataType(dtype)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tensor.ErrUnsupportedType, dtype)
	}

	switch dt {
	case tensor.Float32:
		f32 := make([]float32, len(data))
		for i, v := range data {
			f32[i] = float32(v)
		}
		return tensor.FromSlice(f32, dims)
	default:
		return tensor.FromSlice(data, dims)
	}
}

// parseOps resolves a comma-separated list of operation names into one
// function that applies them left to right.
func parseOps(s string) (ops.Func, error) {
	names := splitList(s)
	if len(names) == 0 {
		return nil, errNoOps
	}

	fns := make([]ops.Func, len(names))
	for i, name := range names {
		fn, ok := ops.ByName(strings.ToLower(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q (want square or exp)", errUnknownOp, name)
		}
		fns[i] = fn
	}
	return ops.Compose(fns...), nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
