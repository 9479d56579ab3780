package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/chaingrad/internal/autodiff"
	"github.com/born-ml/chaingrad/internal/autodiff/ops"
	"github.com/born-ml/chaingrad/internal/gradcheck"
	"github.com/born-ml/chaingrad/internal/onnx"
	"github.com/born-ml/chaingrad/internal/serialization"
	"github.com/born-ml/chaingrad/internal/tensor"
)

// defaultOps is the chain y = square(exp(square(x))) used by demo and as
// the -ops default.
const defaultOps = "square,exp,square"

type scenario struct {
	name string
	data func() any
}

var scenarios = []scenario{
	{"array", func() any { return tensor.MustFromSlice([]float64{0, 0.5, 1, 1, 2, 3}, tensor.Shape{2, 3}) }},
	{"scalar", func() any { return tensor.Scalar(1.0) }},
	{"absent", func() any { return nil }},
	{"bare int", func() any { return 1 }},
}

// runDemo differentiates the chain for each scenario and reports the gradient
// or the error. A failing scenario does not stop the others.
func runDemo(w io.Writer) error {
	for i, sc := range scenarios {
		fmt.Fprintf(w, "-%d- %s\n", i, sc.name)
		grad, err := differentiate(sc.data())
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(w, grad)
		fmt.Fprintln(w, "OK")
	}
	return nil
}

func differentiate(data any) (*tensor.RawTensor, error) {
	chain, err := parseOps(defaultOps)
	if err != nil {
		return nil, err
	}
	x, err := autodiff.NewVariable(data)
	if err != nil {
		return nil, err
	}
	y, err := chain(x)
	if err != nil {
		return nil, err
	}
	if err := y.Backward(); err != nil {
		return nil, err
	}
	return x.Grad(), nil
}

func runGrad(args []string) error {
	fs := flag.NewFlagSet("grad", flag.ContinueOnError)
	opsList := fs.String("ops", defaultOps, "Comma-separated operations applied to x (square, exp)")
	values := fs.String("x", "", "Comma-separated input values")
	shape := fs.String("shape", "", "Comma-separated dimensions (empty = 0-d)")
	dtype := fs.String("dtype", "float64", "Element type: float32 or float64")
	onnxPath := fs.String("onnx", "", "Write the chain as an ONNX model to this path")
	savePath := fs.String("save", "", "Write a .born snapshot of the chain to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	chain, err := parseOps(*opsList)
	if err != nil {
		return err
	}
	data, err := buildTensor(*values, *shape, *dtype)
	if err != nil {
		return err
	}

	x := autodiff.MustVariable(data)
	x.SetName("x")
	y, err := chain(x)
	if err != nil {
		return err
	}
	y.SetName("y")
	if err := y.Backward(); err != nil {
		return err
	}

	fmt.Printf("y     = %v\n", y.Data())
	fmt.Printf("dy/dx = %v\n", x.Grad())

	if *onnxPath != "" {
		model, err := onnx.ExportChain(y, "chaingrad", version)
		if err != nil {
			return err
		}
		if err := onnx.WriteFile(*onnxPath, model); err != nil {
			return err
		}
		if err := verifyExport(*onnxPath, x.Data(), y.Data()); err != nil {
			return err
		}
		log.Printf("wrote %s", *onnxPath)
	}

	if *savePath != "" {
		snap, err := serialization.SnapshotChain(y)
		if err != nil {
			return err
		}
		meta := map[string]string{"chain": *opsList}
		if err := serialization.WriteFile(*savePath, snap, meta); err != nil {
			return err
		}
		log.Printf("wrote %s", *savePath)
	}
	return nil
}

var errExportMismatch = errors.New("exported model does not reproduce the forward value")

// verifyExport reads the model back from path and checks that evaluating it
// on x gives want.
func verifyExport(path string, x, want *tensor.RawTensor) error {
	model, err := onnx.ParseFile(path)
	if err != nil {
		return err
	}
	got, err := onnx.RunChain(model, ops.DefaultBackend(), x)
	if err != nil {
		return err
	}
	if !tensor.AllClose(got, want, tensor.DefaultRTol, tensor.DefaultATol) {
		return fmt.Errorf("%w: got %v, want %v", errExportMismatch, got, want)
	}
	return nil
}

var errCheckFailed = errors.New("gradient check failed")

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	opsList := fs.String("ops", defaultOps, "Comma-separated operations applied to x (square, exp)")
	values := fs.String("x", "", "Comma-separated input values")
	shape := fs.String("shape", "", "Comma-separated dimensions (empty = 0-d)")
	eps := fs.Float64("eps", 1e-4, "Central difference step")
	rtol := fs.Float64("rtol", tensor.DefaultRTol, "Relative tolerance")
	atol := fs.Float64("atol", 1e-4, "Absolute tolerance")
	if err := fs.Parse(args); err != nil {
		return err
	}

	chain, err := parseOps(*opsList)
	if err != nil {
		return err
	}
	data, err := buildTensor(*values, *shape, "float64")
	if err != nil {
		return err
	}

	report, err := gradcheck.Check(chain, autodiff.MustVariable(data), gradcheck.Options{
		Eps:  *eps,
		RTol: *rtol,
		ATol: *atol,
	})
	if err != nil {
		return err
	}

	fmt.Printf("analytic = %v\n", report.Analytic)
	fmt.Printf("numeric  = %v\n", report.Numeric)
	fmt.Printf("max |diff| = %g\n", report.MaxAbsDiff)
	if !report.OK {
		fmt.Fprintln(os.Stderr, "FAIL")
		return errCheckFailed
	}
	fmt.Println("OK")
	return nil
}
