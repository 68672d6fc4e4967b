// cmd/modelpack converts dense-layer weights exported from training into the
// binary descriptor embedded in the firmware.
//
//	modelpack -in brightness.json -out brightness.bmod
//
// The JSON document carries one entry per Dense layer, with the kernel in
// Keras layout ([inputs][units]).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"envmon-go/inference"
)

type exportDoc struct {
	Name   string        `json:"name"`
	Schema uint32        `json:"schema"`
	Layers []exportLayer `json:"layers"`
}

type exportLayer struct {
	Units      int         `json:"units"`
	Activation string      `json:"activation"`
	Kernel     [][]float32 `json:"kernel"`
	Bias       []float32   `json:"bias"`
}

func main() {
	in := flag.String("in", "", "exported weights (JSON)")
	out := flag.String("out", "", "descriptor to write")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*in, *out); err != nil {
		fmt.Fprintf(os.Stderr, "modelpack: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	var doc exportDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	if doc.Schema != 0 && doc.Schema != inference.SchemaVersion {
		return fmt.Errorf("%s targets schema %d, engine expects %d", inPath, doc.Schema, inference.SchemaVersion)
	}
	layers, err := toLayers(doc.Layers)
	if err != nil {
		return err
	}
	b, err := inference.Encode(layers)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d layers, %d bytes\n", outPath, len(layers), len(b))
	return nil
}

// toLayers transposes Keras kernels into the engine's row-major layout.
func toLayers(src []exportLayer) ([]inference.Layer, error) {
	out := make([]inference.Layer, 0, len(src))
	for n, l := range src {
		act, err := parseActivation(l.Activation)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", n, err)
		}
		in := len(l.Kernel)
		if in == 0 || l.Units <= 0 {
			return nil, fmt.Errorf("layer %d: empty kernel", n)
		}
		w := make([]float32, in*l.Units)
		for i, row := range l.Kernel {
			if len(row) != l.Units {
				return nil, fmt.Errorf("layer %d: kernel row %d has %d columns, want %d", n, i, len(row), l.Units)
			}
			for o, v := range row {
				w[o*in+i] = v
			}
		}
		out = append(out, inference.Layer{In: in, Out: l.Units, Act: act, Weights: w, Bias: l.Bias})
	}
	return out, nil
}

func parseActivation(s string) (inference.Activation, error) {
	switch s {
	case "relu":
		return inference.ReLU, nil
	case "linear", "":
		return inference.Linear, nil
	default:
		return 0, fmt.Errorf("unsupported activation %q", s)
	}
}
