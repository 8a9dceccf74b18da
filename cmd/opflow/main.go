// Package main runs a small demonstration pipeline through the engine.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/opflow/opflow/internal/infrastructure/ctxlog"
	"github.com/opflow/opflow/pkg/opflow"
	"github.com/opflow/opflow/pkg/prebuilt"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("opflow %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run compiles and executes x -> scale(2) -> offset(1) -> y.
func run() error {
	topo := &opflow.Topology{Nodes: []*opflow.Node{
		{
			FullName: "scale.0",
			Inputs:   []*opflow.Variable{{RawName: "x", FullName: "variable.x.0"}},
			Outputs:  []*opflow.Variable{{RawName: "mid", FullName: "variable.mid.0"}},
		},
		{
			FullName: "offset.0",
			Inputs:   []*opflow.Variable{{RawName: "mid", FullName: "variable.mid.0"}},
			Outputs:  []*opflow.Variable{{RawName: "y", FullName: "variable.y.0"}},
		},
	}}
	transforms := opflow.TransformMap{
		"scale.0":  prebuilt.Scale(2),
		"offset.0": prebuilt.Offset(1),
	}

	program, err := opflow.Compile(topo, transforms, []string{"x"}, []string{"y"},
		map[string]any{"record_traces": true})
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	out, err := program.Run(ctx, []float64{1, 2, 3})
	if err != nil {
		return err
	}

	result := out.(*opflow.Tensor)
	data, err := result.Float32s()
	if err != nil {
		return err
	}
	fmt.Printf("y = %v (%s)\n", data, result)

	for _, id := range program.TraceIDs() {
		trace, err := program.Trace(id)
		if err != nil {
			return err
		}
		fmt.Printf("run %s: %d steps in %s\n",
			trace.RunID, len(trace.Steps), trace.EndTime.Sub(trace.StartTime))
	}
	return nil
}
