// Command wasmrt is a minimal host for WebAssembly 1.0 (20191205) binaries: it decodes and optionally instantiates
// a module, invoking one export with a fixed pair of i32 arguments. It implements nothing beyond that - no WASI, no
// filesystem, no sockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wasmrt/wasmrt"
	"github.com/wasmrt/wasmrt/internal/features"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("wasmrt", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	stats := flags.Bool("d", false, "print decoded module statistics")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return 1
	}

	args := flags.Args()
	if len(args) < 1 {
		printUsage(stdErr)
		return 1
	}
	wasmPath := args[0]
	var exportName string
	if len(args) > 1 {
		exportName = args[1]
	}

	wasmBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		fmt.Fprintf(stdErr, "error reading wasm binary: %v\n", err)
		return 1
	}

	ctx := context.Background()
	enabled := features.FromEnvironment(wasm.Features20191205)
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCoreFeatures(enabled))
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		fmt.Fprintf(stdErr, "error compiling wasm binary: %v\n", err)
		return 1
	}

	if *stats {
		printStats(stdOut, compiled.Stats())
	}

	if exportName == "" {
		return 0
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		fmt.Fprintf(stdErr, "error instantiating wasm binary: %v\n", err)
		return 1
	}
	defer mod.Close(ctx)

	fn := mod.ExportedFunction(exportName)
	if fn == nil {
		fmt.Fprintf(stdErr, "no such export: %s\n", exportName)
		return 1
	}

	results, err := fn.Call(ctx, 123, 456)
	if err != nil {
		fmt.Fprintf(stdErr, "error invoking %s: %v\n", exportName, err)
		return 1
	}
	fmt.Fprintln(stdOut, results)
	return 0
}

func printStats(stdOut io.Writer, s wazero.ModuleStats) {
	fmt.Fprintf(stdOut, "imports: %d\n", s.Imports)
	fmt.Fprintf(stdOut, "functions: %d\n", s.Functions)
	fmt.Fprintf(stdOut, "exports: %d\n", s.Exports)
	if s.HasMemory {
		fmt.Fprintf(stdOut, "memory: min=%d pages\n", s.MemoryMin)
	} else {
		fmt.Fprintln(stdOut, "memory: none")
	}
	fmt.Fprintf(stdOut, "start function: %v\n", s.StartExists)
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "wasmrt CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  wasmrt [-d] <path to wasm file> [export name]")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "  -d    print decoded module statistics")
	fmt.Fprintln(stdErr, "If an export name is given, it is invoked with the fixed arguments 123, 456.")
	fmt.Fprintf(stdErr, "Set %s to a comma-separated list of proposal names (e.g. sign-extension-ops) to\n", features.EnvVarName)
	fmt.Fprintln(stdErr, "enable compile-time acceptance of their instructions beyond the WebAssembly 1.0 baseline.")
}
