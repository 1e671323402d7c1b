// Package wazero is a WebAssembly runtime: a host embeds it to decode, compile, instantiate and invoke modules
// compiled to the WebAssembly 1.0 (20191205) binary format.
//
// This engine implements the embedding surface (compile, instantiate, resolve imports, invoke exports) and the
// subsystems it depends on directly: the opcode catalog, the instruction and module decoders, and linear memory.
// It does not execute a decoded guest instruction stream; only host functions bound through NewHostModuleBuilder are
// callable. See internal/wasm's doc comments for why this boundary is where it is.
package wazero

import (
	"context"

	"github.com/wasmrt/wasmrt/api"
	"github.com/wasmrt/wasmrt/internal/wasm"
	"github.com/wasmrt/wasmrt/internal/wasm/binary"
)

// Runtime allows embedding of WebAssembly modules.
//
// Ex.
//
//	ctx := context.Background()
//	r := wazero.NewRuntime(ctx)
//	defer r.Close(ctx) // This closes everything this Runtime created.
//
//	module, _ := r.InstantiateModuleFromBinary(ctx, wasmBinary)
//
// # Notes
//
//   - Any function whose context is nil defaults to context.Background.
type Runtime struct {
	config *RuntimeConfig
	ns     *namespace
}

// NewRuntime creates a new Runtime with default configuration.
func NewRuntime(ctx context.Context) *Runtime {
	return NewRuntimeWithConfig(ctx, NewRuntimeConfig())
}

// NewRuntimeWithConfig is like NewRuntime, but accepts a RuntimeConfig, notably for WithCoreFeatures or
// WithMemoryMaxPages.
func NewRuntimeWithConfig(ctx context.Context, rConfig *RuntimeConfig) *Runtime {
	if rConfig == nil {
		rConfig = NewRuntimeConfig()
	}
	return &Runtime{config: rConfig, ns: newNamespace()}
}

// CompileModule decodes the WebAssembly 1.0 (20191205) binary format and validates it against the Runtime's enabled
// features and its configured memory ceiling, plus every cross-reference the module makes into its own index
// spaces (start function, element/data segments, exports). The result can be instantiated any number of times via
// InstantiateModule.
func (r *Runtime) CompileModule(_ context.Context, binaryBytes []byte) (*CompiledModule, error) {
	m, err := binary.DecodeModule(binaryBytes)
	if err != nil {
		return nil, err
	}
	if err := wasm.ValidateFeatures(m, r.config.enabledFeatures); err != nil {
		return nil, err
	}
	if m.MemorySection != nil && m.MemorySection.Min > r.config.memoryMaxPages {
		return nil, &wasm.InvalidParameterError{Context: "memory min page count exceeds the Runtime's configured maximum"}
	}
	if m.MemorySection != nil && m.MemorySection.IsMaxEncoded && m.MemorySection.Max > r.config.memoryMaxPages {
		return nil, &wasm.InvalidParameterError{Context: "memory max page count exceeds the Runtime's configured maximum"}
	}
	if err := wasm.ValidateIndices(m); err != nil {
		return nil, err
	}
	return &CompiledModule{module: m}, nil
}

// InstantiateModuleFromBinary is a convenience that chains CompileModule and InstantiateModule using
// NewModuleConfig's defaults.
func (r *Runtime) InstantiateModuleFromBinary(ctx context.Context, binaryBytes []byte) (api.Module, error) {
	compiled, err := r.CompileModule(ctx, binaryBytes)
	if err != nil {
		return nil, err
	}
	return r.InstantiateModule(ctx, compiled, NewModuleConfig())
}

// InstantiateModule instantiates the CompiledModule, resolving its imports against every module this Runtime has
// already instantiated, then registers the result under mConfig's name so later modules can import from it. A
// CompiledModule from HostModuleBuilder.Compile is registered under its builder's module name; mConfig's name is
// not used for it.
func (r *Runtime) InstantiateModule(_ context.Context, compiled *CompiledModule, mConfig *ModuleConfig) (api.Module, error) {
	if mConfig == nil {
		mConfig = NewModuleConfig()
	}
	if compiled.hostModule != nil {
		name := compiled.hostModule.Name
		if err := r.ns.registerHost(name, compiled.hostModule); err != nil {
			return nil, err
		}
		return &hostModule{name: name, hm: compiled.hostModule}, nil
	}
	name := mConfig.name
	if name == "" && compiled.module.NameSection != nil {
		name = compiled.module.NameSection.ModuleName
	}

	mi, err := wasm.Instantiate(compiled.module, r.ns)
	if err != nil {
		return nil, err
	}
	if err := r.ns.register(name, mi); err != nil {
		return nil, err
	}
	return &instantiatedModule{r: r, mi: mi}, nil
}

// Close releases every module this Runtime instantiated. A Runtime cannot be reused after Close.
func (r *Runtime) Close(context.Context) error {
	r.ns.mu.Lock()
	defer r.ns.mu.Unlock()
	for name := range r.ns.modules {
		delete(r.ns.modules, name)
	}
	for name := range r.ns.hostModules {
		delete(r.ns.hostModules, name)
	}
	return nil
}

// CompiledModule is a WebAssembly 1.0 (20191205) module ready to be instantiated via Runtime.InstantiateModule.
//
// Note: this is the decoded-and-validated phase, distinct from the pre-decode []byte and the post-instantiation
// api.Module, matching the three semantic phases the WebAssembly spec itself distinguishes.
type CompiledModule struct {
	module *wasm.Module
	// hostModule is set instead of module when this CompiledModule came from HostModuleBuilder.Compile.
	hostModule *wasm.HostModule
}

// ModuleStats summarizes a CompiledModule's section sizes, the information the CLI's -d flag prints.
type ModuleStats struct {
	Imports     int
	Functions   int
	Exports     int
	MemoryMin   uint32
	HasMemory   bool
	StartExists bool
}

// Stats reports section counts decoded from the module, for diagnostic printing. It returns the zero value for a
// host module, which has no decoded sections.
func (c *CompiledModule) Stats() ModuleStats {
	if c.module == nil {
		return ModuleStats{}
	}
	m := c.module
	stats := ModuleStats{
		Imports:     len(m.ImportSection),
		Functions:   len(m.FunctionSection),
		Exports:     len(m.ExportSection),
		StartExists: m.StartSection != nil,
	}
	if m.MemorySection != nil {
		stats.HasMemory = true
		stats.MemoryMin = m.MemorySection.Min
	}
	return stats
}
