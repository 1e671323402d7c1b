package wazero

import (
	"context"

	"github.com/wasmrt/wasmrt/api"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

// HostFunctionBuilder defines a host function (in Go), so that a WebAssembly binary (e.g. %.wasm file) can import
// and use it.
//
// Here's an example of an addition function:
//
//	hostModuleBuilder.NewFunctionBuilder().
//		WithFunc(func(a, b int32) int32 {
//			return a + b
//		}).
//		Export("add")
//
// # Parameter and result types
//
// Except for a leading context.Context or wasm.GuestInstance, every parameter and result must be int32, uint32,
// bool (these three are declared as i32), int64, float32, float64, or (parameter-only) string - declared on the
// guest side as a (base u32, len u32) pair and marshaled from the calling module's memory as UTF-8. A trailing error
// result is folded into the error api.Function.Call returns rather than appearing in the function's declared
// signature.
//
// # Notes
//
//   - This is an interface for decoupling, not third-party implementations. All implementations are in wazero.
type HostFunctionBuilder interface {
	// WithFunc uses reflection to map a Go func to a WebAssembly-compatible signature. An input that isn't a func
	// makes HostModuleBuilder.Compile fail.
	WithFunc(interface{}) HostFunctionBuilder

	// Export exports this to the HostModuleBuilder as the given name, e.g. "random_get".
	Export(name string) HostModuleBuilder
}

// HostModuleBuilder is a way to define host functions (in Go), so that a WebAssembly binary (e.g. %.wasm file) can
// import and use them.
//
// For example, this defines and instantiates a module named "env" with one function:
//
//	ctx := context.Background()
//	r := wazero.NewRuntime(ctx)
//	defer r.Close(ctx) // This closes everything this Runtime created.
//
//	hello := func() {
//		println("hello!")
//	}
//	env, _ := r.NewHostModuleBuilder("env").
//		NewFunctionBuilder().WithFunc(hello).Export("hello").
//		Instantiate(ctx)
//
// # Notes
//
//   - This is an interface for decoupling, not third-party implementations. All implementations are in wazero.
//   - HostModuleBuilder is mutable: each method returns the same instance for chaining.
//   - Invalid functions are not rejected until Compile, so that methods here can chain without returning an error.
type HostModuleBuilder interface {
	// NewFunctionBuilder begins the definition of a host function.
	NewFunctionBuilder() HostFunctionBuilder

	// Compile returns a CompiledModule that can be instantiated by Runtime.InstantiateModule.
	Compile(context.Context) (*CompiledModule, error)

	// Instantiate is a convenience that calls Compile, then Runtime.InstantiateModule.
	Instantiate(context.Context) (api.Module, error)
}

// hostModuleBuilder implements HostModuleBuilder.
type hostModuleBuilder struct {
	r          *Runtime
	moduleName string
	fns        map[string]interface{}
}

// NewHostModuleBuilder begins building a host module that other modules this Runtime instantiates can import from.
func (r *Runtime) NewHostModuleBuilder(moduleName string) HostModuleBuilder {
	return &hostModuleBuilder{r: r, moduleName: moduleName, fns: map[string]interface{}{}}
}

// hostFunctionBuilder implements HostFunctionBuilder.
type hostFunctionBuilder struct {
	b  *hostModuleBuilder
	fn interface{}
}

func (h *hostFunctionBuilder) WithFunc(fn interface{}) HostFunctionBuilder {
	h.fn = fn
	return h
}

func (h *hostFunctionBuilder) Export(exportName string) HostModuleBuilder {
	h.b.fns[exportName] = h.fn
	return h.b
}

func (b *hostModuleBuilder) NewFunctionBuilder() HostFunctionBuilder {
	return &hostFunctionBuilder{b: b}
}

// Compile binds every function registered via NewFunctionBuilder through the reflection-based host bridge,
// producing a CompiledModule with no importable memory or table: host modules in this engine exist solely to
// supply functions.
func (b *hostModuleBuilder) Compile(context.Context) (*CompiledModule, error) {
	hm := wasm.NewHostModule(b.moduleName)
	for name, fn := range b.fns {
		if err := hm.ExportFunc(name, fn); err != nil {
			return nil, err
		}
	}
	return &CompiledModule{module: nil, hostModule: hm}, nil
}

// Instantiate is a convenience that calls Compile, then registers the result in the Runtime's namespace under
// moduleName so it resolves imports for modules instantiated afterward.
func (b *hostModuleBuilder) Instantiate(ctx context.Context) (api.Module, error) {
	compiled, err := b.Compile(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.r.ns.registerHost(b.moduleName, compiled.hostModule); err != nil {
		return nil, err
	}
	return &hostModule{name: b.moduleName, hm: compiled.hostModule}, nil
}
