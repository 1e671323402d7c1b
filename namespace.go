package wazero

import (
	"sync"

	"github.com/wasmrt/wasmrt/internal/wasm"
)

// namespace is the Runtime's registry of instantiated modules, keyed by
// the name each was instantiated under. It implements wasm.Resolver:
// resolving an import means looking up the imported module by name
// in this registry, then its exported function by field name.
type namespace struct {
	mu          sync.Mutex
	modules     map[string]*wasm.ModuleInstance
	hostModules map[string]*wasm.HostModule
}

func newNamespace() *namespace {
	return &namespace{
		modules:     map[string]*wasm.ModuleInstance{},
		hostModules: map[string]*wasm.HostModule{},
	}
}

// Resolve implements wasm.Resolver: it checks guest modules this namespace instantiated, then host modules it
// built via NewHostModuleBuilder.
func (n *namespace) Resolve(moduleName, fieldName string, declared *wasm.FunctionType) wasm.Resolution {
	n.mu.Lock()
	mod, modOk := n.modules[moduleName]
	host, hostOk := n.hostModules[moduleName]
	n.mu.Unlock()

	if hostOk {
		return host.Resolve(moduleName, fieldName, declared)
	}
	if !modOk {
		return wasm.Resolution{Kind: wasm.ResolutionNoModule}
	}

	fn, err := mod.ExportedFunction(fieldName)
	if err != nil {
		return wasm.Resolution{Kind: wasm.ResolutionNoMethod}
	}
	if !fn.Type.EqualsSignature(declared) {
		return wasm.Resolution{Kind: wasm.ResolutionSignatureMismatch, Func: fn}
	}
	return wasm.Resolution{Kind: wasm.ResolutionOk, Func: fn}
}

// registerHost adds a host module under name, subject to the same uniqueness rule as register.
func (n *namespace) registerHost(name string, hm *wasm.HostModule) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.modules[name]; ok {
		return &wasm.InvalidParameterError{Context: "module name already instantiated in this runtime: " + name}
	}
	if _, ok := n.hostModules[name]; ok {
		return &wasm.InvalidParameterError{Context: "module name already instantiated in this runtime: " + name}
	}
	n.hostModules[name] = hm
	return nil
}

// register adds mi under name, failing if the name is already taken -
// module names are the only namespace a Runtime enforces uniqueness on.
func (n *namespace) register(name string, mi *wasm.ModuleInstance) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.modules[name]; ok {
		return &wasm.InvalidParameterError{Context: "module name already instantiated in this runtime: " + name}
	}
	if _, ok := n.hostModules[name]; ok {
		return &wasm.InvalidParameterError{Context: "module name already instantiated in this runtime: " + name}
	}
	mi.Name = name
	n.modules[name] = mi
	return nil
}

func (n *namespace) release(name string) {
	n.mu.Lock()
	delete(n.modules, name)
	n.mu.Unlock()
}
