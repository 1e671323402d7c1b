package wazero

import (
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

func TestNamespaceRegisterRejectsDuplicateName(t *testing.T) {
	ns := newNamespace()
	require.NoError(t, ns.register("mod", &wasm.ModuleInstance{}))
	err := ns.register("mod", &wasm.ModuleInstance{})
	require.Error(t, err)
}

func TestNamespaceRegisterRejectsNameTakenByHost(t *testing.T) {
	ns := newNamespace()
	require.NoError(t, ns.registerHost("mod", wasm.NewHostModule("mod")))
	err := ns.register("mod", &wasm.ModuleInstance{})
	require.Error(t, err)
}

func TestNamespaceReleaseFreesName(t *testing.T) {
	ns := newNamespace()
	require.NoError(t, ns.register("mod", &wasm.ModuleInstance{}))
	ns.release("mod")
	require.NoError(t, ns.register("mod", &wasm.ModuleInstance{}))
}

func TestNamespaceResolveNoModule(t *testing.T) {
	ns := newNamespace()
	res := ns.Resolve("absent", "fn", &wasm.FunctionType{})
	require.Equal(t, wasm.ResolutionNoModule, res.Kind)
}

func TestNamespaceResolveHostModule(t *testing.T) {
	ns := newNamespace()
	hm := wasm.NewHostModule("host/math")
	require.NoError(t, hm.ExportFunc("add", func(a, b uint32) uint32 { return a + b }))
	require.NoError(t, ns.registerHost("host/math", hm))

	res := ns.Resolve("host/math", "add", &wasm.FunctionType{
		Params:  []wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32},
		Results: []wasm.ValueType{wasm.ValueTypeI32},
	})
	require.Equal(t, wasm.ResolutionOk, res.Kind)
}

func TestNamespaceResolveGuestModule(t *testing.T) {
	ns := newNamespace()
	ft := &wasm.FunctionType{Results: []wasm.ValueType{wasm.ValueTypeI32}}
	mi := &wasm.ModuleInstance{
		Functions: []*wasm.FunctionInstance{{Type: ft}},
		Exports:   map[string]*wasm.Export{"get": {Type: wasm.ExternTypeFunc, Index: 0}},
	}
	require.NoError(t, ns.register("producer", mi))

	res := ns.Resolve("producer", "get", ft)
	require.Equal(t, wasm.ResolutionOk, res.Kind)

	res = ns.Resolve("producer", "get", &wasm.FunctionType{})
	require.Equal(t, wasm.ResolutionSignatureMismatch, res.Kind)

	res = ns.Resolve("producer", "missing", ft)
	require.Equal(t, wasm.ResolutionNoMethod, res.Kind)
}
