package wazero

import (
	"context"
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

func TestHostModuleCallRoundTrips(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	host, err := r.NewHostModuleBuilder("host/math").
		NewFunctionBuilder().
		WithFunc(func(a, b uint32) uint32 { return a + b }).
		Export("add").
		Instantiate(ctx)
	require.NoError(t, err)

	require.Equal(t, "host/math", host.Name())
	require.Nil(t, host.Memory())

	add := host.ExportedFunction("add")
	require.NotNil(t, add)
	require.Equal(t, 2, len(add.ParamTypes()))
	require.Equal(t, 1, len(add.ResultTypes()))

	results, err := add.Call(ctx, 7, 9)
	require.NoError(t, err)
	require.Equal(t, uint64(16), results[0])

	require.Nil(t, host.ExportedFunction("missing"))
}

func TestHostModuleCallArgCountMismatch(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	host, err := r.NewHostModuleBuilder("host/math").
		NewFunctionBuilder().
		WithFunc(func(a, b uint32) uint32 { return a + b }).
		Export("add").
		Instantiate(ctx)
	require.NoError(t, err)

	_, err = host.ExportedFunction("add").Call(ctx)
	require.Error(t, err)
}

func TestInstantiatedModuleMemoryAndInvokeTrap(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	ft := &wasm.FunctionType{Results: []wasm.ValueType{wasm.ValueTypeI32}}
	compiled := &CompiledModule{module: &wasm.Module{
		TypeSection:     []*wasm.FunctionType{ft},
		FunctionSection: []wasm.Index{0},
		CodeSection:     []*wasm.Code{{Body: []wasm.Instruction{{Op: wasm.OpcodeI32Const}, {Op: wasm.OpcodeEnd}}}},
		MemorySection:   &wasm.Memory{Min: 1, Max: 1, IsMaxEncoded: true},
		ExportSection: []*wasm.Export{
			{Type: wasm.ExternTypeFunc, Name: "get", Index: 0},
			{Type: wasm.ExternTypeMemory, Name: "memory", Index: 0},
		},
	}}

	mod, err := r.InstantiateModule(ctx, compiled, NewModuleConfig().WithName("guest"))
	require.NoError(t, err)
	require.Equal(t, "guest", mod.Name())

	mem := mod.Memory()
	require.NotNil(t, mem)
	require.Equal(t, wasm.MemoryPageSize, mem.Size())

	sameMem := mod.ExportedMemory("memory")
	require.NotNil(t, sameMem)

	// Guest function bodies are never executed by this engine; invoking one traps.
	_, err = mod.ExportedFunction("get").Call(ctx)
	require.Error(t, err)

	require.NoError(t, mod.Close(ctx))
}

func TestMemoryViewReadWrite(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	compiled := &CompiledModule{module: &wasm.Module{
		MemorySection: &wasm.Memory{Min: 1, Max: 1, IsMaxEncoded: true},
		ExportSection: []*wasm.Export{{Type: wasm.ExternTypeMemory, Name: "memory", Index: 0}},
	}}
	mod, err := r.InstantiateModule(ctx, compiled, NewModuleConfig())
	require.NoError(t, err)

	mem := mod.Memory()
	require.True(t, mem.WriteUint32Le(0, 0xdeadbeef))
	v, ok := mem.ReadUint32Le(0)
	require.True(t, ok)
	require.Equal(t, uint32(0xdeadbeef), v)

	require.True(t, mem.Write(4, []byte{1, 2, 3, 4}))
	b, ok := mem.Read(4, 4)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3, 4}, b)

	_, ok = mem.Read(wasm.MemoryPageSize, 1)
	require.False(t, ok)
}
