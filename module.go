package wazero

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/wasmrt/wasmrt/api"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

// instantiatedModule adapts a *wasm.ModuleInstance to api.Module.
type instantiatedModule struct {
	r  *Runtime
	mi *wasm.ModuleInstance
}

func (m *instantiatedModule) Name() string { return m.mi.Name }

func (m *instantiatedModule) String() string { return "Module[" + m.mi.Name + "]" }

func (m *instantiatedModule) Memory() api.Memory {
	if m.mi.Memory == nil {
		return nil
	}
	return &memoryView{m.mi.Memory}
}

func (m *instantiatedModule) ExportedFunction(name string) api.Function {
	fn, err := m.mi.ExportedFunction(name)
	if err != nil {
		return nil
	}
	return &instantiatedFunction{mi: m.mi, fn: fn, exportName: name}
}

func (m *instantiatedModule) ExportedMemory(name string) api.Memory {
	mem, err := m.mi.ExportedMemory(name)
	if err != nil {
		return nil
	}
	return &memoryView{mem}
}

func (m *instantiatedModule) Close(context.Context) error {
	m.r.ns.release(m.mi.Name)
	return nil
}

// instantiatedFunction adapts a *wasm.FunctionInstance to api.Function, translating between the raw uint64 stack
// callers use and the typed wasm.Value the invoker expects.
type instantiatedFunction struct {
	mi         *wasm.ModuleInstance
	fn         *wasm.FunctionInstance
	exportName string
}

func (f *instantiatedFunction) ParamTypes() []wasm.ValueType  { return f.fn.Type.Params }
func (f *instantiatedFunction) ResultTypes() []wasm.ValueType { return f.fn.Type.Results }

func (f *instantiatedFunction) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(params) != len(f.fn.Type.Params) {
		return nil, &wasm.TypeMismatchError{
			Expected: fmt.Sprintf("%d argument(s)", len(f.fn.Type.Params)),
			Found:    fmt.Sprintf("%d argument(s)", len(params)),
		}
	}

	args := make([]wasm.Value, len(params))
	for i, p := range params {
		args[i] = decodeArg(f.fn.Type.Params[i], p)
	}

	result, err := f.mi.Invoke(ctx, f.exportName, args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return []uint64{encodeArg(*result)}, nil
}

func decodeArg(t wasm.ValueType, bits uint64) wasm.Value {
	switch t {
	case wasm.ValueTypeI64:
		return wasm.Value{Type: t, I64: int64(bits)}
	case wasm.ValueTypeF32:
		return wasm.Value{Type: t, F32: uint32(bits)}
	case wasm.ValueTypeF64:
		return wasm.Value{Type: t, F64: bits}
	default: // wasm.ValueTypeI32 and any reference type, both passed as the low 32 bits
		return wasm.Value{Type: t, I32: int32(uint32(bits))}
	}
}

func encodeArg(v wasm.Value) uint64 {
	switch v.Type {
	case wasm.ValueTypeI64:
		return uint64(v.I64)
	case wasm.ValueTypeF32:
		return uint64(v.F32)
	case wasm.ValueTypeF64:
		return v.F64
	default:
		return uint64(uint32(v.I32))
	}
}

// hostModule adapts a *wasm.HostModule to api.Module, for the value HostModuleBuilder.Instantiate returns. A host
// module declares no memory or table, so Memory and ExportedMemory always report none.
type hostModule struct {
	name string
	hm   *wasm.HostModule
}

func (h *hostModule) Name() string       { return h.name }
func (h *hostModule) String() string     { return "Module[" + h.name + "]" }
func (h *hostModule) Memory() api.Memory { return nil }

func (h *hostModule) ExportedFunction(name string) api.Function {
	fi, ok := h.hm.Lookup(name)
	if !ok {
		return nil
	}
	return &hostFunction{fi: fi}
}

func (h *hostModule) ExportedMemory(string) api.Memory { return nil }

// Close does nothing: the host module stays registered under its name in the owning Runtime.
func (h *hostModule) Close(context.Context) error { return nil }

// hostFunction adapts a *wasm.FunctionInstance bound to a Go func (no owning ModuleInstance) to api.Function.
type hostFunction struct {
	fi *wasm.FunctionInstance
}

func (f *hostFunction) ParamTypes() []wasm.ValueType  { return f.fi.Type.Params }
func (f *hostFunction) ResultTypes() []wasm.ValueType { return f.fi.Type.Results }

func (f *hostFunction) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(params) != len(f.fi.Type.Params) {
		return nil, &wasm.TypeMismatchError{
			Expected: fmt.Sprintf("%d argument(s)", len(f.fi.Type.Params)),
			Found:    fmt.Sprintf("%d argument(s)", len(params)),
		}
	}
	stack := make([]uint64, max(len(params), len(f.fi.Type.Results)))
	copy(stack, params)

	cc := wasm.NewCallContext(ctx, nil)
	if err := f.fi.Code.GoFunc.Go(*cc, stack); err != nil {
		return nil, err
	}
	if len(f.fi.Type.Results) == 0 {
		return nil, nil
	}
	return []uint64{stack[0]}, nil
}

// memoryView adapts a *wasm.MemoryInstance to api.Memory.
type memoryView struct {
	mem *wasm.MemoryInstance
}

func (m *memoryView) Size() uint32 { return m.mem.ByteLength() }

func (m *memoryView) Grow(deltaPages uint32) (uint32, bool) {
	prev, err := m.mem.Grow(deltaPages)
	return prev, err == nil
}

func (m *memoryView) Read(offset, byteCount uint32) ([]byte, bool) {
	b, err := m.mem.ReadSlice(offset, byteCount)
	return b, err == nil
}

func (m *memoryView) Write(offset uint32, v []byte) bool {
	return m.mem.WriteSlice(offset, v) == nil
}

func (m *memoryView) ReadUint32Le(offset uint32) (uint32, bool) {
	b, ok := m.Read(offset, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (m *memoryView) WriteUint32Le(offset uint32, v uint32) bool {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return m.Write(offset, b[:])
}

func (m *memoryView) ReadUint64Le(offset uint32) (uint64, bool) {
	b, ok := m.Read(offset, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

func (m *memoryView) WriteUint64Le(offset uint32, v uint64) bool {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return m.Write(offset, b[:])
}
