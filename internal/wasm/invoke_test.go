package wasm

import (
	"context"
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
)

func helloWorldModule(t *testing.T) *Module {
	t.Helper()
	ft := &FunctionType{Results: []ValueType{ValueTypeI32}}
	hf := &HostFunc{Name: "answer", Go: func(cc CallContext, stack []uint64) error {
		stack[0] = 42
		return nil
	}}
	return &Module{
		TypeSection:     []*FunctionType{ft},
		FunctionSection: []Index{0},
		CodeSection:     []*Code{{GoFunc: hf}},
		ExportSection:   []*Export{{Type: ExternTypeFunc, Name: "answer", Index: 0}},
	}
}

type noImportResolver struct{}

func (noImportResolver) Resolve(moduleName, fieldName string, declared *FunctionType) Resolution {
	return Resolution{Kind: ResolutionNoModule}
}

func TestInstantiateAndInvokeHelloWorld(t *testing.T) {
	mi, err := Instantiate(helloWorldModule(t), noImportResolver{})
	require.NoError(t, err)

	result, err := mi.Invoke(context.Background(), "answer", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, int32(42), result.I32)
}

func TestInvokeNoSuchExport(t *testing.T) {
	mi, err := Instantiate(helloWorldModule(t), noImportResolver{})
	require.NoError(t, err)

	_, err = mi.Invoke(context.Background(), "missing", nil)
	require.Error(t, err)
	_, ok := err.(*NoMethodError)
	require.True(t, ok)
}

func TestInvokeArgCountMismatch(t *testing.T) {
	mi, err := Instantiate(helloWorldModule(t), noImportResolver{})
	require.NoError(t, err)

	_, err = mi.Invoke(context.Background(), "answer", []Value{{Type: ValueTypeI32, I32: 1}})
	require.Error(t, err)
	_, ok := err.(*TypeMismatchError)
	require.True(t, ok)
}

func TestInstantiateUnknownImport(t *testing.T) {
	m := &Module{
		TypeSection: []*FunctionType{{}},
		ImportSection: []*Import{
			{Type: ExternTypeFunc, Module: "env", Name: "absent", DescFunc: 0},
		},
	}
	env := NewHostModule("env")
	_, err := Instantiate(m, env)
	require.Error(t, err)
	_, ok := err.(*UnknownImportError)
	require.True(t, ok)
}

func TestInstantiateNoModule(t *testing.T) {
	m := &Module{
		TypeSection: []*FunctionType{{}},
		ImportSection: []*Import{
			{Type: ExternTypeFunc, Module: "wasi_snapshot_preview1", Name: "fd_write", DescFunc: 0},
		},
	}
	_, err := Instantiate(m, NewHostModule("env"))
	require.Error(t, err)
	_, ok := err.(*NoModuleError)
	require.True(t, ok)
}

func TestInstantiateIncompatibleImport(t *testing.T) {
	env := NewHostModule("env")
	require.NoError(t, env.ExportFunc("double", func(v int32) int32 { return v * 2 }))

	m := &Module{
		// declared type takes no params, but env.double takes one i32 param: a signature mismatch.
		TypeSection: []*FunctionType{{}},
		ImportSection: []*Import{
			{Type: ExternTypeFunc, Module: "env", Name: "double", DescFunc: 0},
		},
	}
	_, err := Instantiate(m, env)
	require.Error(t, err)
	ie, ok := err.(*IncompatibleImportError)
	require.True(t, ok)
	require.Equal(t, "env", ie.Module)
	require.Equal(t, "double", ie.Field)
}

func TestInstantiateResolvesImportedFunctionBeforeLocalIndices(t *testing.T) {
	env := NewHostModule("env")
	require.NoError(t, env.ExportFunc("double", func(v int32) int32 { return v * 2 }))

	ft := &FunctionType{Params: []ValueType{ValueTypeI32}, Results: []ValueType{ValueTypeI32}}
	m := &Module{
		TypeSection: []*FunctionType{ft},
		ImportSection: []*Import{
			{Type: ExternTypeFunc, Module: "env", Name: "double", DescFunc: 0},
		},
		FunctionSection: []Index{0},
		CodeSection:     []*Code{{Body: []Instruction{{Op: OpcodeEnd}}}},
		ExportSection: []*Export{
			{Type: ExternTypeFunc, Name: "imported", Index: 0},
			{Type: ExternTypeFunc, Name: "local", Index: 1},
		},
	}
	mi, err := Instantiate(m, env)
	require.NoError(t, err)

	result, err := mi.Invoke(context.Background(), "imported", []Value{{Type: ValueTypeI32, I32: 21}})
	require.NoError(t, err)
	require.Equal(t, int32(42), result.I32)

	_, err = mi.Invoke(context.Background(), "local", []Value{{Type: ValueTypeI32, I32: 1}})
	require.Error(t, err)
	_, ok := err.(*TrapError)
	require.True(t, ok)
}

func TestInstantiateEvaluatesGlobalsAndData(t *testing.T) {
	m := &Module{
		MemorySection: &Memory{Min: 1},
		GlobalSection: []*Global{
			{Type: &GlobalType{ValType: ValueTypeI32}, Init: &ConstantExpression{Opcode: OpcodeI32Const, Data: []byte{0x2a}}},
		},
		DataSection: []*DataSegment{
			{Offset: &ConstantExpression{Opcode: OpcodeI32Const, Data: []byte{0x00}}, Init: []byte{1, 2, 3, 4}},
		},
	}
	mi, err := Instantiate(m, noImportResolver{})
	require.NoError(t, err)

	require.Equal(t, 1, len(mi.Globals))
	require.Equal(t, uint64(42), mi.Globals[0].Val)

	raw, err := mi.Memory.ReadSlice(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, raw)
}

func TestInstantiatePopulatesTableFromElementSection(t *testing.T) {
	m := &Module{
		TableSection: &Table{Min: 4},
		ElementSection: []*ElementSegment{
			{Offset: &ConstantExpression{Opcode: OpcodeI32Const, Data: []byte{0x01}}, Init: []Index{7}},
		},
	}
	mi, err := Instantiate(m, noImportResolver{})
	require.NoError(t, err)

	require.Equal(t, 4, len(mi.Table))
	require.Equal(t, int64(-1), mi.Table[0])
	require.Equal(t, int64(7), mi.Table[1])
	require.Equal(t, int64(-1), mi.Table[2])
}
