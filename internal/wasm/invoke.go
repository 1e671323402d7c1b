package wasm

import (
	"context"
	"fmt"

	"github.com/wasmrt/wasmrt/internal/leb128"
)

// Value is a runtime Wasm value: its static type alongside the raw bits of
// whichever of the four representations is live.
type Value struct {
	Type ValueType
	I32  int32
	I64  int64
	F32  uint32 // raw IEEE-754 bits
	F64  uint64 // raw IEEE-754 bits
}

func encodeValue(v Value) uint64 {
	switch v.Type {
	case ValueTypeI32:
		return uint64(uint32(v.I32))
	case ValueTypeI64:
		return uint64(v.I64)
	case ValueTypeF32:
		return uint64(v.F32)
	case ValueTypeF64:
		return v.F64
	default:
		return 0
	}
}

func decodeValue(t ValueType, bits uint64) Value {
	switch t {
	case ValueTypeI32:
		return Value{Type: t, I32: int32(uint32(bits))}
	case ValueTypeI64:
		return Value{Type: t, I64: int64(bits)}
	case ValueTypeF32:
		return Value{Type: t, F32: uint32(bits)}
	case ValueTypeF64:
		return Value{Type: t, F64: bits}
	default:
		return Value{Type: t}
	}
}

// Instantiate builds a ModuleInstance from a decoded Module: it resolves
// imports through resolver, allocates the declared memory/table and
// evaluates global/element/data initializers, and populates the export
// table. Guest function bodies are recorded on FunctionInstance.Code but
// never executed here — interpreting a decoded instruction stream is
// outside this engine's scope; only host-bound functions are actually
// callable via Invoke.
func Instantiate(m *Module, resolver Resolver) (*ModuleInstance, error) {
	importedFuncs, err := resolveImports(m, resolver)
	if err != nil {
		return nil, err
	}

	mi := &ModuleInstance{Types: m.TypeSection, Exports: map[string]*Export{}}
	mi.Functions = append(mi.Functions, importedFuncs...)

	if len(m.FunctionSection) != len(m.CodeSection) {
		return nil, &SizeMismatchError{Functions: len(m.FunctionSection), Codes: len(m.CodeSection)}
	}
	for i, typeIdx := range m.FunctionSection {
		if typeIdx >= uint32(len(m.TypeSection)) {
			return nil, &InvalidParameterError{Context: "function type index"}
		}
		mi.Functions = append(mi.Functions, &FunctionInstance{
			Type: m.TypeSection[typeIdx],
			Code: m.CodeSection[i],
		})
	}
	for _, fi := range mi.Functions {
		fi.Module = mi
	}

	for _, g := range m.GlobalSection {
		mi.Globals = append(mi.Globals, &GlobalInstance{Type: g.Type, Val: constExprValue(g.Init)})
	}

	if m.MemorySection != nil {
		mem, err := NewMemoryInstance(m.MemorySection.Min, m.MemorySection.Max, m.MemorySection.IsMaxEncoded)
		if err != nil {
			return nil, err
		}
		mi.Memory = mem
		for _, d := range m.DataSection {
			offset := uint32(constExprValue(d.Offset))
			if err := mi.Memory.WriteSlice(offset, d.Init); err != nil {
				return nil, err
			}
		}
	}

	if m.TableSection != nil {
		mi.Table = make([]int64, m.TableSection.Min)
		for i := range mi.Table {
			mi.Table[i] = -1 // null funcref
		}
		for _, e := range m.ElementSection {
			offset := int(constExprValue(e.Offset))
			for i, fn := range e.Init {
				if idx := offset + i; idx >= 0 && idx < len(mi.Table) {
					mi.Table[idx] = int64(fn)
				}
			}
		}
	}

	for _, exp := range m.ExportSection {
		mi.Exports[exp.Name] = exp
	}
	return mi, nil
}

// constExprValue evaluates the restricted constant expressions this engine
// accepts as global/element/data offsets: i32.const and i64.const. (The
// remaining MVP case, global.get of an imported immutable global, is left
// to a fuller validator; it decodes here as zero.)
func constExprValue(expr *ConstantExpression) uint64 {
	switch expr.Opcode {
	case OpcodeI32Const:
		v, _, _ := leb128.LoadInt32(expr.Data)
		return uint64(uint32(v))
	case OpcodeI64Const:
		v, _, _ := leb128.LoadInt64(expr.Data)
		return uint64(v)
	default:
		return 0
	}
}

// Invoke looks up exportName, checks argument count and that each
// argument's type equals the function's declared parameter type (no
// integer widening or narrowing is done), and for a host-bound function
// dispatches to its Go implementation. A
// lookup failure is NoMethodError; an arity or type mismatch is
// TypeMismatchError; invoking a guest function body is a TrapError, since
// this engine does not execute decoded instruction streams (see Instantiate).
func (m *ModuleInstance) Invoke(ctx context.Context, exportName string, args []Value) (*Value, error) {
	fn, err := m.ExportedFunction(exportName)
	if err != nil {
		return nil, err
	}
	if len(args) != len(fn.Type.Params) {
		return nil, &TypeMismatchError{
			Expected: fmt.Sprintf("%d argument(s)", len(fn.Type.Params)),
			Found:    fmt.Sprintf("%d argument(s)", len(args)),
		}
	}

	stack := make([]uint64, max(len(args), len(fn.Type.Results)))
	for i, a := range args {
		if a.Type != fn.Type.Params[i] {
			return nil, &TypeMismatchError{Expected: ValueTypeName(fn.Type.Params[i]), Found: ValueTypeName(a.Type)}
		}
		stack[i] = encodeValue(a)
	}

	if fn.Code == nil || fn.Code.GoFunc == nil {
		return nil, &TrapError{Reason: "guest function execution is not implemented by this engine"}
	}
	cc := NewCallContext(ctx, m)
	if err := fn.Code.GoFunc.Go(*cc, stack); err != nil {
		return nil, err
	}

	if len(fn.Type.Results) == 0 {
		return nil, nil
	}
	result := decodeValue(fn.Type.Results[0], stack[0])
	return &result, nil
}
