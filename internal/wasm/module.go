package wasm

import "fmt"

// GlobalType describes the static shape of a global variable: its value
// type and whether it may be reassigned after initialization.
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// Global is a module-defined global variable: its type plus a constant
// initializer expression.
type Global struct {
	Type *GlobalType
	Init *ConstantExpression
}

// Table is a module-defined table: an ordered sequence of reference
// values bounded by Limits.
type Table struct {
	Min uint32
	Max *uint32
}

// Memory is a module-defined linear memory's static shape. IsMaxEncoded
// reports whether the binary's limits encoded a maximum; Max is meaningful
// only when it is true.
type Memory struct {
	Min, Max     uint32
	IsMaxEncoded bool
}

// ConstantExpression is a restricted instruction sequence usable as a
// global initializer or element/data segment offset: exactly one constant
// or global.get instruction.
type ConstantExpression struct {
	Opcode Opcode
	Data   []byte
}

// Import is one entry of the import section: a (module, field) pair plus
// exactly one of the four descriptor kinds, selected by Type.
type Import struct {
	Type       ExternType
	Module     string
	Name       string
	DescFunc   Index
	DescTable  *Table
	DescMem    *Memory
	DescGlobal *GlobalType
}

// Export is one entry of the export section: a name plus a reference into
// one of the post-instantiation index spaces.
type Export struct {
	Type  ExternType
	Name  string
	Index Index
}

// Code is a guest function body: its locals (by type, already expanded
// from the run-length encoding used on the wire) and its decoded
// instruction stream.
type Code struct {
	LocalTypes []ValueType
	Body       []Instruction
	// GoFunc is set instead of Body/LocalTypes for a host function bound
	// via the reflection-based bridge in host.go.
	GoFunc *HostFunc
}

// HostFunc is a host-supplied implementation of a guest-visible function,
// produced by the reflection-based bridge in host.go from a Go func value.
type HostFunc struct {
	Name string
	// Go is the adapter closure that calls the Go func via reflection; see host.go.
	Go GoFunc
}

// GoFunc is the uniform call convention a bound host function is
// translated into: a stack of uint64-encoded values in, and out.
type GoFunc func(ctx CallContext, stack []uint64) error

// ElementSegment initializes a subrange of a table with function indices.
type ElementSegment struct {
	TableIndex Index
	Offset     *ConstantExpression
	Init       []Index
}

// DataSegment initializes a subrange of linear memory with literal bytes.
type DataSegment struct {
	MemoryIndex Index
	Offset      *ConstantExpression
	Init        []byte
}

// Module is the fully decoded, validated structure of a Wasm binary: one
// slice or pointer per section, using nil/empty to mean "section absent."
type Module struct {
	TypeSection     []*FunctionType
	ImportSection   []*Import
	FunctionSection []Index // type indices, one per locally defined function
	TableSection    *Table
	MemorySection   *Memory
	GlobalSection   []*Global
	ExportSection   []*Export
	StartSection    *Index
	ElementSection  []*ElementSegment
	CodeSection     []*Code
	DataSection     []*DataSegment

	// NameSection carries the optional custom "name" section, preserved
	// for tooling (stat printing, stack traces) but never consulted by
	// decode or execution semantics.
	NameSection *NameSection
}

// NameSection is the subset of the custom "name" section this engine
// preserves: the module's own name and per-function names.
type NameSection struct {
	ModuleName    string
	FunctionNames map[Index]string
}

// AllDeclarations walks the import section and the module's own sections
// to produce the combined function/global/table/memory spaces used to
// validate start/element/data/export indices. A module may declare a
// table or memory via import XOR via its own section, never both; that
// conflict is reported here as an error.
func (m *Module) AllDeclarations() (funcs []Index, globals []*GlobalType, table *Table, memory *Memory, err error) {
	for _, imp := range m.ImportSection {
		switch imp.Type {
		case ExternTypeFunc:
			funcs = append(funcs, imp.DescFunc)
		case ExternTypeGlobal:
			globals = append(globals, imp.DescGlobal)
		case ExternTypeTable:
			if table != nil {
				return nil, nil, nil, nil, fmt.Errorf("multiple tables declared")
			}
			table = imp.DescTable
		case ExternTypeMemory:
			if memory != nil {
				return nil, nil, nil, nil, fmt.Errorf("multiple memories declared")
			}
			memory = imp.DescMem
		}
	}
	funcs = append(funcs, m.FunctionSection...)
	for _, g := range m.GlobalSection {
		globals = append(globals, g.Type)
	}
	if m.TableSection != nil {
		if table != nil {
			return nil, nil, nil, nil, fmt.Errorf("multiple tables declared")
		}
		table = m.TableSection
	}
	if m.MemorySection != nil {
		if memory != nil {
			return nil, nil, nil, nil, fmt.Errorf("multiple memories declared")
		}
		memory = m.MemorySection
	}
	return
}
