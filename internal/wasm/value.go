package wasm

// ValueType is the runtime representation of a Wasm value's static type.
type ValueType = byte

const (
	ValueTypeI32       ValueType = 0x7f
	ValueTypeI64       ValueType = 0x7e
	ValueTypeF32       ValueType = 0x7d
	ValueTypeF64       ValueType = 0x7c
	ValueTypeFuncref   ValueType = 0x70
	ValueTypeExternref ValueType = 0x6f
)

// ValueTypeName returns the human-readable name of a ValueType.
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeFuncref:
		return "funcref"
	case ValueTypeExternref:
		return "externref"
	default:
		return "unknown"
	}
}

// ExternType classifies one of the four kinds an import or export may bind.
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// ExternTypeName returns the human-readable name of an ExternType.
func ExternTypeName(t ExternType) string {
	switch t {
	case ExternTypeFunc:
		return "func"
	case ExternTypeTable:
		return "table"
	case ExternTypeMemory:
		return "memory"
	case ExternTypeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Index is a zero-based index into one of a module's spaces (functions,
// tables, memories, globals, types).
type Index = uint32

// FunctionType is a pair of parameter and result value-type sequences.
type FunctionType struct {
	Params, Results []ValueType
}

// String returns the canonical signature string: the result character
// followed directly by one character per parameter, each one of i/l/f/d,
// with 'v' standing in for an absent result or absent parameters. This is
// the key host functions are dispatched by.
func (f *FunctionType) String() string {
	b := make([]byte, 0, 1+len(f.Params))
	if len(f.Results) == 0 {
		b = append(b, 'v')
	} else {
		for _, r := range f.Results {
			b = append(b, signatureChar(r))
		}
	}
	if len(f.Params) == 0 {
		b = append(b, 'v')
	} else {
		for _, p := range f.Params {
			b = append(b, signatureChar(p))
		}
	}
	return string(b)
}

func signatureChar(t ValueType) byte {
	switch t {
	case ValueTypeI32:
		return 'i'
	case ValueTypeI64:
		return 'l'
	case ValueTypeF32:
		return 'f'
	case ValueTypeF64:
		return 'd'
	default:
		return '_'
	}
}

// EqualsSignature reports whether f and other have the same canonical
// signature string, the compatibility check used at import-bind time.
func (f *FunctionType) EqualsSignature(other *FunctionType) bool {
	return f.String() == other.String()
}

// MemoryMaxPages is the largest number of 64KiB pages a 32-bit linear
// memory can address.
const MemoryMaxPages uint32 = 65536

// MemoryPageSize is the number of bytes in one linear-memory page.
const MemoryPageSize uint32 = 65536

// Limits bounds the size of a table or memory: a minimum and an optional
// maximum, both in the unit appropriate to the owner (pages for memory,
// elements for table).
type Limits struct {
	Min uint32
	Max *uint32
}
