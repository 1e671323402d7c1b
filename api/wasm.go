// Package api includes constants and interfaces used by both end-users and internal implementations.
package api

import (
	"context"
	"fmt"
	"math"
)

// ExternType classifies imports and exports with their respective types.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#external-types%E2%91%A0
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// The below are exported to consolidate parsing behavior for external types.
const (
	ExternTypeFuncName   = "func"
	ExternTypeTableName  = "table"
	ExternTypeMemoryName = "memory"
	ExternTypeGlobalName = "global"
)

// ExternTypeName returns the name of the WebAssembly 1.0 (20191205) Text Format field of the given type.
func ExternTypeName(et ExternType) string {
	switch et {
	case ExternTypeFunc:
		return ExternTypeFuncName
	case ExternTypeTable:
		return ExternTypeTableName
	case ExternTypeMemory:
		return ExternTypeMemoryName
	case ExternTypeGlobal:
		return ExternTypeGlobalName
	}
	return fmt.Sprintf("%#x", et)
}

// ValueType describes a numeric type used by a function signature or global. Function parameters and results are
// only definable as a value type.
//
// The following describes how to convert between Wasm and Go types:
//
//   - ValueTypeI32 - uint64(uint32,int32)
//   - ValueTypeI64 - uint64(int64)
//   - ValueTypeF32 - EncodeF32/DecodeF32 from float32
//   - ValueTypeF64 - EncodeF64/DecodeF64 from float64
//
// Note: This is a type alias as it is easier to encode and decode in the binary format.
type ValueType = byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

// ValueTypeName returns the type name of the given ValueType as it appears in the WebAssembly text format.
//
// Note: This returns "unknown" if an undefined ValueType value is passed.
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
	}
	return "unknown"
}

// Module is functions, memory and other state exported from an instantiated module, after Runtime.InstantiateModule.
//
// # Notes
//
//   - Closing the wazero.Runtime closes any Module it instantiated.
//   - This is an interface for decoupling, not third-party implementations. All implementations are in wazero.
type Module interface {
	fmt.Stringer

	// Name is the name this module was instantiated with.
	Name() string

	// Memory returns the memory defined in this module, or nil if it declares none.
	Memory() Memory

	// ExportedFunction returns a function exported from this module, or nil if it wasn't.
	ExportedFunction(name string) Function

	// ExportedMemory returns the memory exported from this module under name, or nil if it wasn't.
	ExportedMemory(name string) Memory

	// Close releases resources owned by this module, making its name available again in the owning Runtime.
	Close(ctx context.Context) error
}

// Function is a WebAssembly function exported from an instantiated module (wazero.Runtime InstantiateModule).
type Function interface {
	// ParamTypes are the possibly empty sequence of value types accepted by this function.
	ParamTypes() []ValueType

	// ResultTypes are the possibly empty sequence of value types returned by this function.
	ResultTypes() []ValueType

	// Call invokes the function with parameters encoded according to ParamTypes. Up to one result is returned,
	// encoded according to ResultTypes. An error is returned for any failure looking up or invoking the function,
	// including a signature mismatch, or a call into a guest function body this engine does not execute.
	Call(ctx context.Context, params ...uint64) ([]uint64, error)
}

// Memory allows restricted access to a module's linear memory. Notably, this does not allow growing from the host
// side beyond what Grow exposes.
//
// # Notes
//
//   - This includes all value types available in WebAssembly 1.0 (20191205), and all are encoded little-endian.
//   - This is an interface for decoupling, not third-party implementations. All implementations are in wazero.
type Memory interface {
	// Size returns the size in bytes available. Ex. If the underlying memory has 1 page: 65536
	Size() uint32

	// Grow increases memory by the delta in pages (65536 bytes per page). The return value is the previous memory
	// size in pages, or false if the delta was ignored as it exceeds the memory's max.
	Grow(deltaPages uint32) (previousPages uint32, ok bool)

	// ReadUint32Le reads a uint32 in little-endian encoding from the underlying buffer at the offset, or false if
	// out of range.
	ReadUint32Le(offset uint32) (uint32, bool)

	// ReadUint64Le reads a uint64 in little-endian encoding from the underlying buffer at the offset, or false if
	// out of range.
	ReadUint64Le(offset uint32) (uint64, bool)

	// Read reads byteCount bytes from the underlying buffer at the offset, or false if out of range.
	//
	// This returns a copy of the underlying memory, not a view: writes to the returned slice are not visible to
	// Wasm, and later writes to memory are not reflected in it.
	Read(offset, byteCount uint32) ([]byte, bool)

	// WriteUint32Le writes v in little-endian encoding to the underlying buffer at the offset, or false if out of
	// range.
	WriteUint32Le(offset uint32, v uint32) bool

	// WriteUint64Le writes v in little-endian encoding to the underlying buffer at the offset, or false if out of
	// range.
	WriteUint64Le(offset uint32, v uint64) bool

	// Write writes v to the underlying buffer at the offset, or false if out of range.
	Write(offset uint32, v []byte) bool
}

// EncodeI32 encodes the input as a ValueTypeI32.
func EncodeI32(input int32) uint64 {
	return uint64(uint32(input))
}

// EncodeI64 encodes the input as a ValueTypeI64.
func EncodeI64(input int64) uint64 {
	return uint64(input)
}

// EncodeF32 encodes the input as a ValueTypeF32.
//
// See DecodeF32
func EncodeF32(input float32) uint64 {
	return uint64(math.Float32bits(input))
}

// DecodeF32 decodes the input as a ValueTypeF32.
//
// See EncodeF32
func DecodeF32(input uint64) float32 {
	return math.Float32frombits(uint32(input))
}

// EncodeF64 encodes the input as a ValueTypeF64.
//
// See DecodeF64
func EncodeF64(input float64) uint64 {
	return math.Float64bits(input)
}

// DecodeF64 decodes the input as a ValueTypeF64.
//
// See EncodeF64
func DecodeF64(input uint64) float64 {
	return math.Float64frombits(input)
}
