// Package binary implements decoding of the Wasm binary format: a byte
// stream into *wasm.Module. It has no encoder.
package binary

// Magic is the 4-byte preamble every Wasm binary starts with.
var Magic = []byte{0x00, 0x61, 0x73, 0x6d} // "\0asm"

// version is the only binary format version this decoder accepts.
var version = []byte{0x01, 0x00, 0x00, 0x00}

// Section ids, in the ascending order the decoder requires of them.
const (
	SectionIDCustom = iota
	SectionIDType
	SectionIDImport
	SectionIDFunction
	SectionIDTable
	SectionIDMemory
	SectionIDGlobal
	SectionIDExport
	SectionIDStart
	SectionIDElement
	SectionIDCode
	SectionIDData
	SectionIDDataCount
)

const (
	subsectionIDModuleName   = 0
	subsectionIDFunctionName = 1
)
