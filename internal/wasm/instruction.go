package wasm

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/wasmrt/wasmrt/internal/leb128"
)

// OperandKind classifies how Decode must parse the bytes following an
// opcode's leading (and, for prefixed opcodes, trailing) byte.
type OperandKind byte

const (
	OperandNone OperandKind = iota
	OperandIndex
	OperandBlockType
	OperandBranchTable
	OperandMemArg
	OperandI32
	OperandI64
	OperandF32
	OperandF64
	OperandRefType
	OperandMemIdxZero
)

// BlockType is the decoded form of a block/loop/if header: either an empty
// signature, a single value-typed signature, or a reference to a
// multi-value function type.
type BlockType struct {
	Empty     bool
	ValType   ValueType
	TypeIndex Index
}

// BranchTable is the decoded operand of br_table: zero or more label
// indices plus the mandatory default label.
type BranchTable struct {
	Labels  []Index
	Default Index
}

// MemArg is the decoded (align, offset) pair carried by every memory
// load/store instruction.
type MemArg struct {
	Align  uint32
	Offset uint32
}

// Instruction is a single decoded bytecode instruction. Rather than one Go
// type per opcode, every instruction shares this shape; Op selects which
// fields the catalog populated, matching the catalog-driven decode loop
// below instead of a hand-written case per opcode.
type Instruction struct {
	Op Opcode

	Index, Index2 Index
	I32           int32
	I64           int64
	F32           uint32 // raw IEEE-754 bits
	F64           uint64 // raw IEEE-754 bits
	Block         BlockType
	BranchTable   BranchTable
	MemArg        MemArg
	RefType       ValueType
}

var (
	leadingIndex   map[byte]int
	prefixedIndex  map[[2]uint32]int
)

func init() {
	leadingIndex = make(map[byte]int, len(opcodeCatalog))
	prefixedIndex = make(map[[2]uint32]int)
	for i, info := range opcodeCatalog {
		if info.HasTrailing {
			prefixedIndex[[2]uint32{uint32(info.Leading), info.Trailing}] = i
		} else {
			leadingIndex[info.Leading] = i
		}
	}
}

// DecodeInstruction reads one instruction from r, following the standard
// Wasm encoding: a leading byte selects either a direct catalog entry or, for
// the 0xFC/0xFD prefix bytes, a further unsigned LEB128 trailing code that
// together select the entry. It returns the instruction, the number of
// bytes consumed, and an error naming the offending byte(s) if no catalog
// entry matches.
func DecodeInstruction(r io.Reader) (Instruction, uint64, error) {
	var lead [1]byte
	if _, err := io.ReadFull(r, lead[:]); err != nil {
		return Instruction{}, 0, &UnexpectedEndError{Context: "instruction opcode"}
	}
	consumed := uint64(1)
	leading := lead[0]

	var info OpcodeInfo
	switch leading {
	case 0xFC, 0xFD:
		trailing, n, err := leb128.DecodeUint32(r)
		consumed += n
		if err != nil {
			return Instruction{}, consumed, &MalformedLeb128Error{Context: "prefixed opcode trailing code", Cause: err}
		}
		idx, ok := prefixedIndex[[2]uint32{uint32(leading), trailing}]
		if !ok {
			return Instruction{}, consumed, &InvalidBytecode2Error{Leading: leading, Trailing: trailing}
		}
		info = opcodeCatalog[idx]
	default:
		idx, ok := leadingIndex[leading]
		if !ok {
			return Instruction{}, consumed, &InvalidBytecodeError{Leading: leading}
		}
		info = opcodeCatalog[idx]
	}

	inst := Instruction{Op: info.Op}
	indexSlot := 0
	for _, kind := range info.Operands {
		switch kind {
		case OperandNone:
			continue
		case OperandIndex, OperandMemIdxZero:
			v, n, err := leb128.DecodeUint32(r)
			consumed += n
			if err != nil {
				return Instruction{}, consumed, &MalformedLeb128Error{Context: info.Mnemonic + " index operand", Cause: err}
			}
			if indexSlot == 0 {
				inst.Index = v
			} else {
				inst.Index2 = v
			}
			indexSlot++
		case OperandBlockType:
			bt, n, err := decodeBlockType(r)
			consumed += n
			if err != nil {
				return Instruction{}, consumed, err
			}
			inst.Block = bt
		case OperandBranchTable:
			bt, n, err := decodeBranchTable(r)
			consumed += n
			if err != nil {
				return Instruction{}, consumed, err
			}
			inst.BranchTable = bt
		case OperandMemArg:
			ma, n, err := decodeMemArg(r)
			consumed += n
			if err != nil {
				return Instruction{}, consumed, err
			}
			inst.MemArg = ma
		case OperandI32:
			v, n, err := leb128.DecodeInt32(r)
			consumed += n
			if err != nil {
				return Instruction{}, consumed, &MalformedLeb128Error{Context: info.Mnemonic + " i32 operand", Cause: err}
			}
			inst.I32 = v
		case OperandI64:
			v, n, err := leb128.DecodeInt64(r)
			consumed += n
			if err != nil {
				return Instruction{}, consumed, &MalformedLeb128Error{Context: info.Mnemonic + " i64 operand", Cause: err}
			}
			inst.I64 = v
		case OperandF32:
			var buf [4]byte
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return Instruction{}, consumed, &UnexpectedEndError{Context: info.Mnemonic + " f32 operand"}
			}
			consumed += 4
			inst.F32 = binary.LittleEndian.Uint32(buf[:])
		case OperandF64:
			var buf [8]byte
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return Instruction{}, consumed, &UnexpectedEndError{Context: info.Mnemonic + " f64 operand"}
			}
			consumed += 8
			inst.F64 = binary.LittleEndian.Uint64(buf[:])
		case OperandRefType:
			var buf [1]byte
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return Instruction{}, consumed, &UnexpectedEndError{Context: info.Mnemonic + " reftype operand"}
			}
			consumed++
			inst.RefType = buf[0]
		}
	}
	return inst, consumed, nil
}

// LoadInstruction is the []byte-buffer counterpart of DecodeInstruction,
// following the leb128 package's Load/Decode dual-surface convention.
func LoadInstruction(buf []byte) (Instruction, uint64, error) {
	return DecodeInstruction(bytes.NewReader(buf))
}

// blockTypeEmpty is the sentinel s33 value (-64, wire byte 0x40) meaning
// "no parameters, no results."
const blockTypeEmpty = -64

func decodeBlockType(r io.Reader) (BlockType, uint64, error) {
	val, n, err := leb128.DecodeInt33AsInt64(r)
	if err != nil {
		return BlockType{}, n, &MalformedLeb128Error{Context: "block type", Cause: err}
	}
	if val == blockTypeEmpty {
		return BlockType{Empty: true}, n, nil
	}
	if val < 0 {
		// Single value-typed block: the wire byte is the value type's own
		// encoding, recovered from its negative LEB128 representation.
		return BlockType{ValType: byte(val + 0x80)}, n, nil
	}
	return BlockType{TypeIndex: Index(val)}, n, nil
}

func decodeBranchTable(r io.Reader) (BranchTable, uint64, error) {
	count, consumed, err := leb128.DecodeUint32(r)
	if err != nil {
		return BranchTable{}, consumed, &MalformedLeb128Error{Context: "br_table count", Cause: err}
	}
	labels := make([]Index, count)
	for i := range labels {
		v, n, err := leb128.DecodeUint32(r)
		consumed += n
		if err != nil {
			return BranchTable{}, consumed, &MalformedLeb128Error{Context: "br_table label", Cause: err}
		}
		labels[i] = v
	}
	def, n, err := leb128.DecodeUint32(r)
	consumed += n
	if err != nil {
		return BranchTable{}, consumed, &MalformedLeb128Error{Context: "br_table default label", Cause: err}
	}
	return BranchTable{Labels: labels, Default: def}, consumed, nil
}

func decodeMemArg(r io.Reader) (MemArg, uint64, error) {
	align, n1, err := leb128.DecodeUint32(r)
	if err != nil {
		return MemArg{}, n1, &MalformedLeb128Error{Context: "memarg align", Cause: err}
	}
	offset, n2, err := leb128.DecodeUint32(r)
	if err != nil {
		return MemArg{}, n1 + n2, &MalformedLeb128Error{Context: "memarg offset", Cause: err}
	}
	return MemArg{Align: align, Offset: offset}, n1 + n2, nil
}
