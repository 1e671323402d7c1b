package wasm

import (
	"bytes"
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
)

func TestDecodeInstructionI32Const(t *testing.T) {
	// i32.const -1; end
	buf := []byte{0x41, 0x7F, 0x0B}
	inst, n, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, OpcodeI32Const, inst.Op)
	require.Equal(t, int32(-1), inst.I32)
	require.Equal(t, uint64(2), n)

	inst2, n2, err := DecodeInstruction(bytes.NewReader(buf[2:]))
	require.NoError(t, err)
	require.Equal(t, OpcodeEnd, inst2.Op)
	require.Equal(t, uint64(1), n2)
}

func TestDecodeInstructionMemoryCopy(t *testing.T) {
	// prefix 0xFC, trailing 10 (memory.copy), dst memidx 0x00, src memidx 0x00
	buf := []byte{0xFC, 0x0A, 0x00, 0x00}
	inst, n, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, OpcodeMemoryCopy, inst.Op)
	require.Equal(t, Index(0), inst.Index)
	require.Equal(t, Index(0), inst.Index2)
	require.Equal(t, uint64(4), n)
}

func TestDecodeInstructionUnknownLeading(t *testing.T) {
	_, _, err := DecodeInstruction(bytes.NewReader([]byte{0xEE}))
	require.Error(t, err)
	ibe, ok := err.(*InvalidBytecodeError)
	require.True(t, ok)
	require.Equal(t, byte(0xEE), ibe.Leading)
}

func TestDecodeInstructionUnknownPrefixed(t *testing.T) {
	_, _, err := DecodeInstruction(bytes.NewReader([]byte{0xFC, 0x63}))
	require.Error(t, err)
	ibe2, ok := err.(*InvalidBytecode2Error)
	require.True(t, ok)
	require.Equal(t, byte(0xFC), ibe2.Leading)
	require.Equal(t, uint32(0x63), ibe2.Trailing)
}

func TestDecodeInstructionBlock(t *testing.T) {
	// block (empty) ... end
	buf := []byte{0x02, 0x40}
	inst, n, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, OpcodeBlock, inst.Op)
	require.True(t, inst.Block.Empty)
	require.Equal(t, uint64(2), n)
}

func TestDecodeInstructionBlockValueType(t *testing.T) {
	// block (result i32)
	buf := []byte{0x02, 0x7F}
	inst, _, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, ValueTypeI32, inst.Block.ValType)
}

func TestDecodeInstructionBlockTypeIndex(t *testing.T) {
	// block (type 5)
	buf := []byte{0x02, 0x05}
	inst, _, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, Index(5), inst.Block.TypeIndex)
}

func TestDecodeInstructionBrTable(t *testing.T) {
	// br_table with 2 labels [1, 2] and default 3
	buf := []byte{0x0E, 0x02, 0x01, 0x02, 0x03}
	inst, n, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, OpcodeBrTable, inst.Op)
	require.Equal(t, []Index{1, 2}, inst.BranchTable.Labels)
	require.Equal(t, Index(3), inst.BranchTable.Default)
	require.Equal(t, uint64(5), n)
}

func TestDecodeInstructionMemArg(t *testing.T) {
	// i32.load align=2 offset=4
	buf := []byte{0x28, 0x02, 0x04}
	inst, _, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, OpcodeI32Load, inst.Op)
	require.Equal(t, uint32(2), inst.MemArg.Align)
	require.Equal(t, uint32(4), inst.MemArg.Offset)
}

func TestDecodeInstructionCallIndirect(t *testing.T) {
	buf := []byte{0x11, 0x03, 0x00}
	inst, _, err := DecodeInstruction(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, OpcodeCallIndirect, inst.Op)
	require.Equal(t, Index(3), inst.Index)
	require.Equal(t, Index(0), inst.Index2)
}

func TestLoadInstructionMatchesDecode(t *testing.T) {
	buf := []byte{0x41, 0x7F}
	inst, n, err := LoadInstruction(buf)
	require.NoError(t, err)
	require.Equal(t, OpcodeI32Const, inst.Op)
	require.Equal(t, uint64(2), n)
}
