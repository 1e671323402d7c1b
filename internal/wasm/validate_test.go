package wasm

import (
	"errors"
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
)

func TestLookupOpcode(t *testing.T) {
	info, ok := LookupOpcode(OpcodeI32Const)
	require.True(t, ok)
	require.Equal(t, "i32.const", info.Mnemonic)

	_, ok = LookupOpcode(Opcode(0xffff))
	require.False(t, ok)
}

func moduleWithBody(body []Instruction) *Module {
	return &Module{
		TypeSection:     []*FunctionType{{}},
		FunctionSection: []Index{0},
		CodeSection:     []*Code{{Body: body}},
	}
}

func TestValidateFeaturesAcceptsMvp(t *testing.T) {
	m := moduleWithBody([]Instruction{{Op: OpcodeI32Const}, {Op: OpcodeEnd}})
	require.NoError(t, ValidateFeatures(m, Features20191205))
}

func TestValidateFeaturesRejectsDisabledProposal(t *testing.T) {
	m := moduleWithBody([]Instruction{{Op: OpcodeI32Extend8S}, {Op: OpcodeEnd}})
	err := ValidateFeatures(m, Features20191205)
	require.Error(t, err)
	var fe *FeatureDisabledError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, ProposalSignExtension, fe.Proposal)
}

func TestValidateFeaturesAllowsEnabledProposal(t *testing.T) {
	m := moduleWithBody([]Instruction{{Op: OpcodeI32Extend8S}, {Op: OpcodeEnd}})
	enabled := Features20191205.Set(ProposalSignExtension, true)
	require.NoError(t, ValidateFeatures(m, enabled))
}

func TestValidateFeaturesSkipsHostFunctions(t *testing.T) {
	m := &Module{
		CodeSection: []*Code{{GoFunc: &HostFunc{Go: func(cc CallContext, stack []uint64) error { return nil }}}},
	}
	require.NoError(t, ValidateFeatures(m, Features20191205))
}
