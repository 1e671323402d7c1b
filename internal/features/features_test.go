package features_test

import (
	"os"
	"testing"

	"github.com/wasmrt/wasmrt/internal/features"
	"github.com/wasmrt/wasmrt/internal/testing/require"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

func TestFromNamesEnablesRecognizedProposals(t *testing.T) {
	enabled := features.FromNames(wasm.Features20191205, []string{"sign-extension-ops", " multi-value "})
	require.True(t, enabled.HasProposal(wasm.ProposalSignExtension))
	require.True(t, enabled.HasProposal(wasm.ProposalMultiValue))
	require.False(t, enabled.HasProposal(wasm.ProposalSimd))
}

func TestFromNamesIgnoresBlankAndUnrecognized(t *testing.T) {
	enabled := features.FromNames(wasm.Features20191205, []string{"", "  ", "not-a-real-proposal"})
	require.Equal(t, wasm.Features20191205, enabled)
}

func TestFromEnvironmentReadsEnvVar(t *testing.T) {
	old, had := os.LookupEnv(features.EnvVarName)
	require.NoError(t, os.Setenv(features.EnvVarName, "simd,threads"))
	defer func() {
		if had {
			os.Setenv(features.EnvVarName, old)
		} else {
			os.Unsetenv(features.EnvVarName)
		}
	}()

	enabled := features.FromEnvironment(wasm.Features20191205)
	require.True(t, enabled.HasProposal(wasm.ProposalSimd))
	require.True(t, enabled.HasProposal(wasm.ProposalThreads))
}

func TestFromEnvironmentUnsetLeavesBaseUnchanged(t *testing.T) {
	old, had := os.LookupEnv(features.EnvVarName)
	require.NoError(t, os.Unsetenv(features.EnvVarName))
	defer func() {
		if had {
			os.Setenv(features.EnvVarName, old)
		}
	}()

	require.Equal(t, wasm.Features20191205, features.FromEnvironment(wasm.Features20191205))
}
