// Package features parses the WASMRTFEATURES environment variable into the proposal bits CompileModule gates on,
// for hosts that want to opt into post-MVP proposals without a RuntimeConfig.WithCoreFeatures call in source.
package features

import (
	"os"
	"strings"

	"github.com/wasmrt/wasmrt/internal/wasm"
)

// EnvVarName is the name of the environment variable which contains the comma-separated list of proposal names to
// enable, e.g. "sign-extension-ops,multi-value". Names match wasm.ProposalTag.String().
const EnvVarName = "WASMRTFEATURES"

// FromEnvironment returns base with every recognized proposal named in the WASMRTFEATURES environment variable
// added. Unrecognized names are ignored, matching the permissive behavior hosts expect from an env-driven toggle.
func FromEnvironment(base wasm.Features) wasm.Features {
	return FromNames(base, strings.Split(os.Getenv(EnvVarName), ","))
}

// FromNames returns base with every proposal in names added, skipping blank and unrecognized entries.
func FromNames(base wasm.Features, names []string) wasm.Features {
	enabled := base
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if p, ok := lookup(name); ok {
			enabled = enabled.Set(p, true)
		}
	}
	return enabled
}

func lookup(name string) (wasm.ProposalTag, bool) {
	for _, p := range wasm.SortedProposals() {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}
