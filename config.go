package wazero

import (
	"github.com/wasmrt/wasmrt/internal/wasm"
)

// RuntimeConfig controls Runtime behavior, with the default implementation as NewRuntimeConfig.
type RuntimeConfig struct {
	enabledFeatures wasm.Features
	memoryMaxPages  uint32
}

// NewRuntimeConfig returns a RuntimeConfig with the WebAssembly 1.0 (20191205) feature set enabled and no memory
// page ceiling beyond what the format itself allows.
func NewRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		enabledFeatures: wasm.Features20191205,
		memoryMaxPages:  wasm.MemoryMaxPages,
	}
}

func (c *RuntimeConfig) clone() *RuntimeConfig {
	ret := *c
	return &ret
}

// WithMemoryMaxPages reduces the maximum number of pages a module can define from 65536 pages (4GiB) to a lower
// value.
//
// Notes:
//   - CompileModule rejects a module whose memory min, or encoded max, exceeds this. A module that encodes no max
//     is checked on its min only.
//   - This is checked at compile time only: "memory.grow" at runtime is bounded by the module's own max (if any)
//     and by wasm.MemoryMaxPages, not by this value.
func (c *RuntimeConfig) WithMemoryMaxPages(memoryMaxPages uint32) *RuntimeConfig {
	ret := c.clone()
	ret.memoryMaxPages = memoryMaxPages
	return ret
}

// WithCoreFeatures replaces the enabled feature/proposal set outright. Use wasm.Features20191205 or
// wasm.Features20220419, or build a custom set with wasm.Features.Set.
//
// A module using an opcode whose proposal is not in this set fails CompileModule with a FeatureDisabledError, even
// though the decoder itself accepts every catalog opcode unconditionally.
func (c *RuntimeConfig) WithCoreFeatures(features wasm.Features) *RuntimeConfig {
	ret := c.clone()
	ret.enabledFeatures = features
	return ret
}

// ModuleConfig configures the name a guest module is instantiated under; a host module is registered under its
// HostModuleBuilder name instead. Fields here are deliberately narrower than a general-purpose host ABI (stdio, environment variables, a
// filesystem) because this engine does not implement WASI or any other ABI convention; callers needing one bind it
// themselves through NewHostModuleBuilder.
type ModuleConfig struct {
	name string
}

// NewModuleConfig returns a ModuleConfig with no name override: InstantiateModule defaults to the name decoded from
// the module's custom "name" section, or "" if it declared none.
func NewModuleConfig() *ModuleConfig {
	return &ModuleConfig{}
}

// WithName overrides the name InstantiateModule registers this instance under.
func (c *ModuleConfig) WithName(name string) *ModuleConfig {
	ret := *c
	ret.name = name
	return &ret
}

