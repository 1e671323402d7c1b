package wasm

import (
	"context"
	"fmt"
)

// FunctionInstance is a function in the post-instantiation function space:
// either a guest function (Code.Body set) or a host function bound by the
// bridge generator (Code.GoFunc set).
type FunctionInstance struct {
	Type   *FunctionType
	Code   *Code
	Module *ModuleInstance
}

// GlobalInstance is a global variable's runtime storage: its static type
// plus a current value, stored as raw bits reinterpreted per Type.ValType.
type GlobalInstance struct {
	Type *GlobalType
	Val  uint64
}

// ModuleInstance is the runtime result of instantiating a Module against a
// Resolver: its function/global/table/memory spaces, each combining
// resolved imports with local declarations in index order, plus the
// export name table.
type ModuleInstance struct {
	Name      string
	Types     []*FunctionType
	Functions []*FunctionInstance
	Globals   []*GlobalInstance
	Memory    *MemoryInstance
	Table     []int64 // function index per table slot, -1 for a null entry
	Exports   map[string]*Export
}

// ExportedFunction looks up a function export by name, failing with
// NoMethodError if the export does not exist or does not name a function.
func (m *ModuleInstance) ExportedFunction(name string) (*FunctionInstance, error) {
	exp, ok := m.Exports[name]
	if !ok || exp.Type != ExternTypeFunc {
		return nil, &NoMethodError{Name: name}
	}
	if int(exp.Index) >= len(m.Functions) {
		return nil, &NoMethodError{Name: name}
	}
	return m.Functions[exp.Index], nil
}

// ExportedMemory returns the module's exported memory by name, failing
// with NoMethodError if the name is not a memory export.
func (m *ModuleInstance) ExportedMemory(name string) (*MemoryInstance, error) {
	exp, ok := m.Exports[name]
	if !ok || exp.Type != ExternTypeMemory {
		return nil, &NoMethodError{Name: name}
	}
	return m.Memory, nil
}

// CallContext is the per-call environment threaded through a host
// function's Go implementation: a cancellable context, the instance that
// owns the call, and the memory visible to it. Memory is split out from
// Module so that WithMemory can cheaply substitute a caller's memory
// without copying the whole instance.
type CallContext struct {
	ctx    context.Context
	Module *ModuleInstance
	memory *MemoryInstance
}

// NewCallContext builds the call environment for an invocation against mod.
// A nil ctx defaults to context.Background, matching the teacher's
// ModuleContext convention of never carrying a nil context past construction.
func NewCallContext(ctx context.Context, mod *ModuleInstance) *CallContext {
	if ctx == nil {
		ctx = context.Background()
	}
	var mem *MemoryInstance
	if mod != nil {
		mem = mod.Memory
	}
	return &CallContext{ctx: ctx, Module: mod, memory: mem}
}

// Context returns the call's cancellation/deadline context.
func (c *CallContext) Context() context.Context { return c.ctx }

// Memory returns the memory visible to this call, which may differ from
// c.Module.Memory after WithMemory substitutes it.
func (c *CallContext) Memory() *MemoryInstance { return c.memory }

// WithMemory returns a CallContext that reports mem from Memory, leaving c
// unmodified. It returns c itself, not a copy, when mem is nil or already
// the current memory.
func (c *CallContext) WithMemory(mem *MemoryInstance) *CallContext {
	if mem == nil || mem == c.memory {
		return c
	}
	cp := *c
	cp.memory = mem
	return &cp
}

// WithContext returns a CallContext that reports ctx from Context, leaving
// c unmodified. It returns c itself when ctx is nil or already current.
func (c *CallContext) WithContext(ctx context.Context) *CallContext {
	if ctx == nil || ctx == c.ctx {
		return c
	}
	cp := *c
	cp.ctx = ctx
	return &cp
}

func (c *CallContext) String() string {
	if c.Module == nil {
		return "Module[]"
	}
	return fmt.Sprintf("Module[%s]", c.Module.Name)
}
