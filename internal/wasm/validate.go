package wasm

// ValidateFeatures walks every guest function body decoded into m and
// rejects any instruction whose catalog entry belongs to a proposal not
// enabled in enabled. This is the compile-time half of feature gating:
// the decoder accepts every catalog opcode regardless of feature set,
// and CompileModule calls this afterward so an unimplemented or
// deliberately disabled proposal fails fast with a named proposal
// rather than decoding silently into something the engine cannot honor.
func ValidateFeatures(m *Module, enabled Features) error {
	for _, c := range m.CodeSection {
		if c.GoFunc != nil {
			continue
		}
		for _, inst := range c.Body {
			info, ok := LookupOpcode(inst.Op)
			if !ok {
				continue
			}
			if err := enabled.RequireEnabled(info.Proposal); err != nil {
				return err
			}
		}
	}
	return nil
}

// LookupOpcode returns the catalog entry for op. Opcode values are dense
// indices into opcodeCatalog, so this is a direct slice access guarded
// against out-of-range values from corrupt or hand-built instructions.
func LookupOpcode(op Opcode) (OpcodeInfo, bool) {
	if int(op) < 0 || int(op) >= len(opcodeCatalog) {
		return OpcodeInfo{}, false
	}
	return opcodeCatalog[op], true
}

// ValidateIndices checks every cross-reference a decoded module makes into
// its own combined function/global/table/memory spaces: the start
// function (if any), each element segment's function indices, each data
// segment's target memory, and every export. This runs before
// instantiation so a module with a dangling or out-of-range index is
// rejected at compile time rather than faulted on first use.
func ValidateIndices(m *Module) error {
	funcs, globals, table, memory, err := m.AllDeclarations()
	if err != nil {
		return &InvalidParameterError{Context: err.Error()}
	}

	if m.StartSection != nil {
		idx := *m.StartSection
		if idx >= uint32(len(funcs)) {
			return &InvalidParameterError{Context: "start function index out of range"}
		}
		typeIdx := funcs[idx]
		if typeIdx >= uint32(len(m.TypeSection)) {
			return &InvalidParameterError{Context: "start function type index out of range"}
		}
		ft := m.TypeSection[typeIdx]
		if len(ft.Params) != 0 || len(ft.Results) != 0 {
			return &InvalidParameterError{Context: "start function must take no parameters and return no results"}
		}
	}

	for _, seg := range m.ElementSection {
		if table == nil {
			return &InvalidParameterError{Context: "element segment declared with no table"}
		}
		for _, fnIdx := range seg.Init {
			if fnIdx >= uint32(len(funcs)) {
				return &InvalidParameterError{Context: "element segment function index out of range"}
			}
		}
	}

	if memory == nil {
		for range m.DataSection {
			return &InvalidParameterError{Context: "data segment declared with no memory"}
		}
	}

	for _, exp := range m.ExportSection {
		switch exp.Type {
		case ExternTypeFunc:
			if exp.Index >= uint32(len(funcs)) {
				return &InvalidParameterError{Context: "export function index out of range"}
			}
		case ExternTypeGlobal:
			if exp.Index >= uint32(len(globals)) {
				return &InvalidParameterError{Context: "export global index out of range"}
			}
		case ExternTypeTable:
			if table == nil || exp.Index != 0 {
				return &InvalidParameterError{Context: "export table index out of range"}
			}
		case ExternTypeMemory:
			if memory == nil || exp.Index != 0 {
				return &InvalidParameterError{Context: "export memory index out of range"}
			}
		}
	}
	return nil
}
