package wasm

// ResolutionKind classifies the outcome of resolving one import against a
// host environment.
type ResolutionKind byte

const (
	ResolutionOk ResolutionKind = iota
	ResolutionNoModule
	ResolutionNoMethod
	ResolutionSignatureMismatch
)

// Resolution is what a Resolver returns for a single function import.
// Func is populated whenever the host found a binding for (moduleName,
// fieldName) at all, even on ResolutionSignatureMismatch, so the caller can
// report what was actually found alongside what was declared.
type Resolution struct {
	Kind ResolutionKind
	Func *FunctionInstance
}

// Resolver is implemented by the host embedding this engine to satisfy a
// module's function imports. Table, memory and global imports are not
// brokered through Resolver, and Instantiate creates no runtime state for
// them: they stay as decoded in the import section and are otherwise
// ignored.
type Resolver interface {
	Resolve(moduleName, fieldName string, declared *FunctionType) Resolution
}

// resolveImports walks m's import section, resolving each function import
// against resolver and producing NoModuleError, UnknownImportError, or
// IncompatibleImportError as appropriate.
func resolveImports(m *Module, resolver Resolver) ([]*FunctionInstance, error) {
	var resolved []*FunctionInstance
	for _, imp := range m.ImportSection {
		if imp.Type != ExternTypeFunc {
			continue
		}
		if imp.DescFunc >= uint32(len(m.TypeSection)) {
			return nil, &InvalidParameterError{Context: "import function type index"}
		}
		declared := m.TypeSection[imp.DescFunc]

		res := resolver.Resolve(imp.Module, imp.Name, declared)
		switch res.Kind {
		case ResolutionOk:
			resolved = append(resolved, res.Func)
		case ResolutionNoModule:
			return nil, &NoModuleError{Module: imp.Module}
		case ResolutionNoMethod:
			return nil, &UnknownImportError{Module: imp.Module, Field: imp.Name}
		case ResolutionSignatureMismatch:
			found := "<nil>"
			if res.Func != nil {
				found = res.Func.Type.String()
			}
			return nil, &IncompatibleImportError{
				Module: imp.Module, Field: imp.Name,
				Expected: declared.String(), Found: found,
			}
		default:
			return nil, &UnknownImportError{Module: imp.Module, Field: imp.Name}
		}
	}
	return resolved, nil
}
