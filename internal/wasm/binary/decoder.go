package binary

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/wasmrt/wasmrt/internal/leb128"
	"github.com/wasmrt/wasmrt/internal/wasm"
)

// DecodeModule parses the 8-byte header and every section of a Wasm
// binary into a *wasm.Module, enforcing section ordering, uniqueness, and
// the function/code count invariant.
func DecodeModule(data []byte) (*wasm.Module, error) {
	r := bytes.NewReader(data)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || !bytes.Equal(magic[:], Magic) {
		return nil, &wasm.BadMagicError{Found: magic}
	}
	var ver [4]byte
	if _, err := io.ReadFull(r, ver[:]); err != nil || !bytes.Equal(ver[:], version) {
		return nil, &wasm.BadVersionError{Found: ver}
	}

	m := &wasm.Module{}
	seen := map[byte]bool{}
	prevID := byte(0) // last non-custom section id seen, 0 means "none yet"
	first := true

	for {
		id, err := r.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &wasm.UnexpectedEndError{Context: "section id"}
		}
		if id > SectionIDDataCount {
			return nil, &wasm.UnknownSectionError{ID: id}
		}

		size, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return nil, &wasm.MalformedLeb128Error{Context: "section size", Cause: err}
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, &wasm.UnexpectedEndError{Context: "section body"}
		}
		br := bytes.NewReader(body)

		if id == SectionIDCustom {
			if err := decodeCustomSection(br, m); err != nil {
				return nil, err
			}
			continue
		}

		if seen[id] {
			return nil, &wasm.DuplicateSectionError{ID: id}
		}
		if !first && id <= prevID {
			return nil, &wasm.SectionOrderError{ID: id, PrevID: prevID}
		}
		seen[id] = true
		prevID = id
		first = false

		if err := decodeSection(id, br, m); err != nil {
			return nil, err
		}
		if br.Len() != 0 {
			return nil, &wasm.UnexpectedEndError{Context: "trailing bytes in section body"}
		}
	}

	if len(m.FunctionSection) != len(m.CodeSection) {
		return nil, &wasm.SizeMismatchError{Functions: len(m.FunctionSection), Codes: len(m.CodeSection)}
	}
	if err := checkExportNamesUnique(m.ExportSection); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeSection(id byte, r *bytes.Reader, m *wasm.Module) error {
	switch id {
	case SectionIDType:
		return decodeTypeSection(r, m)
	case SectionIDImport:
		return decodeImportSection(r, m)
	case SectionIDFunction:
		return decodeFunctionSection(r, m)
	case SectionIDTable:
		return decodeTableSection(r, m)
	case SectionIDMemory:
		return decodeMemorySection(r, m)
	case SectionIDGlobal:
		return decodeGlobalSection(r, m)
	case SectionIDExport:
		return decodeExportSection(r, m)
	case SectionIDStart:
		return decodeStartSection(r, m)
	case SectionIDElement:
		return decodeElementSection(r, m)
	case SectionIDCode:
		return decodeCodeSection(r, m)
	case SectionIDData:
		return decodeDataSection(r, m)
	case SectionIDDataCount:
		// The data count section only aids streaming validators; this
		// engine decodes the whole module in memory, so its value is
		// read and discarded.
		_, _, err := leb128.DecodeUint32(r)
		return err
	}
	return &wasm.UnknownSectionError{ID: id}
}

func decodeName(r *bytes.Reader, context string) (string, error) {
	n, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return "", &wasm.MalformedLeb128Error{Context: context, Cause: err}
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", &wasm.UnexpectedEndError{Context: context}
	}
	if !utf8.Valid(buf) {
		return "", &wasm.InvalidUtf8Error{Context: context}
	}
	return string(buf), nil
}

func decodeValueType(r *bytes.Reader) (wasm.ValueType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, &wasm.UnexpectedEndError{Context: "value type"}
	}
	return b, nil
}

func decodeLimits(r *bytes.Reader) (min uint32, max uint32, hasMax bool, err error) {
	flag, ferr := r.ReadByte()
	if ferr != nil {
		return 0, 0, false, &wasm.UnexpectedEndError{Context: "limits flag"}
	}
	min, _, err = leb128.DecodeUint32(r)
	if err != nil {
		return 0, 0, false, &wasm.MalformedLeb128Error{Context: "limits min", Cause: err}
	}
	if flag == 0 {
		return min, 0, false, nil
	}
	max, _, err = leb128.DecodeUint32(r)
	if err != nil {
		return 0, 0, false, &wasm.MalformedLeb128Error{Context: "limits max", Cause: err}
	}
	return min, max, true, nil
}

func decodeFunctionType(r *bytes.Reader) (*wasm.FunctionType, error) {
	form, err := r.ReadByte()
	if err != nil {
		return nil, &wasm.UnexpectedEndError{Context: "functype form"}
	}
	if form != 0x60 {
		return nil, &wasm.InvalidParameterError{Context: "functype form byte"}
	}
	numParams, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, &wasm.MalformedLeb128Error{Context: "functype param count", Cause: err}
	}
	params := make([]wasm.ValueType, numParams)
	for i := range params {
		if params[i], err = decodeValueType(r); err != nil {
			return nil, err
		}
	}
	numResults, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, &wasm.MalformedLeb128Error{Context: "functype result count", Cause: err}
	}
	results := make([]wasm.ValueType, numResults)
	for i := range results {
		if results[i], err = decodeValueType(r); err != nil {
			return nil, err
		}
	}
	return &wasm.FunctionType{Params: params, Results: results}, nil
}

func decodeTypeSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "type section count", Cause: err}
	}
	m.TypeSection = make([]*wasm.FunctionType, count)
	for i := range m.TypeSection {
		ft, err := decodeFunctionType(r)
		if err != nil {
			return err
		}
		m.TypeSection[i] = ft
	}
	return nil
}

func decodeImportSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "import section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		modName, err := decodeName(r, "import module name")
		if err != nil {
			return err
		}
		field, err := decodeName(r, "import field name")
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return &wasm.UnexpectedEndError{Context: "import descriptor kind"}
		}
		imp := &wasm.Import{Type: kind, Module: modName, Name: field}
		switch kind {
		case wasm.ExternTypeFunc:
			idx, _, err := leb128.DecodeUint32(r)
			if err != nil {
				return &wasm.MalformedLeb128Error{Context: "import func type index", Cause: err}
			}
			imp.DescFunc = idx
		case wasm.ExternTypeTable:
			min, max, hasMax, err := decodeLimits(r)
			if err != nil {
				return err
			}
			t := &wasm.Table{Min: min}
			if hasMax {
				t.Max = &max
			}
			imp.DescTable = t
		case wasm.ExternTypeMemory:
			min, max, hasMax, err := decodeLimits(r)
			if err != nil {
				return err
			}
			imp.DescMem = &wasm.Memory{Min: min, Max: max, IsMaxEncoded: hasMax}
		case wasm.ExternTypeGlobal:
			vt, err := decodeValueType(r)
			if err != nil {
				return err
			}
			mutByte, err := r.ReadByte()
			if err != nil {
				return &wasm.UnexpectedEndError{Context: "import global mutability"}
			}
			imp.DescGlobal = &wasm.GlobalType{ValType: vt, Mutable: mutByte != 0}
		default:
			return &wasm.InvalidParameterError{Context: "import descriptor kind"}
		}
		m.ImportSection = append(m.ImportSection, imp)
	}
	return nil
}

func decodeFunctionSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "function section count", Cause: err}
	}
	m.FunctionSection = make([]wasm.Index, count)
	for i := range m.FunctionSection {
		idx, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "function type index", Cause: err}
		}
		m.FunctionSection[i] = idx
	}
	return nil
}

func decodeTableSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "table section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		if _, err := r.ReadByte(); err != nil { // element type, always funcref/externref
			return &wasm.UnexpectedEndError{Context: "table element type"}
		}
		min, max, hasMax, err := decodeLimits(r)
		if err != nil {
			return err
		}
		t := &wasm.Table{Min: min}
		if hasMax {
			t.Max = &max
		}
		m.TableSection = t // MVP allows at most one table section entry
	}
	return nil
}

func decodeMemorySection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "memory section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		min, max, hasMax, err := decodeLimits(r)
		if err != nil {
			return err
		}
		m.MemorySection = &wasm.Memory{Min: min, Max: max, IsMaxEncoded: hasMax}
	}
	return nil
}

func decodeConstantExpression(r *bytes.Reader) (*wasm.ConstantExpression, error) {
	inst, _, err := wasm.DecodeInstruction(r)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch inst.Op {
	case wasm.OpcodeI32Const:
		data = leb128.EncodeInt32(inst.I32)
	case wasm.OpcodeI64Const:
		data = leb128.EncodeInt64(inst.I64)
	case wasm.OpcodeGlobalGet:
		data = leb128.EncodeUint32(inst.Index)
	}
	end, _, err := wasm.DecodeInstruction(r)
	if err != nil {
		return nil, err
	}
	if end.Op != wasm.OpcodeEnd {
		return nil, &wasm.InvalidParameterError{Context: "constant expression terminator"}
	}
	return &wasm.ConstantExpression{Opcode: inst.Op, Data: data}, nil
}

func decodeGlobalSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "global section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		vt, err := decodeValueType(r)
		if err != nil {
			return err
		}
		mutByte, err := r.ReadByte()
		if err != nil {
			return &wasm.UnexpectedEndError{Context: "global mutability"}
		}
		expr, err := decodeConstantExpression(r)
		if err != nil {
			return err
		}
		m.GlobalSection = append(m.GlobalSection, &wasm.Global{
			Type: &wasm.GlobalType{ValType: vt, Mutable: mutByte != 0},
			Init: expr,
		})
	}
	return nil
}

func decodeExportSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "export section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		name, err := decodeName(r, "export name")
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return &wasm.UnexpectedEndError{Context: "export descriptor kind"}
		}
		idx, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "export index", Cause: err}
		}
		m.ExportSection = append(m.ExportSection, &wasm.Export{Type: kind, Name: name, Index: idx})
	}
	return nil
}

func checkExportNamesUnique(exports []*wasm.Export) error {
	seen := make(map[string]bool, len(exports))
	for _, e := range exports {
		if seen[e.Name] {
			return &wasm.InvalidParameterError{Context: "duplicate export name " + e.Name}
		}
		seen[e.Name] = true
	}
	return nil
}

func decodeStartSection(r *bytes.Reader, m *wasm.Module) error {
	idx, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "start section index", Cause: err}
	}
	m.StartSection = &idx
	return nil
}

func decodeElementSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "element section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		tableIdx, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "element table index", Cause: err}
		}
		offset, err := decodeConstantExpression(r)
		if err != nil {
			return err
		}
		n, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "element init count", Cause: err}
		}
		init := make([]wasm.Index, n)
		for j := range init {
			init[j], _, err = leb128.DecodeUint32(r)
			if err != nil {
				return &wasm.MalformedLeb128Error{Context: "element init function index", Cause: err}
			}
		}
		m.ElementSection = append(m.ElementSection, &wasm.ElementSegment{
			TableIndex: tableIdx, Offset: offset, Init: init,
		})
	}
	return nil
}

func decodeCodeSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "code section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		bodySize, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "code body size", Cause: err}
		}
		body := make([]byte, bodySize)
		if _, err := io.ReadFull(r, body); err != nil {
			return &wasm.UnexpectedEndError{Context: "code body"}
		}
		code, err := decodeCode(bytes.NewReader(body))
		if err != nil {
			return err
		}
		m.CodeSection = append(m.CodeSection, code)
	}
	return nil
}

func decodeCode(r *bytes.Reader) (*wasm.Code, error) {
	numLocalGroups, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, &wasm.MalformedLeb128Error{Context: "code local group count", Cause: err}
	}
	var locals []wasm.ValueType
	for i := uint32(0); i < numLocalGroups; i++ {
		n, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return nil, &wasm.MalformedLeb128Error{Context: "code local group count", Cause: err}
		}
		vt, err := decodeValueType(r)
		if err != nil {
			return nil, err
		}
		for j := uint32(0); j < n; j++ {
			locals = append(locals, vt)
		}
	}
	var body []wasm.Instruction
	for {
		inst, _, err := wasm.DecodeInstruction(r)
		if err != nil {
			return nil, err
		}
		body = append(body, inst)
		if inst.Op == wasm.OpcodeEnd && r.Len() == 0 {
			break
		}
	}
	return &wasm.Code{LocalTypes: locals, Body: body}, nil
}

func decodeDataSection(r *bytes.Reader, m *wasm.Module) error {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return &wasm.MalformedLeb128Error{Context: "data section count", Cause: err}
	}
	for i := uint32(0); i < count; i++ {
		memIdx, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "data memory index", Cause: err}
		}
		offset, err := decodeConstantExpression(r)
		if err != nil {
			return err
		}
		n, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "data init length", Cause: err}
		}
		init := make([]byte, n)
		if _, err := io.ReadFull(r, init); err != nil {
			return &wasm.UnexpectedEndError{Context: "data init bytes"}
		}
		m.DataSection = append(m.DataSection, &wasm.DataSegment{MemoryIndex: memIdx, Offset: offset, Init: init})
	}
	return nil
}

func decodeCustomSection(r *bytes.Reader, m *wasm.Module) error {
	name, err := decodeName(r, "custom section name")
	if err != nil {
		return err
	}
	if name != "name" {
		return nil // every other custom section is skipped; its name is not kept
	}
	if m.NameSection != nil {
		return &wasm.InvalidParameterError{Context: "redundant custom section name"}
	}
	ns := &wasm.NameSection{FunctionNames: map[wasm.Index]string{}}
	for r.Len() > 0 {
		subID, err := r.ReadByte()
		if err != nil {
			return &wasm.UnexpectedEndError{Context: "name subsection id"}
		}
		size, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return &wasm.MalformedLeb128Error{Context: "name subsection size", Cause: err}
		}
		sub := make([]byte, size)
		if _, err := io.ReadFull(r, sub); err != nil {
			return &wasm.UnexpectedEndError{Context: "name subsection body"}
		}
		sr := bytes.NewReader(sub)
		switch subID {
		case subsectionIDModuleName:
			n, err := decodeName(sr, "module name")
			if err != nil {
				return err
			}
			ns.ModuleName = n
		case subsectionIDFunctionName:
			count, _, err := leb128.DecodeUint32(sr)
			if err != nil {
				return &wasm.MalformedLeb128Error{Context: "function name count", Cause: err}
			}
			for i := uint32(0); i < count; i++ {
				idx, _, err := leb128.DecodeUint32(sr)
				if err != nil {
					return &wasm.MalformedLeb128Error{Context: "function name index", Cause: err}
				}
				fname, err := decodeName(sr, "function name")
				if err != nil {
					return err
				}
				ns.FunctionNames[idx] = fname
			}
		}
	}
	m.NameSection = ns
	return nil
}
