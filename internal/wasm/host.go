package wasm

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

// GuestInstance is a reserved host-function parameter type: a Go
// function that declares a leading GuestInstance parameter receives the
// calling module's instance by reference. It is never consumed from the
// guest argument stack and contributes nothing to the bound function's
// canonical signature.
type GuestInstance struct {
	*ModuleInstance
}

var (
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
	contextType       = reflect.TypeOf((*context.Context)(nil)).Elem()
	guestInstanceType = reflect.TypeOf(GuestInstance{})
)

// BindHostFunc builds the declared FunctionType and the HostFunc adapter
// for a Go function value, following these reflection rules:
//
//   - a leading context.Context parameter receives the call's Context()
//   - a leading GuestInstance parameter receives the calling instance
//   - string parameters are declared on the guest side as a (base u32,
//     len u32) pair and marshaled from guest memory as UTF-8
//   - every other parameter or result must be int32/uint32/bool (all
//     declared as i32; bool is 0 or 1)/int64/float32/float64
//   - a trailing error result is folded into Invoke's error return rather
//     than appearing in the declared FunctionType
func BindHostFunc(name string, fn interface{}) (*FunctionType, *HostFunc, error) {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, nil, fmt.Errorf("bindhostfunc %s: not a function", name)
	}

	offset := 0
	hasContext, hasInstance := false, false
	if ft.NumIn() > offset && ft.In(offset) == contextType {
		hasContext = true
		offset++
	}
	if ft.NumIn() > offset && ft.In(offset) == guestInstanceType {
		hasInstance = true
		offset++
	}

	var paramKinds []reflect.Kind
	var wasmParams []ValueType
	for i := offset; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		switch pt.Kind() {
		case reflect.Int32, reflect.Uint32, reflect.Bool:
			wasmParams = append(wasmParams, ValueTypeI32)
		case reflect.Int64:
			wasmParams = append(wasmParams, ValueTypeI64)
		case reflect.Float32:
			wasmParams = append(wasmParams, ValueTypeF32)
		case reflect.Float64:
			wasmParams = append(wasmParams, ValueTypeF64)
		case reflect.String:
			wasmParams = append(wasmParams, ValueTypeI32, ValueTypeI32) // base, len
		default:
			return nil, nil, fmt.Errorf("bindhostfunc %s: unsupported parameter type %s", name, pt)
		}
		paramKinds = append(paramKinds, pt.Kind())
	}

	hasErrorResult := ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errorType
	numValueResults := ft.NumOut()
	if hasErrorResult {
		numValueResults--
	}
	if numValueResults > 1 {
		return nil, nil, fmt.Errorf("bindhostfunc %s: at most one non-error result is supported", name)
	}

	var wasmResults []ValueType
	var resultKind reflect.Kind
	if numValueResults == 1 {
		rt := ft.Out(0)
		resultKind = rt.Kind()
		switch resultKind {
		case reflect.Int32, reflect.Uint32, reflect.Bool:
			wasmResults = append(wasmResults, ValueTypeI32)
		case reflect.Int64:
			wasmResults = append(wasmResults, ValueTypeI64)
		case reflect.Float32:
			wasmResults = append(wasmResults, ValueTypeF32)
		case reflect.Float64:
			wasmResults = append(wasmResults, ValueTypeF64)
		default:
			return nil, nil, fmt.Errorf("bindhostfunc %s: unsupported result type %s", name, rt)
		}
	}

	declared := &FunctionType{Params: wasmParams, Results: wasmResults}
	adapter := makeHostAdapter(name, fv, offset, hasContext, hasInstance, paramKinds, hasErrorResult, resultKind)
	return declared, &HostFunc{Name: name, Go: adapter}, nil
}

// makeHostAdapter returns the per-operation __env_{name} adapter: it
// pops and decodes each guest-facing argument off stack, invokes fn, and
// writes any single result back into stack[0].
func makeHostAdapter(
	name string,
	fv reflect.Value,
	offset int,
	hasContext, hasInstance bool,
	paramKinds []reflect.Kind,
	hasErrorResult bool,
	resultKind reflect.Kind,
) GoFunc {
	return func(cc CallContext, stack []uint64) error {
		callArgs := make([]reflect.Value, 0, offset+len(paramKinds))
		if hasContext {
			callArgs = append(callArgs, reflect.ValueOf(cc.Context()))
		}
		if hasInstance {
			callArgs = append(callArgs, reflect.ValueOf(GuestInstance{cc.Module}))
		}

		pos := 0
		for _, kind := range paramKinds {
			switch kind {
			case reflect.Int32:
				callArgs = append(callArgs, reflect.ValueOf(int32(uint32(stack[pos]))))
				pos++
			case reflect.Uint32:
				callArgs = append(callArgs, reflect.ValueOf(uint32(stack[pos])))
				pos++
			case reflect.Bool:
				callArgs = append(callArgs, reflect.ValueOf(uint32(stack[pos]) != 0))
				pos++
			case reflect.Int64:
				callArgs = append(callArgs, reflect.ValueOf(int64(stack[pos])))
				pos++
			case reflect.Float32:
				callArgs = append(callArgs, reflect.ValueOf(math.Float32frombits(uint32(stack[pos]))))
				pos++
			case reflect.Float64:
				callArgs = append(callArgs, reflect.ValueOf(math.Float64frombits(stack[pos])))
				pos++
			case reflect.String:
				base, length := uint32(stack[pos]), uint32(stack[pos+1])
				pos += 2
				mem := cc.Memory()
				if mem == nil {
					return &InvalidParameterError{Context: name + ": no memory to read string argument from"}
				}
				raw, err := mem.ReadSlice(base, length)
				if err != nil {
					return &InvalidParameterError{Context: name + ": string argument out of bounds"}
				}
				if !utf8.Valid(raw) {
					return &InvalidParameterError{Context: name + ": string argument is not valid UTF-8"}
				}
				callArgs = append(callArgs, reflect.ValueOf(string(raw)))
			}
		}

		results := fv.Call(callArgs)
		if hasErrorResult {
			if errVal, _ := results[len(results)-1].Interface().(error); errVal != nil {
				return errVal
			}
			results = results[:len(results)-1]
		}
		if len(results) != 1 {
			return nil
		}
		switch resultKind {
		case reflect.Int32:
			stack[0] = uint64(uint32(results[0].Int()))
		case reflect.Uint32:
			stack[0] = results[0].Uint()
		case reflect.Bool:
			stack[0] = 0
			if results[0].Bool() {
				stack[0] = 1
			}
		case reflect.Int64:
			stack[0] = uint64(results[0].Int())
		case reflect.Float32:
			stack[0] = uint64(math.Float32bits(float32(results[0].Float())))
		case reflect.Float64:
			stack[0] = math.Float64bits(results[0].Float())
		}
		return nil
	}
}

// boundHostFunc pairs a host-bound function's declared signature with the
// FunctionInstance the resolver hands back on a successful match.
type boundHostFunc struct {
	declared *FunctionType
	instance *FunctionInstance
}

// HostModule is a named collection of host functions exposed under one
// import module name, implementing Resolver against that fixed set.
type HostModule struct {
	Name  string
	funcs map[string]*boundHostFunc
}

// NewHostModule creates an empty host module bound under the given import
// module name.
func NewHostModule(name string) *HostModule {
	return &HostModule{Name: name, funcs: map[string]*boundHostFunc{}}
}

// ExportFunc binds fn under fieldName using BindHostFunc and registers it
// for resolution.
func (h *HostModule) ExportFunc(fieldName string, fn interface{}) error {
	declared, hf, err := BindHostFunc(fieldName, fn)
	if err != nil {
		return err
	}
	fi := &FunctionInstance{Type: declared, Code: &Code{GoFunc: hf}}
	h.funcs[fieldName] = &boundHostFunc{declared: declared, instance: fi}
	return nil
}

// Lookup returns the FunctionInstance bound under fieldName, for callers that already know they're talking to this
// specific HostModule and don't need Resolve's signature check.
func (h *HostModule) Lookup(fieldName string) (*FunctionInstance, bool) {
	bound, ok := h.funcs[fieldName]
	if !ok {
		return nil, false
	}
	return bound.instance, true
}

// Resolve implements Resolver: it rejects any module name other than
// h.Name with ResolutionNoModule, then dispatches fieldName and compares
// canonical signatures, matching a host function by (name, canonical
// signature).
func (h *HostModule) Resolve(moduleName, fieldName string, declared *FunctionType) Resolution {
	if moduleName != h.Name {
		return Resolution{Kind: ResolutionNoModule}
	}
	bound, ok := h.funcs[fieldName]
	if !ok {
		return Resolution{Kind: ResolutionNoMethod}
	}
	if !bound.declared.EqualsSignature(declared) {
		return Resolution{Kind: ResolutionSignatureMismatch, Func: bound.instance}
	}
	return Resolution{Kind: ResolutionOk, Func: bound.instance}
}
