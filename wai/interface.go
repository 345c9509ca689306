package wai

import (
	"github.com/singlestore-labs/to-wit/errors"
)

// Param is a named function parameter.
type Param struct {
	Name string
	Type *TypeDef
}

// Function is one exported function: a unique name, ordered parameters and
// an optional result. Functions are created during parse and immutable
// afterwards.
type Function struct {
	name   string
	params []Param
	result *TypeDef
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// Params returns the parameters in declaration order.
// The returned slice is shared and must not be modified.
func (f *Function) Params() []Param { return f.params }

// Result returns the result type, or nil for a void function.
func (f *Function) Result() *TypeDef { return f.result }

// Interface is one parsed unit: the type graph and the function table.
type Interface struct {
	typesByName map[string]*TypeDef
	funcsByName map[string]*Function
	types       []*TypeDef
	funcs       []*Function
}

// NumFuncs returns the number of functions in declaration order.
func (i *Interface) NumFuncs() int { return len(i.funcs) }

// Func returns the function at a zero-based declaration index.
func (i *Interface) Func(idx int) (*Function, error) {
	if idx < 0 || idx >= len(i.funcs) {
		return nil, errors.OutOfBounds(errors.PhaseQuery, []string{"functions"}, idx, len(i.funcs))
	}
	return i.funcs[idx], nil
}

// FuncByName returns the function with the given name. The lookup is exact
// and case-sensitive; a miss is a recoverable not_found error.
func (i *Interface) FuncByName(name string) (*Function, error) {
	if f, ok := i.funcsByName[name]; ok {
		return f, nil
	}
	return nil, errors.NotFound("function", name)
}

// NumTypes returns the number of named type definitions.
func (i *Interface) NumTypes() int { return len(i.types) }

// Type returns the named type at a zero-based declaration index.
func (i *Interface) Type(idx int) (*TypeDef, error) {
	if idx < 0 || idx >= len(i.types) {
		return nil, errors.OutOfBounds(errors.PhaseQuery, []string{"types"}, idx, len(i.types))
	}
	return i.types[idx], nil
}

// TypeByName returns the named type definition for name.
func (i *Interface) TypeByName(name string) (*TypeDef, error) {
	if t, ok := i.typesByName[name]; ok {
		return t, nil
	}
	return nil, errors.NotFound("type", name)
}
