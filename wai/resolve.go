package wai

import (
	"github.com/singlestore-labs/to-wit/errors"
	"github.com/singlestore-labs/to-wit/wai/internal/ast"
)

// buildInterface lowers a syntactic unit into the type graph and function
// table. Resolution is two-pass: named declarations are registered first so
// later passes can resolve forward references, then payloads are filled and
// the graph is checked for value-containment cycles.
func buildInterface(unit *ast.Unit) (*Interface, error) {
	iface := &Interface{
		typesByName: make(map[string]*TypeDef),
		funcsByName: make(map[string]*Function),
	}

	// Pass 1: register named types.
	for _, decl := range unit.Decls {
		if decl.Kind == ast.DeclFunc {
			continue
		}
		if _, dup := iface.typesByName[decl.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseResolve, "type", decl.Name)
		}
		td := &TypeDef{name: decl.Name}
		iface.typesByName[decl.Name] = td
		iface.types = append(iface.types, td)
	}

	// Pass 2: fill payloads.
	for _, decl := range unit.Decls {
		if decl.Kind == ast.DeclFunc {
			continue
		}
		if err := fillType(iface, iface.typesByName[decl.Name], decl); err != nil {
			return nil, err
		}
	}

	// Pass 3: functions.
	for _, decl := range unit.Decls {
		if decl.Kind != ast.DeclFunc {
			continue
		}
		if _, dup := iface.funcsByName[decl.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseResolve, "function", decl.Name)
		}
		fn := &Function{name: decl.Name}
		for _, p := range decl.Fields {
			pt, err := lowerType(iface, p.Type)
			if err != nil {
				return nil, err
			}
			fn.params = append(fn.params, Param{Name: p.Name, Type: pt})
		}
		if decl.Result != nil {
			rt, err := lowerType(iface, decl.Result)
			if err != nil {
				return nil, err
			}
			fn.result = rt
		}
		iface.funcsByName[decl.Name] = fn
		iface.funcs = append(iface.funcs, fn)
	}

	if err := checkCycles(iface); err != nil {
		return nil, err
	}
	return iface, nil
}

func fillType(iface *Interface, td *TypeDef, decl ast.Decl) error {
	switch decl.Kind {
	case ast.DeclRecord:
		td.kind = KindRecord
		for _, f := range decl.Fields {
			ft, err := lowerType(iface, f.Type)
			if err != nil {
				return err
			}
			td.fields = append(td.fields, Field{Name: f.Name, Type: ft})
		}
		return checkFieldNames(td.name, td.fields)

	case ast.DeclVariant:
		td.kind = KindVariant
		for _, c := range decl.Cases {
			cs := Case{Name: c.Name}
			if c.Type != nil {
				ct, err := lowerType(iface, c.Type)
				if err != nil {
					return err
				}
				cs.Type = ct
			}
			td.cases = append(td.cases, cs)
		}
		td.variantShape = inferVariantShape(td.cases)
		return checkCaseNames(td.name, td.cases)

	case ast.DeclEnum:
		td.kind = KindVariant
		td.variantShape = VariantEnum
		for _, c := range decl.Cases {
			td.cases = append(td.cases, Case{Name: c.Name})
		}
		return checkCaseNames(td.name, td.cases)

	case ast.DeclFlags:
		td.kind = KindRecord
		td.recordShape = RecordFlags
		for _, c := range decl.Cases {
			td.fields = append(td.fields, Field{Name: c.Name, Type: NewBool()})
		}
		return checkFieldNames(td.name, td.fields)

	case ast.DeclAlias:
		td.kind = KindAlias
		target, err := lowerType(iface, decl.Type)
		if err != nil {
			return err
		}
		td.target = target
		return nil
	}
	return errors.InvalidArgument(errors.PhaseResolve, "unexpected declaration kind %d", decl.Kind)
}

var primKinds = map[ast.Prim]Kind{
	ast.U8:   KindU8,
	ast.U16:  KindU16,
	ast.U32:  KindU32,
	ast.U64:  KindU64,
	ast.S8:   KindS8,
	ast.S16:  KindS16,
	ast.S32:  KindS32,
	ast.S64:  KindS64,
	ast.F32:  KindF32,
	ast.F64:  KindF64,
	ast.Char: KindChar,
}

// lowerType converts a type expression into a graph node. Named references
// resolve against the unit's declarations; anything else builds an
// anonymous node.
func lowerType(iface *Interface, expr *ast.TypeExpr) (*TypeDef, error) {
	switch expr.Kind {
	case ast.ExprPrim:
		return NewPrimitive(primKinds[expr.Prim]), nil

	case ast.ExprString:
		return NewString(), nil

	case ast.ExprBool:
		return NewBool(), nil

	case ast.ExprNamed:
		td, ok := iface.typesByName[expr.Name]
		if !ok {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnresolved).
				WitType(expr.Name).
				Line(expr.Line).
				Detail("reference to undefined type").
				Build()
		}
		return td, nil

	case ast.ExprList:
		elem, err := lowerType(iface, expr.Args[0])
		if err != nil {
			return nil, err
		}
		return NewList(elem), nil

	case ast.ExprOption:
		some, err := lowerType(iface, expr.Args[0])
		if err != nil {
			return nil, err
		}
		return NewOption(some), nil

	case ast.ExprExpected:
		var ok, errPayload *TypeDef
		var err error
		if expr.Args[0] != nil {
			if ok, err = lowerType(iface, expr.Args[0]); err != nil {
				return nil, err
			}
		}
		if expr.Args[1] != nil {
			if errPayload, err = lowerType(iface, expr.Args[1]); err != nil {
				return nil, err
			}
		}
		return NewExpected(ok, errPayload), nil

	case ast.ExprTuple:
		elems := make([]*TypeDef, len(expr.Args))
		for i, a := range expr.Args {
			e, err := lowerType(iface, a)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return NewTuple("", elems), nil
	}
	return nil, errors.InvalidArgument(errors.PhaseResolve, "unexpected type expression kind %d", expr.Kind)
}

// checkCycles rejects value-containment cycles. Edges are record fields,
// variant payloads and alias targets; a list is indirect storage and does
// not propagate containment. Running this once at construction is what
// makes plain recursion safe everywhere else.
func checkCycles(iface *Interface) error {
	const (
		white = 0 // unvisited
		grey  = 1 // on the current path
		black = 2 // fully explored
	)
	color := make(map[*TypeDef]int)
	var path []string

	var visit func(t *TypeDef) error
	visit = func(t *TypeDef) error {
		if t == nil {
			return nil
		}
		switch color[t] {
		case black:
			return nil
		case grey:
			return errors.Cyclic(append(append([]string{}, path...), t.name))
		}
		color[t] = grey
		if t.name != "" {
			path = append(path, t.name)
		}

		var err error
		switch t.kind {
		case KindRecord:
			for _, f := range t.fields {
				if err = visit(f.Type); err != nil {
					return err
				}
			}
		case KindVariant:
			for _, c := range t.cases {
				if err = visit(c.Type); err != nil {
					return err
				}
			}
		case KindAlias:
			if err = visit(t.target); err != nil {
				return err
			}
		}

		if t.name != "" {
			path = path[:len(path)-1]
		}
		color[t] = black
		return nil
	}

	for _, t := range iface.types {
		if err := visit(t); err != nil {
			return err
		}
	}
	return nil
}
