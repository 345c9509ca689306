// Package ast holds the syntactic form of an interface description, as
// produced by the parser and before name resolution.
package ast

// TypeExprKind discriminates TypeExpr payloads.
type TypeExprKind int

const (
	ExprPrim TypeExprKind = iota
	ExprNamed
	ExprList
	ExprOption
	ExprExpected
	ExprTuple
	ExprString
	ExprBool
)

// Prim is a primitive type spelled directly in source.
type Prim int

const (
	U8 Prim = iota
	U16
	U32
	U64
	S8
	S16
	S32
	S64
	F32
	F64
	Char
)

// TypeExpr is a type use site. Exactly one payload is meaningful per Kind:
// Prim for ExprPrim, Name for ExprNamed, Args[0] for ExprList/ExprOption,
// Args[0:2] for ExprExpected (nil entry means no payload), Args for ExprTuple.
type TypeExpr struct {
	Name string
	Args []*TypeExpr
	Prim Prim
	Kind TypeExprKind
	Line int
}

// Field is a named record field or function parameter.
type Field struct {
	Name string
	Type *TypeExpr
	Line int
}

// Case is a variant case with an optional payload.
type Case struct {
	Name string
	Type *TypeExpr // nil for payload-less cases
	Line int
}

// DeclKind discriminates top-level declarations.
type DeclKind int

const (
	DeclRecord DeclKind = iota
	DeclVariant
	DeclEnum
	DeclFlags
	DeclAlias
	DeclFunc
)

// Decl is a top-level declaration in source order.
type Decl struct {
	Name   string
	Fields []Field // record fields or function params
	Cases  []Case  // variant cases; enum/flags names carried as payload-less cases
	Type   *TypeExpr
	Result *TypeExpr // function result, nil for void
	Kind   DeclKind
	Line   int
}

// Unit is one parsed source unit.
type Unit struct {
	Decls []Decl
}
