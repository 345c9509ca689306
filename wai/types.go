package wai

import (
	"strings"

	"github.com/singlestore-labs/to-wit/errors"
)

// Kind is the discriminated kind tag of a TypeDef.
type Kind int

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindU64
	KindS8
	KindS16
	KindS32
	KindS64
	KindF32
	KindF64
	KindChar  // unicode scalar, 4 bytes
	KindCChar // C narrow character, 1 byte
	KindUsize // pointer-width unsigned integer
	KindRecord
	KindVariant
	KindList
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindS8:
		return "s8"
	case KindS16:
		return "s16"
	case KindS32:
		return "s32"
	case KindS64:
		return "s64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindChar:
		return "char"
	case KindCChar:
		return "cchar"
	case KindUsize:
		return "usize"
	case KindRecord:
		return "record"
	case KindVariant:
		return "variant"
	case KindList:
		return "list"
	case KindAlias:
		return "alias"
	}
	return "unknown"
}

// IsPrimitive reports whether k is a leaf kind with no child types.
func (k Kind) IsPrimitive() bool {
	return k < KindRecord
}

// RecordShape distinguishes how a record was declared.
type RecordShape int

const (
	RecordPlain RecordShape = iota
	RecordTuple             // anonymous positional fields
	RecordFlags             // all fields boolean
)

// VariantShape distinguishes how a variant was declared.
type VariantShape int

const (
	VariantPlain VariantShape = iota
	VariantBool                 // exactly false/true, no payloads
	VariantEnum                 // payload-less cases only
	VariantOption               // none | some(T)
	VariantExpected             // ok(T) | err(E)
)

// Field is a named record field.
type Field struct {
	Name string
	Type *TypeDef
}

// Case is a variant case; Type is nil for payload-less cases.
type Case struct {
	Name string
	Type *TypeDef
}

// TypeDef is one node of the type graph. Anonymous types have an empty name.
// TypeDefs are immutable once reachable from an Interface.
type TypeDef struct {
	name         string
	fields       []Field
	cases        []Case
	elem         *TypeDef
	target       *TypeDef
	kind         Kind
	recordShape  RecordShape
	variantShape VariantShape
}

// Name returns the declared name, or "" for anonymous types.
func (t *TypeDef) Name() string { return t.name }

// Kind returns the kind tag.
func (t *TypeDef) Kind() Kind { return t.kind }

func (t *TypeDef) wrongKind(accessor string) error {
	return errors.WrongKind(t.name, accessor, t.kind.String())
}

// Fields returns a record's fields in declaration order.
// The returned slice is shared and must not be modified.
func (t *TypeDef) Fields() ([]Field, error) {
	if t.kind != KindRecord {
		return nil, t.wrongKind("Fields")
	}
	return t.fields, nil
}

// Cases returns a variant's cases in declaration order.
// The returned slice is shared and must not be modified.
func (t *TypeDef) Cases() ([]Case, error) {
	if t.kind != KindVariant {
		return nil, t.wrongKind("Cases")
	}
	return t.cases, nil
}

// Elem returns a list's element type.
func (t *TypeDef) Elem() (*TypeDef, error) {
	if t.kind != KindList {
		return nil, t.wrongKind("Elem")
	}
	return t.elem, nil
}

// Target returns an alias's referenced type.
func (t *TypeDef) Target() (*TypeDef, error) {
	if t.kind != KindAlias {
		return nil, t.wrongKind("Target")
	}
	return t.target, nil
}

// Despell follows alias links to the underlying definition. Layout and
// lowering treat aliases as transparent; Despell never returns an alias.
func (t *TypeDef) Despell() *TypeDef {
	for t.kind == KindAlias {
		t = t.target
	}
	return t
}

// DiscriminantWidth returns the byte width of a variant's discriminant: the
// smallest power-of-two width whose unsigned range covers the case count,
// minimum one byte.
func (t *TypeDef) DiscriminantWidth() (uint32, error) {
	if t.kind != KindVariant {
		return 0, t.wrongKind("DiscriminantWidth")
	}
	n := len(t.cases)
	switch {
	case n <= 1<<8:
		return 1, nil
	case n <= 1<<16:
		return 2, nil
	default:
		return 4, nil
	}
}

// Sub-kind probes. Each is false on types of any other kind.

func (t *TypeDef) IsTuple() bool {
	return t.kind == KindRecord && t.recordShape == RecordTuple
}

func (t *TypeDef) IsFlags() bool {
	return t.kind == KindRecord && t.recordShape == RecordFlags
}

func (t *TypeDef) IsBool() bool {
	return t.kind == KindVariant && t.variantShape == VariantBool
}

func (t *TypeDef) IsEnum() bool {
	return t.kind == KindVariant && t.variantShape == VariantEnum
}

func (t *TypeDef) IsOption() bool {
	return t.kind == KindVariant && t.variantShape == VariantOption
}

func (t *TypeDef) IsExpected() bool {
	return t.kind == KindVariant && t.variantShape == VariantExpected
}

// String renders a display name: the declared name when present, otherwise a
// structural spelling. Recursion stops at named types, so cycles through
// lists terminate.
func (t *TypeDef) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.name != "" {
		return t.name
	}
	switch t.kind {
	case KindRecord:
		switch t.recordShape {
		case RecordTuple:
			parts := make([]string, len(t.fields))
			for i, f := range t.fields {
				parts[i] = f.Type.String()
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		case RecordFlags:
			return "flags"
		}
		return "record"
	case KindVariant:
		switch t.variantShape {
		case VariantBool:
			return "bool"
		case VariantOption:
			return "option<" + t.cases[1].Type.String() + ">"
		case VariantExpected:
			return "expected<" + caseTypeString(t.cases[0]) + ", " + caseTypeString(t.cases[1]) + ">"
		case VariantEnum:
			return "enum"
		}
		return "variant"
	case KindList:
		if t.elem != nil && t.elem.kind == KindChar {
			return "string"
		}
		return "list<" + t.elem.String() + ">"
	case KindAlias:
		return t.target.String()
	}
	return t.kind.String()
}

func caseTypeString(c Case) string {
	if c.Type == nil {
		return "_"
	}
	return c.Type.String()
}

// Constructors. Parsing goes through these; they are exported so consumers
// can assemble graphs programmatically (the only way to obtain usize or
// cchar nodes, which have no source spelling).

// NewPrimitive creates a primitive TypeDef.
// It panics if k is not a primitive kind: that is a programming error, not
// an input error.
func NewPrimitive(k Kind) *TypeDef {
	if !k.IsPrimitive() {
		panic("wai: NewPrimitive called with composite kind " + k.String())
	}
	return &TypeDef{kind: k}
}

// NewRecord creates a named record. Field names must be unique.
func NewRecord(name string, fields []Field) (*TypeDef, error) {
	if err := checkFieldNames(name, fields); err != nil {
		return nil, err
	}
	return &TypeDef{name: name, kind: KindRecord, fields: fields}, nil
}

// NewTuple creates a record with anonymous positional fields named by index.
func NewTuple(name string, elems []*TypeDef) *TypeDef {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Name: tupleFieldName(i), Type: e}
	}
	return &TypeDef{name: name, kind: KindRecord, recordShape: RecordTuple, fields: fields}
}

// NewFlags creates a record of boolean fields with the flags shape.
func NewFlags(name string, flagNames []string) (*TypeDef, error) {
	fields := make([]Field, len(flagNames))
	for i, n := range flagNames {
		fields[i] = Field{Name: n, Type: NewBool()}
	}
	if err := checkFieldNames(name, fields); err != nil {
		return nil, err
	}
	return &TypeDef{name: name, kind: KindRecord, recordShape: RecordFlags, fields: fields}, nil
}

// NewVariant creates a named variant. Case names must be unique and at least
// one case is required.
func NewVariant(name string, cases []Case) (*TypeDef, error) {
	if len(cases) == 0 {
		return nil, errors.InvalidArgument(errors.PhaseResolve, "variant %q has no cases", name)
	}
	if err := checkCaseNames(name, cases); err != nil {
		return nil, err
	}
	return &TypeDef{name: name, kind: KindVariant, cases: cases, variantShape: inferVariantShape(cases)}, nil
}

// inferVariantShape recognizes the well-known shapes structurally, so a
// hand-written variant with ok/err cases probes the same as one spelled
// with the expected<...> sugar.
func inferVariantShape(cases []Case) VariantShape {
	if len(cases) == 2 {
		a, b := cases[0], cases[1]
		if a.Name == "false" && b.Name == "true" && a.Type == nil && b.Type == nil {
			return VariantBool
		}
		if a.Name == "none" && b.Name == "some" && a.Type == nil {
			return VariantOption
		}
		if a.Name == "ok" && (b.Name == "err" || b.Name == "error") {
			return VariantExpected
		}
	}
	for _, c := range cases {
		if c.Type != nil {
			return VariantPlain
		}
	}
	return VariantEnum
}

// NewEnum creates a variant of payload-less cases with the enum shape.
func NewEnum(name string, caseNames []string) (*TypeDef, error) {
	cases := make([]Case, len(caseNames))
	for i, n := range caseNames {
		cases[i] = Case{Name: n}
	}
	td, err := NewVariant(name, cases)
	if err != nil {
		return nil, err
	}
	td.variantShape = VariantEnum
	return td, nil
}

// NewBool creates the two-case boolean variant.
func NewBool() *TypeDef {
	return &TypeDef{
		kind:         KindVariant,
		variantShape: VariantBool,
		cases:        []Case{{Name: "false"}, {Name: "true"}},
	}
}

// NewOption creates the none/some variant around a payload type.
func NewOption(some *TypeDef) *TypeDef {
	return &TypeDef{
		kind:         KindVariant,
		variantShape: VariantOption,
		cases:        []Case{{Name: "none"}, {Name: "some", Type: some}},
	}
}

// NewExpected creates the ok/err variant. Either payload may be nil.
func NewExpected(ok, errPayload *TypeDef) *TypeDef {
	return &TypeDef{
		kind:         KindVariant,
		variantShape: VariantExpected,
		cases:        []Case{{Name: "ok", Type: ok}, {Name: "err", Type: errPayload}},
	}
}

// NewList creates a list of elem.
func NewList(elem *TypeDef) *TypeDef {
	return &TypeDef{kind: KindList, elem: elem}
}

// NewString creates the string type, an anonymous list of char.
func NewString() *TypeDef {
	return NewList(NewPrimitive(KindChar))
}

// NewAlias creates a named alias of target. Aliases are transparent for
// layout and lowering but keep their name for display.
func NewAlias(name string, target *TypeDef) *TypeDef {
	return &TypeDef{name: name, kind: KindAlias, target: target}
}

func tupleFieldName(i int) string {
	// positional fields are named by index, as witx2 does
	if i < 10 {
		return string(rune('0' + i))
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func checkFieldNames(typeName string, fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return errors.New(errors.PhaseResolve, errors.KindDuplicate).
				WitType(typeName).
				Detail("field %q declared twice", f.Name).
				Build()
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func checkCaseNames(typeName string, cases []Case) error {
	seen := make(map[string]struct{}, len(cases))
	for _, c := range cases {
		if _, dup := seen[c.Name]; dup {
			return errors.New(errors.PhaseResolve, errors.KindDuplicate).
				WitType(typeName).
				Detail("case %q declared twice", c.Name).
				Build()
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
