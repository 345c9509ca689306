package wai

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindU8, "u8"},
		{KindS64, "s64"},
		{KindF64, "f64"},
		{KindChar, "char"},
		{KindCChar, "cchar"},
		{KindUsize, "usize"},
		{KindRecord, "record"},
		{KindVariant, "variant"},
		{KindList, "list"},
		{KindAlias, "alias"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestIsPrimitive(t *testing.T) {
	if !KindU8.IsPrimitive() || !KindUsize.IsPrimitive() {
		t.Error("primitive kinds not recognized")
	}
	if KindRecord.IsPrimitive() || KindAlias.IsPrimitive() {
		t.Error("composite kinds misclassified")
	}
}

func TestWrongKindAccessors(t *testing.T) {
	prim := NewPrimitive(KindU8)

	if _, err := prim.Fields(); err == nil {
		t.Error("Fields on u8 should fail")
	}
	if _, err := prim.Cases(); err == nil {
		t.Error("Cases on u8 should fail")
	}
	if _, err := prim.Elem(); err == nil {
		t.Error("Elem on u8 should fail")
	}
	if _, err := prim.Target(); err == nil {
		t.Error("Target on u8 should fail")
	}
	if _, err := prim.DiscriminantWidth(); err == nil {
		t.Error("DiscriminantWidth on u8 should fail")
	}
}

func TestNewPrimitivePanicsOnComposite(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewPrimitive(KindRecord)
}

func TestNewVariantRejectsEmpty(t *testing.T) {
	if _, err := NewVariant("v", nil); err == nil {
		t.Error("empty variant accepted")
	}
}

func TestDespell(t *testing.T) {
	base := NewPrimitive(KindU64)
	a := NewAlias("a", base)
	b := NewAlias("b", a)

	if b.Despell() != base {
		t.Error("Despell did not reach the base type")
	}
	if base.Despell() != base {
		t.Error("Despell changed a non-alias")
	}
}

func TestDiscriminantWidth(t *testing.T) {
	mk := func(n int) *TypeDef {
		cases := make([]Case, n)
		for i := range cases {
			cases[i] = Case{Name: tupleFieldName(i)}
		}
		td, err := NewVariant("v", cases)
		if err != nil {
			t.Fatalf("NewVariant: %v", err)
		}
		return td
	}

	tests := []struct {
		cases int
		want  uint32
	}{
		{1, 1},
		{256, 1},
		{257, 2},
		{65536, 2},
		{65537, 4},
	}
	for _, tc := range tests {
		got, err := mk(tc.cases).DiscriminantWidth()
		if err != nil {
			t.Fatalf("DiscriminantWidth: %v", err)
		}
		if got != tc.want {
			t.Errorf("%d cases: got %d, want %d", tc.cases, got, tc.want)
		}
	}
}

func TestShapeProbesExclusive(t *testing.T) {
	opt := NewOption(NewPrimitive(KindU8))
	if !opt.IsOption() {
		t.Error("option probe failed")
	}
	if opt.IsBool() || opt.IsEnum() || opt.IsExpected() || opt.IsTuple() || opt.IsFlags() {
		t.Error("option matched another probe")
	}

	tup := NewTuple("", []*TypeDef{NewPrimitive(KindU8)})
	if !tup.IsTuple() || tup.IsFlags() || tup.IsOption() {
		t.Error("tuple probes wrong")
	}
}

func TestTupleFieldNames(t *testing.T) {
	elems := make([]*TypeDef, 12)
	for i := range elems {
		elems[i] = NewPrimitive(KindU8)
	}
	tup := NewTuple("", elems)
	fields, err := tup.Fields()
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if fields[0].Name != "0" || fields[9].Name != "9" || fields[11].Name != "11" {
		t.Errorf("names: %q %q %q", fields[0].Name, fields[9].Name, fields[11].Name)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *TypeDef
		want string
	}{
		{NewPrimitive(KindU8), "u8"},
		{NewString(), "string"},
		{NewBool(), "bool"},
		{NewList(NewPrimitive(KindU32)), "list<u32>"},
		{NewOption(NewPrimitive(KindU8)), "option<u8>"},
		{NewExpected(NewPrimitive(KindU32), NewString()), "expected<u32, string>"},
		{NewExpected(nil, NewString()), "expected<_, string>"},
		{NewTuple("", []*TypeDef{NewPrimitive(KindU8), NewString()}), "tuple<u8, string>"},
		{NewAlias("named", NewPrimitive(KindU8)), "named"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestTypeStringStopsAtNames(t *testing.T) {
	// a self-referential list terminates because the name cuts the recursion
	iface := mustParse(t, "record tree { children: list<tree> }")
	td, err := iface.TypeByName("tree")
	if err != nil {
		t.Fatalf("TypeByName: %v", err)
	}
	fields, err := td.Fields()
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if got := fields[0].Type.String(); got != "list<tree>" {
		t.Errorf("got %q", got)
	}
}
