package abi

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/singlestore-labs/to-wit/wai"
)

func parseFunc(t *testing.T, source, name string) *wai.Function {
	t.Helper()
	iface, err := wai.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	f, err := iface.FuncByName(name)
	if err != nil {
		t.Fatalf("FuncByName: %v", err)
	}
	return f
}

// manyParams builds "f: function(p0: u32, ..., pN-1: u32)".
func manyParams(n int) string {
	params := make([]string, n)
	for i := range params {
		params[i] = fmt.Sprintf("p%d: u32", i)
	}
	return "f: function(" + strings.Join(params, ", ") + ")"
}

func TestSignatureDirectParams(t *testing.T) {
	f := parseFunc(t, manyParams(MaxFlatParams), "f")
	sig, err := NewSigner(Export).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if sig.IndirectParams {
		t.Error("params should be direct at the limit")
	}
	if len(sig.Params) != MaxFlatParams {
		t.Errorf("params: got %d slots, want %d", len(sig.Params), MaxFlatParams)
	}
}

func TestSignatureIndirectParams(t *testing.T) {
	f := parseFunc(t, manyParams(MaxFlatParams+1), "f")
	sig, err := NewSigner(Export).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if !sig.IndirectParams {
		t.Error("params over the limit should be indirect")
	}
	if !flatEqual(sig.Params, []CoreValType{api.ValueTypeI32}) {
		t.Errorf("params: got %v, want single i32 pointer", flatNames(sig.Params))
	}
}

func TestSignatureListResultDirect(t *testing.T) {
	// a list result is only two slots and stays direct
	f := parseFunc(t, "f: function() -> list<u64>", "f")
	sig, err := NewSigner(Export).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if sig.IndirectResults {
		t.Error("list result should be direct")
	}
	if !flatEqual(sig.Results, []CoreValType{api.ValueTypeI32, api.ValueTypeI32}) {
		t.Errorf("results: got %v, want [i32, i32]", flatNames(sig.Results))
	}
	if len(sig.RetPtr) != 0 {
		t.Errorf("retptr should be empty, got %v", flatNames(sig.RetPtr))
	}
}

const bigResultSrc = `
record big {
    a: u64, b: u64, c: u64,
    d: u64, e: u64, f: u64,
    g: u64, h: u64, i: u64,
}

f: function(x: u32) -> big
`

func TestSignatureIndirectResultExport(t *testing.T) {
	f := parseFunc(t, bigResultSrc, "f")
	sig, err := NewSigner(Export).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if !sig.IndirectResults {
		t.Fatal("nine-slot result should be indirect")
	}
	// caller passes a retptr as a trailing parameter
	want := []CoreValType{api.ValueTypeI32, api.ValueTypeI32}
	if !flatEqual(sig.Params, want) {
		t.Errorf("params: got %v, want %v", flatNames(sig.Params), flatNames(want))
	}
	if len(sig.Results) != 0 {
		t.Errorf("direct results should be empty, got %v", flatNames(sig.Results))
	}
	if len(sig.RetPtr) != 9 {
		t.Errorf("retptr: got %d slots, want 9", len(sig.RetPtr))
	}
	for i, v := range sig.RetPtr {
		if v != api.ValueTypeI64 {
			t.Errorf("retptr[%d]: got %s, want i64", i, api.ValueTypeName(v))
		}
	}
}

func TestSignatureIndirectResultImport(t *testing.T) {
	f := parseFunc(t, bigResultSrc, "f")
	sig, err := NewSigner(Import).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if !sig.IndirectResults {
		t.Fatal("nine-slot result should be indirect")
	}
	// callee returns a pointer into its own memory
	if !flatEqual(sig.Params, []CoreValType{api.ValueTypeI32}) {
		t.Errorf("params: got %v, want [i32]", flatNames(sig.Params))
	}
	if !flatEqual(sig.Results, []CoreValType{api.ValueTypeI32}) {
		t.Errorf("results: got %v, want [i32]", flatNames(sig.Results))
	}
	if len(sig.RetPtr) != 9 {
		t.Errorf("retptr: got %d slots, want 9", len(sig.RetPtr))
	}
}

func TestSignatureVoid(t *testing.T) {
	f := parseFunc(t, "f: function()", "f")
	sig, err := NewSigner(Export).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if len(sig.Params) != 0 || len(sig.Results) != 0 || len(sig.RetPtr) != 0 {
		t.Errorf("void function should lower to empty signature, got %+v", sig)
	}
	if sig.IndirectParams || sig.IndirectResults {
		t.Error("void function should not be indirect")
	}
}

func TestSignatureMixedParams(t *testing.T) {
	f := parseFunc(t, "f: function(a: f32, b: u64, c: string) -> f64", "f")
	sig, err := NewSigner(Export).Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	wantParams := []CoreValType{
		api.ValueTypeF32, api.ValueTypeI64,
		api.ValueTypeI32, api.ValueTypeI32,
	}
	if !flatEqual(sig.Params, wantParams) {
		t.Errorf("params: got %v, want %v", flatNames(sig.Params), flatNames(wantParams))
	}
	if !flatEqual(sig.Results, []CoreValType{api.ValueTypeF64}) {
		t.Errorf("results: got %v, want [f64]", flatNames(sig.Results))
	}
}

func TestDirectionString(t *testing.T) {
	if Export.String() != "export" || Import.String() != "import" {
		t.Errorf("got %q/%q", Export.String(), Import.String())
	}
}
