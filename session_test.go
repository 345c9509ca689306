package towit

import (
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/singlestore-labs/to-wit/abi"
	"github.com/singlestore-labs/to-wit/errors"
)

const sessionSrc = `
record simple-value {
    i: s64,
}

square: function(input: simple-value) -> list<simple-value>
ping: function()
`

func newParsed(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := New(opts...)
	t.Cleanup(func() { s.Close() })
	if err := s.Parse([]byte(sessionSrc)); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := newParsed(t)

	count, err := s.FuncCount()
	if err != nil {
		t.Fatalf("FuncCount: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d funcs, want 2", count)
	}

	f, err := s.FuncByIndex(0)
	if err != nil {
		t.Fatalf("FuncByIndex: %v", err)
	}
	if f.Name() != "square" {
		t.Errorf("got %q, want square", f.Name())
	}

	g, err := s.FuncByName("ping")
	if err != nil {
		t.Fatalf("FuncByName: %v", err)
	}
	if g.Name() != "ping" {
		t.Errorf("got %q", g.Name())
	}
}

func TestSessionEmptyBeforeParse(t *testing.T) {
	s := New()
	defer s.Close()

	if _, err := s.FuncCount(); err == nil {
		t.Error("query on empty session should fail")
	}
	if s.Interface() != nil {
		t.Error("Interface should be nil before Parse")
	}
}

func TestSessionParseFailureLeavesUsable(t *testing.T) {
	s := New()
	defer s.Close()

	if err := s.Parse([]byte("record broken {")); err == nil {
		t.Fatal("expected syntax error")
	}
	if s.LastError() == nil {
		t.Error("failing parse should set the last error")
	}

	// the session is still empty and can parse again
	if err := s.Parse([]byte(sessionSrc)); err != nil {
		t.Fatalf("reparse after failure: %v", err)
	}
	if count, err := s.FuncCount(); err != nil || count != 2 {
		t.Errorf("got %d, %v", count, err)
	}
}

func TestSessionSecondParseRejected(t *testing.T) {
	s := newParsed(t)

	err := s.Parse([]byte("ping2: function()"))
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidArgument {
		t.Errorf("got %v, want invalid_argument", err)
	}

	// the original interface is untouched
	if _, err := s.FuncByName("square"); err != nil {
		t.Errorf("original interface lost: %v", err)
	}
}

func TestSessionSignature(t *testing.T) {
	s := newParsed(t)

	f, err := s.FuncByName("square")
	if err != nil {
		t.Fatalf("FuncByName: %v", err)
	}
	sig, err := s.Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}

	// record{s64} param -> i64; list result -> ptr+len
	if len(sig.Params) != 1 || sig.Params[0] != api.ValueTypeI64 {
		t.Errorf("params: %v", sig.Params)
	}
	if len(sig.Results) != 2 {
		t.Errorf("results: %v", sig.Results)
	}

	// cached result is identical
	again, err := s.Signature(f)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if len(again.Params) != len(sig.Params) || len(again.Results) != len(sig.Results) {
		t.Errorf("cached signature differs: %+v vs %+v", again, sig)
	}
}

func TestSessionDirection(t *testing.T) {
	src := `
record big {
    a: u64, b: u64, c: u64,
    d: u64, e: u64, f: u64,
    g: u64, h: u64, i: u64,
}

f: function() -> big
`
	exp := New(WithDirection(abi.Export))
	defer exp.Close()
	if err := exp.Parse([]byte(src)); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	imp := New(WithDirection(abi.Import))
	defer imp.Close()
	if err := imp.Parse([]byte(src)); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ef, _ := exp.FuncByName("f")
	esig, err := exp.Signature(ef)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if len(esig.Params) != 1 || len(esig.Results) != 0 {
		t.Errorf("export: params=%v results=%v", esig.Params, esig.Results)
	}

	mf, _ := imp.FuncByName("f")
	msig, err := imp.Signature(mf)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if len(msig.Params) != 0 || len(msig.Results) != 1 {
		t.Errorf("import: params=%v results=%v", msig.Params, msig.Results)
	}
}

func TestSessionLayout(t *testing.T) {
	s := newParsed(t)

	td, err := s.TypeByName("simple-value")
	if err != nil {
		t.Fatalf("TypeByName: %v", err)
	}
	info, err := s.Layout(td)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if info.Size != 8 || info.Align != 8 {
		t.Errorf("got size=%d align=%d, want 8/8", info.Size, info.Align)
	}
}

func TestSessionLastError(t *testing.T) {
	s := newParsed(t)

	if s.LastError() != nil {
		t.Errorf("unexpected initial last error: %v", s.LastError())
	}

	_, err := s.FuncByName("missing")
	if err == nil {
		t.Fatal("expected not_found")
	}
	if s.LastError() == nil {
		t.Fatal("failure did not record last error")
	}

	// reading does not clear the slot
	first := s.LastError()
	if s.LastError() != first {
		t.Error("LastError cleared on read")
	}

	// a new failure overwrites it
	_, err = s.FuncByIndex(99)
	if err == nil {
		t.Fatal("expected out-of-bounds")
	}
	if s.LastError() == first {
		t.Error("last error not overwritten")
	}
}

func TestSessionClose(t *testing.T) {
	s := newParsed(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	_, err := s.FuncCount()
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindClosed {
		t.Errorf("got %v, want closed", err)
	}
	if err := s.Parse([]byte(sessionSrc)); err == nil {
		t.Error("Parse on closed session should fail")
	}

	// LastError still answers after Close
	if s.LastError() == nil {
		t.Error("closed-session failures should still be recorded")
	}
}
