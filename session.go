package towit

import (
	"go.uber.org/zap"

	"github.com/singlestore-labs/to-wit/abi"
	"github.com/singlestore-labs/to-wit/errors"
	"github.com/singlestore-labs/to-wit/wai"
)

// Session owns at most one parsed interface and answers queries about it:
// function enumeration, lowered signatures, memory layouts. Signatures and
// layouts are computed once and cached for the session's lifetime.
//
// Every failing operation also records its error in the last-error slot,
// which LastError reads without clearing. This mirrors the C-style boundary
// the library is designed to sit behind.
type Session struct {
	iface   *wai.Interface
	signer  *abi.Signer
	calc    *abi.Calculator
	sigs    map[*wai.Function]abi.Signature
	logger  *zap.Logger
	lastErr error
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithDirection sets the lowering direction for signature queries.
// The default is abi.Export.
func WithDirection(d abi.Direction) Option {
	return func(s *Session) {
		s.signer = abi.NewSigner(d)
	}
}

// WithLogger sets the session logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty Session.
func New(opts ...Option) *Session {
	s := &Session{
		signer: abi.NewSigner(abi.Export),
		calc:   abi.NewCalculator(),
		sigs:   make(map[*wai.Function]abi.Signature),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fail records err in the last-error slot and returns it.
func (s *Session) fail(err error) error {
	s.lastErr = err
	return err
}

func (s *Session) guard() error {
	if s.closed {
		return s.fail(errors.Closed())
	}
	return nil
}

// Parse parses source and installs the result. Parsing is all-or-nothing:
// on error the session keeps its previous state and stays usable. A session
// holds at most one interface; parsing into an already-populated session is
// an invalid_argument error.
func (s *Session) Parse(source []byte) error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.iface != nil {
		return s.fail(errors.InvalidArgument(errors.PhaseQuery, "session already holds a parsed interface"))
	}

	iface, err := wai.Parse(source)
	if err != nil {
		return s.fail(err)
	}

	s.iface = iface
	s.logger.Debug("interface parsed",
		zap.Int("functions", iface.NumFuncs()),
		zap.Int("types", iface.NumTypes()))
	return nil
}

// Interface returns the parsed interface, or nil before a successful Parse.
func (s *Session) Interface() *wai.Interface {
	return s.iface
}

func (s *Session) populated() error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.iface == nil {
		return s.fail(errors.InvalidArgument(errors.PhaseQuery, "session has no parsed interface"))
	}
	return nil
}

// FuncCount returns the number of functions.
func (s *Session) FuncCount() (int, error) {
	if err := s.populated(); err != nil {
		return 0, err
	}
	return s.iface.NumFuncs(), nil
}

// FuncByIndex returns the function at a zero-based declaration index.
func (s *Session) FuncByIndex(idx int) (*wai.Function, error) {
	if err := s.populated(); err != nil {
		return nil, err
	}
	f, err := s.iface.Func(idx)
	if err != nil {
		return nil, s.fail(err)
	}
	return f, nil
}

// FuncByName returns the function with the given name. A miss is a
// recoverable not_found error.
func (s *Session) FuncByName(name string) (*wai.Function, error) {
	if err := s.populated(); err != nil {
		return nil, err
	}
	f, err := s.iface.FuncByName(name)
	if err != nil {
		return nil, s.fail(err)
	}
	return f, nil
}

// TypeByName returns the named type definition for name.
func (s *Session) TypeByName(name string) (*wai.TypeDef, error) {
	if err := s.populated(); err != nil {
		return nil, err
	}
	t, err := s.iface.TypeByName(name)
	if err != nil {
		return nil, s.fail(err)
	}
	return t, nil
}

// Signature returns the lowered core signature of f, computing it on first
// use and caching it afterwards.
func (s *Session) Signature(f *wai.Function) (abi.Signature, error) {
	if err := s.populated(); err != nil {
		return abi.Signature{}, err
	}
	if f == nil {
		return abi.Signature{}, s.fail(errors.InvalidArgument(errors.PhaseQuery, "nil function"))
	}
	if sig, ok := s.sigs[f]; ok {
		return sig, nil
	}

	sig, err := s.signer.Signature(f)
	if err != nil {
		return abi.Signature{}, s.fail(err)
	}
	s.sigs[f] = sig
	return sig, nil
}

// Layout returns the memory layout of t. Layouts are memoized per type for
// the session's lifetime.
func (s *Session) Layout(t *wai.TypeDef) (abi.Info, error) {
	if err := s.populated(); err != nil {
		return abi.Info{}, err
	}
	info, err := s.calc.Calculate(t)
	if err != nil {
		return abi.Info{}, s.fail(err)
	}
	return info, nil
}

// LastError returns the most recent error recorded by a failing operation,
// or nil. Reading does not clear the slot; the next failure overwrites it.
func (s *Session) LastError() error {
	return s.lastErr
}

// Close releases the session. Further operations (other than LastError)
// fail with a closed error. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.iface = nil
	s.sigs = nil
	s.calc = nil
	return nil
}
