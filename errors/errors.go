package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // text front end
	PhaseResolve Phase = "resolve" // name resolution and graph validation
	PhaseLayout  Phase = "layout"  // size/alignment computation
	PhaseLower   Phase = "lower"   // ABI flattening
	PhaseQuery   Phase = "query"   // session and cursor queries
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax          Kind = "syntax"
	KindUnresolved      Kind = "unresolved_reference"
	KindCyclic          Kind = "cyclic_definition"
	KindDuplicate       Kind = "duplicate_definition"
	KindLayout          Kind = "layout"
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindClosed          Kind = "closed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	WitType string
	Detail  string
	Line    int
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.WitType != "" {
		b.WriteString(": type ")
		b.WriteString(e.WitType)
	}

	if e.Detail != "" {
		if e.WitType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the declaration path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// Line sets the source line number
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Syntax creates a syntax error at a source line
func Syntax(line int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Line:   line,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Unresolved creates an unresolved reference error
func Unresolved(phase Phase, name string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnresolved,
		WitType: name,
		Detail:  "reference to undefined type",
	}
}

// Cyclic creates a value-containment cycle error
func Cyclic(path []string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindCyclic,
		Path:   path,
		Detail: "type contains itself through value fields",
	}
}

// Duplicate creates a duplicate definition error
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q already defined", what, name),
	}
}

// LayoutFailed creates a layout error
func LayoutFailed(typeName, detail string) *Error {
	return &Error{
		Phase:   PhaseLayout,
		Kind:    KindLayout,
		WitType: typeName,
		Detail:  detail,
	}
}

// WrongKind creates an invalid argument error for wrong-kind accessors
func WrongKind(typeName, accessor, actual string) *Error {
	return &Error{
		Phase:   PhaseQuery,
		Kind:    KindInvalidArgument,
		WitType: typeName,
		Detail:  fmt.Sprintf("%s called on %s type", accessor, actual),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// Exhausted creates an error for reading or advancing a spent cursor
func Exhausted(what string) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindInvalidArgument,
		Detail: fmt.Sprintf("%s cursor is exhausted", what),
	}
}

// NotFound creates a not-found error
func NotFound(what, name string) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Closed creates an error for operations on a destroyed session
func Closed() *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindClosed,
		Detail: "session is closed",
	}
}

// InvalidArgument creates a generic invalid argument error
func InvalidArgument(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
