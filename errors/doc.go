// Package errors provides structured error types for the to-wit library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: declaration path, the WIT
// type name involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLayout, errors.KindUnresolved).
//		Path("point", "x").
//		WitType("coord").
//		Detail("alias target never defined").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Duplicate(errors.PhaseParse, "function", "square")
//	err := errors.OutOfBounds(errors.PhaseQuery, nil, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// KindNotFound is the one recoverable kind: a lookup miss, not a failure of
// the session's data.
package errors
