// Package errors provides structured error types for the wasm-lowlevel module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the encoding name, the offending value, the byte span a read
// needed and the span that was actually available.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOverflow).
//		Type("varuint32").
//		Detail("shifting too much at %d", 6).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Domain("varuint32", int64(-1), 0, 1<<32-1)
//	err := errors.OutOfRange("varuint32", errors.Span{Start: 5, End: 6}, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so a Builder-made value works as a sentinel.
package errors
