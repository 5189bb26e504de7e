package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // value to bytes
	PhaseDecode Phase = "decode" // bytes to value
	PhaseParse  Phase = "parse"  // CLI / textual input
	PhaseVerify Phase = "verify" // engine round-trip
)

// Kind categorizes the error
type Kind string

const (
	KindDomain       Kind = "domain"
	KindOutOfRange   Kind = "out_of_range"
	KindOverflow     Kind = "overflow"
	KindInvalidUTF8  Kind = "invalid_utf8"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Span   *Span // bytes the operation needed
	Bounds *Span // bytes that were actually available
	Phase  Phase
	Kind   Kind
	Type   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" (")
		b.WriteString(e.Type)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
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

// Type sets the name of the encoding involved (e.g. "varuint32")
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Domain creates an error for a value outside the representable range of an encoding.
func Domain(typ string, value any, lo, hi int64) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindDomain,
		Type:   typ,
		Value:  value,
		Detail: fmt.Sprintf("value %v out of representable range [%d, %d]", value, lo, hi),
	}
}

// OutOfRange creates an error for a read past the end of a buffer.
func OutOfRange(typ string, want Span, size int) *Error {
	have := Span{Start: 0, End: size}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutOfRange,
		Type:   typ,
		Value:  want.Start,
		Span:   &want,
		Bounds: &have,
		Detail: fmt.Sprintf("%s is out of buffer range %s", want, have),
	}
}

// Overflow creates an error for an encoding wider than its integer domain.
// group is the 1-based index of the group that crossed the limit.
func Overflow(typ string, at, group int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOverflow,
		Type:   typ,
		Value:  at,
		Detail: fmt.Sprintf("shifting too much at %d", group),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Type:   "string",
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
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
