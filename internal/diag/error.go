package diag

import (
	"errors"
	"fmt"

	"eidos/internal/source"
)

// ErrorKind classifies pass failures.
type ErrorKind uint8

const (
	KindSemantic ErrorKind = iota + 1
	KindType
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindSemantic:
		return "semantic"
	case KindType:
		return "type"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is the fail-fast result of a semantic pass.
// Internal errors carry no location.
type Error struct {
	Kind    ErrorKind
	Code    Code
	Message string
	Loc     source.Location
	Notes   []Note
	cause   error
}

func (e *Error) Error() string {
	if e.Kind == KindInternal || !e.Loc.IsKnown() {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Loc, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Diagnostic converts the error into a renderable record.
func (e *Error) Diagnostic() Diagnostic {
	d := New(SevError, e.Code, e.Loc, e.Message)
	d.Notes = append(d.Notes, e.Notes...)
	return d
}

// WithNote adds a secondary location, such as the earlier declaration of a
// duplicate name.
func (e *Error) WithNote(loc source.Location, msg string) *Error {
	e.Notes = append(e.Notes, Note{Loc: loc, Msg: msg})
	return e
}

// Semantic reports a scoping, binding or mutability violation at loc.
func Semantic(code Code, loc source.Location, format string, args ...any) *Error {
	return &Error{Kind: KindSemantic, Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Typef reports an inference or compatibility failure at loc.
func Typef(code Code, loc source.Location, format string, args ...any) *Error {
	return &Error{Kind: KindType, Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Internal reports a prior-pass defect. cause may be nil.
func Internal(code Code, cause error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Kind: KindInternal, Code: code, Message: msg, cause: cause}
}

// Wrap attaches a lower-layer cause to an error built by Semantic or Typef.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err is a diagnostic error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := As(err)
	return ok && de.Kind == kind
}
