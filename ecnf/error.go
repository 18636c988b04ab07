package ecnf

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadFailure         = NewError("read failure")
	ErrInvalidKey          = NewError("invalid key syntax")
	ErrUnknownSeparator    = NewError("unknown key-value separator")
	ErrUnknownValue        = NewError("unknown value syntax")
	ErrIllegalSectionClose = NewError("section close without open section")
	ErrUnterminatedSection = NewError("unterminated section")
	ErrInvalidUTF8         = NewError("invalid UTF-8 text")
	ErrInvalidPath         = NewError("invalid key path")
	ErrInvalidValue        = NewError("value cannot be written on a single line")
	ErrShapeConflict       = NewError("key is both a value and a section")
	ErrInvalidTarget       = NewError("decode target must be a non-nil struct pointer")
	ErrUnsupportedType     = NewError("unsupported field type")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from. Errors
// produced by [Error.Wrap] and [Error.With] match their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) != 0 {
		return false
	}

	return e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Kind classifies a [ParseError].
type Kind int

const (
	KindReadFailure         Kind = iota // read failure
	KindInvalidKey                      // invalid key
	KindUnknownSeparator                // unknown separator
	KindUnknownValue                    // unknown value
	KindIllegalSectionClose             // illegal section close
	KindUnterminatedSection             // unterminated section
)

// sentinel returns the predefined error matched by errors.Is for k.
func (k Kind) sentinel() *Error {
	switch k {
	case KindReadFailure:
		return ErrReadFailure
	case KindInvalidKey:
		return ErrInvalidKey
	case KindUnknownSeparator:
		return ErrUnknownSeparator
	case KindUnknownValue:
		return ErrUnknownValue
	case KindIllegalSectionClose:
		return ErrIllegalSectionClose
	case KindUnterminatedSection:
		return ErrUnterminatedSection
	default:
		return nil
	}
}

// ParseError describes the first rule violation found in a document.
type ParseError struct {
	// Err is the underlying cause of a [KindReadFailure].
	Err error
	// Text is the offending line with surrounding whitespace removed. For
	// [KindUnterminatedSection] it is the dotted path of the open sections.
	Text string
	// Value is the value region of a [KindUnknownValue] line.
	Value string
	Kind  Kind
	// Line is the 1-based number of the physical line being processed, or
	// zero if the input could not be opened.
	Line int
	// Found is the rune read in place of ':' for [KindUnknownSeparator].
	// It is zero if the line ended after the key.
	Found rune
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder

	if s := e.Kind.sentinel(); s != nil {
		sb.WriteString(s.msg)
	} else {
		sb.WriteString(e.Kind.String())
	}

	switch e.Kind {
	case KindUnknownSeparator:
		if e.Found == 0 {
			sb.WriteString(" (end of line)")
		} else {
			sb.WriteString(" ")
			sb.WriteString(strconv.QuoteRune(e.Found))
		}

	case KindUnknownValue:
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(e.Value))

	case KindUnterminatedSection:
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(e.Text))
	}

	if e.Line > 0 {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(e.Line))
	}

	switch e.Kind {
	case KindReadFailure:
		if e.Err != nil {
			sb.WriteString(": ")
			sb.WriteString(e.Err.Error())
		}

	case KindUnterminatedSection:

	default:
		sb.WriteString(": ")
		sb.WriteString(strconv.Quote(e.Text))
	}

	return sb.String()
}

// Unwrap returns the sentinel for the error's [Kind] and, for read failures,
// the underlying cause.
func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, 2)

	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Kind.String()),
		slog.Int("line", e.Line),
	}

	switch e.Kind {
	case KindReadFailure:
		if e.Err != nil {
			attrs = append(attrs, slog.String("cause", e.Err.Error()))
		}

	case KindUnterminatedSection:
		attrs = append(attrs, slog.String("section", e.Text))

	case KindUnknownSeparator:
		found := ""
		if e.Found != 0 {
			found = string(e.Found)
		}

		attrs = append(attrs,
			slog.String("text", e.Text),
			slog.String("found", found),
		)

	case KindUnknownValue:
		attrs = append(attrs,
			slog.String("text", e.Text),
			slog.String("value", e.Value),
		)

	default:
		attrs = append(attrs, slog.String("text", e.Text))
	}

	return slog.GroupValue(attrs...)
}
