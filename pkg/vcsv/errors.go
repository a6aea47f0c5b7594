package vcsv

import (
	"errors"
	"fmt"

	"github.com/shapestone/vectorcsv/internal/cursor"
	"github.com/shapestone/vectorcsv/internal/tokenizer"
)

// ErrEndOfStream is returned by Reader.NextRow when the stream is
// exhausted. It is normal termination, not a failure.
var ErrEndOfStream = errors.New("vcsv: end of stream")

// ErrIO is the sentinel wrapped by the error Reader.NextRow returns
// when the underlying Cursor reported a genuine I/O failure rather than
// EOF. Such errors are returned as they are, not inside a ParseError.
// It is an alias of cursor.ErrIO so callers can errors.Is against
// either package.
var ErrIO = cursor.ErrIO

// ErrUnterminatedQuotedField is the sentinel a ParseError's Err
// unwraps to when EOF was reached inside a quoted field and the
// dialect did not set YieldIncompleteRow.
var ErrUnterminatedQuotedField = errors.New("vcsv: unterminated quoted field")

// ErrMalformedQuotedField is the sentinel a ParseError's Err unwraps
// to when a byte other than the delimiter or a newline follows a
// field's closing quote in strict mode.
var ErrMalformedQuotedField = errors.New("vcsv: malformed quoted field")

// ParseError reports a parse failure and the position at which it
// occurred, leaving the Reader's cursor positioned at the offending
// byte for diagnostics. Record is the 1-based index of the record
// being parsed when the error occurred; Offset is the byte offset of
// the offending byte relative to that record's start.
type ParseError struct {
	Record int
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcsv: record %d, offset %d: %v", e.Record, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// wrapParseError maps a tokenizer-level error to its public ParseError
// form. IO errors and ErrEndOfStream pass through unwrapped: IO errors
// are already sticky and self-describing via cursor.ErrIO, and
// ErrEndOfStream is translated by the caller before reaching here.
func wrapParseError(err error, record int) error {
	switch e := err.(type) {
	case *tokenizer.UnterminatedQuotedFieldError:
		return &ParseError{Record: record, Offset: e.Offset, Err: ErrUnterminatedQuotedField}
	case *tokenizer.MalformedQuotedFieldError:
		return &ParseError{Record: record, Offset: e.Offset, Err: ErrMalformedQuotedField}
	default:
		return err
	}
}

// IndexOutOfRangeError is returned by RowView.ByIndex when the index is
// not within [0, Count). It is a local, non-fatal view error: it does
// not disturb the Reader's state.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("vcsv: index %d out of range [0, %d)", e.Index, e.Count)
}

// UnknownColumnError is returned by RowView.ByName when no header map
// is available or the name is not present in it.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("vcsv: unknown column %q", e.Name)
}
