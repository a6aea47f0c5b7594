package tokenizer

import (
	"errors"
	"fmt"
)

// ErrEndOfStream signals normal termination: the cursor has no more
// bytes and no row was started. It is not a parse failure.
var ErrEndOfStream = errors.New("tokenizer: end of stream")

// UnterminatedQuotedFieldError is raised when EOF is reached while still
// inside a quoted field and the dialect does not set YieldIncompleteRow.
type UnterminatedQuotedFieldError struct {
	// Offset is the byte offset, relative to the start of the row being
	// parsed, at which EOF was reached.
	Offset int
}

func (e *UnterminatedQuotedFieldError) Error() string {
	return fmt.Sprintf("tokenizer: unterminated quoted field at offset %d", e.Offset)
}

// MalformedQuotedFieldError is raised in strict mode when a byte other
// than the delimiter or a newline follows a field's closing quote.
type MalformedQuotedFieldError struct {
	// Offset is the byte offset, relative to the start of the row being
	// parsed, of the offending byte.
	Offset int
	// Byte is the offending byte itself.
	Byte byte
}

func (e *MalformedQuotedFieldError) Error() string {
	return fmt.Sprintf("tokenizer: unexpected byte %q after closing quote at offset %d", e.Byte, e.Offset)
}
