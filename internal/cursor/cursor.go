// Package cursor implements the Stream Cursor: the source of contiguous
// byte windows that the row parser reads from. Every Cursor
// implementation guarantees that the buffer exposed at the current read
// position is readable for at least bcs.Window bytes beyond the last
// valid data byte (the "sentinel tail"), so the tokenizer can always
// perform a full 16-byte scan without a length check on every byte.
package cursor

import (
	"errors"

	"github.com/google/uuid"
)

// ErrIO is wrapped around any error the underlying source reports.
// It is sticky: once a Cursor observes an IO error, every subsequent
// Refill returns the same wrapped error.
var ErrIO = errors.New("cursor: io error")

// Cursor is the polymorphic source of contiguous byte windows.
// Implementations: Mapped, Buffered, Iterable.
type Cursor interface {
	// Peek returns the currently buffered, unread bytes:
	// buf[read_pos:write_end]. The returned slice is only valid until
	// the next call to Advance or Refill.
	Peek() []byte

	// Window returns a bcs.Window-byte slice starting offset bytes past
	// the current read position. It may extend into the sentinel tail
	// past the unread data; offset must be <= len(Peek()).
	Window(offset int) []byte

	// Advance moves the read position forward by n bytes. n must be
	// <= len(Peek()) at the time of the call.
	Advance(n int)

	// Refill attempts to extend the unread window. It returns false
	// only when EOF has been reached and no more bytes will ever
	// arrive; err is non-nil only on a genuine IO failure, which is
	// distinct from EOF.
	Refill() (bool, error)

	// AtEOF reports whether the underlying source is exhausted. It
	// does not by itself mean Peek() is empty: bytes already read into
	// the buffer but not yet consumed are still returned by Peek.
	AtEOF() bool

	// ID identifies this cursor for diagnostics when a caller shards a
	// single logical file across independent Cursor+parser pairs.
	ID() uuid.UUID

	// Close releases any resources the cursor owns (e.g. a memory
	// mapping). It is safe to call on cursors that own nothing.
	Close() error
}
