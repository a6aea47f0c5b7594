package tokenizer

import (
	"github.com/shapestone/vectorcsv/internal/bcs"
	"github.com/shapestone/vectorcsv/internal/cursor"
)

var newlineClass = bcs.NewClass('\r', '\n')

// Resync advances c past the next record boundary, discarding
// everything up to and including it. It is offered as a utility for
// callers recovering from a parse error, and is deliberately not
// quote-aware: it treats every CR/LF it finds as a boundary, so it can
// itself resync into the middle of a quoted field containing a raw
// newline. Callers that need quote-aware recovery must not use it.
func Resync(c cursor.Cursor) error {
	idx, hitEOF, err := findClass(c, newlineClass, 0)
	if err != nil {
		return err
	}
	if hitEOF {
		c.Advance(idx)
		return nil
	}
	end, err := consumeNewline(c, idx)
	if err != nil {
		return err
	}
	c.Advance(end)
	return nil
}
