// Package tokenizer implements the row parser state machine: the
// byte-level CSV state machine that drives the byte-class scanner
// (internal/bcs) over a stream cursor (internal/cursor) and emits one
// row of cell spans per call. It never copies or unescapes bytes; that
// is left to the lazy cell view built on top of it (pkg/vcsv).
package tokenizer

import (
	"github.com/shapestone/vectorcsv/internal/bcs"
	"github.com/shapestone/vectorcsv/internal/cursor"
	"github.com/shapestone/vectorcsv/internal/dialect"
)

type state int

const (
	stateFieldStart state = iota
	stateUnquoted
	stateQuoted
	stateAfterQuoted
	stateRowEnd
)

// Next parses the next record from c into row, which is reset and
// reused. On success it returns nil and row.Cells[:row.Count] describes
// the record; row.Consumed is the number of bytes (relative to c's read
// position at entry) the caller must pass to c.Advance once it has
// finished resolving cell spans against c.Peek(). Returns ErrEndOfStream
// when no more records remain, or a parse error (*UnterminatedQuotedFieldError,
// *MalformedQuotedFieldError) otherwise.
func Next(c cursor.Cursor, cls Classes, d dialect.Dialect, row *Row) error {
	row.reset()

	if len(c.Peek()) == 0 && c.AtEOF() {
		return ErrEndOfStream
	}

	var (
		pos         int
		fieldStart  int
		escapedCell bool
		st          = stateFieldStart
	)

	for {
		switch st {
		case stateFieldStart:
			b, ok, err := byteAt(c, pos)
			if err != nil {
				return err
			}
			if !ok {
				if pos == 0 {
					return ErrEndOfStream
				}
				// Mid-record EOF right after a delimiter: the implied
				// trailing field is empty.
				row.push(pos, 0, false)
				row.Consumed = pos
				return nil
			}
			escapedCell = false
			if b == d.Quote {
				pos++
				fieldStart = pos
				st = stateQuoted
			} else {
				fieldStart = pos
				st = stateUnquoted
			}

		case stateUnquoted:
			idx, hitEOF, err := findClass(c, cls.Unquoted, pos)
			if err != nil {
				return err
			}
			if hitEOF {
				row.push(fieldStart, idx-fieldStart, false)
				row.Consumed = idx
				return nil
			}
			b := c.Peek()[idx]
			switch {
			case b == d.Delimiter:
				row.push(fieldStart, idx-fieldStart, false)
				pos = idx + 1
				st = stateFieldStart
			case b == '\r' || b == '\n':
				row.push(fieldStart, idx-fieldStart, false)
				pos, err = consumeNewline(c, idx)
				if err != nil {
					return err
				}
				st = stateRowEnd
			default:
				// A quote byte inside an unquoted field: literal data,
				// not a promotion to quoted mode. Keep scanning the same
				// field.
				pos = idx + 1
			}

		case stateQuoted:
			idx, hitEOF, err := findClass(c, cls.Quoted, pos)
			if err != nil {
				return err
			}
			if hitEOF {
				if !d.YieldIncompleteRow {
					return &UnterminatedQuotedFieldError{Offset: idx}
				}
				row.push(fieldStart, idx-fieldStart, true)
				row.Incomplete = true
				row.Consumed = idx
				return nil
			}
			b := c.Peek()[idx]
			if d.DoubledQuoteEscape() {
				nb, has, err := byteAt(c, idx+1)
				if err != nil {
					return err
				}
				if has && nb == d.Quote {
					escapedCell = true
					pos = idx + 2
					continue
				}
				row.push(fieldStart, idx-fieldStart, escapedCell)
				pos = idx + 1
				st = stateAfterQuoted
			} else if b == d.Escape {
				_, has, err := byteAt(c, idx+1)
				if err != nil {
					return err
				}
				if !has {
					// The escape byte at idx is the last byte of data.
					if !d.YieldIncompleteRow {
						return &UnterminatedQuotedFieldError{Offset: idx + 1}
					}
					row.push(fieldStart, idx-fieldStart, true)
					row.Incomplete = true
					row.Consumed = idx + 1
					return nil
				}
				escapedCell = true
				pos = idx + 2
			} else {
				row.push(fieldStart, idx-fieldStart, escapedCell)
				pos = idx + 1
				st = stateAfterQuoted
			}

		case stateAfterQuoted:
			b, ok, err := byteAt(c, pos)
			if err != nil {
				return err
			}
			if !ok {
				row.Consumed = pos
				return nil
			}
			switch {
			case b == d.Delimiter:
				pos++
				st = stateFieldStart
			case b == '\r' || b == '\n':
				pos, err = consumeNewline(c, pos)
				if err != nil {
					return err
				}
				st = stateRowEnd
			default:
				return &MalformedQuotedFieldError{Offset: pos, Byte: b}
			}

		case stateRowEnd:
			row.Consumed = pos
			return nil
		}
	}
}

// byteAt returns the byte at offset pos relative to the row's starting
// read position, refilling c as needed. ok is false only when pos is at
// or beyond the end of all available data and the cursor is at EOF.
func byteAt(c cursor.Cursor, pos int) (byte, bool, error) {
	for {
		avail := len(c.Peek())
		if pos < avail {
			return c.Peek()[pos], true, nil
		}
		if c.AtEOF() {
			return 0, false, nil
		}
		if _, err := c.Refill(); err != nil {
			return 0, false, err
		}
	}
}

// findClass scans forward from pos for the first byte in class among
// the cursor's real (non-sentinel) unread data, refilling as needed.
// hitEOF is true when no such byte exists before the cursor's data is
// exhausted; idx is then the offset one past the last real byte.
func findClass(c cursor.Cursor, class bcs.Class, pos int) (idx int, hitEOF bool, err error) {
	for {
		avail := len(c.Peek())
		if pos+bcs.Window > avail && !c.AtEOF() {
			if _, rerr := c.Refill(); rerr != nil {
				return 0, false, rerr
			}
			continue
		}

		win := c.Window(pos)
		k := bcs.Scan(win, class)

		limit := avail - pos
		if limit > bcs.Window {
			limit = bcs.Window
		}
		if k < limit {
			return pos + k, false, nil
		}
		if pos+bcs.Window <= avail {
			pos += bcs.Window
			continue
		}
		return avail, true, nil
	}
}

// consumeNewline returns the offset just past the single record
// terminator starting at idx: LF, CR, CR LF, or LF CR. Exactly one
// boundary is consumed; LF CR is treated as one terminator, not two.
func consumeNewline(c cursor.Cursor, idx int) (int, error) {
	b, _, err := byteAt(c, idx)
	if err != nil {
		return 0, err
	}
	next := idx + 1
	var pair byte
	if b == '\r' {
		pair = '\n'
	} else {
		pair = '\r'
	}
	nb, has, err := byteAt(c, next)
	if err != nil {
		return 0, err
	}
	if has && nb == pair {
		return next + 1, nil
	}
	return next, nil
}
