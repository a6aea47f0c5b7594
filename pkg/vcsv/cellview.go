package vcsv

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"sync"
	"unsafe"
)

// CellView is a lightweight, borrowed descriptor for one field: a
// pointer/length/escape-flag triple bound to the Reader's current
// buffer. It is invalidated by the Reader's next call to NextRow;
// callers that need a field's value past that point must copy it out
// (e.g. via String or Unescaped).
type CellView struct {
	raw     []byte
	escaped bool
	dialect Dialect
	pool    *sync.Pool
}

// Raw returns the field's bytes exactly as they appeared in the
// source, including any quoting delimiters' interior escape sequences
// unresolved. O(1), never allocates.
func (c CellView) Raw() []byte {
	return c.raw
}

// Escaped reports whether Raw's bytes may differ from the field's
// logical content, i.e. whether Unescaped needs to materialize a
// decoded copy rather than alias Raw.
func (c CellView) Escaped() bool {
	return c.escaped
}

// Len returns the length, in bytes, of the raw (not unescaped) field.
func (c CellView) Len() int {
	return len(c.raw)
}

// Unescaped returns the field's decoded content. When Escaped is false
// this aliases Raw with no copy. Otherwise it
// decodes into a pooled scratch buffer (grounded on the teacher's
// bufferPool idiom, internal/fastparser/pool.go) and returns a
// right-sized owned copy: when the dialect uses doubled-quote escaping
// every "" run collapses to a single ", otherwise every escape byte is
// dropped and the following byte is kept verbatim.
func (c CellView) Unescaped() []byte {
	if !c.escaped {
		return c.raw
	}

	scratchPtr := c.pool.Get().(*[]byte)
	buf := (*scratchPtr)[:0]

	if c.dialect.DoubledQuoteEscape() {
		q := c.dialect.Quote
		for i := 0; i < len(c.raw); i++ {
			b := c.raw[i]
			if b == q && i+1 < len(c.raw) && c.raw[i+1] == q {
				buf = append(buf, q)
				i++
				continue
			}
			buf = append(buf, b)
		}
	} else {
		esc := c.dialect.Escape
		for i := 0; i < len(c.raw); i++ {
			b := c.raw[i]
			if b == esc && i+1 < len(c.raw) {
				buf = append(buf, c.raw[i+1])
				i++
				continue
			}
			buf = append(buf, b)
		}
	}

	out := make([]byte, len(buf))
	copy(out, buf)
	*scratchPtr = buf[:0]
	c.pool.Put(scratchPtr)
	return out
}

// String returns the field's decoded content as a string. For
// unescaped fields this is a zero-copy view over Raw (unsafe.String,
// matching the teacher's unsafeString fast path in
// internal/fastparser/pool.go); the caller must treat the result as
// read-only and not retain it past the view's lifetime.
func (c CellView) String() string {
	b := c.Unescaped()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// AsDouble parses the field's decoded content as a signed decimal
// number, ignoring leading/trailing ASCII whitespace. It never fails:
// malformed input yields NaN, following the teacher's FloatConverter
// idiom (pkg/csv/converters.go) minus the error return.
func (c CellView) AsDouble() float64 {
	s := strings.TrimSpace(c.String())
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Equals reports whether the field's decoded content is bytewise equal
// to literal. Unescaped fields compare Raw directly without
// materializing anything.
func (c CellView) Equals(literal []byte) bool {
	if !c.escaped {
		return bytes.Equal(c.raw, literal)
	}
	return bytes.Equal(c.Unescaped(), literal)
}
