// Package vcsv is the public surface of vectorcsv: Dialect, Reader,
// RowView, and CellView. It wires the engine packages (internal/bcs,
// internal/cursor, internal/tokenizer) together and owns the lazy,
// borrow-scoped views the engine's raw cell spans are resolved into.
package vcsv

import (
	"errors"
	"io"
	"sync"

	"github.com/shapestone/vectorcsv/internal/cursor"
	"github.com/shapestone/vectorcsv/internal/tokenizer"
)

// Cursor is the Stream Cursor interface: a polymorphic source of
// contiguous byte windows with a mandatory 16-byte sentinel tail. It
// is an alias of internal/cursor.Cursor so a caller can implement a
// custom source without reaching into an internal package.
type Cursor = cursor.Cursor

// ChunkSupplier yields successive chunks of an externally-driven byte
// stream for OpenIter, matching the io.Reader EOF convention: it may
// return a final non-empty chunk together with a non-nil error.
type ChunkSupplier = cursor.ChunkSupplier

// OpenMapped memory-maps path for reading and returns a Cursor over
// its full contents.
func OpenMapped(path string) (Cursor, error) {
	return cursor.OpenMapped(path)
}

// OpenBuffered wraps src in a Cursor that reads in bufsize-byte
// increments, compacting and growing its backing buffer as needed.
// bufsize <= 0 selects the documented default of 256 KiB.
func OpenBuffered(src io.Reader, bufsize int) Cursor {
	return cursor.NewBuffered(src, bufsize)
}

// OpenIter wraps an externally-driven chunk supplier in a Cursor,
// otherwise behaving like OpenBuffered.
func OpenIter(next ChunkSupplier) Cursor {
	return cursor.NewIterable(next)
}

// Reader is the CSV state machine's public face: it repeatedly pulls a
// record from its Cursor via internal/tokenizer and resolves that
// record's raw cell spans into a reused RowView. Reader is
// single-threaded: each instance is owned by at most one goroutine at
// a time.
type Reader struct {
	cursor  Cursor
	dialect Dialect
	classes tokenizer.Classes
	policy  HeaderPolicy

	row     tokenizer.Row
	views   []CellView
	rowView RowView
	header  *headerMap

	scratchPool sync.Pool

	ioErr    error
	rowIndex int
}

// NewReader builds a Reader over c using d and policy. It returns an
// error if d is invalid; see Dialect.Validate.
func NewReader(c Cursor, d Dialect, policy HeaderPolicy) (*Reader, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	r := &Reader{
		cursor:  c,
		dialect: d,
		classes: tokenizer.BuildClasses(d),
		policy:  policy,
	}
	r.scratchPool.New = func() any {
		b := make([]byte, 0, 64)
		return &b
	}
	if policy.kind == headerKindProvided {
		r.header = newHeaderMap(policy.names)
	}
	return r, nil
}

// NextRow parses and returns the next record. The returned *RowView,
// and every CellView it holds, is borrowed: it is only valid until the
// next call to NextRow. Returns ErrEndOfStream on normal termination,
// or a *ParseError / wrapped ErrIO otherwise.
func (r *Reader) NextRow() (*RowView, error) {
	if r.ioErr != nil {
		return nil, r.ioErr
	}

	if err := tokenizer.Next(r.cursor, r.classes, r.dialect, &r.row); err != nil {
		if errors.Is(err, tokenizer.ErrEndOfStream) {
			return nil, ErrEndOfStream
		}
		if errors.Is(err, cursor.ErrIO) {
			r.ioErr = err
			return nil, r.ioErr
		}
		perr := wrapParseError(err, r.rowIndex+1)
		if pe, ok := perr.(*ParseError); ok {
			r.cursor.Advance(pe.Offset)
		}
		return nil, perr
	}

	buf := r.cursor.Peek()
	r.materialize(buf)
	r.cursor.Advance(r.row.Consumed)
	r.rowIndex++

	if r.policy.kind == headerKindFirstRow && r.header == nil {
		names := make([]string, len(r.rowView.cells))
		for i, cv := range r.rowView.cells {
			// string([]byte) always copies: the header names must outlive
			// the cursor buffer region they were read from, which a later
			// Refill's compaction can overwrite in place.
			names[i] = string(cv.Unescaped())
		}
		r.header = newHeaderMap(names)
		return r.NextRow()
	}

	r.rowView.header = r.header
	return &r.rowView, nil
}

// materialize resolves the tokenizer's row spans (offsets relative to
// buf's start) into r.views, reusing its backing array across calls
// once it reaches its high-water mark.
func (r *Reader) materialize(buf []byte) {
	n := r.row.Count
	if cap(r.views) < n {
		r.views = make([]CellView, n)
	} else {
		r.views = r.views[:n]
	}
	for i := 0; i < n; i++ {
		cell := r.row.Cells[i]
		r.views[i] = CellView{
			raw:     buf[cell.Start : cell.Start+cell.Len],
			escaped: cell.Escaped,
			dialect: r.dialect,
			pool:    &r.scratchPool,
		}
	}
	r.rowView.cells = r.views
	r.rowView.incomplete = r.row.Incomplete
}

// Close releases the underlying Cursor's resources, if any.
func (r *Reader) Close() error {
	return r.cursor.Close()
}
