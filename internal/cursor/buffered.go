package cursor

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/shapestone/vectorcsv/internal/bcs"
)

// DefaultBufferSize is the default bufsize of a Buffered cursor: the
// initial data capacity of its backing buffer and the minimum free space
// ensured before each Read. The buffer grows by doubling (see growTo).
const DefaultBufferSize = 256 * 1024

// compactThreshold is the fraction of the buffer that must be already
// consumed before a compaction (moving the unread suffix down to index
// 0) is worth the memmove, mirroring the teacher's chunked-buffer
// compaction idiom (internal/fastparser/chunked.go processes data in
// fixed windows for the same reason: bound the cost of re-scanning).
const compactThreshold = 0.5

// buffered is the shared implementation behind the Buffered and
// Iterable cursor variants: both read from an io.Reader (Iterable's
// reader is the ChunkSupplier wrapped by chunkReader) into a growable
// buffer that always keeps bcs.Window zero bytes past write_end.
type buffered struct {
	id        uuid.UUID
	src       io.Reader
	buf       []byte
	chunkSize int // minimum free space before each Read, i.e. the caller's bufsize
	readAt    int // read_pos
	wend      int // write_end: buf[:wend] holds valid data
	eof       bool
	ioErr     error
}

func newBuffered(src io.Reader, bufsize int) *buffered {
	if bufsize <= 0 {
		bufsize = DefaultBufferSize
	}
	return &buffered{
		id:        uuid.New(),
		src:       src,
		chunkSize: bufsize,
		buf:       make([]byte, bufsize+bcs.Window),
	}
}

func (b *buffered) Peek() []byte {
	return b.buf[b.readAt:b.wend]
}

func (b *buffered) Window(offset int) []byte {
	start := b.readAt + offset
	end := start + bcs.Window
	if end > len(b.buf) {
		b.growTo(end)
	}
	return b.buf[start:end]
}

func (b *buffered) Advance(n int) {
	if n < 0 || b.readAt+n > b.wend {
		panic("cursor: Advance out of range")
	}
	b.readAt += n
}

func (b *buffered) AtEOF() bool {
	return b.eof
}

func (b *buffered) ID() uuid.UUID {
	return b.id
}

// Close is a no-op: a Buffered cursor never owns its source reader.
func (b *buffered) Close() error {
	return nil
}

func (b *buffered) Refill() (bool, error) {
	if b.ioErr != nil {
		return false, b.ioErr
	}
	if b.eof {
		return false, nil
	}

	b.maybeCompact()
	b.ensureCapacity(b.chunkSize)

	n, err := b.src.Read(b.buf[b.wend : len(b.buf)-bcs.Window])
	if n > 0 {
		b.wend += n
		b.clearSentinelTail()
	}
	if err != nil {
		if err == io.EOF {
			b.eof = true
			return n > 0, nil
		}
		b.ioErr = fmt.Errorf("%w: shard %s: %w", ErrIO, b.id, err)
		return false, b.ioErr
	}
	return true, nil
}

// clearSentinelTail re-establishes the zero-filled 16 bytes past
// write_end, required after every refill.
func (b *buffered) clearSentinelTail() {
	tail := b.buf[b.wend : b.wend+bcs.Window]
	for i := range tail {
		tail[i] = 0
	}
}

// maybeCompact slides the unread suffix down to index 0 once the
// consumed prefix crosses compactThreshold, bounding memory growth for
// long-running streams instead of growing the buffer forever.
func (b *buffered) maybeCompact() {
	if b.readAt == 0 {
		return
	}
	if float64(b.readAt) < float64(len(b.buf))*compactThreshold {
		return
	}
	unread := b.wend - b.readAt
	copy(b.buf, b.buf[b.readAt:b.wend])
	b.readAt = 0
	b.wend = unread
	b.clearSentinelTail()
}

// ensureCapacity grows the buffer geometrically so at least
// minFreeSpace bytes are available past write_end for the next read,
// beyond the fixed sentinel tail.
func (b *buffered) ensureCapacity(minFreeSpace int) {
	free := len(b.buf) - bcs.Window - b.wend
	if free >= minFreeSpace {
		return
	}
	b.growTo(b.wend + minFreeSpace + bcs.Window)
}

func (b *buffered) growTo(minLen int) {
	if len(b.buf) >= minLen {
		return
	}
	newLen := len(b.buf) * 2
	if newLen < minLen {
		newLen = minLen
	}
	grown := make([]byte, newLen)
	copy(grown, b.buf[:b.wend])
	b.buf = grown
	b.clearSentinelTail()
}

// NewBuffered opens a Buffered stream cursor over src, reading in
// bufsize-byte increments (DefaultBufferSize if bufsize <= 0).
func NewBuffered(src io.Reader, bufsize int) Cursor {
	return newBuffered(src, bufsize)
}

// ChunkSupplier yields successive chunks of an externally-driven byte
// stream. It returns io.EOF (with a possibly non-empty final chunk) once
// exhausted, matching the io.Reader convention.
type ChunkSupplier func() (chunk []byte, err error)

// chunkReader adapts a ChunkSupplier to io.Reader so Iterable can share
// the Buffered implementation and otherwise behave just like it.
type chunkReader struct {
	next    ChunkSupplier
	leftover []byte
	err     error
}

func (c *chunkReader) Read(p []byte) (int, error) {
	for len(c.leftover) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		chunk, err := c.next()
		c.leftover = chunk
		c.err = err
		if len(chunk) == 0 && err != nil {
			return 0, err
		}
		if len(chunk) > 0 {
			break
		}
	}
	n := copy(p, c.leftover)
	c.leftover = c.leftover[n:]
	return n, nil
}

// NewIterable opens a stream cursor that consumes arbitrarily-sized
// chunks from an external supplier, otherwise behaving like Buffered.
func NewIterable(next ChunkSupplier) Cursor {
	return newBuffered(&chunkReader{next: next}, DefaultBufferSize)
}
