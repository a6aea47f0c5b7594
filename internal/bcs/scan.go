// Package bcs implements the byte-class scanner: the primitive that finds
// the first occurrence of one of up to four "interesting" bytes within a
// 16-byte window. Row parsing spends nearly all of its time inside this
// primitive, so its contract is small and its implementations are chosen
// to keep the inner loop to a handful of instructions per window.
package bcs

// Window is the fixed size, in bytes, that Scan inspects on every call.
// buf must be readable for at least Window bytes; callers arrange this
// via the sentinel tail on cursor.Cursor (see internal/cursor).
const Window = 16

// Class is a set of up to four distinct byte values to search for.
// A zero-value Class matches nothing.
type Class struct {
	bytes [4]byte
	n     int
}

// NewClass builds a Class from up to four distinct bytes. Duplicate values
// are folded together so the class always searches for at most 4 distinct
// bytes.
func NewClass(values ...byte) Class {
	if len(values) > 4 {
		panic("bcs: class supports at most 4 distinct bytes")
	}
	var c Class
	for _, v := range values {
		if !c.contains(v) {
			c.bytes[c.n] = v
			c.n++
		}
	}
	return c
}

func (c Class) contains(v byte) bool {
	for i := 0; i < c.n; i++ {
		if c.bytes[i] == v {
			return true
		}
	}
	return false
}

// Scan returns the index within buf[0:Window] of the first byte that
// belongs to class, or Window if none of the next Window bytes match.
// buf must have at least Window readable bytes.
//
// Scan dispatches to a vectorized implementation when the platform and
// CPU support one, and to the scalar fallback otherwise. Both
// implementations share this exact contract, including the Window
// sentinel value on a miss (see DESIGN.md).
func Scan(buf []byte, class Class) int {
	if len(buf) < Window {
		panic("bcs: Scan requires a full 16-byte window")
	}
	return scan(buf, class)
}

// ScanScalar is the portable, always-available fallback: a
// 16-iteration compare loop (not unrolled). It is exported so tests and callers that need a
// known-reference implementation (e.g. to cross-check the vectorized
// path) can call it directly without going through platform dispatch.
func ScanScalar(buf []byte, class Class) int {
	if len(buf) < Window {
		panic("bcs: ScanScalar requires a full 16-byte window")
	}
	// One loop per class size, so each iteration compares against a fixed
	// number of bytes; the 16-iteration loops themselves are not unrolled.
	switch class.n {
	case 0:
		return Window
	case 1:
		b0 := class.bytes[0]
		for i := 0; i < Window; i++ {
			if buf[i] == b0 {
				return i
			}
		}
	case 2:
		b0, b1 := class.bytes[0], class.bytes[1]
		for i := 0; i < Window; i++ {
			c := buf[i]
			if c == b0 || c == b1 {
				return i
			}
		}
	case 3:
		b0, b1, b2 := class.bytes[0], class.bytes[1], class.bytes[2]
		for i := 0; i < Window; i++ {
			c := buf[i]
			if c == b0 || c == b1 || c == b2 {
				return i
			}
		}
	default:
		b0, b1, b2, b3 := class.bytes[0], class.bytes[1], class.bytes[2], class.bytes[3]
		for i := 0; i < Window; i++ {
			c := buf[i]
			if c == b0 || c == b1 || c == b2 || c == b3 {
				return i
			}
		}
	}
	return Window
}
