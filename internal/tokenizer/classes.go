package tokenizer

import (
	"github.com/shapestone/vectorcsv/internal/bcs"
	"github.com/shapestone/vectorcsv/internal/dialect"
)

// Classes precomputes the byte-class sets the state machine scans for,
// per dialect. A Dialect is immutable once a Reader is built, so these
// are built exactly once and reused for every row and every block
// scanned within that row.
type Classes struct {
	// Unquoted is consulted in FIELD_START and IN_UNQUOTED: the field
	// delimiter, CR, LF, and the quote byte (the quote hit is only ever
	// acted on while still at FIELD_START; inside IN_UNQUOTED it is
	// treated as literal data).
	Unquoted bcs.Class
	// Quoted is consulted in IN_QUOTED: the quote byte and, when the
	// dialect uses a distinct escape byte, that escape byte too.
	Quoted bcs.Class
}

// BuildClasses derives the scanner classes for d.
func BuildClasses(d dialect.Dialect) Classes {
	cls := Classes{
		Unquoted: bcs.NewClass(d.Delimiter, '\r', '\n', d.Quote),
	}
	if d.DoubledQuoteEscape() {
		cls.Quoted = bcs.NewClass(d.Quote)
	} else {
		cls.Quoted = bcs.NewClass(d.Quote, d.Escape)
	}
	return cls
}
