package vcsv

import "github.com/shapestone/vectorcsv/internal/dialect"

// Dialect is the immutable per-reader configuration governing
// delimiter, quote, escape, and unterminated-quote behavior. It is a
// plain alias of internal/dialect.Dialect: the engine and the public
// surface share one representation, there being nothing about the
// type that the public API needs to hide.
type Dialect = dialect.Dialect

// DefaultDialect returns the RFC-4180-shaped default: comma-delimited,
// double-quote quoting, doubled-quote escaping, strict on unterminated
// quotes.
func DefaultDialect() Dialect {
	return dialect.Default()
}
