package vcsv

type headerKind int

const (
	headerKindNone headerKind = iota
	headerKindFirstRow
	headerKindProvided
)

// HeaderPolicy selects how a Reader establishes its header-to-index
// mapping: no mapping at all, one consumed from the stream's first
// row, or one supplied up front.
type HeaderPolicy struct {
	kind  headerKind
	names []string
}

// NoHeader disables name-based column lookup: RowView.ByName always
// fails with UnknownColumnError.
func NoHeader() HeaderPolicy {
	return HeaderPolicy{kind: headerKindNone}
}

// HasHeader declares that the stream's first row is a header; it is
// consumed by the first call to Reader.NextRow and never returned to
// the caller as data.
func HasHeader() HeaderPolicy {
	return HeaderPolicy{kind: headerKindFirstRow}
}

// ProvidedNames supplies the header names explicitly; every row
// (including the stream's first) is returned as data.
func ProvidedNames(names []string) HeaderPolicy {
	cp := make([]string, len(names))
	copy(cp, names)
	return HeaderPolicy{kind: headerKindProvided, names: cp}
}

// headerMap is the ordered name -> column-index mapping built once at
// Reader construction or after the header row is consumed. Lookup is a
// linear scan: column counts are small in practice and the first
// matching name wins on duplicates, which a hash-based index would
// have to special-case anyway.
type headerMap struct {
	names []string
}

func newHeaderMap(names []string) *headerMap {
	cp := make([]string, len(names))
	copy(cp, names)
	return &headerMap{names: cp}
}

func (h *headerMap) index(name string) (int, bool) {
	for i, n := range h.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
